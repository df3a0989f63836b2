package roundtable

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	speaker := "Speaker"
	for _, p := range []Persona{Moderator, Bullish, Bearish} {
		if p.System == prompt.System {
			speaker = p.Name
			break
		}
	}
	first := prompt.User
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	return fmt.Sprintf("[%s] %s", speaker, first), nil
}
