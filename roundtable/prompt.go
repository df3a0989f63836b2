package roundtable

import (
	"fmt"
	"strings"
)

// Prompt 表示发送给 LLM 的一次请求：人设指令 + 用户输入。
type Prompt struct {
	System string
	User   string
}

// BuildIntroPrompt opens the panel.
func BuildIntroPrompt(topic string) Prompt {
	return Prompt{
		System: Moderator.System,
		User:   fmt.Sprintf("Open the discussion about: %s.", topic),
	}
}

// BuildBullishPrompt asks for the opening optimistic view.
func BuildBullishPrompt(topic, intro string) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("The moderator introduced the topic: %s.\n", topic))
	sb.WriteString(fmt.Sprintf("%s said: %s\n", Moderator.Name, intro))
	sb.WriteString("Respond with your opening bullish perspective.")
	return Prompt{System: Bullish.System, User: sb.String()}
}

// BuildBearishPrompt hands the optimistic view to the cautious economist.
func BuildBearishPrompt(topic, intro, bullish string) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("The moderator introduced the topic: %s.\n", topic))
	sb.WriteString(fmt.Sprintf("%s said: %s\n", Moderator.Name, intro))
	sb.WriteString(fmt.Sprintf("The bullish economist said: %s\n", bullish))
	sb.WriteString("Now respond with your cautious analysis.")
	return Prompt{System: Bearish.System, User: sb.String()}
}

// BuildWrapPrompt embeds the whole debate so far.
func BuildWrapPrompt(topic string, debate []Turn) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Based on the debate about %s:\n\n", topic))
	sb.WriteString(FormatTranscript(debate))
	sb.WriteString("\n\nSummarize their main differences and close the panel politely.")
	return Prompt{System: Moderator.System, User: sb.String()}
}

// FormatTranscript renders turns one per line, prefixed by the speaker name.
func FormatTranscript(turns []Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Persona.Name, t.Text))
	}
	return strings.Join(lines, "\n")
}
