package roundtable

import (
	"context"
	"errors"
	"fmt"
)

// Sequencer runs the four dialogue turns in strict order.
type Sequencer struct {
	llm LLMClient

	// OnTurn 在每个发言生成后调用（可选）。
	OnTurn func(Turn)
}

func NewSequencer(llm LLMClient) (*Sequencer, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Sequencer{llm: llm}, nil
}

// Run produces intro, bullish view, bearish view and wrap-up. The first backend
// error aborts the run; nothing is retried.
func (s *Sequencer) Run(ctx context.Context, topic string) ([]Turn, error) {
	if err := ValidateTopic(topic); err != nil {
		return nil, err
	}

	turns := make([]Turn, 0, len(DialogueSegments))
	for _, seg := range DialogueSegments {
		prompt := s.promptFor(seg, topic, turns)
		text, err := s.generate(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", seg, err)
		}
		speaker, _ := SpeakerOf(seg)
		turn := Turn{Segment: seg, Persona: speaker, Text: text}
		turns = append(turns, turn)
		if s.OnTurn != nil {
			s.OnTurn(turn)
		}
	}
	return turns, nil
}

// promptFor expects prior to hold exactly the turns before seg.
func (s *Sequencer) promptFor(seg Segment, topic string, prior []Turn) Prompt {
	switch seg {
	case SegmentBullishView:
		return BuildBullishPrompt(topic, prior[0].Text)
	case SegmentBearishView:
		return BuildBearishPrompt(topic, prior[0].Text, prior[1].Text)
	case SegmentModeratorWrap:
		return BuildWrapPrompt(topic, prior)
	default:
		return BuildIntroPrompt(topic)
	}
}

func (s *Sequencer) generate(ctx context.Context, prompt Prompt) (string, error) {
	raw, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return Clean(raw), nil
}
