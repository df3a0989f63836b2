package roundtable

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Summarizer condenses the finished dialogue.
type Summarizer interface {
	Summarize(ctx context.Context, turns []Turn) (string, error)
}

// Discussion 持有一次圆桌讨论所需的依赖：对话模型 + 总结模型。
type Discussion struct {
	seq        *Sequencer
	summarizer Summarizer
}

func NewDiscussion(seq *Sequencer, summarizer Summarizer) (*Discussion, error) {
	if seq == nil {
		return nil, errors.New("sequencer is required")
	}
	if summarizer == nil {
		return nil, errors.New("summarizer is required")
	}
	return &Discussion{seq: seq, summarizer: summarizer}, nil
}

// Run generates the dialogue and its summary for topic.
func (d *Discussion) Run(ctx context.Context, topic string) (Result, error) {
	turns, err := d.seq.Run(ctx, topic)
	if err != nil {
		return Result{}, err
	}

	summary, err := d.summarizer.Summarize(ctx, turns)
	if err != nil {
		return Result{}, fmt.Errorf("summarize: %w", err)
	}

	res := Result{
		Topic:   topic,
		Summary: strings.TrimSpace(summary),
	}
	for _, t := range turns {
		switch t.Segment {
		case SegmentModeratorIntro:
			res.ModeratorIntro = t.Text
		case SegmentBullishView:
			res.BullishView = t.Text
		case SegmentBearishView:
			res.BearishView = t.Text
		case SegmentModeratorWrap:
			res.ModeratorWrap = t.Text
		}
	}
	return res, nil
}
