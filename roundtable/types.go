package roundtable

import (
	"errors"
	"strings"
)

// MinTopicLength 是话题去除首尾空白后的最小长度。
const MinTopicLength = 10

// ErrTopicTooShort is returned before any model call when the topic is too short.
var ErrTopicTooShort = errors.New("please provide a valid economic topic")

// Segment names one field of a discussion result. Narration files are named after it.
type Segment string

const (
	SegmentTopic          Segment = "topic"
	SegmentModeratorIntro Segment = "moderator_intro"
	SegmentBullishView    Segment = "bullish_view"
	SegmentBearishView    Segment = "bearish_view"
	SegmentModeratorWrap  Segment = "moderator_wrap"
	SegmentSummary        Segment = "summary"
)

// DialogueSegments lists the spoken turns in the order they are produced.
var DialogueSegments = []Segment{
	SegmentModeratorIntro,
	SegmentBullishView,
	SegmentBearishView,
	SegmentModeratorWrap,
}

// Turn is one generated piece of the dialogue.
type Turn struct {
	Segment Segment `json:"segment"`
	Persona Persona `json:"persona"`
	Text    string  `json:"text"`
}

// Result holds everything one discussion produced.
type Result struct {
	Topic          string `json:"topic"`
	ModeratorIntro string `json:"moderator_intro"`
	BullishView    string `json:"bullish_view"`
	BearishView    string `json:"bearish_view"`
	ModeratorWrap  string `json:"moderator_wrap"`
	Summary        string `json:"summary"`
}

// Get returns the text stored under seg, or "" for an unknown segment.
func (r Result) Get(seg Segment) string {
	switch seg {
	case SegmentTopic:
		return r.Topic
	case SegmentModeratorIntro:
		return r.ModeratorIntro
	case SegmentBullishView:
		return r.BullishView
	case SegmentBearishView:
		return r.BearishView
	case SegmentModeratorWrap:
		return r.ModeratorWrap
	case SegmentSummary:
		return r.Summary
	}
	return ""
}

// ValidateTopic rejects topics shorter than MinTopicLength after trimming.
func ValidateTopic(topic string) error {
	if len(strings.TrimSpace(topic)) < MinTopicLength {
		return ErrTopicTooShort
	}
	return nil
}
