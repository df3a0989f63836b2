// Package narration writes one synthesized audio file per spoken roundtable turn.
package narration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"fintalk/roundtable"
)

// Extension of every narration file.
const Extension = ".mp3"

var errEmptyText = errors.New("segment has no text")

// DefaultVoices maps persona roles to speech voices.
var DefaultVoices = map[string]string{
	roundtable.Moderator.Role: "nova",
	roundtable.Bullish.Role:   "onyx",
	roundtable.Bearish.Role:   "fable",
}

// Result is the outcome for one segment: a written Path, or Err.
type Result struct {
	Segment roundtable.Segment `json:"segment"`
	Voice   string             `json:"voice"`
	Path    string             `json:"path,omitempty"`
	Err     error              `json:"-"`
}

// OK reports whether the audio file was written.
func (r Result) OK() bool {
	return r.Err == nil
}

// FileName returns the fixed audio file name for seg.
func FileName(seg roundtable.Segment) string {
	return string(seg) + Extension
}

// Generator synthesizes the dialogue segments of a result.
type Generator struct {
	synth       Synthesizer
	voices      map[string]string
	concurrency int
	logger      zerolog.Logger
}

// NewGenerator builds a Generator. Missing voices fall back to DefaultVoices;
// concurrency below 1 means one segment at a time.
func NewGenerator(synth Synthesizer, voices map[string]string, concurrency int, logger zerolog.Logger) (*Generator, error) {
	if synth == nil {
		return nil, errors.New("synthesizer is required")
	}
	merged := make(map[string]string, len(DefaultVoices))
	for role, v := range DefaultVoices {
		merged[role] = v
	}
	for role, v := range voices {
		if v != "" {
			merged[role] = v
		}
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Generator{synth: synth, voices: merged, concurrency: concurrency, logger: logger}, nil
}

// Generate writes <dir>/<segment>.mp3 for every dialogue segment (never the summary).
// A failing segment does not stop the others; results come back in segment order.
func (g *Generator) Generate(ctx context.Context, result roundtable.Result, dir string) []Result {
	segments := roundtable.DialogueSegments
	results := make([]Result, len(segments))

	var eg errgroup.Group
	eg.SetLimit(g.concurrency)
	for i, seg := range segments {
		eg.Go(func() error {
			results[i] = g.one(ctx, seg, result.Get(seg), dir)
			// 单个片段失败不影响其他片段，因此始终返回 nil。
			return nil
		})
	}
	_ = eg.Wait()
	return results
}

func (g *Generator) one(ctx context.Context, seg roundtable.Segment, text, dir string) Result {
	speaker, _ := roundtable.SpeakerOf(seg)
	res := Result{Segment: seg, Voice: g.voices[speaker.Role]}
	if text == "" {
		res.Err = errEmptyText
		return res
	}

	audio, err := g.synth.Synthesize(ctx, text, res.Voice)
	if err != nil {
		res.Err = fmt.Errorf("synthesize %s: %w", seg, err)
		return res
	}

	path := filepath.Join(dir, FileName(seg))
	if err := os.WriteFile(path, audio, 0644); err != nil {
		res.Err = fmt.Errorf("write %s: %w", path, err)
		return res
	}
	res.Path = path
	g.logger.Debug().Str("segment", string(seg)).Str("voice", res.Voice).Str("path", path).Msg("narration written")
	return res
}
