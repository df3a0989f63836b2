// Package pipeline runs one complete roundtable: dialogue, summary, report and narration.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"fintalk/narration"
	"fintalk/report"
	"fintalk/roundtable"
)

// ErrExport marks a failure writing the report locally, as opposed to a backend failure.
var ErrExport = errors.New("export")

// Outcome is everything a run produced.
type Outcome struct {
	Result    roundtable.Result
	Dir       string
	Reports   []string
	Narration []narration.Result
}

// Runner wires the discussion to its exporters. narrator may be nil to skip audio.
type Runner struct {
	discussion *roundtable.Discussion
	exporter   *report.Exporter
	narrator   *narration.Generator
	logger     zerolog.Logger
}

func New(discussion *roundtable.Discussion, exporter *report.Exporter, narrator *narration.Generator, logger zerolog.Logger) (*Runner, error) {
	if discussion == nil {
		return nil, errors.New("discussion is required")
	}
	if exporter == nil {
		return nil, errors.New("report exporter is required")
	}
	return &Runner{
		discussion: discussion,
		exporter:   exporter,
		narrator:   narrator,
		logger:     logger,
	}, nil
}

// Run writes every artifact into the exporter's directory.
func (r *Runner) Run(ctx context.Context, topic string) (*Outcome, error) {
	return r.RunInDir(ctx, topic, r.exporter.Dir())
}

// RunInDir runs the whole flow for topic and writes the artifacts into dir.
// Dialogue, summary and export errors abort the run; narration errors are
// logged and reported per segment only.
func (r *Runner) RunInDir(ctx context.Context, topic, dir string) (*Outcome, error) {
	// Step 1: validate before touching any backend
	if err := roundtable.ValidateTopic(topic); err != nil {
		return nil, err
	}

	start := time.Now()
	r.logger.Info().Str("dir", dir).Msg("roundtable started")

	// Step 2: dialogue + summary
	result, err := r.discussion.Run(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("discussion: %w", err)
	}
	r.logger.Info().Dur("elapsed", time.Since(start)).Msg("dialogue and summary ready")

	// Step 3: report
	paths, err := r.exporter.WithDir(dir).Export(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}
	for _, p := range paths {
		r.logger.Info().Str("path", p).Msg("report written")
	}

	out := &Outcome{Result: result, Dir: dir, Reports: paths}

	// Step 4: narration, never fatal
	if r.narrator != nil {
		out.Narration = r.narrator.Generate(ctx, result, dir)
		for _, n := range out.Narration {
			if !n.OK() {
				r.logger.Warn().Err(n.Err).Str("segment", string(n.Segment)).Msg("narration failed")
				continue
			}
			r.logger.Info().Str("path", n.Path).Msg("narration written")
		}
	}

	r.logger.Info().Dur("elapsed", time.Since(start)).Msg("roundtable completed")
	return out, nil
}
