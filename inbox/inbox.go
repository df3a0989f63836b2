// Package inbox watches a directory for topic files and runs a roundtable for each one.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"fintalk/pipeline"
)

// TopicExt is the only extension picked up from the inbox.
const TopicExt = ".txt"

// Handler processes one topic file.
type Handler func(ctx context.Context, path string) error

// Runner is the part of pipeline.Runner the inbox needs.
type Runner interface {
	RunInDir(ctx context.Context, topic, dir string) (*pipeline.Outcome, error)
}

type Watcher struct {
	dir     string
	handler Handler
	logger  zerolog.Logger
	watcher *fsnotify.Watcher

	// 等待文件写完再读取
	settle time.Duration
}

// New creates dir if needed and starts watching it.
func New(dir string, handler Handler, log zerolog.Logger) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("inbox handler required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create inbox dir: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}
	return &Watcher{
		dir:     dir,
		handler: handler,
		logger:  log,
		watcher: fw,
		settle:  500 * time.Millisecond,
	}, nil
}

// Start blocks until ctx is done. Files are handled one at a time in arrival order;
// a failed file is logged and the watcher keeps going.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info().Str("dir", w.dir).Msg("inbox watcher started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isTopicFile(event.Name) {
				w.logger.Debug().Str("path", event.Name).Msg("ignoring non-topic file")
				continue
			}
			w.logger.Info().Str("path", event.Name).Msg("new topic file")
			if w.settle > 0 {
				select {
				case <-time.After(w.settle):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if err := w.handler(ctx, event.Name); err != nil {
				w.logger.Error().Err(err).Str("path", event.Name).Msg("topic file failed")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// TopicHandler runs the file's content as a topic and writes into
// <outputDir>/<file stem>/.
func TopicHandler(runner Runner, outputDir string) Handler {
	return func(ctx context.Context, path string) error {
		topic, err := ReadTopic(path)
		if err != nil {
			return err
		}
		_, err = runner.RunInDir(ctx, topic, filepath.Join(outputDir, stem(path)))
		return err
	}
}

// ReadTopic returns the trimmed file content.
func ReadTopic(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read topic: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func isTopicFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), TopicExt)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
