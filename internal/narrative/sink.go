package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync/atomic"

	"github.com/onekill0503/dnd-bot/internal/errors"
	"github.com/onekill0503/dnd-bot/internal/pkg/clock"
)

// AudioSink plays synthesized audio into a voice channel
type AudioSink interface {
	Play(ctx context.Context, channelID string, audio []byte) error
}

// DiscardSink drops audio. It is used when no voice output is configured.
type DiscardSink struct{}

// Play discards the audio
func (DiscardSink) Play(_ context.Context, _ string, _ []byte) error {
	return nil
}

var unsafePathChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// FileSink writes each clip as an mp3 under dir/<channel>/
type FileSink struct {
	dir   string
	clock clock.Clock
	seq   atomic.Uint64
}

// NewFileSink creates a file sink rooted at dir, creating it if needed
func NewFileSink(dir string, clk clock.Clock) (*FileSink, error) {
	if dir == "" {
		return nil, errors.InvalidArgument("directory is required")
	}
	if clk == nil {
		clk = clock.New()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create narration directory %s", dir)
	}
	return &FileSink{dir: dir, clock: clk}, nil
}

var _ AudioSink = (*FileSink)(nil)
var _ AudioSink = DiscardSink{}

// Play writes the clip to disk
func (f *FileSink) Play(ctx context.Context, channelID string, audio []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	channel := unsafePathChars.ReplaceAllString(channelID, "_")
	if channel == "" {
		channel = "unknown"
	}
	dir := filepath.Join(f.dir, channel)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create channel directory %s", dir)
	}

	name := fmt.Sprintf("%s-%04d.mp3", f.clock.Now().Format("20060102T150405"), f.seq.Add(1))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write narration clip %s", path)
	}

	slog.Info("Wrote narration clip", "channel_id", channelID, "path", path, "bytes", len(audio))
	return nil
}
