// Package logsink provides the infrastructure adapter that opens a
// program's declared stdout/stderr destinations, implementing
// worker.LogOpener. Rotation is delegated to an off-the-shelf rotator
// rather than hand-rolled.
package logsink

import (
	"io"
	"os"
	"path/filepath"

	"github.com/Mounadi05/taskmaster/internal/domain/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Opener implements worker.LogOpener.
type Opener struct{}

// New builds an Opener.
func New() *Opener {
	return &Opener{}
}

// discardWriter satisfies io.WriteCloser by discarding everything, used
// when a program declares no stdout/stderr destination.
type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
func (discardWriter) Close() error                 { return nil }

// Open resolves a single stream declaration to an open writer. A stream
// with no path discards output; one with MaxBytes set rotates via
// lumberjack; otherwise it is a plain append-mode file.
func (o *Opener) Open(stream config.StdStream) (io.WriteCloser, error) {
	if stream.Path == "" {
		return discardWriter{}, nil
	}

	if stream.MaxBytes > 0 {
		if err := os.MkdirAll(filepath.Dir(stream.Path), 0o755); err != nil {
			return nil, err
		}
		return &lumberjack.Logger{
			Filename:   stream.Path,
			MaxSize:    int(stream.MaxBytes / (1024 * 1024)),
			MaxBackups: stream.Backups,
			Compress:   false,
		}, nil
	}

	if err := os.MkdirAll(filepath.Dir(stream.Path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(stream.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
