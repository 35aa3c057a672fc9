// Package notify defines the application-level notification port: a
// sink that accepts (program, action, success, error).
package notify

import (
	"log"

	domain "github.com/Mounadi05/taskmaster/internal/domain/process"
)

// Sink is the notification collaborator's contract. Real delivery (SMTP
// formatting, etc.) is out of scope; the core only ever calls Notify.
type Sink interface {
	// Notify reports a lifecycle outcome for program.
	Notify(program string, action domain.EventType, success bool, errText string)
}

// NoopSink silently discards every notification, the default when no
// sink is configured.
type NoopSink struct{}

// Notify implements Sink.
func (NoopSink) Notify(string, domain.EventType, bool, string) {}

// LogSink records notifications through the standard logger. It is the
// minimal concrete sink the daemon ships with out of the box, not a
// replacement for a real SMTP collaborator.
type LogSink struct {
	Logger *log.Logger
}

// NewLogSink builds a LogSink; a nil logger falls back to log.Default().
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{Logger: logger}
}

// Notify implements Sink.
func (s *LogSink) Notify(program string, action domain.EventType, success bool, errText string) {
	if success {
		s.Logger.Printf("[notify] program=%s action=%s result=success", program, action)
		return
	}
	s.Logger.Printf("[notify] program=%s action=%s result=failure error=%q", program, action, errText)
}
