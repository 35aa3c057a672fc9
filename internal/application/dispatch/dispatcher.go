// Package dispatch implements the Command Dispatcher: it parses a
// tokenised textual command, invokes the Supervisor, and renders a
// structured reply. Both transport adapters (socket, HTTP) share this
// single implementation.
package dispatch

import (
	"errors"
	"time"

	domain "github.com/Mounadi05/taskmaster/internal/domain/process"
)

// Status values in a Reply.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Reply is the Dispatcher's structured response, serialised as JSON by
// the transport adapters.
type Reply struct {
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// snapshotView is the wire shape of a worker status snapshot.
type snapshotView struct {
	Name          string `json:"name"`
	Status        string `json:"status"`
	PID           *int   `json:"pid"`
	Uptime        string `json:"uptime"`
	Restarts      int    `json:"restarts"`
	Retries       int    `json:"retries"`
	ExitCode      int    `json:"exit_code"`
	StoppedByUser bool   `json:"stopped_by_user"`
}

func toView(s domain.Status) snapshotView {
	var pid *int
	if s.PID != 0 {
		pid = &s.PID
	}
	return snapshotView{
		Name:          s.Name,
		Status:        s.State.String(),
		PID:           pid,
		Uptime:        s.Uptime.String(),
		Restarts:      s.Restarts,
		Retries:       s.Retries,
		ExitCode:      s.ExitCode,
		StoppedByUser: s.StoppedByUser,
	}
}

// Supervisor is the minimal slice of supervisor.Supervisor the Dispatcher
// needs, named as a port so this package has no hard dependency on the
// concrete type for testing.
type Supervisor interface {
	Start(name string) error
	Stop(name string) error
	Restart(name string) error
	Status(name string) (domain.Status, error)
	AllStatus() []domain.Status
	Reload() error
}

// Dispatcher routes tokenised commands to a Supervisor.
type Dispatcher struct {
	sup Supervisor
}

// New builds a Dispatcher over sup.
func New(sup Supervisor) *Dispatcher {
	return &Dispatcher{sup: sup}
}

// Dispatch executes a single command. tokens[0] is the verb; remaining
// tokens are its arguments.
func (d *Dispatcher) Dispatch(tokens []string) Reply {
	if len(tokens) == 0 {
		return errorReply("empty command")
	}

	verb := tokens[0]
	args := tokens[1:]

	switch verb {
	case "alive":
		return successReply("alive", nil)
	case "status":
		return d.status(args)
	case "detail":
		return d.detail(args)
	case "start":
		return d.act(args, d.sup.Start, "started")
	case "stop":
		return d.act(args, d.sup.Stop, "stopped")
	case "restart":
		return d.act(args, d.sup.Restart, "restarted")
	case "reload":
		if err := d.sup.Reload(); err != nil {
			return errorReply(err.Error())
		}
		return successReply("reloaded", nil)
	default:
		return errorReply("unknown command")
	}
}

func (d *Dispatcher) status(args []string) Reply {
	if len(args) == 0 {
		all := d.sup.AllStatus()
		views := make([]snapshotView, 0, len(all))
		for _, s := range all {
			views = append(views, toView(s))
		}
		return successReply("ok", views)
	}
	return d.detail(args)
}

func (d *Dispatcher) detail(args []string) Reply {
	if len(args) != 1 {
		return errorReply("detail requires exactly one program name")
	}
	s, err := d.sup.Status(args[0])
	if err != nil {
		return errorReply(err.Error())
	}
	return successReply("ok", map[string]snapshotView{args[0]: toView(s)})
}

func (d *Dispatcher) act(args []string, fn func(string) error, verb string) Reply {
	if len(args) != 1 {
		return errorReply(verb + " requires exactly one program name")
	}
	if err := fn(args[0]); err != nil && !errors.Is(err, domain.ErrAlreadyRunning) {
		return errorReply(err.Error())
	}
	return successReply(verb, nil)
}

func successReply(message string, data interface{}) Reply {
	return Reply{Status: StatusSuccess, Message: message, Timestamp: now(), Data: data}
}

func errorReply(message string) Reply {
	return Reply{Status: StatusError, Message: message, Timestamp: now()}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
