package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Mounadi05/taskmaster/internal/domain/process"
)

type fakeSupervisor struct {
	started, stopped, restarted, reloaded []string
	statusErr                             error
	reloadErr                             error
}

func (f *fakeSupervisor) Start(name string) error   { f.started = append(f.started, name); return nil }
func (f *fakeSupervisor) Stop(name string) error    { f.stopped = append(f.stopped, name); return nil }
func (f *fakeSupervisor) Restart(name string) error { f.restarted = append(f.restarted, name); return nil }
func (f *fakeSupervisor) Status(name string) (domain.Status, error) {
	if f.statusErr != nil {
		return domain.Status{}, f.statusErr
	}
	return domain.Status{Name: name, State: domain.StateRunning}, nil
}
func (f *fakeSupervisor) AllStatus() []domain.Status {
	return []domain.Status{{Name: "a", State: domain.StateRunning}}
}
func (f *fakeSupervisor) Reload() error { return f.reloadErr }

func TestDispatchAlive(t *testing.T) {
	d := New(&fakeSupervisor{})
	r := d.Dispatch([]string{"alive"})
	assert.Equal(t, StatusSuccess, r.Status)
}

func TestDispatchUnknownVerb(t *testing.T) {
	d := New(&fakeSupervisor{})
	r := d.Dispatch([]string{"frobnicate"})
	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, "unknown command", r.Message)
}

func TestDispatchEmptyCommand(t *testing.T) {
	d := New(&fakeSupervisor{})
	r := d.Dispatch(nil)
	assert.Equal(t, StatusError, r.Status)
}

func TestDispatchStartForwardsToSupervisor(t *testing.T) {
	sup := &fakeSupervisor{}
	d := New(sup)
	r := d.Dispatch([]string{"start", "web"})
	require.Equal(t, StatusSuccess, r.Status)
	assert.Equal(t, []string{"web"}, sup.started)
}

func TestDispatchDetailUnknownProgram(t *testing.T) {
	sup := &fakeSupervisor{statusErr: errors.New("not found")}
	d := New(sup)
	r := d.Dispatch([]string{"detail", "missing"})
	assert.Equal(t, StatusError, r.Status)
}

func TestDispatchStatusAll(t *testing.T) {
	d := New(&fakeSupervisor{})
	r := d.Dispatch([]string{"status"})
	assert.Equal(t, StatusSuccess, r.Status)
	assert.NotNil(t, r.Data)
}

func TestDispatchReload(t *testing.T) {
	sup := &fakeSupervisor{}
	d := New(sup)
	r := d.Dispatch([]string{"reload"})
	assert.Equal(t, StatusSuccess, r.Status)
}
