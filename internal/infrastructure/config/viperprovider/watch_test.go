package viperprovider

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchTriggersOnChangeOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taskmaster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("programs: {}\n"), 0o644))

	triggered := make(chan struct{}, 1)
	watcher, err := Watch(path, nil, func() {
		select {
		case triggered <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	require.NoError(t, os.WriteFile(path, []byte("programs:\n  demo:\n    cmd: [/bin/true]\n"), 0o644))

	select {
	case <-triggered:
	case <-time.After(2 * time.Second):
		t.Fatal("onChange was not called after a write to the watched file")
	}
}
