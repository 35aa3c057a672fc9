package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasLiveChild(t *testing.T) {
	cases := map[State]bool{
		StateStopped:  false,
		StateStarting: true,
		StateRunning:  true,
		StateStopping: true,
		StateExited:   false,
		StateFatal:    false,
	}
	for state, want := range cases {
		assert.Equal(t, want, state.HasLiveChild(), state.String())
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "unknown", State(99).String())
}
