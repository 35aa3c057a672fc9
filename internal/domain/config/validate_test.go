package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProgram() *Program {
	return &Program{
		Name:         "demo",
		Cmd:          []string{"/bin/true"},
		NumProcs:     1,
		StartRetries: 3,
		StartSecs:    1,
		StopWaitSecs: 10,
		Priority:     0,
		ExitCodes:    DefaultExitCodes(),
	}
}

func TestValidateRejectsEmptyProgramTable(t *testing.T) {
	err := Validate(&Config{})
	assert.ErrorIs(t, err, ErrNoPrograms)
}

func TestValidateRejectsEmptyCmd(t *testing.T) {
	p := validProgram()
	p.Cmd = nil
	err := Validate(&Config{Programs: map[string]*Program{"demo": p}})
	assert.ErrorIs(t, err, ErrEmptyCmd)
}

func TestValidateRejectsBadPriority(t *testing.T) {
	p := validProgram()
	p.Priority = 100
	err := Validate(&Config{Programs: map[string]*Program{"demo": p}})
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestValidateRejectsBadUmask(t *testing.T) {
	p := validProgram()
	p.Umask = "99"
	err := Validate(&Config{Programs: map[string]*Program{"demo": p}})
	assert.ErrorIs(t, err, ErrInvalidUmask)
}

func TestValidateAcceptsWellFormedProgram(t *testing.T) {
	p := validProgram()
	err := Validate(&Config{Programs: map[string]*Program{"demo": p}})
	assert.NoError(t, err)
}

func TestValidateRejectsUnknownAutoRestart(t *testing.T) {
	p := validProgram()
	p.AutoRestartPolicy = "sometimes"
	err := Validate(&Config{Programs: map[string]*Program{"demo": p}})
	assert.ErrorIs(t, err, ErrInvalidAutoRestart)
}
