package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetector_IsInteractive(t *testing.T) {
	tests := []struct {
		name            string
		envVars         map[string]string
		options         DetectorOptions
		isTerminal      bool
		wantInteractive bool
	}{
		{name: "terminal without CI", isTerminal: true, wantInteractive: true},
		{name: "not a terminal", isTerminal: false, wantInteractive: false},
		{name: "GITHUB_ACTIONS disables", envVars: map[string]string{"GITHUB_ACTIONS": "true"}, isTerminal: true},
		{name: "CI=true disables", envVars: map[string]string{"CI": "true"}, isTerminal: true},
		{name: "CI=false is ignored", envVars: map[string]string{"CI": "false"}, isTerminal: true, wantInteractive: true},
		{name: "force interactive overrides CI", envVars: map[string]string{"CI": "1"}, options: DetectorOptions{ForceInteractive: true}, wantInteractive: true},
		{name: "force non-interactive overrides terminal", options: DetectorOptions{ForceNonInteractive: true}, isTerminal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.options
			opts.IsTerminal = func(int) bool { return tt.isTerminal }
			d := NewDetector(opts, func(key string) string { return tt.envVars[key] })
			assert.Equal(t, tt.wantInteractive, d.IsInteractive(2))
		})
	}
}

func TestDetector_NilGetenv(t *testing.T) {
	d := NewDetector(DetectorOptions{IsTerminal: func(int) bool { return true }}, nil)
	assert.False(t, d.IsCIEnvironment())
	assert.True(t, d.IsInteractive(1))
}
