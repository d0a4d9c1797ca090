// Package terminal decides whether diagnostics go to a person at a terminal
// or to a CI log.
package terminal

import (
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"GITLAB_CI",              // GitLab CI
	"JENKINS_URL",            // Jenkins
	"BUILDKITE",              // Buildkite
	"TF_BUILD",               // Azure DevOps
}

// DetectorOptions contains options for controlling interactive detection
type DetectorOptions struct {
	ForceInteractive    bool // Force interactive mode regardless of environment
	ForceNonInteractive bool // Force non-interactive mode regardless of environment

	// Getenv and IsTerminal default to the process environment and
	// golang.org/x/term.
	Getenv     func(key string) string
	IsTerminal func(fd int) bool
}

// Detector reports whether output should be formatted for a person.
type Detector struct {
	options DetectorOptions
}

// NewDetector creates a Detector with the given options.
func NewDetector(options DetectorOptions, getenv func(string) string) *Detector {
	if options.Getenv == nil {
		options.Getenv = getenv
	}
	if options.IsTerminal == nil {
		options.IsTerminal = term.IsTerminal
	}
	return &Detector{options: options}
}

// IsInteractive reports whether fd should be treated as an interactive
// terminal. Command line overrides win, then CI detection, then the
// terminal check itself.
func (d *Detector) IsInteractive(fd uintptr) bool {
	if d.options.ForceInteractive {
		return true
	}
	if d.options.ForceNonInteractive {
		return false
	}
	if d.IsCIEnvironment() {
		return false
	}
	return d.options.IsTerminal(int(fd)) //nolint:gosec // file descriptors fit in int
}

// IsCIEnvironment checks if the current environment is a CI/CD system
func (d *Detector) IsCIEnvironment() bool {
	if d.options.Getenv == nil {
		return false
	}
	for _, envVar := range ciEnvVars {
		value := d.options.Getenv(envVar)
		if value == "" {
			continue
		}
		// CI=false or CI=0 does not indicate a CI environment
		if envVar == "CI" {
			return isCITruthy(value)
		}
		return true
	}
	return false
}

func isCITruthy(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return lower != "false" && lower != "0" && lower != "no"
}
