// internal/config/error.go
package config

import (
	"strings"
)

// ConfigError collects everything wrong with a config file so the
// caller can report all problems at once instead of one per run.
type ConfigError struct {
	Path    string   // Config file path
	Missing []string // Unresolved environment variables
	Errors  []string // Validation errors
}

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if len(e.Missing) > 0 {
		b.WriteString("missing environment variables: ")
		b.WriteString(strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("validation failed:")
		for _, msg := range e.Errors {
			b.WriteString("\n  - ")
			b.WriteString(msg)
		}
	}
	return b.String()
}
