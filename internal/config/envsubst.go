// internal/config/envsubst.go
package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR}, ${VAR:-default}, and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*|:\?[^}]*)?\}`)

// substituteEnvVars replaces environment variable references in content.
// Returns the substituted content and the names of referenced variables
// that are unset (or empty) with no default.
func substituteEnvVars(content string) (string, []string) {
	var missing []string

	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name, modifier := groups[1], groups[2]

		value := os.Getenv(name)
		if value != "" {
			return value
		}

		switch {
		case strings.HasPrefix(modifier, ":-"):
			return modifier[2:]
		case strings.HasPrefix(modifier, ":?"):
			missing = append(missing, name+": "+modifier[2:])
			return match
		default:
			if _, ok := os.LookupEnv(name); ok {
				return value
			}
			missing = append(missing, name)
			return match
		}
	})

	return out, missing
}
