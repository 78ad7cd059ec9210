package lookup

import (
	"fmt"
	"strings"
)

// ConfigError reports a malformed lookup table. The model must not run
// against a repository that failed to build.
type ConfigError struct {
	Table  Name
	Row    int
	Column string
	Msg    string
}

func (e *ConfigError) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("lookup table %s", e.Table))
	if e.Row > 0 {
		parts = append(parts, fmt.Sprintf("row %d", e.Row))
	}
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column %s", e.Column))
	}
	parts = append(parts, e.Msg)
	return strings.Join(parts, ": ")
}
