package domain

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports every required column absent from an uploaded
// file. It is raised by input validation before the engine runs.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("invalid file: missing columns: %s", strings.Join(e.Columns, ", "))
}
