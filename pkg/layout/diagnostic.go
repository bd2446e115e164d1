package layout

import (
	"fmt"

	"github.com/maskforge/maskforge/pkg/errors"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Diagnostic is a non-fatal condition recorded during a build, such as a
// width mismatch between connected ports. Diagnostics do not stop the
// build; callers inspect them via Builder.Diagnostics while building, or
// Component.Diagnostics after the freeze.
type Diagnostic struct {
	Severity Severity
	Code     errors.Code
	Message  string
}

// String renders the diagnostic as "severity: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}
