package registry

import "fmt"

const (
	// SeverityWarning marks a unit or entry that was skipped.
	SeverityWarning Severity = "warning"
	// SeverityError marks a candidate type that failed inspection.
	SeverityError Severity = "error"
)

// Diagnostic codes.
const (
	CodeWalkFailed      = "walk_failed"
	CodeUnitLoadFailed  = "unit_load_failed"
	CodeCandidateFailed = "candidate_failed"
	CodeDuplicateKey    = "duplicate_key"
)

type (
	// Severity is the level of a discovery diagnostic.
	Severity string

	// Diagnostic is a non-fatal problem recorded during a discovery pass.
	// Passes never fail as a whole; they report what they skipped.
	Diagnostic struct {
		Severity Severity
		// Code is a machine-readable identifier such as "unit_load_failed".
		Code    string
		Message string
		// Path is the source unit involved, if any.
		Path  string
		Cause error
	}
)

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s [%s] %s", d.Severity, d.Code, d.Message)
	if d.Path != "" {
		s += " (" + d.Path + ")"
	}
	if d.Cause != nil {
		s += ": " + d.Cause.Error()
	}
	return s
}
