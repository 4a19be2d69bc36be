package diag

// Severity classifies a diagnostic (spec §7).
type Severity int

const (
	// Fatal aborts the pipeline immediately: a required stdlib type is
	// missing, or an internal invariant was violated.
	Fatal Severity = iota
	// Error allows analysis to continue but blocks emission.
	Error
	// Warning is informational and never blocks emission.
	Warning
	// Info is purely advisory.
	Info
)

func (s Severity) String() string {
	switch s {
	case Fatal:
		return "fatal"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}
