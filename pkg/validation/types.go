package validation

// Severity ranks a validation issue
type Severity string

const (
	// SeverityError blocks the commit workflow unless overridden
	SeverityError Severity = "error"
	// SeverityWarning is surfaced but never blocks
	SeverityWarning Severity = "warning"
	// SeverityInfo is informational display only
	SeverityInfo Severity = "info"
)

// Issue is one finding against a staged file. Issues are produced
// fresh on each run and never persisted.
type Issue struct {
	Path       string   `json:"path"`
	Line       int      `json:"line,omitempty"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Summary aggregates a validation run over a set of staged files.
// An element is one validated file.
type Summary struct {
	TotalElements   int     `json:"total_elements"`
	ValidElements   int     `json:"valid_elements"`
	InvalidElements int     `json:"invalid_elements"`
	MissingElements int     `json:"missing_elements"`
	Issues          []Issue `json:"issues"`
	IsValid         bool    `json:"is_valid"`
}

// Errors returns only the error-severity issues
func (s *Summary) Errors() []Issue {
	return s.filter(SeverityError)
}

// Warnings returns only the warning-severity issues
func (s *Summary) Warnings() []Issue {
	return s.filter(SeverityWarning)
}

func (s *Summary) filter(sev Severity) []Issue {
	var out []Issue
	for _, issue := range s.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}
