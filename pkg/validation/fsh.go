package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// fshMetadataKeywords are FSH metadata keywords that must be followed
// by a colon when they start a line.
var fshMetadataKeywords = []string{"Id", "Title", "Description", "Usage", "Parent", "Source", "Target"}

var (
	// keyword at line start with no colon after it
	fshKeywordNoColon = regexp.MustCompile(`^(` + strings.Join(fshMetadataKeywords, "|") + `)\s+[^:\s]`)
	// digit sequence followed by ".." not followed by digit or *
	fshBadCardinality = regexp.MustCompile(`\d+\.\.(?:[^0-9*]|$)`)
)

// FSHValidator lints FHIR Shorthand files line by line
type FSHValidator struct{}

// Name identifies the validator
func (fv *FSHValidator) Name() string { return "fsh" }

// Validate applies the FSH line rules: unclosed strings (odd quote
// count) and malformed cardinalities are errors, metadata keywords
// without a colon are warnings. Blank and comment lines are skipped.
func (fv *FSHValidator) Validate(path, content string) []Issue {
	var issues []Issue

	for i, line := range strings.Split(content, "\n") {
		if skippableLine(line) {
			continue
		}
		lineNum := i + 1

		if strings.Count(line, `"`)%2 != 0 {
			issues = append(issues, Issue{
				Path:       path,
				Line:       lineNum,
				Severity:   SeverityError,
				Message:    fmt.Sprintf("unclosed string literal on line %d", lineNum),
				Suggestion: "add the missing closing quote",
			})
		}

		trimmed := strings.TrimSpace(line)
		if fshKeywordNoColon.MatchString(trimmed) {
			keyword := strings.Fields(trimmed)[0]
			issues = append(issues, Issue{
				Path:       path,
				Line:       lineNum,
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("metadata keyword %q on line %d is not followed by a colon", keyword, lineNum),
				Suggestion: fmt.Sprintf("write %q", keyword+": ..."),
			})
		}

		if fshBadCardinality.MatchString(line) {
			issues = append(issues, Issue{
				Path:       path,
				Line:       lineNum,
				Severity:   SeverityError,
				Message:    fmt.Sprintf("malformed cardinality on line %d", lineNum),
				Suggestion: "cardinality upper bound must be a number or *",
			})
		}
	}

	return issues
}
