// Package validation lints staged DAK files before commit. Checks are
// line-oriented pattern rules, not grammars: the content is produced
// by dedicated authoring tools and the workbench only guards against
// the cheap-to-catch mistakes.
package validation

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/litlfred/sgex/pkg/staging"
)

// FileValidator produces issues for one file's content
type FileValidator interface {
	// Validate lints content and returns findings. It must be pure and
	// must not fail: unparseable input yields zero issues.
	Validate(path, content string) []Issue
	// Name identifies the validator
	Name() string
}

// Validator routes staged files to per-type validators by extension
type Validator struct {
	byExtension map[string]FileValidator
}

// New creates a validator with the standard DAK rule set registered
// (.fsh and .cql).
func New() *Validator {
	v := &Validator{byExtension: make(map[string]FileValidator)}
	v.Register(".fsh", &FSHValidator{})
	v.Register(".cql", &CQLValidator{})
	return v
}

// Register binds a file extension (with leading dot) to a validator
func (v *Validator) Register(ext string, fv FileValidator) {
	v.byExtension[strings.ToLower(ext)] = fv
}

// ValidateFile lints a single file. Files without a registered
// validator, and binary content, yield zero issues.
func (v *Validator) ValidateFile(path, content string) []Issue {
	fv, ok := v.byExtension[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil
	}
	if !utf8.ValidString(content) || strings.ContainsRune(content, 0) {
		// Not text; no checks apply
		return nil
	}
	return fv.Validate(path, content)
}

// ValidateStaged runs all staged files through their validators and
// aggregates the result. IsValid is true when no error-severity issue
// was found; warnings and info never block.
func (v *Validator) ValidateStaged(files []staging.StagedFile) *Summary {
	summary := &Summary{}

	for _, f := range files {
		summary.TotalElements++
		if strings.TrimSpace(f.Content) == "" {
			summary.MissingElements++
			continue
		}

		issues := v.ValidateFile(f.Path, f.Content)
		summary.Issues = append(summary.Issues, issues...)

		hasError := false
		for _, issue := range issues {
			if issue.Severity == SeverityError {
				hasError = true
				break
			}
		}
		if hasError {
			summary.InvalidElements++
		} else {
			summary.ValidElements++
		}
	}

	summary.IsValid = summary.InvalidElements == 0
	return summary
}

// skippableLine reports whether a line is exempt from checks: blank
// lines and comment lines (// or /*).
func skippableLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*")
}
