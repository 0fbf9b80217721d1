package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	cqlLibraryPattern  = regexp.MustCompile(`^\s*library\s+(\w+)(?:\s+version\s+'([^']*)')?`)
	cqlContextPattern  = regexp.MustCompile(`^\s*context\s+(\w+)`)
	cqlValueSetPattern = regexp.MustCompile(`^\s*valueset\s+"([^"]+)"\s*:\s*'([^']*)'`)
	cqlDefinePattern   = regexp.MustCompile(`^\s*define\s+(?:function\s+)?"([^"]+)"`)
	cqlIncludePattern  = regexp.MustCompile(`^\s*include\s+(\w+)`)
)

// CQLStructure is the best-effort structural extraction of a CQL file.
// It exists for informational display; nothing here blocks a commit.
type CQLStructure struct {
	Library   string   `json:"library,omitempty"`
	Version   string   `json:"version,omitempty"`
	Context   string   `json:"context,omitempty"`
	Includes  []string `json:"includes,omitempty"`
	ValueSets []string `json:"valuesets,omitempty"`
	Defines   []string `json:"defines,omitempty"`
}

// ExtractCQL scans CQL text line by line and pulls out library,
// context, value set and definition references.
func ExtractCQL(content string) CQLStructure {
	var s CQLStructure

	for _, line := range strings.Split(content, "\n") {
		if skippableLine(line) {
			continue
		}
		if m := cqlLibraryPattern.FindStringSubmatch(line); m != nil {
			s.Library = m[1]
			s.Version = m[2]
		}
		if m := cqlContextPattern.FindStringSubmatch(line); m != nil {
			s.Context = m[1]
		}
		if m := cqlValueSetPattern.FindStringSubmatch(line); m != nil {
			s.ValueSets = append(s.ValueSets, m[1])
		}
		if m := cqlDefinePattern.FindStringSubmatch(line); m != nil {
			s.Defines = append(s.Defines, m[1])
		}
		if m := cqlIncludePattern.FindStringSubmatch(line); m != nil {
			s.Includes = append(s.Includes, m[1])
		}
	}

	return s
}

// CQLValidator reports CQL structure as info-level issues only
type CQLValidator struct{}

// Name identifies the validator
func (cv *CQLValidator) Name() string { return "cql" }

// Validate extracts CQL structure for display. It never produces
// errors or warnings.
func (cv *CQLValidator) Validate(path, content string) []Issue {
	s := ExtractCQL(content)

	var issues []Issue
	if s.Library != "" {
		msg := fmt.Sprintf("library %s", s.Library)
		if s.Version != "" {
			msg += " version " + s.Version
		}
		issues = append(issues, Issue{Path: path, Severity: SeverityInfo, Message: msg})
	}
	if s.Context != "" {
		issues = append(issues, Issue{Path: path, Severity: SeverityInfo, Message: "context " + s.Context})
	}
	if len(s.ValueSets) > 0 {
		issues = append(issues, Issue{
			Path:     path,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("%d value set reference(s): %s", len(s.ValueSets), strings.Join(s.ValueSets, ", ")),
		})
	}
	if len(s.Defines) > 0 {
		issues = append(issues, Issue{
			Path:     path,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("%d definition(s)", len(s.Defines)),
		})
	}

	return issues
}
