// Package rules runs downstream validation rules over an extraction report.
//
// The rules work purely on the serialized records; they never touch source
// text or syntax trees.
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hargabyte/specmap/internal/extract"
	"github.com/hargabyte/specmap/internal/output"
)

// Finding is one rule violation, located by character offset.
type Finding struct {
	Rule    string `json:"rule" yaml:"rule"`
	File    string `json:"file" yaml:"file"`
	Message string `json:"message" yaml:"message"`
	Offset  int    `json:"offset" yaml:"offset"`
}

// ruleFunc inspects one file's report and appends findings.
type ruleFunc func(file string, report *extract.FileReport) []Finding

// registry maps rule names to implementations. Names are part of the config
// surface (rules.disabled).
var registry = map[string]ruleFunc{
	"focused-test":      checkFocusedTests,
	"empty-test":        checkEmptyTests,
	"duplicate-group":   checkDuplicateGroups,
	"annotation-misuse": checkAnnotationMisuse,
}

// RuleNames returns the available rule names, sorted.
func RuleNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes all rules except the disabled ones over every file in the
// report. Findings are ordered by file, then offset.
func Run(report output.Report, disabled []string) []Finding {
	skip := map[string]bool{}
	for _, name := range disabled {
		skip[name] = true
	}

	var findings []Finding
	for _, file := range report.Files() {
		fileReport := report[file]
		for _, name := range RuleNames() {
			if skip[name] {
				continue
			}
			findings = append(findings, registry[name](file, fileReport)...)
		}
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}
		if findings[i].Offset != findings[j].Offset {
			return findings[i].Offset < findings[j].Offset
		}
		return findings[i].Rule < findings[j].Rule
	})
	return findings
}

// checkFocusedTests flags tests that would pin the suite to a subset when
// committed: any test whose aggregate only flag is set.
func checkFocusedTests(file string, report *extract.FileReport) []Finding {
	var findings []Finding
	for _, tc := range report.Tests {
		if !tc.Only {
			continue
		}
		findings = append(findings, Finding{
			Rule:    "focused-test",
			File:    file,
			Message: "focused test (.only) committed",
			Offset:  tc.Start,
		})
	}
	return findings
}

// checkEmptyTests flags tests whose body makes no calls at all.
func checkEmptyTests(file string, report *extract.FileReport) []Finding {
	var findings []Finding
	for _, tc := range report.Tests {
		if len(tc.Calls) > 0 {
			continue
		}
		findings = append(findings, Finding{
			Rule:    "empty-test",
			File:    file,
			Message: "test body makes no calls",
			Offset:  tc.Start,
		})
	}
	return findings
}

// checkDuplicateGroups flags sibling group constructs that share a label:
// two describe blocks with the same label under the same parent path are
// almost always a merge artifact.
func checkDuplicateGroups(file string, report *extract.FileReport) []Finding {
	type groupKey struct {
		parent string
		label  string
	}
	spans := map[groupKey]map[int]bool{}

	record := func(scope []extract.ScopeFrame) {
		var path []string
		for _, frame := range scope {
			if !frame.Kind.IsTest() {
				key := groupKey{parent: strings.Join(path, " > "), label: frame.Label}
				if spans[key] == nil {
					spans[key] = map[int]bool{}
				}
				spans[key][frame.Start] = true
			}
			path = append(path, frame.Label)
		}
	}

	for _, tc := range report.Tests {
		record(tc.Scope)
	}
	for _, bucket := range [][]extract.HookCase{
		report.Hooks.Before, report.Hooks.BeforeEach, report.Hooks.After, report.Hooks.AfterEach,
	} {
		for _, hc := range bucket {
			record(hc.Scope)
		}
	}

	var findings []Finding
	for key, starts := range spans {
		if len(starts) < 2 {
			continue
		}
		for start := range starts {
			findings = append(findings, Finding{
				Rule:    "duplicate-group",
				File:    file,
				Message: fmt.Sprintf("duplicate group label %q", key.label),
				Offset:  start,
			})
		}
	}
	return findings
}

// checkAnnotationMisuse surfaces the deferred diagnostics embedded in call
// sites (misused api configuration properties).
func checkAnnotationMisuse(file string, report *extract.FileReport) []Finding {
	var findings []Finding

	fromCalls := func(calls []extract.CallSite) {
		for _, call := range calls {
			for _, derr := range call.Errors {
				findings = append(findings, Finding{
					Rule:    "annotation-misuse",
					File:    file,
					Message: derr.Message,
					Offset:  derr.Location,
				})
			}
		}
	}

	for _, fn := range report.Functions {
		fromCalls(fn.Calls)
	}
	for _, tc := range report.Tests {
		fromCalls(tc.Calls)
	}
	for _, bucket := range [][]extract.HookCase{
		report.Hooks.Before, report.Hooks.BeforeEach, report.Hooks.After, report.Hooks.AfterEach,
	} {
		for _, hc := range bucket {
			fromCalls(hc.Calls)
		}
	}

	return findings
}
