package rules

import (
	"strings"
	"testing"

	"github.com/hargabyte/specmap/internal/extract"
	"github.com/hargabyte/specmap/internal/output"
)

func singleFileReport(fr *extract.FileReport) output.Report {
	return output.Report{"suite.test.js": fr}
}

func TestRuleNames(t *testing.T) {
	names := RuleNames()
	want := []string{"annotation-misuse", "duplicate-group", "empty-test", "focused-test"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("RuleNames() = %v, want %v", names, want)
	}
}

func TestFocusedTestRule(t *testing.T) {
	report := singleFileReport(&extract.FileReport{
		Tests: []extract.TestCase{
			{Start: 10, Only: true, Calls: []extract.CallSite{{Name: "go"}}},
			{Start: 50, Calls: []extract.CallSite{{Name: "go"}}},
		},
	})

	findings := Run(report, nil)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %v", findings)
	}
	f := findings[0]
	if f.Rule != "focused-test" || f.Offset != 10 || f.File != "suite.test.js" {
		t.Errorf("finding = %+v", f)
	}
}

func TestEmptyTestRule(t *testing.T) {
	report := singleFileReport(&extract.FileReport{
		Tests: []extract.TestCase{
			{Start: 10, Calls: []extract.CallSite{}},
			{Start: 50, Calls: []extract.CallSite{{Name: "go"}}},
		},
	})

	findings := Run(report, nil)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %v", findings)
	}
	if findings[0].Rule != "empty-test" || findings[0].Offset != 10 {
		t.Errorf("finding = %+v", findings[0])
	}
}

func TestDuplicateGroupRule(t *testing.T) {
	// Two distinct describe('Login') blocks at the top level, seen through
	// the scopes of their tests.
	loginA := extract.ScopeFrame{Kind: extract.FrameGroup, Label: "Login", Start: 0, End: 100}
	loginB := extract.ScopeFrame{Kind: extract.FrameGroup, Label: "Login", Start: 200, End: 300}

	report := singleFileReport(&extract.FileReport{
		Tests: []extract.TestCase{
			{Scope: []extract.ScopeFrame{loginA}, Start: 20, Calls: []extract.CallSite{{Name: "go"}}},
			{Scope: []extract.ScopeFrame{loginB}, Start: 220, Calls: []extract.CallSite{{Name: "go"}}},
		},
	})

	findings := Run(report, nil)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %v", findings)
	}
	for _, f := range findings {
		if f.Rule != "duplicate-group" {
			t.Errorf("rule = %q", f.Rule)
		}
		if !strings.Contains(f.Message, `"Login"`) {
			t.Errorf("message = %q", f.Message)
		}
	}
}

func TestDuplicateGroupDifferentParentsAllowed(t *testing.T) {
	// The same label under different parents is fine.
	report := singleFileReport(&extract.FileReport{
		Tests: []extract.TestCase{
			{
				Scope: []extract.ScopeFrame{
					{Kind: extract.FrameGroup, Label: "iOS", Start: 0},
					{Kind: extract.FrameGroup, Label: "edge cases", Start: 10},
				},
				Start: 20,
				Calls: []extract.CallSite{{Name: "go"}},
			},
			{
				Scope: []extract.ScopeFrame{
					{Kind: extract.FrameGroup, Label: "Android", Start: 200},
					{Kind: extract.FrameGroup, Label: "edge cases", Start: 210},
				},
				Start: 220,
				Calls: []extract.CallSite{{Name: "go"}},
			},
		},
	})

	if findings := Run(report, nil); len(findings) != 0 {
		t.Errorf("expected no findings, got %v", findings)
	}
}

func TestDuplicateGroupSameFrameNotDuplicate(t *testing.T) {
	// Many tests under one describe share one frame span; that is not a
	// duplicate.
	login := extract.ScopeFrame{Kind: extract.FrameGroup, Label: "Login", Start: 0, End: 100}

	report := singleFileReport(&extract.FileReport{
		Tests: []extract.TestCase{
			{Scope: []extract.ScopeFrame{login}, Start: 20, Calls: []extract.CallSite{{Name: "go"}}},
			{Scope: []extract.ScopeFrame{login}, Start: 60, Calls: []extract.CallSite{{Name: "go"}}},
		},
	})

	if findings := Run(report, nil); len(findings) != 0 {
		t.Errorf("expected no findings, got %v", findings)
	}
}

func TestAnnotationMisuseRule(t *testing.T) {
	report := singleFileReport(&extract.FileReport{
		Tests: []extract.TestCase{
			{
				Start: 10,
				Calls: []extract.CallSite{
					{
						Name: "api.submit",
						Errors: []extract.DeferredError{
							{Message: `api property "sync" expected a literal boolean`, Location: 42},
						},
					},
				},
			},
		},
		Hooks: extract.Hooks{
			BeforeEach: []extract.HookCase{
				{
					Calls: []extract.CallSite{
						{
							Name: "api.reset",
							Errors: []extract.DeferredError{
								{Message: `api property "waitAfter" expected a literal boolean`, Location: 7},
							},
						},
					},
				},
			},
		},
	})

	findings := Run(report, nil)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %v", findings)
	}
	// Ordered by offset.
	if findings[0].Offset != 7 || findings[1].Offset != 42 {
		t.Errorf("offsets = %d, %d", findings[0].Offset, findings[1].Offset)
	}
	for _, f := range findings {
		if f.Rule != "annotation-misuse" {
			t.Errorf("rule = %q", f.Rule)
		}
	}
}

func TestDisabledRules(t *testing.T) {
	report := singleFileReport(&extract.FileReport{
		Tests: []extract.TestCase{
			{Start: 10, Only: true, Calls: []extract.CallSite{}},
		},
	})

	all := Run(report, nil)
	if len(all) != 2 {
		t.Fatalf("expected focused-test and empty-test, got %v", all)
	}

	remaining := Run(report, []string{"focused-test"})
	if len(remaining) != 1 || remaining[0].Rule != "empty-test" {
		t.Errorf("findings = %v", remaining)
	}

	if findings := Run(report, []string{"focused-test", "empty-test"}); len(findings) != 0 {
		t.Errorf("expected none, got %v", findings)
	}
}

func TestFindingsSortedAcrossFiles(t *testing.T) {
	report := output.Report{
		"b.test.js": &extract.FileReport{
			Tests: []extract.TestCase{{Start: 5, Calls: []extract.CallSite{}}},
		},
		"a.test.js": &extract.FileReport{
			Tests: []extract.TestCase{{Start: 9, Calls: []extract.CallSite{}}},
		},
	}

	findings := Run(report, nil)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %v", findings)
	}
	if findings[0].File != "a.test.js" || findings[1].File != "b.test.js" {
		t.Errorf("order = %s, %s", findings[0].File, findings[1].File)
	}
}
