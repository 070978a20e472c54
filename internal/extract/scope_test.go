package extract

import (
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/hargabyte/specmap/internal/parser"
)

// probeCall locates the call to probe() planted inside a test source.
func probeCall(t *testing.T, e *Extractor) *sitter.Node {
	t.Helper()
	for _, call := range e.result.FindNodesByType("call_expression") {
		callee := call.ChildByFieldName("function")
		if callee != nil && callee.Type() == "identifier" && e.text(callee) == "probe" {
			return call
		}
	}
	t.Fatalf("no probe() call in source")
	return nil
}

func TestScopeFramesNestingOrder(t *testing.T) {
	source := `
describe('outer', () => {
	describe('inner', () => {
		it('does the thing', () => {
			probe();
		});
	});
});
`
	e := setupExtractor(t, parser.JavaScript, source)
	frames := e.ScopeFrames(probeCall(t, e))

	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}

	labels := []string{frames[0].Label, frames[1].Label, frames[2].Label}
	want := []string{"outer", "inner", "does the thing"}
	if strings.Join(labels, ",") != strings.Join(want, ",") {
		t.Errorf("labels = %v, want %v", labels, want)
	}

	if frames[0].Kind != FrameGroup || frames[1].Kind != FrameGroup {
		t.Errorf("expected group frames, got %q, %q", frames[0].Kind, frames[1].Kind)
	}
	if frames[2].Kind != FrameTest {
		t.Errorf("expected test frame, got %q", frames[2].Kind)
	}

	if frames[0].Start != strings.Index(source, "describe('outer'") {
		t.Errorf("outer frame start = %d", frames[0].Start)
	}
}

func TestScopeFramesModifiers(t *testing.T) {
	source := `
describe.only('focused', () => {
	it.skip('skipped here', () => {
		probe();
	});
});
`
	e := setupExtractor(t, parser.JavaScript, source)
	frames := e.ScopeFrames(probeCall(t, e))

	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}

	group := frames[0]
	if group.Kind != FrameGroupOnly || !group.Only || group.Skip {
		t.Errorf("group frame = %+v, want only group", group)
	}

	test := frames[1]
	if test.Kind != FrameTestSkip || !test.Skip || test.Only {
		t.Errorf("test frame = %+v, want skipped test", test)
	}
}

func TestScopeFramesPlatformModifiers(t *testing.T) {
	tests := []struct {
		name    string
		call    string
		ios     bool
		android bool
	}{
		{"ios", "it.ios", true, false},
		{"iosOnly", "it.iosOnly", true, false},
		{"android", "it.android", false, true},
		{"androidOnly", "it.androidOnly", false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			source := tc.call + `('platform test', () => { probe(); });`
			e := setupExtractor(t, parser.JavaScript, source)
			frames := e.ScopeFrames(probeCall(t, e))

			if len(frames) != 1 {
				t.Fatalf("expected 1 frame, got %d", len(frames))
			}
			frame := frames[0]
			if frame.IOSOnly != tc.ios || frame.AndroidOnly != tc.android {
				t.Errorf("frame flags ios=%v android=%v, want ios=%v android=%v",
					frame.IOSOnly, frame.AndroidOnly, tc.ios, tc.android)
			}
			if frame.Kind != FrameTest {
				t.Errorf("platform suffix must not change the kind, got %q", frame.Kind)
			}
		})
	}
}

func TestScopeFramesIgnoreUnrelatedCalls(t *testing.T) {
	// Only it/describe family ancestors form frames; wrapping helpers and
	// IIFEs are transparent.
	source := `
describe('suite', () => {
	wrap(() => {
		(function () {
			it('nested deep', () => {
				probe();
			});
		})();
	});
});
`
	e := setupExtractor(t, parser.JavaScript, source)
	frames := e.ScopeFrames(probeCall(t, e))

	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[0].Label != "suite" || frames[1].Label != "nested deep" {
		t.Errorf("labels = %q, %q", frames[0].Label, frames[1].Label)
	}
}

func TestFrameLabels(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"plain string", `'simple'`, "simple"},
		{"double quoted", `"double"`, "double"},
		{"template no interpolation", "`plain template`", "plain template"},
		{"template identifier", "`case ${name} end`", "case ${name} end"},
		{"template expression", "`case ${obj.field}`", "case ${expression}"},
		{"bare identifier", `title`, "${title}"},
		{"number", `42`, "<unparseable:number>"},
		{"binary expression", `'a' + 'b'`, "<unparseable:binary_expression>"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			source := `describe(` + tc.label + `, () => { it('t', () => { probe(); }); });`
			e := setupExtractor(t, parser.JavaScript, source)
			frames := e.ScopeFrames(probeCall(t, e))

			if len(frames) != 2 {
				t.Fatalf("expected 2 frames, got %d", len(frames))
			}
			if frames[0].Label != tc.want {
				t.Errorf("label = %q, want %q", frames[0].Label, tc.want)
			}
		})
	}
}

func TestFrameKindIsTest(t *testing.T) {
	tests := []struct {
		kind FrameKind
		want bool
	}{
		{FrameTest, true},
		{FrameTestOnly, true},
		{FrameTestSkip, true},
		{FrameGroup, false},
		{FrameGroupOnly, false},
		{FrameGroupSkip, false},
	}
	for _, tc := range tests {
		if got := tc.kind.IsTest(); got != tc.want {
			t.Errorf("%q.IsTest() = %v, want %v", tc.kind, got, tc.want)
		}
	}
}
