// Package extract derives structured records of test cases, lifecycle hooks,
// exported functions, and the calls each of them makes from a parsed
// JavaScript/TypeScript syntax tree.
//
// All record types are created during a single traversal of one file's tree
// and are immutable afterwards. Offsets are 0-based character offsets into
// the source text the tree was built from, with End exclusive. Records hold
// no references back into the syntax tree.
package extract

// Span is a half-open [Start, End) character range in the source text.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Argument is a shallow description of one call argument: its syntactic
// kind tag and span, without deep content.
type Argument struct {
	Kind  string `json:"kind" yaml:"kind"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

// DeferredError is a non-fatal diagnostic collected during extraction and
// embedded in the output instead of being raised.
type DeferredError struct {
	Message  string `json:"message" yaml:"message"`
	Location int    `json:"location" yaml:"location"`
}

// CallSite describes one recognized call expression.
//
// Name is the canonical dotted chain name. RootStart is the span start of
// the outermost call in a chain, while Start points at the specific call
// segment (its member-access property, if any), so that in a chain like
// a.b().c() each recorded segment is distinguishable.
type CallSite struct {
	Name      string `json:"name" yaml:"name"`
	Start     int    `json:"start" yaml:"start"`
	End       int    `json:"end" yaml:"end"`
	RootStart int    `json:"rootStart" yaml:"rootStart"`
	IsAwaited bool   `json:"isAwaited,omitempty" yaml:"isAwaited,omitempty"`

	Arguments []Argument `json:"arguments" yaml:"arguments"`

	// LiteralArguments maps argument index to the statically evaluated value
	// for arguments that are fully literal. Present only when at least one
	// argument evaluates.
	LiteralArguments map[int]any `json:"literalArguments,omitempty" yaml:"literalArguments,omitempty"`

	// APISyncDisabled and APIWaitAfter are configuration flags extracted from
	// the api({...}).method(...) convention.
	APISyncDisabled bool `json:"apiSyncDisabled,omitempty" yaml:"apiSyncDisabled,omitempty"`
	APIWaitAfter    bool `json:"apiWaitAfter,omitempty" yaml:"apiWaitAfter,omitempty"`

	Errors []DeferredError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// FrameKind classifies a scope frame as a test or group construct, with the
// skip/only modifier folded in.
type FrameKind string

const (
	FrameTest      FrameKind = "test"
	FrameTestOnly  FrameKind = "test.only"
	FrameTestSkip  FrameKind = "test.skip"
	FrameGroup     FrameKind = "group"
	FrameGroupOnly FrameKind = "group.only"
	FrameGroupSkip FrameKind = "group.skip"
)

// IsTest reports whether the frame is a test construct (it family).
func (k FrameKind) IsTest() bool {
	return k == FrameTest || k == FrameTestOnly || k == FrameTestSkip
}

// ScopeFrame is one enclosing test-grouping construct around a call site.
type ScopeFrame struct {
	Kind  FrameKind `json:"kind" yaml:"kind"`
	Label string    `json:"label" yaml:"label"`
	Start int       `json:"start" yaml:"start"`
	End   int       `json:"end" yaml:"end"`

	Skip        bool `json:"skip,omitempty" yaml:"skip,omitempty"`
	Only        bool `json:"only,omitempty" yaml:"only,omitempty"`
	IOSOnly     bool `json:"iosOnly,omitempty" yaml:"iosOnly,omitempty"`
	AndroidOnly bool `json:"androidOnly,omitempty" yaml:"androidOnly,omitempty"`
}

// TestCase describes one test construct together with the calls its function
// body makes. Scope lists enclosing frames outermost-first. The aggregate
// modifier flags are the OR of all enclosing frames' flags plus the site's
// own modifier suffix; absence means false, never unknown.
type TestCase struct {
	Scope []ScopeFrame `json:"scope" yaml:"scope"`

	Start             int  `json:"start" yaml:"start"`
	End               int  `json:"end" yaml:"end"`
	FunctionBodyStart int  `json:"functionBodyStart" yaml:"functionBodyStart"`
	FunctionBodyEnd   int  `json:"functionBodyEnd" yaml:"functionBodyEnd"`
	IsAsync           bool `json:"isAsync,omitempty" yaml:"isAsync,omitempty"`

	Calls     []CallSite `json:"calls" yaml:"calls"`
	TryBlocks []Span     `json:"tryBlocks" yaml:"tryBlocks"`

	Skip        bool `json:"skip,omitempty" yaml:"skip,omitempty"`
	Only        bool `json:"only,omitempty" yaml:"only,omitempty"`
	IOSOnly     bool `json:"iosOnly,omitempty" yaml:"iosOnly,omitempty"`
	AndroidOnly bool `json:"androidOnly,omitempty" yaml:"androidOnly,omitempty"`
}

// HookCase describes one lifecycle hook registration. Hooks carry the same
// shape as test cases.
type HookCase = TestCase

// Hooks buckets a file's lifecycle hooks. The before/after keys correspond
// to beforeAll/afterAll calls in source.
type Hooks struct {
	Before     []HookCase `json:"before" yaml:"before"`
	BeforeEach []HookCase `json:"beforeEach" yaml:"beforeEach"`
	After      []HookCase `json:"after" yaml:"after"`
	AfterEach  []HookCase `json:"afterEach" yaml:"afterEach"`
}

// ExportedFunction describes one exported function and the calls its body
// makes. Start/End span the declaring statement; ExportStart/ExportEnd span
// the statement that exports it (the same statement when the function is
// declared and exported together).
type ExportedFunction struct {
	Name string `json:"name" yaml:"name"`

	Start             int  `json:"start" yaml:"start"`
	End               int  `json:"end" yaml:"end"`
	ExportStart       int  `json:"exportStart" yaml:"exportStart"`
	ExportEnd         int  `json:"exportEnd" yaml:"exportEnd"`
	FunctionBodyStart int  `json:"functionBodyStart" yaml:"functionBodyStart"`
	FunctionBodyEnd   int  `json:"functionBodyEnd" yaml:"functionBodyEnd"`
	IsAsync           bool `json:"isAsync,omitempty" yaml:"isAsync,omitempty"`

	Calls []CallSite `json:"calls" yaml:"calls"`
}

// FileReport is the full extraction result for one source file.
type FileReport struct {
	Functions []ExportedFunction `json:"functions" yaml:"functions"`
	Tests     []TestCase         `json:"tests" yaml:"tests"`
	Hooks     Hooks              `json:"hooks" yaml:"hooks"`
}
