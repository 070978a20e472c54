package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ExtractTestsAndHooks classifies qualifying call expressions in a single
// pass over the whole tree: it-family calls with at least two arguments
// become test cases, and the four lifecycle hook names with exactly one
// function-literal argument become hooks. Anything else with a matching name
// is a false positive and is dropped without a record.
func (e *Extractor) ExtractTestsAndHooks() ([]TestCase, Hooks) {
	tests := []TestCase{}
	hooks := Hooks{
		Before:     []HookCase{},
		BeforeEach: []HookCase{},
		After:      []HookCase{},
		AfterEach:  []HookCase{},
	}

	e.result.WalkNodes(func(node *sitter.Node) bool {
		if node.Type() != "call_expression" {
			return true
		}
		name, ok := e.ResolveChain(node.ChildByFieldName("function"))
		if !ok {
			return true
		}

		switch {
		case isTestName(name):
			if tc, ok := e.testCase(node, name); ok {
				tests = append(tests, tc)
			}

		default:
			bucket, isHook := hookBucket(name)
			if !isHook {
				return true
			}
			hc, ok := e.hookCase(node)
			if !ok {
				return true
			}
			switch bucket {
			case "beforeAll":
				hooks.Before = append(hooks.Before, hc)
			case "beforeEach":
				hooks.BeforeEach = append(hooks.BeforeEach, hc)
			case "afterAll":
				hooks.After = append(hooks.After, hc)
			case "afterEach":
				hooks.AfterEach = append(hooks.AfterEach, hc)
			}
		}

		return true
	})

	return tests, hooks
}

// testCase builds the record for one it-family call. The second argument is
// the test function; calls without one are skipped.
func (e *Extractor) testCase(call *sitter.Node, name string) (TestCase, bool) {
	args := callArguments(call)
	if len(args) < 2 {
		return TestCase{}, false
	}
	fn := args[1]
	if !isFunctionLiteral(fn) {
		return TestCase{}, false
	}
	body := functionBody(fn)
	if body == nil {
		return TestCase{}, false
	}

	frames := e.ScopeFrames(call)
	span := e.span(call)
	bodySpan := e.span(body)

	tc := TestCase{
		Scope:             frames,
		Start:             span.Start,
		End:               span.End,
		FunctionBodyStart: bodySpan.Start,
		FunctionBodyEnd:   bodySpan.End,
		IsAsync:           hasAsyncModifier(fn),
		Calls:             e.CollectCalls(body),
		TryBlocks:         e.CollectTryBlocks(body),
	}

	// Aggregate modifiers: OR over enclosing frames plus the site's own
	// suffix.
	tc.Skip, tc.Only, tc.IOSOnly, tc.AndroidOnly = nameModifiers(name)
	for _, frame := range frames {
		tc.Skip = tc.Skip || frame.Skip
		tc.Only = tc.Only || frame.Only
		tc.IOSOnly = tc.IOSOnly || frame.IOSOnly
		tc.AndroidOnly = tc.AndroidOnly || frame.AndroidOnly
	}

	return tc, true
}

// hookCase builds the record for one lifecycle hook call. Hooks take exactly
// one function-literal argument; any other arity or argument shape is a
// false positive. A hook whose ancestor scope already includes a test frame
// was declared inside a single test rather than a group and is excluded.
func (e *Extractor) hookCase(call *sitter.Node) (HookCase, bool) {
	args := callArguments(call)
	if len(args) != 1 || !isFunctionLiteral(args[0]) {
		return HookCase{}, false
	}
	fn := args[0]
	body := functionBody(fn)
	if body == nil {
		return HookCase{}, false
	}

	frames := e.ScopeFrames(call)
	for _, frame := range frames {
		if frame.Kind.IsTest() {
			return HookCase{}, false
		}
	}

	span := e.span(call)
	bodySpan := e.span(body)

	hc := HookCase{
		Scope:             frames,
		Start:             span.Start,
		End:               span.End,
		FunctionBodyStart: bodySpan.Start,
		FunctionBodyEnd:   bodySpan.End,
		IsAsync:           hasAsyncModifier(fn),
		Calls:             e.CollectCalls(body),
		TryBlocks:         e.CollectTryBlocks(body),
	}

	for _, frame := range frames {
		hc.Skip = hc.Skip || frame.Skip
		hc.Only = hc.Only || frame.Only
		hc.IOSOnly = hc.IOSOnly || frame.IOSOnly
		hc.AndroidOnly = hc.AndroidOnly || frame.AndroidOnly
	}

	return hc, true
}
