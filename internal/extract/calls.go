package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/hargabyte/specmap/internal/parser"
)

// CollectCalls returns every recognized call site within a function body
// subtree. The walk does not stop at nested function boundaries: a call
// inside a callback passed to another call is still reported as a call of
// the outer function, since the outer function lexically contains it.
//
// Calls whose chain cannot be resolved, and bare calls to api (which are
// receivers absorbed by their child call's annotation), are skipped silently.
func (e *Extractor) CollectCalls(body *sitter.Node) []CallSite {
	calls := []CallSite{}
	if body == nil {
		return calls
	}

	parser.WalkNode(body, func(node *sitter.Node) bool {
		if node.Type() != "call_expression" {
			return true
		}
		if site, ok := e.callSite(node); ok {
			calls = append(calls, site)
		}
		return true
	})

	return calls
}

// callSite builds the record for one call expression.
func (e *Extractor) callSite(call *sitter.Node) (CallSite, bool) {
	callee := call.ChildByFieldName("function")
	name, ok := e.ResolveChain(callee)
	if !ok {
		return CallSite{}, false
	}
	if name == "api" {
		return CallSite{}, false
	}

	callSpan := e.span(call)
	site := CallSite{
		Name:      name,
		Start:     callSpan.Start,
		End:       callSpan.End,
		RootStart: callSpan.Start,
		Arguments: []Argument{},
	}

	// In a chain, Start points at the specific call segment while RootStart
	// stays at the chain's origin.
	if callee.Type() == "member_expression" {
		if property := callee.ChildByFieldName("property"); property != nil {
			site.Start = e.span(property).Start
		}
	}

	if parent := call.Parent(); parent != nil && parent.Type() == "await_expression" {
		site.IsAwaited = true
	}

	for i, arg := range callArguments(call) {
		argSpan := e.span(arg)
		site.Arguments = append(site.Arguments, Argument{
			Kind:  arg.Type(),
			Start: argSpan.Start,
			End:   argSpan.End,
		})

		if value, ok := e.EvalLiteral(arg); ok {
			if site.LiteralArguments == nil {
				site.LiteralArguments = make(map[int]any)
			}
			site.LiteralArguments[i] = value
		}
	}

	e.applyAPIAnnotation(call, &site)

	return site, true
}

// CollectTryBlocks returns the span of each try statement within a function
// body subtree, including those inside nested function literals, symmetric
// with call collection.
func (e *Extractor) CollectTryBlocks(body *sitter.Node) []Span {
	blocks := []Span{}
	if body == nil {
		return blocks
	}

	parser.WalkNode(body, func(node *sitter.Node) bool {
		if node.Type() == "try_statement" {
			blocks = append(blocks, e.span(node))
		}
		return true
	})

	return blocks
}
