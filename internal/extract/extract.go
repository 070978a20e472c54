package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/hargabyte/specmap/internal/parser"
	"github.com/hargabyte/specmap/internal/srcmap"
)

// Extractor derives a FileReport from one parsed source file.
//
// The extractor never mutates the syntax tree and holds no state across
// files; create a fresh one per file.
type Extractor struct {
	result *parser.ParseResult
	src    *srcmap.Index
}

// New creates an extractor for the given parse result. The srcmap index must
// have been built from the same source bytes the tree was parsed from.
func New(result *parser.ParseResult, src *srcmap.Index) *Extractor {
	return &Extractor{
		result: result,
		src:    src,
	}
}

// Extract runs the full extraction for the file: exported functions, test
// cases, and lifecycle hooks. The returned error, if any, is a
// *LimitationError and means extraction for the whole file was aborted.
func (e *Extractor) Extract() (*FileReport, error) {
	functions, err := e.ExtractExportedFunctions()
	if err != nil {
		return nil, err
	}

	tests, hooks := e.ExtractTestsAndHooks()

	return &FileReport{
		Functions: functions,
		Tests:     tests,
		Hooks:     hooks,
	}, nil
}

// span converts a node's byte span into a character-offset Span.
func (e *Extractor) span(node *sitter.Node) Span {
	return Span{
		Start: e.src.CharOffset(node.StartByte()),
		End:   e.src.CharOffset(node.EndByte()),
	}
}

// text returns the source text for a node.
func (e *Extractor) text(node *sitter.Node) string {
	return e.result.NodeText(node)
}

// isFunctionLiteral reports whether a node is a named or arrow function
// literal.
func isFunctionLiteral(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	switch node.Type() {
	case "arrow_function", "function_expression", "function", "generator_function":
		return true
	}
	return false
}

// hasAsyncModifier reports whether a function literal or declaration carries
// the async keyword.
func hasAsyncModifier(node *sitter.Node) bool {
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child.Type() == "async" {
			return true
		}
		// The async keyword precedes the parameter list; stop early.
		if child.Type() == "formal_parameters" || child.Type() == "statement_block" {
			break
		}
	}
	return false
}

// functionBody returns the body node of a function literal. For arrow
// functions with a concise expression body this is the expression itself.
func functionBody(fn *sitter.Node) *sitter.Node {
	return fn.ChildByFieldName("body")
}

// callArguments returns the argument expression nodes of a call, in order.
// Tagged template calls contribute their template string as the single
// argument. Comments inside the argument list are skipped.
func callArguments(call *sitter.Node) []*sitter.Node {
	argsNode := call.ChildByFieldName("arguments")
	if argsNode == nil {
		return nil
	}
	if argsNode.Type() == "template_string" {
		return []*sitter.Node{argsNode}
	}

	var args []*sitter.Node
	for i := 0; i < int(argsNode.NamedChildCount()); i++ {
		child := argsNode.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		args = append(args, child)
	}
	return args
}
