package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ResolveChain turns a call expression's callee into its canonical dotted
// name: identifiers contribute their name, member accesses append ".prop",
// a call used as the receiver of a further access contributes a literal "()"
// marker (so api().foo is distinguishable from api.foo), and a bare this
// reference contributes the token "this".
//
// The second result is false when the callee uses a shape outside the
// supported grammar subset: computed (bracket) member access, or a chain
// rooted in anything other than an identifier or this (array, object, string
// or template literals, new expressions, parenthesized expressions, ...).
// Unsupported shapes abort the whole resolution; the caller skips the call
// site silently.
func (e *Extractor) ResolveChain(node *sitter.Node) (string, bool) {
	if node == nil {
		return "", false
	}

	switch node.Type() {
	case "identifier":
		return e.text(node), true

	case "this":
		return "this", true

	case "member_expression":
		property := node.ChildByFieldName("property")
		if property == nil || property.Type() != "property_identifier" {
			// Computed access (a[b]) or a private property; unsupported.
			return "", false
		}
		object := node.ChildByFieldName("object")
		base, ok := e.ResolveChain(object)
		if !ok {
			return "", false
		}
		return base + "." + e.text(property), true

	case "call_expression":
		callee := node.ChildByFieldName("function")
		base, ok := e.ResolveChain(callee)
		if !ok {
			return "", false
		}
		return base + "()", true

	default:
		return "", false
	}
}
