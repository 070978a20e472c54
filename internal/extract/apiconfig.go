package extract

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// The api({...}).method(...) convention: a call whose receiver is itself a
// call to a zero/one-argument function literally named api. The receiver's
// sole mapping argument configures the call; the receiver call itself is
// never a call site of its own.

// apiAnnotationParts matches call against the convention and returns the
// receiver call node and the method property node.
func (e *Extractor) apiAnnotationParts(call *sitter.Node) (receiver, property *sitter.Node, ok bool) {
	callee := call.ChildByFieldName("function")
	if callee == nil || callee.Type() != "member_expression" {
		return nil, nil, false
	}

	property = callee.ChildByFieldName("property")
	if property == nil || property.Type() != "property_identifier" {
		return nil, nil, false
	}

	receiver = callee.ChildByFieldName("object")
	if receiver == nil || receiver.Type() != "call_expression" {
		return nil, nil, false
	}

	receiverCallee := receiver.ChildByFieldName("function")
	if receiverCallee == nil || receiverCallee.Type() != "identifier" || e.text(receiverCallee) != "api" {
		return nil, nil, false
	}

	if len(callArguments(receiver)) > 1 {
		return nil, nil, false
	}

	return receiver, property, true
}

// applyAPIAnnotation normalizes the site name to api.<method> and extracts
// the sync/waitAfter configuration flags from the receiver's mapping
// argument. A property present with a non-boolean-literal value yields a
// DeferredError at that value's location and leaves the flag unset;
// extraction continues.
func (e *Extractor) applyAPIAnnotation(call *sitter.Node, site *CallSite) {
	receiver, property, ok := e.apiAnnotationParts(call)
	if !ok {
		return
	}

	site.Name = "api." + e.text(property)

	args := callArguments(receiver)
	if len(args) != 1 || args[0].Type() != "object" {
		return
	}

	for i := 0; i < int(args[0].NamedChildCount()); i++ {
		pair := args[0].NamedChild(i)
		if pair.Type() != "pair" {
			continue
		}
		key, ok := e.propertyKeyName(pair.ChildByFieldName("key"))
		if !ok {
			continue
		}
		value := pair.ChildByFieldName("value")
		if value == nil {
			continue
		}

		switch key {
		case "sync":
			switch value.Type() {
			case "false":
				site.APISyncDisabled = true
			case "true":
				// Explicit default; nothing to record.
			default:
				site.Errors = append(site.Errors, e.booleanExpectedError(key, value))
			}
		case "waitAfter":
			switch value.Type() {
			case "true":
				site.APIWaitAfter = true
			case "false":
				// Explicit default; nothing to record.
			default:
				site.Errors = append(site.Errors, e.booleanExpectedError(key, value))
			}
		}
	}
}

// booleanExpectedError builds the deferred diagnostic for a misconfigured
// api property value.
func (e *Extractor) booleanExpectedError(key string, value *sitter.Node) DeferredError {
	return DeferredError{
		Message:  fmt.Sprintf("api property %q expected a literal boolean", key),
		Location: e.span(value).Start,
	}
}
