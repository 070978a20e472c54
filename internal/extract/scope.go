package extract

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// isTestName reports whether a resolved chain name belongs to the test
// construct family (it, it.skip, it.only, it.ios, ...).
func isTestName(name string) bool {
	return name == "it" || strings.HasPrefix(name, "it.")
}

// isGroupName reports whether a resolved chain name belongs to the group
// construct family (describe, describe.skip, ...).
func isGroupName(name string) bool {
	return name == "describe" || strings.HasPrefix(name, "describe.")
}

// hookBucket maps a resolved chain name to its lifecycle hook bucket.
// The second result is false for non-hook names. Hooks carry no modifier
// suffixes; only the four exact names qualify.
func hookBucket(name string) (string, bool) {
	switch name {
	case "beforeAll", "beforeEach", "afterAll", "afterEach":
		return name, true
	}
	return "", false
}

// nameModifiers derives modifier flags from the resolved name's dotted
// suffix. There is no call-argument inspection for these.
func nameModifiers(name string) (skip, only, ios, android bool) {
	skip = strings.HasSuffix(name, ".skip")
	only = strings.HasSuffix(name, ".only")
	ios = strings.HasSuffix(name, ".ios") || strings.HasSuffix(name, ".iosOnly")
	android = strings.HasSuffix(name, ".android") || strings.HasSuffix(name, ".androidOnly")
	return skip, only, ios, android
}

// ScopeFrames reconstructs the ordered list of enclosing test-grouping
// frames around a call site by walking its ancestor chain and keeping the
// calls whose resolved name is in the it/describe family. Frames are
// returned outermost-first.
func (e *Extractor) ScopeFrames(site *sitter.Node) []ScopeFrame {
	frames := []ScopeFrame{}

	for node := site.Parent(); node != nil; node = node.Parent() {
		if node.Type() != "call_expression" {
			continue
		}
		name, ok := e.ResolveChain(node.ChildByFieldName("function"))
		if !ok {
			continue
		}
		if !isTestName(name) && !isGroupName(name) {
			continue
		}
		frames = append(frames, e.scopeFrame(node, name))
	}

	// Ancestors were collected innermost-first.
	for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
		frames[i], frames[j] = frames[j], frames[i]
	}

	return frames
}

// scopeFrame builds the frame record for one enclosing it/describe call.
func (e *Extractor) scopeFrame(call *sitter.Node, name string) ScopeFrame {
	span := e.span(call)
	skip, only, ios, android := nameModifiers(name)

	kind := FrameGroup
	if isTestName(name) {
		kind = FrameTest
	}
	switch {
	case only:
		kind += ".only"
	case skip:
		kind += ".skip"
	}

	frame := ScopeFrame{
		Kind:        kind,
		Start:       span.Start,
		End:         span.End,
		Skip:        skip,
		Only:        only,
		IOSOnly:     ios,
		AndroidOnly: android,
	}

	if args := callArguments(call); len(args) > 0 {
		frame.Label = e.frameLabel(args[0])
	}

	return frame
}

// frameLabel infers the displayed label from a frame's first argument.
// String literals yield their value; template literals yield their text with
// ${name} placeholders for interpolations (or ${expression} when the
// interpolation is not a bare identifier); a bare identifier yields ${name};
// anything else yields an explicit unparseable placeholder carrying the node
// kind.
func (e *Extractor) frameLabel(arg *sitter.Node) string {
	switch arg.Type() {
	case "string":
		return stringLiteralValue(e.text(arg))

	case "template_string":
		var label strings.Builder
		for i := uint32(0); i < arg.ChildCount(); i++ {
			child := arg.Child(int(i))
			switch child.Type() {
			case "`":
				continue
			case "template_substitution":
				expr := child.NamedChild(0)
				if expr != nil && expr.Type() == "identifier" {
					fmt.Fprintf(&label, "${%s}", e.text(expr))
				} else {
					label.WriteString("${expression}")
				}
			default:
				label.WriteString(e.text(child))
			}
		}
		return label.String()

	case "identifier":
		return fmt.Sprintf("${%s}", e.text(arg))

	default:
		return fmt.Sprintf("<unparseable:%s>", arg.Type())
	}
}
