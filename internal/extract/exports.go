package extract

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ExtractExportedFunctions recognizes the exported-function idioms against
// the file's top-level statement list:
//
//  1. export function NAME() {...}
//  2. export const NAME = () => {...}
//  3. const NAME = () => {...} paired with export default NAME;
//  4. function NAME() {...} paired with export default NAME;
//
// Idioms 3 and 4 are resolved via a pre-pass that records the identifier of
// a default export before scanning declarations. A multi-declarator const
// statement that would otherwise match idiom 2 or 3 is a deliberate refusal
// to guess which declarator was intended: extraction for the whole file
// aborts with a LimitationError at the offending declarator.
func (e *Extractor) ExtractExportedFunctions() ([]ExportedFunction, error) {
	functions := []ExportedFunction{}
	root := e.result.Root
	if root == nil {
		return functions, nil
	}

	defaultName, defaultSpan, hasDefault := e.findDefaultExport(root)

	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)

		switch stmt.Type() {
		case "export_statement":
			decl := stmt.ChildByFieldName("declaration")
			if decl == nil {
				continue
			}
			stmtSpan := e.span(stmt)
			switch decl.Type() {
			case "function_declaration":
				if fn, ok := e.declaredFunction(decl, stmtSpan, stmtSpan); ok {
					functions = append(functions, fn)
				}
			case "lexical_declaration":
				fn, ok, err := e.constArrowFunction(decl, stmtSpan, stmtSpan, "")
				if err != nil {
					return nil, err
				}
				if ok {
					functions = append(functions, fn)
				}
			}

		case "lexical_declaration":
			if !hasDefault {
				continue
			}
			fn, ok, err := e.constArrowFunction(stmt, e.span(stmt), defaultSpan, defaultName)
			if err != nil {
				return nil, err
			}
			if ok {
				functions = append(functions, fn)
			}

		case "function_declaration":
			if !hasDefault {
				continue
			}
			nameNode := stmt.ChildByFieldName("name")
			if nameNode == nil || e.text(nameNode) != defaultName {
				continue
			}
			if fn, ok := e.declaredFunction(stmt, e.span(stmt), defaultSpan); ok {
				functions = append(functions, fn)
			}
		}
	}

	return functions, nil
}

// findDefaultExport scans top-level statements for `export default NAME;`
// where NAME is a plain identifier.
func (e *Extractor) findDefaultExport(root *sitter.Node) (string, Span, bool) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() != "export_statement" {
			continue
		}
		value := stmt.ChildByFieldName("value")
		if value == nil || value.Type() != "identifier" {
			continue
		}
		return e.text(value), e.span(stmt), true
	}
	return "", Span{}, false
}

// declaredFunction builds the record for a function declaration (idioms 1
// and 4).
func (e *Extractor) declaredFunction(decl *sitter.Node, stmtSpan, exportSpan Span) (ExportedFunction, bool) {
	nameNode := decl.ChildByFieldName("name")
	body := decl.ChildByFieldName("body")
	if nameNode == nil || body == nil {
		return ExportedFunction{}, false
	}

	bodySpan := e.span(body)
	return ExportedFunction{
		Name:              e.text(nameNode),
		Start:             stmtSpan.Start,
		End:               stmtSpan.End,
		ExportStart:       exportSpan.Start,
		ExportEnd:         exportSpan.End,
		FunctionBodyStart: bodySpan.Start,
		FunctionBodyEnd:   bodySpan.End,
		IsAsync:           hasAsyncModifier(decl),
		Calls:             e.CollectCalls(body),
	}, true
}

// constArrowFunction builds the record for a const-declared arrow function
// (idioms 2 and 3). requiredName is empty for exported declarations; for
// default-export pairing it must match the declared name.
//
// A statement with more than one declarator where any declarator's
// initializer is an arrow function is fatal when the statement would
// otherwise match: the extractor refuses to guess which declarator was
// intended.
func (e *Extractor) constArrowFunction(decl *sitter.Node, stmtSpan, exportSpan Span, requiredName string) (ExportedFunction, bool, error) {
	// Only const declarations qualify.
	if first := decl.Child(0); first == nil || first.Type() != "const" {
		return ExportedFunction{}, false, nil
	}

	var declarators []*sitter.Node
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		if child.Type() == "variable_declarator" {
			declarators = append(declarators, child)
		}
	}

	var arrowDeclarator, arrow, nameNode *sitter.Node
	for _, d := range declarators {
		value := d.ChildByFieldName("value")
		name := d.ChildByFieldName("name")
		if value == nil || value.Type() != "arrow_function" {
			continue
		}
		if name == nil || name.Type() != "identifier" {
			continue
		}
		if requiredName != "" && e.text(name) != requiredName {
			continue
		}
		arrowDeclarator, arrow, nameNode = d, value, name
		break
	}
	if arrowDeclarator == nil {
		return ExportedFunction{}, false, nil
	}

	if len(declarators) > 1 {
		return ExportedFunction{}, false, &LimitationError{
			Message: "multi-declarator statement contains a function; split it into separate declarations",
			Offset:  e.span(arrowDeclarator).Start,
		}
	}

	body := functionBody(arrow)
	if body == nil {
		return ExportedFunction{}, false, nil
	}

	bodySpan := e.span(body)
	return ExportedFunction{
		Name:              e.text(nameNode),
		Start:             stmtSpan.Start,
		End:               stmtSpan.End,
		ExportStart:       exportSpan.Start,
		ExportEnd:         exportSpan.End,
		FunctionBodyStart: bodySpan.Start,
		FunctionBodyEnd:   bodySpan.End,
		IsAsync:           hasAsyncModifier(arrow),
		Calls:             e.CollectCalls(body),
	}, true, nil
}
