package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// newTypeScriptParser creates a tree-sitter parser configured for TypeScript.
func newTypeScriptParser() *sitter.Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())
	return parser
}

// newTSXParser creates a tree-sitter parser configured for TSX.
func newTSXParser() *sitter.Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(tsx.GetLanguage())
	return parser
}

// newJavaScriptParser creates a tree-sitter parser configured for JavaScript.
func newJavaScriptParser() *sitter.Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	return parser
}
