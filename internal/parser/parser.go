// Package parser provides tree-sitter based parsing for JavaScript and
// TypeScript test sources.
//
// The parser package wraps the tree-sitter library to turn UTF-8 source text
// into an immutable syntax tree. Everything downstream (the extract package)
// operates on the tree produced here and never re-reads source text.
package parser

import (
	"bytes"
	"context"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language represents a supported source language.
type Language string

const (
	// JavaScript represents plain JavaScript sources (.js, .jsx, .mjs, .cjs).
	JavaScript Language = "javascript"
	// TypeScript represents TypeScript sources (.ts).
	TypeScript Language = "typescript"
	// TSX represents TypeScript sources with JSX (.tsx).
	TSX Language = "tsx"
)

// Parser wraps tree-sitter for source parsing.
type Parser struct {
	parser *sitter.Parser
	lang   Language
}

// ParseResult contains the parsed syntax tree and metadata.
type ParseResult struct {
	// Tree is the complete tree-sitter parse tree.
	Tree *sitter.Tree
	// Root is the root node of the tree.
	Root *sitter.Node
	// Source is the original source code that was parsed.
	Source []byte
	// FilePath is the path to the source file (empty for in-memory parsing).
	FilePath string
	// Language is the language of the source.
	Language Language
}

// NewParser creates a parser for the given language.
// Returns an UnsupportedLanguageError if the language is not supported.
func NewParser(lang Language) (*Parser, error) {
	var p *sitter.Parser

	switch lang {
	case JavaScript:
		p = newJavaScriptParser()
	case TypeScript:
		p = newTypeScriptParser()
	case TSX:
		p = newTSXParser()
	default:
		return nil, &UnsupportedLanguageError{Language: string(lang)}
	}

	return &Parser{
		parser: p,
		lang:   lang,
	}, nil
}

// Parse parses source code and returns the syntax tree.
// Sources beginning with an interpreter directive line ("#!") are not module
// sources; Parse reports ErrInterpreterDirective for them so callers can skip
// the file without producing records.
func (p *Parser) Parse(source []byte) (*ParseResult, error) {
	if HasInterpreterDirective(source) {
		return nil, ErrInterpreterDirective
	}

	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, &ParseError{
			Message: err.Error(),
		}
	}

	return &ParseResult{
		Tree:     tree,
		Root:     tree.RootNode(),
		Source:   source,
		Language: p.lang,
	}, nil
}

// ParseFile parses a file from disk.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}

	result, err := p.Parse(source)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = path
		}
		return nil, err
	}

	result.FilePath = path
	return result, nil
}

// Language returns the language this parser is configured for.
func (p *Parser) Language() Language {
	return p.lang
}

// Close releases parser resources.
// After calling Close, the parser should not be used.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
		p.parser = nil
	}
}

// Close releases the parse tree resources.
func (r *ParseResult) Close() {
	if r.Tree != nil {
		r.Tree.Close()
		r.Tree = nil
		r.Root = nil
	}
}

// HasErrors returns true if the parse tree contains syntax errors.
func (r *ParseResult) HasErrors() bool {
	if r.Root == nil {
		return false
	}
	return r.Root.HasError()
}

// WalkNodes traverses the tree depth-first, calling the visitor function
// for each node. If the visitor returns false, children of that node are
// not visited.
func (r *ParseResult) WalkNodes(visitor func(*sitter.Node) bool) {
	if r.Root == nil {
		return
	}
	WalkNode(r.Root, visitor)
}

// WalkNode traverses a subtree depth-first. If the visitor returns false for
// a node, that node's children are skipped but traversal continues elsewhere.
func WalkNode(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if !visitor(node) {
		return
	}
	for i := uint32(0); i < node.ChildCount(); i++ {
		WalkNode(node.Child(int(i)), visitor)
	}
}

// FindNodes returns all nodes matching the given predicate.
func (r *ParseResult) FindNodes(predicate func(*sitter.Node) bool) []*sitter.Node {
	var nodes []*sitter.Node
	r.WalkNodes(func(node *sitter.Node) bool {
		if predicate(node) {
			nodes = append(nodes, node)
		}
		return true
	})
	return nodes
}

// FindNodesByType returns all nodes of the specified type.
func (r *ParseResult) FindNodesByType(nodeType string) []*sitter.Node {
	return r.FindNodes(func(node *sitter.Node) bool {
		return node.Type() == nodeType
	})
}

// NodeText returns the source text for a node.
func (r *ParseResult) NodeText(node *sitter.Node) string {
	if node == nil || r.Source == nil {
		return ""
	}
	return node.Content(r.Source)
}

// HasInterpreterDirective reports whether source begins with a "#!" line.
func HasInterpreterDirective(source []byte) bool {
	return bytes.HasPrefix(source, []byte("#!"))
}

// LanguageFromExtension returns the language for a file extension.
// Returns empty string if the extension is not recognized.
func LanguageFromExtension(ext string) Language {
	switch ext {
	case ".ts":
		return TypeScript
	case ".tsx":
		return TSX
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript
	default:
		return ""
	}
}

// SupportedExtensions returns all file extensions supported for parsing.
func SupportedExtensions() []string {
	return []string{
		".ts", ".tsx",
		".js", ".jsx", ".mjs", ".cjs",
	}
}
