// Package php implements the SymbolExtractor's PHP grammar on top of the
// shared sitterbase container-stack walk.
package php

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	phpsitter "github.com/smacker/go-tree-sitter/php"

	"github.com/oxhq/archlens/internal/extractor"
	"github.com/oxhq/archlens/internal/extractor/lang/sitterbase"
	"github.com/oxhq/archlens/internal/model"
)

// Extractor implements extractor.LanguageExtractor for PHP source.
type Extractor struct{}

// New returns a PHP LanguageExtractor.
func New() extractor.LanguageExtractor { return Extractor{} }

func (Extractor) Language() string     { return "php" }
func (Extractor) Extensions() []string { return []string{".php"} }

func (e Extractor) Extract(ctx context.Context, file model.FileRecord, src []byte) (extractor.ExtractResult, error) {
	symbols, lines, err := sitterbase.Extract(ctx, grammar{}, file, src)
	if err != nil {
		return extractor.ExtractResult{}, err
	}
	return extractor.ExtractResult{Symbols: symbols, LineCount: lines}, nil
}

type grammar struct{}

func (grammar) Language() string                { return "php" }
func (grammar) Extensions() []string             { return []string{".php"} }
func (grammar) SitterLanguage() *sitter.Language { return phpsitter.GetLanguage() }

func (grammar) Kind(nodeType string) (model.SymbolKind, bool) {
	switch nodeType {
	case "class_declaration":
		return model.KindClass, true
	case "interface_declaration":
		return model.KindInterface, true
	case "method_declaration", "function_definition":
		return model.KindMethod, true
	case "property_declaration":
		return model.KindProperty, true
	default:
		return "", false
	}
}

func (grammar) IsContainer(kind model.SymbolKind) bool {
	return kind == model.KindClass || kind == model.KindInterface
}

func (grammar) Name(node *sitter.Node, src []byte) string {
	if n := node.ChildByFieldName("name"); n != nil {
		return n.Content(src)
	}
	return ""
}

func (grammar) Modifiers(node *sitter.Node, src []byte) []string {
	var out []string
	for i := 0; i < int(node.ChildCount()); i++ {
		switch node.Child(i).Type() {
		case "visibility_modifier":
			out = append(out, node.Child(i).Content(src))
		}
	}
	return out
}

func (grammar) BaseTypes(node *sitter.Node, src []byte) []string {
	if node.Type() != "class_declaration" {
		return nil
	}
	var out []string
	if b := node.ChildByFieldName("base_clause"); b != nil {
		out = append(out, b.Content(src))
	}
	if i := node.ChildByFieldName("interfaces"); i != nil {
		out = append(out, i.Content(src))
	}
	return out
}

func (grammar) Attributes(node *sitter.Node, src []byte) []string { return nil }

func (grammar) Parameters(node *sitter.Node, src []byte) []string {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(params.ChildCount()); i++ {
		p := params.Child(i)
		if p.Type() != "simple_parameter" {
			continue
		}
		if n := p.ChildByFieldName("name"); n != nil {
			out = append(out, n.Content(src))
		}
	}
	return out
}

func (grammar) DefaultVisibility(kind model.SymbolKind, topLevel bool) model.Visibility {
	return model.VisibilityPublic
}

func (grammar) FileNamespace(root *sitter.Node, src []byte) string {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Type() == "namespace_definition" {
			if n := child.ChildByFieldName("name"); n != nil {
				return n.Content(src)
			}
		}
	}
	return ""
}
