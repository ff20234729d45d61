// Package csharp implements the SymbolExtractor's flagship "statically
// typed language with a real parser" grammar (SPEC_FULL.md §4.2), grounded
// on the csharp target documented by the teacher's provider generator
// (cmd/morfx-provider-gen) and tree-sitter-c-sharp's published grammar.
package csharp

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	cssitter "github.com/smacker/go-tree-sitter/csharp"

	"github.com/oxhq/archlens/internal/extractor"
	"github.com/oxhq/archlens/internal/extractor/lang/sitterbase"
	"github.com/oxhq/archlens/internal/model"
)

// Extractor implements extractor.LanguageExtractor for C# source.
type Extractor struct{}

// New returns a C# LanguageExtractor.
func New() extractor.LanguageExtractor { return Extractor{} }

func (Extractor) Language() string     { return "csharp" }
func (Extractor) Extensions() []string { return []string{".cs"} }

func (e Extractor) Extract(ctx context.Context, file model.FileRecord, src []byte) (extractor.ExtractResult, error) {
	symbols, lines, err := sitterbase.Extract(ctx, grammar{}, file, src)
	if err != nil {
		return extractor.ExtractResult{}, err
	}
	return extractor.ExtractResult{Symbols: symbols, LineCount: lines}, nil
}

type grammar struct{}

func (grammar) Language() string                 { return "csharp" }
func (grammar) Extensions() []string              { return []string{".cs"} }
func (grammar) SitterLanguage() *sitter.Language  { return cssitter.GetLanguage() }

func (grammar) Kind(nodeType string) (model.SymbolKind, bool) {
	switch nodeType {
	case "namespace_declaration", "file_scoped_namespace_declaration":
		return model.KindNamespace, true
	case "class_declaration":
		return model.KindClass, true
	case "interface_declaration":
		return model.KindInterface, true
	case "struct_declaration":
		return model.KindStruct, true
	case "enum_declaration":
		return model.KindEnum, true
	case "method_declaration", "constructor_declaration":
		return model.KindMethod, true
	case "property_declaration":
		return model.KindProperty, true
	case "field_declaration", "variable_declarator":
		return model.KindField, true
	case "event_field_declaration", "event_declaration":
		return model.KindEvent, true
	case "delegate_declaration":
		return model.KindDelegate, true
	default:
		return "", false
	}
}

func (grammar) IsContainer(kind model.SymbolKind) bool {
	switch kind {
	case model.KindNamespace, model.KindClass, model.KindInterface, model.KindStruct, model.KindEnum:
		return true
	default:
		return false
	}
}

func (grammar) Name(node *sitter.Node, src []byte) string {
	switch node.Type() {
	case "namespace_declaration", "file_scoped_namespace_declaration":
		if n := node.ChildByFieldName("name"); n != nil {
			return n.Content(src)
		}
	case "class_declaration", "interface_declaration", "struct_declaration",
		"enum_declaration", "delegate_declaration":
		if n := node.ChildByFieldName("name"); n != nil {
			return n.Content(src)
		}
	case "method_declaration", "constructor_declaration", "property_declaration",
		"event_declaration":
		if n := node.ChildByFieldName("name"); n != nil {
			return n.Content(src)
		}
	case "field_declaration", "event_field_declaration":
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			for i := 0; i < int(decl.ChildCount()); i++ {
				if decl.Child(i).Type() == "variable_declarator" {
					if n := decl.Child(i).ChildByFieldName("name"); n != nil {
						return n.Content(src)
					}
				}
			}
		}
	case "variable_declarator":
		if n := node.ChildByFieldName("name"); n != nil {
			return n.Content(src)
		}
	}
	return ""
}

func (grammar) Modifiers(node *sitter.Node, src []byte) []string {
	var out []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "modifier" {
			out = append(out, strings.ToLower(child.Content(src)))
		}
	}
	return out
}

func (grammar) BaseTypes(node *sitter.Node, src []byte) []string {
	switch node.Type() {
	case "class_declaration", "interface_declaration", "struct_declaration":
	default:
		return nil
	}
	bases := node.ChildByFieldName("bases")
	if bases == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(bases.ChildCount()); i++ {
		child := bases.Child(i)
		if strings.Contains(child.Type(), "type") || child.Type() == "identifier" {
			out = append(out, child.Content(src))
		}
	}
	return out
}

func (grammar) Attributes(node *sitter.Node, src []byte) []string {
	parent := node.Parent()
	if parent == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(parent.ChildCount()); i++ {
		sibling := parent.Child(i)
		if sibling == node {
			break
		}
		if sibling.Type() == "attribute_list" {
			out = append(out, sibling.Content(src))
		}
	}
	return out
}

func (grammar) Parameters(node *sitter.Node, src []byte) []string {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(params.ChildCount()); i++ {
		p := params.Child(i)
		if p.Type() != "parameter" {
			continue
		}
		if n := p.ChildByFieldName("name"); n != nil {
			out = append(out, n.Content(src))
		}
	}
	return out
}

func (grammar) DefaultVisibility(kind model.SymbolKind, topLevel bool) model.Visibility {
	if topLevel {
		return model.VisibilityInternal
	}
	return model.VisibilityPrivate
}

// FileNamespace is handled entirely through block/file-scoped
// namespace_declaration container nodes; C# has no implicit file-level
// namespace outside of one.
func (grammar) FileNamespace(root *sitter.Node, src []byte) string { return "" }
