// Package python implements the SymbolExtractor's Python grammar on top of
// the shared sitterbase container-stack walk.
package python

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	pysitter "github.com/smacker/go-tree-sitter/python"

	"github.com/oxhq/archlens/internal/extractor"
	"github.com/oxhq/archlens/internal/extractor/lang/sitterbase"
	"github.com/oxhq/archlens/internal/model"
)

// Extractor implements extractor.LanguageExtractor for Python source.
type Extractor struct{}

// New returns a Python LanguageExtractor.
func New() extractor.LanguageExtractor { return Extractor{} }

func (Extractor) Language() string     { return "python" }
func (Extractor) Extensions() []string { return []string{".py"} }

func (e Extractor) Extract(ctx context.Context, file model.FileRecord, src []byte) (extractor.ExtractResult, error) {
	symbols, lines, err := sitterbase.Extract(ctx, grammar{}, file, src)
	if err != nil {
		return extractor.ExtractResult{}, err
	}
	return extractor.ExtractResult{Symbols: symbols, LineCount: lines}, nil
}

type grammar struct{}

func (grammar) Language() string                { return "python" }
func (grammar) Extensions() []string             { return []string{".py"} }
func (grammar) SitterLanguage() *sitter.Language { return pysitter.GetLanguage() }

func (grammar) Kind(nodeType string) (model.SymbolKind, bool) {
	switch nodeType {
	case "class_definition":
		return model.KindClass, true
	case "function_definition":
		return model.KindMethod, true
	default:
		return "", false
	}
}

func (grammar) IsContainer(kind model.SymbolKind) bool {
	return kind == model.KindClass
}

func (grammar) Name(node *sitter.Node, src []byte) string {
	if n := node.ChildByFieldName("name"); n != nil {
		return n.Content(src)
	}
	return ""
}

func (grammar) Modifiers(node *sitter.Node, src []byte) []string {
	name := (grammar{}).Name(node, src)
	if len(name) > 1 && name[0] == '_' && name[1] == '_' {
		return []string{"private"}
	}
	if len(name) > 0 && name[0] == '_' {
		return []string{"protected"}
	}
	return []string{"public"}
}

func (grammar) BaseTypes(node *sitter.Node, src []byte) []string {
	if node.Type() != "class_definition" {
		return nil
	}
	superclasses := node.ChildByFieldName("superclasses")
	if superclasses == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(superclasses.ChildCount()); i++ {
		child := superclasses.Child(i)
		if child.Type() == "identifier" {
			out = append(out, child.Content(src))
		}
	}
	return out
}

func (grammar) Attributes(node *sitter.Node, src []byte) []string {
	prev := node.PrevSibling()
	var out []string
	for prev != nil && prev.Type() == "decorator" {
		out = append([]string{prev.Content(src)}, out...)
		prev = prev.PrevSibling()
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
		switch p.Type() {
		case "identifier":
			out = append(out, p.Content(src))
		case "typed_parameter", "default_parameter", "typed_default_parameter":
			if n := p.ChildByFieldName("name"); n != nil {
				out = append(out, n.Content(src))
			} else if n := p.Child(0); n != nil {
				out = append(out, n.Content(src))
			}
		}
	}
	return out
}

func (grammar) DefaultVisibility(kind model.SymbolKind, topLevel bool) model.Visibility {
	return model.VisibilityPublic
}

// FileNamespace returns "": the file's dotted module path is not available
// from the tree alone, so Python symbols carry no namespace.
func (grammar) FileNamespace(root *sitter.Node, src []byte) string { return "" }
