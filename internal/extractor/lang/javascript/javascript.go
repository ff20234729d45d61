// Package javascript implements the SymbolExtractor's JavaScript grammar
// on top of the shared sitterbase container-stack walk.
package javascript

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	jssitter "github.com/smacker/go-tree-sitter/javascript"

	"github.com/oxhq/archlens/internal/extractor"
	"github.com/oxhq/archlens/internal/extractor/lang/sitterbase"
	"github.com/oxhq/archlens/internal/model"
)

// Extractor implements extractor.LanguageExtractor for JavaScript source.
type Extractor struct{}

// New returns a JavaScript LanguageExtractor.
func New() extractor.LanguageExtractor { return Extractor{} }

func (Extractor) Language() string     { return "javascript" }
func (Extractor) Extensions() []string { return []string{".js", ".jsx", ".mjs"} }

func (e Extractor) Extract(ctx context.Context, file model.FileRecord, src []byte) (extractor.ExtractResult, error) {
	symbols, lines, err := sitterbase.Extract(ctx, grammar{}, file, src)
	if err != nil {
		return extractor.ExtractResult{}, err
	}
	return extractor.ExtractResult{Symbols: symbols, LineCount: lines}, nil
}

type grammar struct{}

func (grammar) Language() string                { return "javascript" }
func (grammar) Extensions() []string             { return []string{".js", ".jsx", ".mjs"} }
func (grammar) SitterLanguage() *sitter.Language { return jssitter.GetLanguage() }

func (grammar) Kind(nodeType string) (model.SymbolKind, bool) {
	switch nodeType {
	case "class_declaration":
		return model.KindClass, true
	case "method_definition", "function_declaration":
		return model.KindMethod, true
	default:
		return "", false
	}
}

func (grammar) IsContainer(kind model.SymbolKind) bool { return kind == model.KindClass }

func (grammar) Name(node *sitter.Node, src []byte) string {
	if n := node.ChildByFieldName("name"); n != nil {
		return n.Content(src)
	}
	return ""
}

func (grammar) Modifiers(node *sitter.Node, src []byte) []string {
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == "#" {
			return []string{"private"}
		}
	}
	return []string{"public"}
}

func (grammar) BaseTypes(node *sitter.Node, src []byte) []string {
	if node.Type() != "class_declaration" {
		return nil
	}
	if h := node.ChildByFieldName("heritage"); h != nil {
		return []string{h.Content(src)}
	}
	return nil
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
		switch p.Type() {
		case "identifier":
			out = append(out, p.Content(src))
		case "assignment_pattern":
			if n := p.ChildByFieldName("left"); n != nil {
				out = append(out, n.Content(src))
			}
		}
	}
	return out
}

func (grammar) DefaultVisibility(kind model.SymbolKind, topLevel bool) model.Visibility {
	return model.VisibilityPublic
}

func (grammar) FileNamespace(root *sitter.Node, src []byte) string { return "" }
