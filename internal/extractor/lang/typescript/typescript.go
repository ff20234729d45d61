// Package typescript implements the SymbolExtractor's TypeScript grammar on
// top of the shared sitterbase container-stack walk.
package typescript

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	tssitter "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/oxhq/archlens/internal/extractor"
	"github.com/oxhq/archlens/internal/extractor/lang/sitterbase"
	"github.com/oxhq/archlens/internal/model"
)

// Extractor implements extractor.LanguageExtractor for TypeScript source.
type Extractor struct{}

// New returns a TypeScript LanguageExtractor.
func New() extractor.LanguageExtractor { return Extractor{} }

func (Extractor) Language() string     { return "typescript" }
func (Extractor) Extensions() []string { return []string{".ts", ".tsx"} }

func (e Extractor) Extract(ctx context.Context, file model.FileRecord, src []byte) (extractor.ExtractResult, error) {
	symbols, lines, err := sitterbase.Extract(ctx, grammar{}, file, src)
	if err != nil {
		return extractor.ExtractResult{}, err
	}
	return extractor.ExtractResult{Symbols: symbols, LineCount: lines}, nil
}

type grammar struct{}

func (grammar) Language() string                { return "typescript" }
func (grammar) Extensions() []string             { return []string{".ts", ".tsx"} }
func (grammar) SitterLanguage() *sitter.Language { return tssitter.GetLanguage() }

func (grammar) Kind(nodeType string) (model.SymbolKind, bool) {
	switch nodeType {
	case "class_declaration":
		return model.KindClass, true
	case "interface_declaration":
		return model.KindInterface, true
	case "method_definition", "function_declaration":
		return model.KindMethod, true
	case "public_field_definition":
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
		case "accessibility_modifier":
			out = append(out, node.Child(i).Content(src))
		}
	}
	return out
}

func (grammar) BaseTypes(node *sitter.Node, src []byte) []string {
	switch node.Type() {
	case "class_declaration", "interface_declaration":
	default:
		return nil
	}
	var out []string
	if h := node.ChildByFieldName("heritage"); h != nil {
		out = append(out, h.Content(src))
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
		if n := p.ChildByFieldName("pattern"); n != nil {
			out = append(out, n.Content(src))
		} else if p.Type() == "identifier" {
			out = append(out, p.Content(src))
		}
	}
	return out
}

func (grammar) DefaultVisibility(kind model.SymbolKind, topLevel bool) model.Visibility {
	return model.VisibilityPublic
}

func (grammar) FileNamespace(root *sitter.Node, src []byte) string { return "" }
