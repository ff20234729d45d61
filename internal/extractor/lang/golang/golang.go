// Package golang implements the SymbolExtractor's Go grammar, reusing the
// teacher's own tree-sitter Go node-type vocabulary (providers/golang,
// internal/lang/golang) under the shared sitterbase container-stack walk.
package golang

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	gositter "github.com/smacker/go-tree-sitter/golang"

	"github.com/oxhq/archlens/internal/extractor"
	"github.com/oxhq/archlens/internal/extractor/lang/sitterbase"
	"github.com/oxhq/archlens/internal/model"
)

// Extractor implements extractor.LanguageExtractor for Go source.
type Extractor struct{}

// New returns a Go LanguageExtractor.
func New() extractor.LanguageExtractor { return Extractor{} }

func (Extractor) Language() string     { return "go" }
func (Extractor) Extensions() []string { return []string{".go"} }

func (e Extractor) Extract(ctx context.Context, file model.FileRecord, src []byte) (extractor.ExtractResult, error) {
	symbols, lines, err := sitterbase.Extract(ctx, grammar{}, file, src)
	if err != nil {
		return extractor.ExtractResult{}, err
	}
	return extractor.ExtractResult{Symbols: symbols, LineCount: lines}, nil
}

// grammar implements sitterbase.Grammar for Go.
type grammar struct{}

func (grammar) Language() string              { return "go" }
func (grammar) Extensions() []string          { return []string{".go"} }
func (grammar) SitterLanguage() *sitter.Language { return gositter.GetLanguage() }

func (grammar) Kind(nodeType string) (model.SymbolKind, bool) {
	switch nodeType {
	case "type_spec":
		return model.KindStruct, true
	case "function_declaration", "method_declaration":
		return model.KindMethod, true
	case "field_declaration":
		return model.KindField, true
	default:
		return "", false
	}
}

func (grammar) IsContainer(kind model.SymbolKind) bool {
	return kind == model.KindStruct || kind == model.KindInterface
}

func (grammar) Name(node *sitter.Node, src []byte) string {
	switch node.Type() {
	case "type_spec":
		if id := node.ChildByFieldName("name"); id != nil {
			return id.Content(src)
		}
		return ""
	case "function_declaration", "method_declaration":
		if id := node.ChildByFieldName("name"); id != nil {
			return id.Content(src)
		}
		return ""
	case "field_declaration":
		if id := node.ChildByFieldName("name"); id != nil {
			return id.Content(src)
		}
		return ""
	default:
		return ""
	}
}

func (grammar) Modifiers(node *sitter.Node, src []byte) []string {
	if node.Type() != "function_declaration" && node.Type() != "type_spec" {
		return nil
	}
	name := (grammar{}).Name(node, src)
	if name != "" && name[0] >= 'A' && name[0] <= 'Z' {
		return []string{"public"}
	}
	return []string{"private"}
}

func (grammar) BaseTypes(node *sitter.Node, src []byte) []string {
	if node.Type() != "type_spec" {
		return nil
	}
	t := node.ChildByFieldName("type")
	if t == nil || t.Type() != "struct_type" {
		return nil
	}
	var bases []string
	for i := 0; i < int(t.ChildCount()); i++ {
		child := t.Child(i)
		if child.Type() == "field_declaration_list" {
			for j := 0; j < int(child.ChildCount()); j++ {
				fd := child.Child(j)
				if fd.Type() == "field_declaration" && fd.ChildByFieldName("name") == nil {
					if ft := fd.ChildByFieldName("type"); ft != nil {
						bases = append(bases, ft.Content(src))
					}
				}
			}
		}
	}
	return bases
}

func (grammar) Attributes(node *sitter.Node, src []byte) []string { return nil }

func (grammar) Parameters(node *sitter.Node, src []byte) []string {
	if node.Type() != "function_declaration" && node.Type() != "method_declaration" {
		return nil
	}
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(params.ChildCount()); i++ {
		p := params.Child(i)
		if p.Type() != "parameter_declaration" {
			continue
		}
		if id := p.ChildByFieldName("name"); id != nil {
			out = append(out, id.Content(src))
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

// FileNamespace returns the declared package name, read from the file's
// package_clause.
func (grammar) FileNamespace(root *sitter.Node, src []byte) string {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Type() != "package_clause" {
			continue
		}
		if id := child.ChildByFieldName("name"); id != nil {
			return id.Content(src)
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			if child.Child(j).Type() == "package_identifier" {
				return child.Child(j).Content(src)
			}
		}
	}
	return ""
}
