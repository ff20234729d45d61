// Package sitterbase is the shared tree-sitter walk every full-parse
// language extractor wraps, mirroring the teacher's base.Provider +
// per-language Config pattern (providers/base, providers/golang/config.go):
// one generic walk, specialized per language by a small Grammar value.
//
// The walk extends a dotted namespace prefix at each Namespace
// declaration, pushes the enclosing declarations the Grammar marks as
// containers (Class/Interface/Struct/Enum) onto a container stack and, at
// every non-namespace declaration node,
// synthesizes a Symbol whose FQN joins the current namespace, the
// reversed container stack, and the declared name with dots
// (SPEC_FULL.md §4.2).
package sitterbase

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/archlens/internal/model"
)

// Grammar specializes the generic container-stack walk for one language.
type Grammar interface {
	// Language returns the canonical extractor language name.
	Language() string
	// Extensions returns the lowercased file extensions this grammar owns.
	Extensions() []string
	// SitterLanguage returns the compiled tree-sitter grammar.
	SitterLanguage() *sitter.Language
	// Kind maps a tree-sitter node type to the SymbolKind it declares, or
	// ok=false if the node type declares no symbol.
	Kind(nodeType string) (kind model.SymbolKind, ok bool)
	// IsContainer reports whether a node of this kind is pushed onto the
	// container stack for its descendants' FQN construction.
	IsContainer(kind model.SymbolKind) bool
	// Name extracts the declared identifier for node.
	Name(node *sitter.Node, src []byte) string
	// Modifiers extracts modifier tokens (public, static, ...) for node.
	Modifiers(node *sitter.Node, src []byte) []string
	// BaseTypes extracts declared base-type/interface names for node.
	BaseTypes(node *sitter.Node, src []byte) []string
	// Attributes extracts attribute/annotation/decorator names for node.
	Attributes(node *sitter.Node, src []byte) []string
	// Parameters extracts formal parameter names for a method-kind node.
	Parameters(node *sitter.Node, src []byte) []string
	// DefaultVisibility returns the visibility to use when no modifier
	// token overrides it, given whether node sits at the top of the
	// container stack (a top-level type) or nested inside one (a member).
	DefaultVisibility(kind model.SymbolKind, topLevel bool) model.Visibility
	// FileNamespace returns the namespace that applies to the whole file
	// before any block-scoped namespace declaration is encountered (the Go
	// package name, the PHP namespace). Languages whose namespace is
	// instead a literal block container (C#), or that have no file-level
	// namespace in the tree (Python, JavaScript, TypeScript), return "".
	FileNamespace(root *sitter.Node, src []byte) string
}

// frame is one entry in the container stack.
type frame struct {
	name string
	kind model.SymbolKind
}

// Extract runs Grammar's container-stack walk over src and returns every
// declared Symbol plus the file's line count.
func Extract(ctx context.Context, g Grammar, file model.FileRecord, src []byte) ([]model.Symbol, int, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(g.SitterLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, 0, err
	}
	defer tree.Close()

	w := &walker{
		grammar: g,
		file:    file.RelativePath,
		src:     src,
	}
	w.walk(tree.RootNode(), nil, g.FileNamespace(tree.RootNode(), src))

	return w.symbols, strings.Count(string(src), "\n") + 1, nil
}

type walker struct {
	grammar Grammar
	file    string
	src     []byte
	symbols []model.Symbol
}

// walk visits node and its children, maintaining stack (the enclosing
// container frames) and namespace (the dotted namespace prefix currently
// in scope, independent of the type-container stack).
func (w *walker) walk(node *sitter.Node, stack []frame, namespace string) {
	if node == nil {
		return
	}

	kind, ok := w.grammar.Kind(node.Type())
	if ok {
		name := w.grammar.Name(node, w.src)
		if name != "" {
			if kind == model.KindNamespace {
				ns := name
				if namespace != "" {
					ns = namespace + "." + name
				}
				for i := 0; i < int(node.ChildCount()); i++ {
					w.walk(node.Child(i), stack, ns)
				}
				return
			}

			topLevel := len(stack) == 0
			sym := w.buildSymbol(node, kind, name, stack, namespace, topLevel)
			w.symbols = append(w.symbols, sym)

			if w.grammar.IsContainer(kind) {
				nextStack := append(append([]frame{}, stack...), frame{name: name, kind: kind})
				for i := 0; i < int(node.ChildCount()); i++ {
					w.walk(node.Child(i), nextStack, namespace)
				}
				return
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		w.walk(node.Child(i), stack, namespace)
	}
}

func (w *walker) buildSymbol(node *sitter.Node, kind model.SymbolKind, name string, stack []frame, namespace string, topLevel bool) model.Symbol {
	fqn := fqnOf(namespace, stack, name)

	modifiers := w.grammar.Modifiers(node, w.src)
	visibility := visibilityFromModifiers(modifiers, w.grammar.DefaultVisibility(kind, topLevel))

	meta := map[string]string{}
	if namespace != "" {
		meta["Namespace"] = namespace
	}
	if bases := w.grammar.BaseTypes(node, w.src); len(bases) > 0 {
		meta["BaseTypes"] = strings.Join(bases, ",")
	}

	sym := model.Symbol{
		Name:       name,
		FQN:        fqn,
		Kind:       kind,
		File:       w.file,
		Line:       int(node.StartPoint().Row) + 1,
		Visibility: visibility,
		Modifiers:  modifiers,
		Attributes: w.grammar.Attributes(node, w.src),
		Metadata:   meta,
	}

	if kind == model.KindMethod {
		for _, p := range w.grammar.Parameters(node, w.src) {
			sym.Parameters = append(sym.Parameters, model.Symbol{
				Name: p,
				Kind: model.KindField,
				File: w.file,
				Line: sym.Line,
			})
		}
	}

	return sym
}

func fqnOf(namespace string, stack []frame, name string) string {
	parts := make([]string, 0, len(stack)+2)
	if namespace != "" {
		parts = append(parts, namespace)
	}
	for _, f := range stack {
		parts = append(parts, f.name)
	}
	parts = append(parts, name)
	return strings.Join(parts, ".")
}

func visibilityFromModifiers(modifiers []string, fallback model.Visibility) model.Visibility {
	var public, private, protected, internal bool
	for _, m := range modifiers {
		switch strings.ToLower(m) {
		case "public":
			public = true
		case "private":
			private = true
		case "protected":
			protected = true
		case "internal":
			internal = true
		}
	}
	switch {
	case protected && internal:
		return model.VisibilityProtectedInternal
	case public:
		return model.VisibilityPublic
	case private:
		return model.VisibilityPrivate
	case protected:
		return model.VisibilityProtected
	case internal:
		return model.VisibilityInternal
	default:
		return fallback
	}
}
