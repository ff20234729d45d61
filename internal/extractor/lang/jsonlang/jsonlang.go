// Package jsonlang implements the SymbolExtractor's JSON rules: every
// object property becomes a Property-kind Symbol, with its FQN built from
// the parent path using "." for objects and "[i]" for array indices;
// scalars emit no symbols (SPEC_FULL.md §4.2). Named jsonlang to avoid
// shadowing the standard library's json package.
package jsonlang

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oxhq/archlens/internal/extractor"
	"github.com/oxhq/archlens/internal/model"
)

// Extractor implements extractor.LanguageExtractor for JSON documents.
type Extractor struct{}

// New returns a JSON LanguageExtractor.
func New() extractor.LanguageExtractor { return Extractor{} }

func (Extractor) Language() string     { return "json" }
func (Extractor) Extensions() []string { return []string{".json"} }

func (Extractor) Extract(_ context.Context, file model.FileRecord, src []byte) (extractor.ExtractResult, error) {
	var root any
	if err := json.Unmarshal(src, &root); err != nil {
		return extractor.ExtractResult{}, fmt.Errorf("invalid json: %w", err)
	}

	var symbols []model.Symbol
	walkValue(root, "", file.RelativePath, &symbols)

	lines := strings.Count(string(src), "\n") + 1
	return extractor.ExtractResult{Symbols: symbols, LineCount: lines}, nil
}

func walkValue(v any, path, file string, out *[]model.Symbol) {
	switch t := v.(type) {
	case map[string]any:
		for key, child := range t {
			fqn := key
			if path != "" {
				fqn = path + "." + key
			}
			*out = append(*out, model.Symbol{
				Name:       key,
				FQN:        fqn,
				Kind:       model.KindProperty,
				File:       file,
				Visibility: model.VisibilityPublic,
			})
			walkValue(child, fqn, file, out)
		}
	case []any:
		for i, child := range t {
			fqn := fmt.Sprintf("%s[%d]", path, i)
			walkValue(child, fqn, file, out)
		}
	default:
		// scalars emit no symbols
	}
}
