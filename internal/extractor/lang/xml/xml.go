// Package xml implements the SymbolExtractor's XML/configuration rules: the
// root element becomes a Class-kind Symbol, every descendant element
// becomes a Property-kind Symbol named after its tag (SPEC_FULL.md §4.2).
// Stdlib encoding/xml's streaming Decoder is used; no XML library appears
// anywhere in the retrieval pack.
package xml

import (
	"bytes"
	"context"
	"encoding/xml"
	"strings"

	"github.com/oxhq/archlens/internal/extractor"
	"github.com/oxhq/archlens/internal/model"
)

// Extractor implements extractor.LanguageExtractor for XML/.config files.
type Extractor struct{}

// New returns an XML LanguageExtractor.
func New() extractor.LanguageExtractor { return Extractor{} }

func (Extractor) Language() string     { return "xml" }
func (Extractor) Extensions() []string { return []string{".xml", ".config", ".csproj", ".resx", ".settings"} }

func (Extractor) Extract(_ context.Context, file model.FileRecord, src []byte) (extractor.ExtractResult, error) {
	dec := xml.NewDecoder(bytes.NewReader(src))

	var symbols []model.Symbol
	depth := 0
	lineOf := func() int { return 1 } // encoding/xml does not expose line numbers on tokens

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			name := localName(t.Name)
			kind := model.KindProperty
			if depth == 1 {
				kind = model.KindClass
			}
			symbols = append(symbols, model.Symbol{
				Name:       name,
				FQN:        name,
				Kind:       kind,
				File:       file.RelativePath,
				Line:       lineOf(),
				Visibility: model.VisibilityPublic,
			})
		case xml.EndElement:
			depth--
		}
	}

	lines := strings.Count(string(src), "\n") + 1
	return extractor.ExtractResult{Symbols: symbols, LineCount: lines}, nil
}

func localName(n xml.Name) string {
	if n.Local != "" {
		return n.Local
	}
	return n.Space
}
