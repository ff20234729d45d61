// Package sql implements the SymbolExtractor's SQL rules: per-line regex
// matches for CREATE TABLE/VIEW/PROCEDURE/FUNCTION statements
// (SPEC_FULL.md §4.2). Regex is the spec's own stated mechanism here; a
// third-party regex engine buys nothing over stdlib regexp.
package sql

import (
	"bufio"
	"bytes"
	"context"
	"regexp"

	"github.com/oxhq/archlens/internal/extractor"
	"github.com/oxhq/archlens/internal/model"
)

var (
	tableRe = regexp.MustCompile(`(?i)CREATE\s+TABLE\s+\[?([\w.]+)\]?`)
	viewRe  = regexp.MustCompile(`(?i)CREATE\s+VIEW\s+\[?([\w.]+)\]?`)
	procRe  = regexp.MustCompile(`(?i)CREATE\s+PROC(?:EDURE)?\s+\[?([\w.]+)\]?`)
	funcRe  = regexp.MustCompile(`(?i)CREATE\s+FUNCTION\s+\[?([\w.]+)\]?`)
)

// Extractor implements extractor.LanguageExtractor for SQL scripts.
type Extractor struct{}

// New returns a SQL LanguageExtractor.
func New() extractor.LanguageExtractor { return Extractor{} }

func (Extractor) Language() string     { return "sql" }
func (Extractor) Extensions() []string { return []string{".sql"} }

func (Extractor) Extract(_ context.Context, file model.FileRecord, src []byte) (extractor.ExtractResult, error) {
	var symbols []model.Symbol
	lineNo := 0
	lines := 0

	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		lines++
		line := scanner.Text()

		if m := tableRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, newSymbol(m[1], model.KindClass, file.RelativePath, lineNo))
		}
		if m := viewRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, newSymbol(m[1], model.KindClass, file.RelativePath, lineNo))
		}
		if m := procRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, newSymbol(m[1], model.KindMethod, file.RelativePath, lineNo))
		}
		if m := funcRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, newSymbol(m[1], model.KindMethod, file.RelativePath, lineNo))
		}
	}

	return extractor.ExtractResult{Symbols: symbols, LineCount: lines}, scanner.Err()
}

func newSymbol(name string, kind model.SymbolKind, file string, line int) model.Symbol {
	return model.Symbol{
		Name:       name,
		FQN:        name,
		Kind:       kind,
		File:       file,
		Line:       line,
		Visibility: model.VisibilityPublic,
	}
}
