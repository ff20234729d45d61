// Package shell implements the SymbolExtractor's PowerShell rules: a
// line-scan for "function <id>" (Method) and "$<id>" references (Field),
// capped at 5 variable matches per line to prevent explosion
// (SPEC_FULL.md §4.2).
package shell

import (
	"bufio"
	"bytes"
	"context"
	"regexp"

	"github.com/oxhq/archlens/internal/extractor"
	"github.com/oxhq/archlens/internal/model"
)

const maxVarsPerLine = 5

var (
	functionRe = regexp.MustCompile(`(?i)function\s+([\w-]+)`)
	variableRe = regexp.MustCompile(`\$([A-Za-z_][\w]*)`)
)

// Extractor implements extractor.LanguageExtractor for PowerShell scripts.
type Extractor struct{}

// New returns a PowerShell LanguageExtractor.
func New() extractor.LanguageExtractor { return Extractor{} }

func (Extractor) Language() string     { return "powershell" }
func (Extractor) Extensions() []string { return []string{".ps1", ".psm1"} }

func (Extractor) Extract(_ context.Context, file model.FileRecord, src []byte) (extractor.ExtractResult, error) {
	var symbols []model.Symbol
	lineNo := 0
	lines := 0

	scanner := bufio.NewScanner(bytes.NewReader(src))
	for scanner.Scan() {
		lineNo++
		lines++
		line := scanner.Text()

		if m := functionRe.FindStringSubmatch(line); m != nil {
			symbols = append(symbols, model.Symbol{
				Name: m[1], FQN: m[1], Kind: model.KindMethod,
				File: file.RelativePath, Line: lineNo, Visibility: model.VisibilityPublic,
			})
		}

		matches := variableRe.FindAllStringSubmatch(line, maxVarsPerLine)
		for _, m := range matches {
			symbols = append(symbols, model.Symbol{
				Name: m[1], FQN: m[1], Kind: model.KindField,
				File: file.RelativePath, Line: lineNo, Visibility: model.VisibilityPublic,
			})
		}
	}

	return extractor.ExtractResult{Symbols: symbols, LineCount: lines}, scanner.Err()
}
