// Package autolisp implements the SymbolExtractor's AutoLISP/DCL rules: a
// line-scan (skipping comment lines starting with ";") for (defun <id>
// (Method), (setq <id> (Field), (command "<id>") (Method, tagged as a
// host-app command), and *<id>* (Field, tagged as global). Symbols are
// deduplicated by (name, kind) within a file; per-line caps mirror the
// shell extractor (SPEC_FULL.md §4.2).
package autolisp

import (
	"bufio"
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/oxhq/archlens/internal/extractor"
	"github.com/oxhq/archlens/internal/model"
)

const maxMatchesPerLine = 5

var (
	defunRe   = regexp.MustCompile(`\(defun\s+([\w*+\-!?<>=/.:]+)`)
	setqRe    = regexp.MustCompile(`\(setq\s+([\w*+\-!?<>=/.]+)`)
	commandRe = regexp.MustCompile(`\(command\s+"([^"]+)"`)
	globalRe  = regexp.MustCompile(`\*([\w+\-!?<>=/.]+)\*`)
)

// Extractor implements extractor.LanguageExtractor for AutoLISP/DCL files.
type Extractor struct{}

// New returns an AutoLISP LanguageExtractor.
func New() extractor.LanguageExtractor { return Extractor{} }

func (Extractor) Language() string     { return "autolisp" }
func (Extractor) Extensions() []string { return []string{".lsp", ".dcl"} }

type symbolKey struct {
	name string
	kind model.SymbolKind
}

func (Extractor) Extract(_ context.Context, file model.FileRecord, src []byte) (extractor.ExtractResult, error) {
	seen := make(map[symbolKey]bool)
	var symbols []model.Symbol
	lineNo := 0
	lines := 0

	add := func(name string, kind model.SymbolKind, metadata map[string]string) {
		key := symbolKey{name: name, kind: kind}
		if seen[key] {
			return
		}
		seen[key] = true
		symbols = append(symbols, model.Symbol{
			Name: name, FQN: name, Kind: kind,
			File: file.RelativePath, Line: lineNo,
			Visibility: model.VisibilityPublic,
			Metadata:   metadata,
		})
	}

	scanner := bufio.NewScanner(bytes.NewReader(src))
	for scanner.Scan() {
		lineNo++
		lines++
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), ";") {
			continue
		}

		if m := defunRe.FindStringSubmatch(line); m != nil {
			add(m[1], model.KindMethod, nil)
		}
		for _, m := range setqRe.FindAllStringSubmatch(line, maxMatchesPerLine) {
			add(m[1], model.KindField, nil)
		}
		for _, m := range commandRe.FindAllStringSubmatch(line, maxMatchesPerLine) {
			add(m[1], model.KindMethod, map[string]string{"HostCommand": "true"})
		}
		for _, m := range globalRe.FindAllStringSubmatch(line, maxMatchesPerLine) {
			add(m[1], model.KindField, map[string]string{"Global": "true"})
		}
	}

	return extractor.ExtractResult{Symbols: symbols, LineCount: lines}, scanner.Err()
}
