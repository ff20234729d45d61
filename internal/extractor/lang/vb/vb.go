// Package vb implements the SymbolExtractor's VB.NET fallback: a regex
// line-scanner rather than a full parse. No tree-sitter grammar for VB
// exists anywhere in the retrieval pack or the broader ecosystem the
// teacher draws from, so this is a deliberate open-question resolution
// (documented in DESIGN.md), not a silent gap (SPEC_FULL.md §4.2).
package vb

import (
	"bufio"
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/oxhq/archlens/internal/extractor"
	"github.com/oxhq/archlens/internal/model"
)

var (
	namespaceRe = regexp.MustCompile(`(?i)^\s*Namespace\s+([\w.]+)`)
	classRe     = regexp.MustCompile(`(?i)^\s*(Public|Private|Protected|Friend)?\s*(Partial\s+)?Class\s+(\w+)`)
	moduleRe    = regexp.MustCompile(`(?i)^\s*(Public|Private|Protected|Friend)?\s*Module\s+(\w+)`)
	subRe       = regexp.MustCompile(`(?i)^\s*(Public|Private|Protected|Friend)?\s*(Shared\s+)?Sub\s+(\w+)`)
	functionRe  = regexp.MustCompile(`(?i)^\s*(Public|Private|Protected|Friend)?\s*(Shared\s+)?Function\s+(\w+)`)
)

// Extractor implements extractor.LanguageExtractor for VB.NET source.
type Extractor struct{}

// New returns a VB.NET LanguageExtractor.
func New() extractor.LanguageExtractor { return Extractor{} }

func (Extractor) Language() string     { return "vb" }
func (Extractor) Extensions() []string { return []string{".vb"} }

func (Extractor) Extract(_ context.Context, file model.FileRecord, src []byte) (extractor.ExtractResult, error) {
	var symbols []model.Symbol
	var containerStack []string
	namespace := ""

	scanner := bufio.NewScanner(bytes.NewReader(src))
	lineNo := 0
	lines := 0
	for scanner.Scan() {
		lineNo++
		lines++
		line := scanner.Text()

		if m := namespaceRe.FindStringSubmatch(line); m != nil {
			namespace = m[1]
			continue
		}
		if m := classRe.FindStringSubmatch(line); m != nil {
			name := m[3]
			symbols = append(symbols, newSymbol(name, model.KindClass, file.RelativePath, lineNo, visibilityFrom(m[1], len(containerStack) == 0), namespace, containerStack))
			containerStack = append(containerStack, name)
			continue
		}
		if m := moduleRe.FindStringSubmatch(line); m != nil {
			name := m[2]
			symbols = append(symbols, newSymbol(name, model.KindClass, file.RelativePath, lineNo, visibilityFrom(m[1], len(containerStack) == 0), namespace, containerStack))
			continue
		}
		if m := subRe.FindStringSubmatch(line); m != nil {
			name := m[3]
			symbols = append(symbols, newSymbol(name, model.KindMethod, file.RelativePath, lineNo, visibilityFrom(m[1], len(containerStack) == 0), namespace, containerStack))
			continue
		}
		if m := functionRe.FindStringSubmatch(line); m != nil {
			name := m[3]
			symbols = append(symbols, newSymbol(name, model.KindMethod, file.RelativePath, lineNo, visibilityFrom(m[1], len(containerStack) == 0), namespace, containerStack))
			continue
		}
		if strings.Contains(strings.ToLower(line), "end class") && len(containerStack) > 0 {
			containerStack = containerStack[:len(containerStack)-1]
		}
	}

	return extractor.ExtractResult{Symbols: symbols, LineCount: lines}, scanner.Err()
}

func newSymbol(name string, kind model.SymbolKind, file string, line int, vis model.Visibility, namespace string, stack []string) model.Symbol {
	parts := make([]string, 0, len(stack)+2)
	if namespace != "" {
		parts = append(parts, namespace)
	}
	parts = append(parts, stack...)
	parts = append(parts, name)

	meta := map[string]string{}
	if namespace != "" {
		meta["Namespace"] = namespace
	}

	return model.Symbol{
		Name:       name,
		FQN:        strings.Join(parts, "."),
		Kind:       kind,
		File:       file,
		Line:       line,
		Visibility: vis,
		Metadata:   meta,
	}
}

func visibilityFrom(modifier string, topLevel bool) model.Visibility {
	switch strings.ToLower(strings.TrimSpace(modifier)) {
	case "public":
		return model.VisibilityPublic
	case "private":
		return model.VisibilityPrivate
	case "protected":
		return model.VisibilityProtected
	case "friend":
		return model.VisibilityInternal
	default:
		if topLevel {
			return model.VisibilityInternal
		}
		return model.VisibilityPrivate
	}
}
