// Package extractor implements stage 2 of the analysis pipeline: dispatch
// by lowercased file extension onto a per-language LanguageExtractor,
// grounded on the teacher's internal/registry extension-to-provider
// lookup (SPEC_FULL.md §4.2).
package extractor

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/oxhq/archlens/internal/config"
	"github.com/oxhq/archlens/internal/diag"
	"github.com/oxhq/archlens/internal/logging"
	"github.com/oxhq/archlens/internal/model"
)

const stageName = "SymbolExtractor"

// ExtractResult is one file's contribution to the CodeAnalysis artifact.
type ExtractResult struct {
	Symbols   []model.Symbol
	LineCount int
}

// LanguageExtractor produces symbols for one source file. Implementations
// must not retain src or file beyond the call.
type LanguageExtractor interface {
	Language() string
	Extensions() []string
	Extract(ctx context.Context, file model.FileRecord, src []byte) (ExtractResult, error)
}

// Registry maps lowercased extensions onto a LanguageExtractor. The zero
// value is not usable; construct with NewRegistry.
type Registry struct {
	mu         sync.RWMutex
	byLanguage map[string]LanguageExtractor
	extensions map[string]string // extension -> language
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byLanguage: make(map[string]LanguageExtractor),
		extensions: make(map[string]string),
	}
}

// Register adds an extractor, failing if its language or any of its
// extensions already has an owner.
func (r *Registry) Register(ex LanguageExtractor) error {
	if ex == nil {
		return fmt.Errorf("extractor cannot be nil")
	}
	lang := ex.Language()
	if lang == "" {
		return fmt.Errorf("extractor must declare a non-empty language")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byLanguage[lang]; exists {
		return fmt.Errorf("extractor for language %q already registered", lang)
	}
	for _, ext := range ex.Extensions() {
		ext = strings.ToLower(ext)
		if existing, exists := r.extensions[ext]; exists {
			return fmt.Errorf("extension %q already mapped to %q", ext, existing)
		}
	}

	r.byLanguage[lang] = ex
	for _, ext := range ex.Extensions() {
		r.extensions[strings.ToLower(ext)] = lang
	}
	return nil
}

// ForExtension returns the extractor registered for a lowercased extension,
// and whether one was found.
func (r *Registry) ForExtension(ext string) (LanguageExtractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lang, ok := r.extensions[strings.ToLower(ext)]
	if !ok {
		return nil, false
	}
	ex, ok := r.byLanguage[lang]
	return ex, ok
}

// Languages returns every registered language name.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byLanguage))
	for lang := range r.byLanguage {
		out = append(out, lang)
	}
	return out
}

// Extract runs the SymbolExtractor stage over every source file in fs,
// dispatching each to its registered LanguageExtractor in a bounded
// worker pool, then assembling the aggregate CodeAnalysis (SPEC_FULL.md
// §4.2). Per-file read/parse failures are absorbed into a diagnostic and
// contribute no symbols; they never abort the stage.
func Extract(
	ctx context.Context,
	fs *model.FileSystemAnalysis,
	reg *Registry,
	opts config.ExtractOptions,
	sink logging.Sink,
) (*model.CodeAnalysis, []diag.Diagnostic, error) {
	if fs == nil {
		return nil, nil, diag.InvalidInput(stageName, "file system analysis is nil")
	}
	if err := config.Validate(opts); err != nil {
		return nil, nil, diag.InvalidInput(stageName, err.Error())
	}
	if sink == nil {
		sink = logging.Nop{}
	}
	if reg == nil {
		reg = DefaultRegistry()
	}

	diags := diag.NewCollector(stageName)

	files := fs.SourceFiles
	results := make([]fileResult, len(files))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex

	for i, f := range files {
		i, f := i, f
		if opts.SupportedLanguages != nil {
			ex, ok := reg.ForExtension(f.Extension)
			if !ok || !opts.SupportedLanguages[ex.Language()] {
				continue
			}
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			ex, ok := reg.ForExtension(f.Extension)
			if !ok {
				return nil
			}
			if opts.MaxFileBytes > 0 && f.SizeBytes > opts.MaxFileBytes {
				mu.Lock()
				diags.Warnf(f.AbsolutePath, "file exceeds max size (%d bytes), skipped", f.SizeBytes)
				mu.Unlock()
				return nil
			}

			src, err := os.ReadFile(f.AbsolutePath)
			if err != nil {
				mu.Lock()
				diags.Warnf(f.AbsolutePath, "cannot read file: %v", err)
				mu.Unlock()
				return nil
			}

			res, err := ex.Extract(gctx, f, src)
			if err != nil {
				mu.Lock()
				diags.Warnf(f.AbsolutePath, "extraction failed: %v", err)
				mu.Unlock()
				return nil
			}
			if !opts.IncludePrivate {
				res.Symbols = filterPrivate(res.Symbols)
			}

			mu.Lock()
			results[i] = fileResult{lang: ex.Language(), res: res}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if err == context.Canceled {
			return nil, diags.Diagnostics(), diag.Cancelled(stageName)
		}
		return nil, diags.Diagnostics(), err
	}

	analysis := assemble(results, opts)
	sink.Info("extraction complete", "files", len(files), "symbols", len(analysis.Symbols))
	return analysis, diags.Diagnostics(), nil
}

func filterPrivate(symbols []model.Symbol) []model.Symbol {
	out := symbols[:0:0]
	for _, s := range symbols {
		if s.Visibility == model.VisibilityPrivate {
			continue
		}
		out = append(out, s)
	}
	return out
}

// fileResult is one file's extraction outcome, collected before the
// aggregate CodeAnalysis is assembled.
type fileResult struct {
	lang string
	res  ExtractResult
}

func assemble(results []fileResult, opts config.ExtractOptions) *model.CodeAnalysis {
	analysis := &model.CodeAnalysis{
		ByLanguage:     make(map[string]*model.LanguageResult),
		NamespaceIndex: make(map[string][]string),
	}

	for _, r := range results {
		if r.lang == "" {
			continue
		}
		lr, ok := analysis.ByLanguage[r.lang]
		if !ok {
			lr = &model.LanguageResult{Language: r.lang}
			analysis.ByLanguage[r.lang] = lr
		}
		lr.FileCount++
		lr.TotalLines += r.res.LineCount
		lr.Symbols = append(lr.Symbols, r.res.Symbols...)
		analysis.Symbols = append(analysis.Symbols, r.res.Symbols...)
		analysis.LinesOfCode += r.res.LineCount

		for _, s := range r.res.Symbols {
			switch s.Kind {
			case model.KindClass, model.KindStruct:
				analysis.ClassCount++
			case model.KindMethod:
				analysis.MethodCount++
			case model.KindProperty, model.KindField:
				analysis.PropertyCount++
			case model.KindInterface:
				analysis.InterfaceCount++
			}
			if ns := s.Namespace(); ns != "" {
				analysis.NamespaceIndex[ns] = append(analysis.NamespaceIndex[ns], s.FQN)
			}
		}
	}

	if opts.ComputeMetrics {
		analysis.Complexity = computeComplexity(analysis.MethodCount)
		analysis.Maintainability = computeMaintainability(analysis.Complexity)
		analysis.Readability = computeReadability(analysis.Symbols)
	}

	return analysis
}
