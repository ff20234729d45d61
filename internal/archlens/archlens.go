// Package archlens orchestrates the six-stage pipeline — Crawler,
// SymbolExtractor, DependencyResolver, ArchitectureAnalyzer,
// RelationshipMapper, VisualizationBuilder — wiring internal/config,
// internal/logging, and internal/diag together and threading one
// context.Context through every stage entry point for cancellation.
// Grounded on SPEC_FULL.md §5's concurrency model and the teacher's
// internal/cli.Runner sequencing of independent phases.
package archlens

import (
	"context"
	"fmt"
	"os"

	"github.com/oxhq/archlens/internal/architecture"
	"github.com/oxhq/archlens/internal/config"
	"github.com/oxhq/archlens/internal/crawler"
	"github.com/oxhq/archlens/internal/depresolve"
	"github.com/oxhq/archlens/internal/diag"
	"github.com/oxhq/archlens/internal/extractor"
	"github.com/oxhq/archlens/internal/logging"
	"github.com/oxhq/archlens/internal/model"
	"github.com/oxhq/archlens/internal/relate"
	"github.com/oxhq/archlens/internal/visualize"
)

// Options bundles the per-stage option structs the six stages take,
// plus the registry SymbolExtractor dispatches to. A nil Registry falls
// back to extractor.DefaultRegistry().
type Options struct {
	Crawl         config.CrawlOptions
	Extract       config.ExtractOptions
	Resolve       config.ResolveOptions
	Architecture  config.ArchitectureOptions
	Mapping       config.MappingOptions
	Visualization config.VisualizationOptions
	Registry      *extractor.Registry

	// IgnoreMatcher, when set, drops any crawled file whose
	// root-relative path it matches before extraction runs — the hook
	// cmd/archlens uses to honor an .archlensignore file via
	// github.com/sabhiram/go-gitignore's MatchesPath.
	IgnoreMatcher func(relativePath string) bool
}

// DefaultOptions returns the spec-mandated defaults for every stage.
func DefaultOptions() Options {
	return Options{
		Crawl:         config.DefaultCrawlOptions(),
		Extract:       config.DefaultExtractOptions(),
		Resolve:       config.DefaultResolveOptions(),
		Architecture:  config.DefaultArchitectureOptions(),
		Mapping:       config.DefaultMappingOptions(),
		Visualization: config.DefaultVisualizationOptions(),
	}
}

// StageProgress names which of the six stages is currently running, for
// callers that want a coarse progress indicator beyond the Crawler's
// per-file crawler.Progress callback.
type StageProgress struct {
	Stage string
	Index int
	Total int
}

// StageProgressFunc receives one StageProgress update per stage
// transition. May be nil.
type StageProgressFunc func(StageProgress)

// Result is the combined output of every stage, published once Run
// completes successfully.
type Result struct {
	FileSystem    *model.FileSystemAnalysis
	Code          *model.CodeAnalysis
	Dependencies  *model.DependencyAnalysis
	Architecture  *model.ArchitectureAnalysis
	Mapping       *model.RelationshipMapping
	Visualization *model.VisualizationPackage
}

var stageNames = []string{
	"Crawler",
	"SymbolExtractor",
	"DependencyResolver",
	"ArchitectureAnalyzer",
	"RelationshipMapper",
	"VisualizationBuilder",
}

// Run drives all six stages over root in order, stopping at the first
// stage that returns an error. Diagnostics absorbed by every stage are
// concatenated and returned alongside the combined Result; a non-nil
// error means the pipeline stopped early and Result is nil.
func Run(
	ctx context.Context,
	root string,
	opts Options,
	sink logging.Sink,
	onFileProgress crawler.ProgressFunc,
	onStageProgress StageProgressFunc,
) (*Result, []diag.Diagnostic, error) {
	if sink == nil {
		sink = logging.Nop{}
	}
	report := func(i int) {
		if onStageProgress != nil {
			onStageProgress(StageProgress{Stage: stageNames[i], Index: i + 1, Total: len(stageNames)})
		}
	}

	var all []diag.Diagnostic

	report(0)
	fs, diags, err := crawler.Crawl(ctx, root, opts.Crawl, sink, onFileProgress)
	all = append(all, diags...)
	if err != nil {
		return nil, all, fmt.Errorf("crawl: %w", err)
	}
	if opts.IgnoreMatcher != nil {
		applyIgnoreMatcher(fs, opts.IgnoreMatcher)
	}

	report(1)
	reg := opts.Registry
	if reg == nil {
		reg = extractor.DefaultRegistry()
	}
	code, diags, err := extractor.Extract(ctx, fs, reg, opts.Extract, sink)
	all = append(all, diags...)
	if err != nil {
		return nil, all, fmt.Errorf("extract: %w", err)
	}

	report(2)
	sqlFiles := sqlSourceFiles(fs)
	deps, diags, err := depresolve.Resolve(ctx, code, fs.ConfigFiles, fs.ConfigFiles, sqlFiles, os.ReadFile, opts.Resolve, sink)
	all = append(all, diags...)
	if err != nil {
		return nil, all, fmt.Errorf("resolve dependencies: %w", err)
	}

	report(3)
	arch, diags, err := architecture.Analyze(ctx, code, deps, opts.Architecture, sink)
	all = append(all, diags...)
	if err != nil {
		return nil, all, fmt.Errorf("analyze architecture: %w", err)
	}

	report(4)
	mapping, diags, err := relate.Map(ctx, code, deps, arch, opts.Mapping, sink)
	all = append(all, diags...)
	if err != nil {
		return nil, all, fmt.Errorf("map relationships: %w", err)
	}

	report(5)
	viz, diags, err := visualize.Build(ctx, code, deps, arch, mapping, opts.Visualization, sink)
	all = append(all, diags...)
	if err != nil {
		return nil, all, fmt.Errorf("build visualizations: %w", err)
	}

	sink.Info("pipeline complete",
		"files", len(fs.SourceFiles),
		"symbols", len(code.Symbols),
		"static_edges", len(deps.StaticEdges),
		"components", len(arch.Components),
		"relationships", len(mapping.Matrix.Relationships),
	)

	return &Result{
		FileSystem:    fs,
		Code:          code,
		Dependencies:  deps,
		Architecture:  arch,
		Mapping:       mapping,
		Visualization: viz,
	}, all, nil
}

// Persist writes the visualization package to dir. It is a thin pass
// through to visualize.Persist, kept here so callers only need to
// import this package for the whole run-then-persist sequence.
func Persist(dir string, result *Result) error {
	return visualize.Persist(dir, result.Visualization)
}

// sqlSourceFiles returns the subset of fs.SourceFiles extracted as SQL,
// the bucket depresolve.Resolve's sqlFiles parameter expects.
func sqlSourceFiles(fs *model.FileSystemAnalysis) []model.FileRecord {
	var out []model.FileRecord
	for _, f := range fs.SourceFiles {
		if f.Extension == ".sql" {
			out = append(out, f)
		}
	}
	return out
}

// applyIgnoreMatcher drops any file whose RelativePath matches from every
// crawled bucket, mutating fs in place.
func applyIgnoreMatcher(fs *model.FileSystemAnalysis, matches func(string) bool) {
	fs.SourceFiles = filterIgnored(fs.SourceFiles, matches)
	fs.ConfigFiles = filterIgnored(fs.ConfigFiles, matches)
	fs.ResourceFiles = filterIgnored(fs.ResourceFiles, matches)
	fs.DocFiles = filterIgnored(fs.DocFiles, matches)
}

func filterIgnored(files []model.FileRecord, matches func(string) bool) []model.FileRecord {
	out := files[:0]
	for _, f := range files {
		if !matches(f.RelativePath) {
			out = append(out, f)
		}
	}
	return out
}
