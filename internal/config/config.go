// Package config holds one option struct per pipeline stage, each with the
// defaults documented in SPEC_FULL.md §4. Options are passed as per-call
// parameters; the core owns no process-wide configuration state.
package config

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// CrawlOptions configures the Crawler stage (SPEC_FULL.md §4.1).
type CrawlOptions struct {
	IncludeGlobs    []string `validate:"required,min=1"`
	ExcludeGlobs    []string
	MaxDepth        int   `validate:"gte=1"`
	MaxFileBytes    int64 `validate:"gt=0"`
	FollowSymlinks  bool
	ComputeHash     bool
	ExtractMetadata bool
	Workers         int `validate:"gte=0"`
}

// DefaultCrawlOptions returns the spec-mandated defaults.
func DefaultCrawlOptions() CrawlOptions {
	return CrawlOptions{
		IncludeGlobs:    []string{"*.*"},
		ExcludeGlobs:    []string{"bin/*", "obj/*", "*.tmp"},
		MaxDepth:        50,
		MaxFileBytes:    100 * 1024 * 1024,
		FollowSymlinks:  false,
		ComputeHash:     false,
		ExtractMetadata: true,
		Workers:         0, // 0 means "use GOMAXPROCS"
	}
}

// ExtractOptions configures the SymbolExtractor stage (SPEC_FULL.md §4.2).
type ExtractOptions struct {
	SupportedLanguages map[string]bool
	MaxFileBytes       int64 `validate:"gt=0"`
	IncludePrivate     bool
	ExtractDoc         bool
	ComputeMetrics     bool
	Workers            int `validate:"gte=0"`
}

// DefaultExtractOptions returns the spec-mandated defaults: every
// registered language enabled, private members included, metrics on.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		SupportedLanguages: nil, // nil means "every registered language"
		MaxFileBytes:       100 * 1024 * 1024,
		IncludePrivate:     true,
		ExtractDoc:         false,
		ComputeMetrics:     true,
		Workers:            0,
	}
}

// ResolveOptions configures the DependencyResolver stage (SPEC_FULL.md §4.3).
type ResolveOptions struct {
	ResolveStatic   bool
	ResolveDynamic  bool
	ResolveExternal bool
	ResolveDatabase bool
	DetectCycles    bool
}

// DefaultResolveOptions enables every resolution family.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{
		ResolveStatic:   true,
		ResolveDynamic:  true,
		ResolveExternal: true,
		ResolveDatabase: true,
		DetectCycles:    true,
	}
}

// ArchitectureOptions configures the ArchitectureAnalyzer stage
// (SPEC_FULL.md §4.4).
type ArchitectureOptions struct {
	DetectPatterns       bool
	DetectLayers         bool
	DetectComponents     bool
	DetectDesignPatterns bool
	DetectViolations     bool
	CustomLayers         map[string][]string // layer name -> indicator words
}

// DefaultArchitectureOptions enables every detection family with no custom
// layers.
func DefaultArchitectureOptions() ArchitectureOptions {
	return ArchitectureOptions{
		DetectPatterns:       true,
		DetectLayers:         true,
		DetectComponents:     true,
		DetectDesignPatterns: true,
		DetectViolations:     true,
	}
}

// MappingOptions configures the RelationshipMapper stage (SPEC_FULL.md §4.5).
type MappingOptions struct {
	BuildMatrix          bool
	BuildComponentGraph  bool
	BuildLayerGraph      bool
	BuildDependencyGraph bool
	BuildCallHierarchy   bool
	BuildInheritanceTree bool
}

// DefaultMappingOptions enables every independent build flag.
func DefaultMappingOptions() MappingOptions {
	return MappingOptions{
		BuildMatrix:          true,
		BuildComponentGraph:  true,
		BuildLayerGraph:      true,
		BuildDependencyGraph: true,
		BuildCallHierarchy:   true,
		BuildInheritanceTree: true,
	}
}

// VisualizationOptions configures the VisualizationBuilder stage
// (SPEC_FULL.md §4.6).
type VisualizationOptions struct {
	BuildDiagrams        bool
	BuildInteractiveGraph bool
	BuildTreemap         bool
	BuildNetworkGraph     bool
	BuildDataExports      bool
}

// DefaultVisualizationOptions enables every output family.
func DefaultVisualizationOptions() VisualizationOptions {
	return VisualizationOptions{
		BuildDiagrams:         true,
		BuildInteractiveGraph: true,
		BuildTreemap:          true,
		BuildNetworkGraph:     true,
		BuildDataExports:      true,
	}
}

// Validate runs struct-tag validation on any option struct above, surfacing
// an InvalidInput condition before a stage starts (SPEC_FULL.md §7).
func Validate(opts any) error {
	return validate.Struct(opts)
}
