// Package architecture implements stage 4 of the analysis pipeline:
// pattern, layer, component, and design-pattern inference plus
// cohesion/coupling scalars and violation detection, grounded on
// SPEC_FULL.md §4.4.
package architecture

import (
	"context"
	"strings"

	"github.com/oxhq/archlens/internal/config"
	"github.com/oxhq/archlens/internal/diag"
	"github.com/oxhq/archlens/internal/logging"
	"github.com/oxhq/archlens/internal/model"
)

const stageName = "ArchitectureAnalyzer"

// Analyze runs the ArchitectureAnalyzer stage over the outputs of the
// prior two stages. The stage is pure computation over already-published
// artifacts; ctx is honored for cancellation only, not for any I/O.
func Analyze(
	ctx context.Context,
	code *model.CodeAnalysis,
	deps *model.DependencyAnalysis,
	opts config.ArchitectureOptions,
	sink logging.Sink,
) (*model.ArchitectureAnalysis, []diag.Diagnostic, error) {
	if code == nil || deps == nil {
		return nil, nil, diag.InvalidInput(stageName, "code analysis or dependency analysis is nil")
	}
	if err := config.Validate(opts); err != nil {
		return nil, nil, diag.InvalidInput(stageName, err.Error())
	}
	select {
	case <-ctx.Done():
		return nil, nil, diag.Cancelled(stageName)
	default:
	}
	if sink == nil {
		sink = logging.Nop{}
	}

	diags := diag.NewCollector(stageName)
	classes := classSymbols(code.Symbols)
	analysis := &model.ArchitectureAnalysis{}

	classLayers := make(map[string][]string) // class FQN -> joined layer names
	layers := builtinLayers
	if opts.DetectLayers {
		layers = mergedLayers(opts.CustomLayers)
		analysis.Layers, classLayers = inferLayers(classes, layers, deps.StaticEdges)
	}

	if opts.DetectPatterns {
		analysis.DetectedPattern = inferPattern(classes, code.Symbols)
	}

	var components []model.Component
	if opts.DetectComponents {
		components = inferComponents(classes)
		analysis.Components = components
	}

	if opts.DetectDesignPatterns {
		analysis.DesignPatterns = inferDesignPatterns(classes, code.Symbols)
	}

	analysis.Cohesion = computeCohesion(classes, code.Symbols)
	analysis.Coupling = computeCoupling(code.Symbols, deps.StaticEdges)

	if opts.DetectViolations {
		analysis.Violations = detectViolations(classes, components, classLayers, deps.StaticEdges)
	}

	analysis.Modules = inferModules(code.NamespaceIndex, components)

	sink.Info("architecture analysis complete",
		"pattern", analysis.DetectedPattern,
		"layers", len(analysis.Layers),
		"components", len(analysis.Components),
		"violations", len(analysis.Violations),
	)
	return analysis, diags.Diagnostics(), nil
}

func classSymbols(symbols []model.Symbol) []model.Symbol {
	var out []model.Symbol
	for _, s := range symbols {
		if s.Kind == model.KindClass || s.Kind == model.KindStruct {
			out = append(out, s)
		}
	}
	return out
}

// countOccurrences is a case-insensitive count of how many times any
// indicator word appears as a substring of s.
func countOccurrences(s string, indicators []string) int {
	lower := strings.ToLower(s)
	count := 0
	for _, ind := range indicators {
		count += strings.Count(lower, strings.ToLower(ind))
	}
	return count
}

func methodsOf(classFQN string, allSymbols []model.Symbol) []model.Symbol {
	var out []model.Symbol
	prefix := classFQN + "."
	for _, s := range allSymbols {
		if s.Kind == model.KindMethod && strings.HasPrefix(s.FQN, prefix) {
			out = append(out, s)
		}
	}
	return out
}
