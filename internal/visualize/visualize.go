// Package visualize implements stage 6 of the analysis pipeline: diagram
// sources, an interactive force-directed graph, a treemap, a
// network-graph export, tabular/JSON data exports, and an HTML summary
// report, assembled from the four prior stages' published artifacts.
// Grounded on SPEC_FULL.md §4.6.
package visualize

import (
	"context"
	"time"

	"github.com/oxhq/archlens/internal/config"
	"github.com/oxhq/archlens/internal/diag"
	"github.com/oxhq/archlens/internal/logging"
	"github.com/oxhq/archlens/internal/model"
)

const stageName = "VisualizationBuilder"

// Build runs the VisualizationBuilder stage over the outputs of every
// prior stage. Like ArchitectureAnalyzer, this stage is pure computation;
// ctx is honored for cancellation only.
func Build(
	ctx context.Context,
	code *model.CodeAnalysis,
	deps *model.DependencyAnalysis,
	arch *model.ArchitectureAnalysis,
	mapping *model.RelationshipMapping,
	opts config.VisualizationOptions,
	sink logging.Sink,
) (*model.VisualizationPackage, []diag.Diagnostic, error) {
	if code == nil || deps == nil || arch == nil || mapping == nil {
		return nil, nil, diag.InvalidInput(stageName, "one of code, dependency, architecture, or mapping analysis is nil")
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
	pkg := &model.VisualizationPackage{}

	if opts.BuildDiagrams {
		pkg.Diagrams = []model.DiagramSource{
			buildComponentDiagram(arch.Components),
			buildLayerDiagram(arch.Layers),
			buildDependencyDiagram(mapping.DependencyMatrix),
			buildCallHierarchyDiagram(mapping.CallHierarchy),
			buildInheritanceDiagram(mapping.InheritanceTree),
		}
	}

	if opts.BuildInteractiveGraph {
		fg := buildForceGraph(arch.Components, mapping.ComponentRelationships)
		pkg.ForceGraph = &fg
	}

	if opts.BuildTreemap {
		tm := buildTreemap(arch.Components)
		pkg.Treemap = &tm
	}

	if opts.BuildNetworkGraph {
		ng := buildNetworkGraph(mapping.Matrix)
		pkg.NetworkGraph = &ng
	}

	if opts.BuildDataExports {
		exports, err := buildDataExports(mapping.Matrix, arch.Components, deps.StaticEdges)
		if err != nil {
			return nil, nil, diag.Fatal(stageName, "data export rendering failed: "+err.Error())
		}
		pkg.Exports = exports
	}

	report, err := buildSummaryReportHTML(arch.Components, arch.Layers, len(mapping.Matrix.Relationships))
	if err != nil {
		return nil, nil, diag.Fatal(stageName, "summary report rendering failed: "+err.Error())
	}
	pkg.SummaryReportHTML = report

	pkg.Metadata = buildMetadata(time.Now().UTC(), len(arch.Components), len(arch.Layers), len(mapping.Matrix.Relationships), opts)

	sink.Info("visualization build complete",
		"diagrams", len(pkg.Diagrams),
		"has_force_graph", pkg.ForceGraph != nil,
		"has_treemap", pkg.Treemap != nil,
		"has_network_graph", pkg.NetworkGraph != nil,
	)
	return pkg, diags.Diagnostics(), nil
}
