// Package relate implements stage 5 of the analysis pipeline: build the
// typed relationship matrix, component/layer relationship graphs, the
// dependency-strength matrix, the call hierarchy, and the inheritance
// tree, grounded on SPEC_FULL.md §4.5.
package relate

import (
	"context"

	"github.com/oxhq/archlens/internal/config"
	"github.com/oxhq/archlens/internal/diag"
	"github.com/oxhq/archlens/internal/logging"
	"github.com/oxhq/archlens/internal/model"
)

const stageName = "RelationshipMapper"

// relationshipStrength is the fixed strength table from spec §4.5.
func relationshipStrength(kind model.DependencyKind) float64 {
	switch kind {
	case model.DepInheritance:
		return 1.0
	case model.DepMethodCall:
		return 0.8
	case model.DepPropertyAccess:
		return 0.6
	case model.DepUsingImport:
		return 0.2
	default:
		return 0.1
	}
}

func toRelationshipKind(kind model.DependencyKind) model.RelationshipKind {
	switch kind {
	case model.DepInheritance:
		return model.RelInheritance
	case model.DepMethodCall:
		return model.RelMethodCall
	case model.DepPropertyAccess:
		return model.RelPropertyAccess
	case model.DepUsingImport:
		return model.RelUsing
	default:
		return model.RelUnknown
	}
}

// Map runs the RelationshipMapper stage over the outputs of the prior
// three stages.
func Map(
	ctx context.Context,
	code *model.CodeAnalysis,
	deps *model.DependencyAnalysis,
	arch *model.ArchitectureAnalysis,
	opts config.MappingOptions,
	sink logging.Sink,
) (*model.RelationshipMapping, []diag.Diagnostic, error) {
	if code == nil || deps == nil || arch == nil {
		return nil, nil, diag.InvalidInput(stageName, "code, dependency, or architecture analysis is nil")
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
	mapping := &model.RelationshipMapping{}

	if opts.BuildMatrix {
		mapping.Matrix = buildMatrix(deps.StaticEdges, arch.Components, arch.Layers)
	}
	if opts.BuildComponentGraph {
		mapping.ComponentRelationships = buildComponentRelationships(deps.StaticEdges, arch.Components)
	}
	if opts.BuildLayerGraph {
		mapping.LayerRelationships = buildLayerRelationships(deps.StaticEdges, arch.Layers, code.Symbols)
	}
	if opts.BuildDependencyGraph {
		mapping.DependencyMatrix = buildDependencyStrengthMatrix(deps.StaticEdges)
	}
	if opts.BuildCallHierarchy {
		mapping.CallHierarchy = buildCallHierarchy(code.Symbols, deps.StaticEdges)
	}
	if opts.BuildInheritanceTree {
		mapping.InheritanceTree = buildInheritanceTree(code.Symbols, deps.StaticEdges)
	}

	mapping.Statistics = computeStatistics(mapping, code.Symbols)

	sink.Info("relationship mapping complete",
		"relationships", len(mapping.Matrix.Relationships),
		"component_relationships", len(mapping.ComponentRelationships),
		"layer_relationships", len(mapping.LayerRelationships),
	)
	return mapping, diags.Diagnostics(), nil
}
