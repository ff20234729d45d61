package relate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlens/internal/config"
	"github.com/oxhq/archlens/internal/model"
)

func classSym(name, fqn, namespace string) model.Symbol {
	return model.Symbol{Name: name, FQN: fqn, Kind: model.KindClass,
		Metadata: map[string]string{"Namespace": namespace}}
}

func methodSym(fqn string) model.Symbol {
	return model.Symbol{Name: fqn, FQN: fqn, Kind: model.KindMethod}
}

func TestMapRejectsNilInputs(t *testing.T) {
	_, _, err := Map(context.Background(), nil, nil, nil, config.DefaultMappingOptions(), nil)
	assert.Error(t, err)
}

func TestMapBuildsMatrixFromStaticEdges(t *testing.T) {
	code := &model.CodeAnalysis{}
	deps := &model.DependencyAnalysis{
		StaticEdges: []model.Dependency{
			{Kind: model.DepInheritance, OriginID: "A", TargetID: "B"},
			{Kind: model.DepMethodCall, OriginID: "A", TargetID: "C"},
		},
	}
	arch := &model.ArchitectureAnalysis{}

	mapping, diags, err := Map(context.Background(), code, deps, arch, config.DefaultMappingOptions(), nil)
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, mapping.Matrix.Relationships, 2)
	assert.Contains(t, mapping.Matrix.Sources, "A")
	assert.Contains(t, mapping.Matrix.Kinds, model.RelInheritance)
}

func TestBuildComponentRelationshipsAggregatesAcrossComponents(t *testing.T) {
	components := []model.Component{
		{Name: "Acme.Web", ClassFQNs: []string{"Acme.Web.Controller"}},
		{Name: "Acme.Data", ClassFQNs: []string{"Acme.Data.Repository"}},
	}
	edges := []model.Dependency{
		{Kind: model.DepMethodCall, OriginID: "Acme.Web.Controller", TargetID: "Acme.Data.Repository"},
		{Kind: model.DepMethodCall, OriginID: "Acme.Web.Controller", TargetID: "Acme.Data.Repository"},
	}

	rels := buildComponentRelationships(edges, components)
	require.Len(t, rels, 1)
	assert.Equal(t, "Acme.Web", rels[0].Source)
	assert.Equal(t, "Acme.Data", rels[0].Target)
	assert.Equal(t, 2, rels[0].Count)
	assert.InDelta(t, 0.8, rels[0].Strength, 0.0001)
}

func TestBuildComponentRelationshipsIgnoresSameComponentEdges(t *testing.T) {
	components := []model.Component{
		{Name: "Acme.Web", ClassFQNs: []string{"Acme.Web.A", "Acme.Web.B"}},
	}
	edges := []model.Dependency{
		{Kind: model.DepMethodCall, OriginID: "Acme.Web.A", TargetID: "Acme.Web.B"},
	}
	assert.Empty(t, buildComponentRelationships(edges, components))
}

func TestBuildLayerRelationshipsAllowsDownwardDependency(t *testing.T) {
	layers := []model.Layer{
		{Name: "Presentation", Level: 1, MemberComponents: []string{"Acme.Web"}},
		{Name: "Data", Level: 3, MemberComponents: []string{"Acme.Data"}},
	}
	symbols := []model.Symbol{
		classSym("Controller", "Acme.Web.Controller", "Acme.Web"),
		classSym("Repository", "Acme.Data.Repository", "Acme.Data"),
	}
	edges := []model.Dependency{
		{Kind: model.DepMethodCall, OriginID: "Acme.Web.Controller", TargetID: "Acme.Data.Repository"},
	}

	rels := buildLayerRelationships(edges, layers, symbols)
	require.Len(t, rels, 1)
	assert.Equal(t, "Presentation", rels[0].Source)
	assert.Equal(t, "Data", rels[0].Target)
	assert.False(t, rels[0].IsViolation)
	assert.InDelta(t, 0.8, rels[0].Strength, 0.0001, "non-violating cross-layer edge should keep full strength")
}

func TestBuildLayerRelationshipsFlagsUpwardAsViolation(t *testing.T) {
	layers := []model.Layer{
		{Name: "Presentation", Level: 1, MemberComponents: []string{"Acme.Web"}},
		{Name: "Data", Level: 3, MemberComponents: []string{"Acme.Data"}},
	}
	symbols := []model.Symbol{
		classSym("Repository", "Acme.Data.Repository", "Acme.Data"),
		classSym("Controller", "Acme.Web.Controller", "Acme.Web"),
	}
	edges := []model.Dependency{
		{Kind: model.DepMethodCall, OriginID: "Acme.Data.Repository", TargetID: "Acme.Web.Controller"},
	}

	rels := buildLayerRelationships(edges, layers, symbols)
	require.Len(t, rels, 1)
	assert.True(t, rels[0].IsViolation)
	assert.InDelta(t, 0.4, rels[0].Strength, 0.0001, "violating cross-layer edge should carry the 0.5 penalty")
}

func TestBuildDependencyStrengthMatrixScalesWithCount(t *testing.T) {
	edges := []model.Dependency{
		{Kind: model.DepMethodCall, OriginID: "A", TargetID: "B"},
		{Kind: model.DepMethodCall, OriginID: "A", TargetID: "B"},
		{Kind: model.DepMethodCall, OriginID: "A", TargetID: "B"},
	}
	matrix := buildDependencyStrengthMatrix(edges)
	require.Len(t, matrix.Entries, 1)
	entry := matrix.Entries[0]
	assert.Equal(t, 3, entry.Count)
	assert.Greater(t, entry.Strength, entry.AvgStrength)
	assert.InDelta(t, 0.8, entry.MaxStrength, 0.0001)
}

func TestBuildCallHierarchyComputesCalleesCallersAndComplexity(t *testing.T) {
	symbols := []model.Symbol{methodSym("A.Do"), methodSym("A.Helper")}
	edges := []model.Dependency{
		{Kind: model.DepMethodCall, OriginID: "A.Do", TargetID: "A.Helper"},
	}

	nodes := buildCallHierarchy(symbols, edges)
	require.Len(t, nodes, 2)

	var doNode, helperNode *model.CallHierarchyNode
	for i := range nodes {
		switch nodes[i].MethodFQN {
		case "A.Do":
			doNode = &nodes[i]
		case "A.Helper":
			helperNode = &nodes[i]
		}
	}
	require.NotNil(t, doNode)
	require.NotNil(t, helperNode)
	assert.Equal(t, []string{"A.Helper"}, doNode.Callees)
	assert.Greater(t, doNode.Complexity, 0.0)
	assert.Equal(t, []string{"A.Do"}, helperNode.Callers)
	assert.Empty(t, helperNode.Callees)
}

func TestBuildInheritanceTreeComputesDepth(t *testing.T) {
	symbols := []model.Symbol{
		classSym("Base", "Acme.Base", "Acme"),
		classSym("Mid", "Acme.Mid", "Acme"),
		classSym("Leaf", "Acme.Leaf", "Acme"),
	}
	edges := []model.Dependency{
		{Kind: model.DepInheritance, OriginID: "Acme.Mid", TargetID: "Acme.Base"},
		{Kind: model.DepInheritance, OriginID: "Acme.Leaf", TargetID: "Acme.Mid"},
	}

	nodes := buildInheritanceTree(symbols, edges)
	byFQN := make(map[string]model.InheritanceNode)
	for _, n := range nodes {
		byFQN[n.ClassFQN] = n
	}
	assert.Equal(t, 0, byFQN["Acme.Base"].Depth)
	assert.Equal(t, 1, byFQN["Acme.Mid"].Depth)
	assert.Equal(t, 2, byFQN["Acme.Leaf"].Depth)
}

func TestBuildInheritanceTreeBreaksCycles(t *testing.T) {
	symbols := []model.Symbol{
		classSym("A", "Acme.A", "Acme"),
		classSym("B", "Acme.B", "Acme"),
	}
	edges := []model.Dependency{
		{Kind: model.DepInheritance, OriginID: "Acme.A", TargetID: "Acme.B"},
		{Kind: model.DepInheritance, OriginID: "Acme.B", TargetID: "Acme.A"},
	}
	assert.NotPanics(t, func() {
		buildInheritanceTree(symbols, edges)
	})
}

func TestComputeStatisticsSummarizesMapping(t *testing.T) {
	mapping := &model.RelationshipMapping{
		Matrix: model.RelationshipMatrix{
			Relationships: []model.Relationship{
				{SourceID: "A", TargetID: "B", Kind: model.RelMethodCall, Strength: 0.8},
			},
		},
		ComponentRelationships: []model.ComponentRelationship{
			{Source: "X", Target: "Y", Strength: 0.5},
			{Source: "X", Target: "Z", Strength: 0.9},
		},
		LayerRelationships: []model.LayerRelationship{
			{Source: "Presentation", Target: "Data", IsViolation: true},
		},
		CallHierarchy: []model.CallHierarchyNode{
			{MethodFQN: "A.Do", Callees: []string{"A.Helper"}},
			{MethodFQN: "A.Helper", Callers: []string{"A.Do"}},
		},
		InheritanceTree: []model.InheritanceNode{
			{ClassFQN: "Acme.Leaf", Depth: 2},
		},
	}
	symbols := []model.Symbol{methodSym("A.Do"), methodSym("A.Helper"), classSym("Widget", "Acme.Widget", "Acme")}

	stats := computeStatistics(mapping, symbols)
	assert.Equal(t, 1, stats.TotalRelationships)
	assert.Equal(t, 0.8, stats.MeanStrength)
	assert.Equal(t, "X -> Z (0.90)", stats.StrongestComponentRelDesc)
	assert.Equal(t, 1, stats.LayerRelationshipCount)
	assert.Equal(t, 1, stats.LayerViolationCount)
	assert.Equal(t, 2, stats.MethodCount)
	assert.Equal(t, 1, stats.ClassCount)
	assert.Equal(t, 1, stats.RootMethodCount)
	assert.Equal(t, 1, stats.LeafMethodCount)
	assert.Equal(t, 1, stats.MaxCallDepth)
	assert.Equal(t, 2, stats.MaxInheritanceDepth)
}
