package visualize

import (
	"fmt"

	"github.com/oxhq/archlens/internal/model"
)

// buildNetworkGraph assembles the network-graph node/edge representation
// from the relationship matrix, capped at the first 100 relationships
// per spec §4.6.
func buildNetworkGraph(matrix model.RelationshipMatrix) model.NetworkGraph {
	nodeSet := make(map[string]bool)
	var nodes []model.NetworkGraphNode
	addNode := func(id string) {
		if id == "" || nodeSet[id] {
			return
		}
		nodeSet[id] = true
		nodes = append(nodes, model.NetworkGraphNode{ID: id, Label: id})
	}
	for _, s := range matrix.Sources {
		addNode(s)
	}
	for _, t := range matrix.Targets {
		addNode(t)
	}

	rels := matrix.Relationships
	if len(rels) > 100 {
		rels = rels[:100]
	}

	edges := make([]model.NetworkGraphEdge, 0, len(rels))
	for i, r := range rels {
		edges = append(edges, model.NetworkGraphEdge{
			ID:     fmt.Sprintf("e%d", i),
			Source: r.SourceID, Target: r.TargetID,
			Label: string(r.Kind), Weight: r.Strength,
		})
	}

	return model.NetworkGraph{Nodes: nodes, Edges: edges}
}
