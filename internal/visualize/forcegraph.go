package visualize

import (
	"sort"

	"github.com/oxhq/archlens/internal/model"
)

// buildForceGraph assembles the interactive force-directed graph: one
// node per component sized by class count, and the top 50
// component-to-component relationships by strength as links valued by
// their edge count.
func buildForceGraph(components []model.Component, componentRels []model.ComponentRelationship) model.ForceGraph {
	nodes := make([]model.ForceGraphNode, 0, len(components))
	for _, c := range sortedComponents(components) {
		nodes = append(nodes, model.ForceGraphNode{ID: c.Name, Label: c.Name, Size: len(c.ClassFQNs)})
	}

	rels := append([]model.ComponentRelationship(nil), componentRels...)
	sort.Slice(rels, func(i, j int) bool {
		if rels[i].Strength != rels[j].Strength {
			return rels[i].Strength > rels[j].Strength
		}
		if rels[i].Source != rels[j].Source {
			return rels[i].Source < rels[j].Source
		}
		return rels[i].Target < rels[j].Target
	})
	if len(rels) > 50 {
		rels = rels[:50]
	}

	links := make([]model.ForceGraphLink, 0, len(rels))
	for _, r := range rels {
		links = append(links, model.ForceGraphLink{Source: r.Source, Target: r.Target, Value: r.Count})
	}

	return model.ForceGraph{Title: "Components", Nodes: nodes, Links: links}
}
