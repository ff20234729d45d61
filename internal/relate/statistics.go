package relate

import (
	"fmt"

	"github.com/oxhq/archlens/internal/model"
)

// computeStatistics implements spec §4.5's summary rollup over whichever
// mapping sub-artifacts were built; fields whose source artifact was
// skipped by options simply read as zero values.
func computeStatistics(mapping *model.RelationshipMapping, symbols []model.Symbol) model.MappingStatistics {
	stats := model.MappingStatistics{
		TotalRelationships: len(mapping.Matrix.Relationships),
		KindHistogram:      make(map[model.RelationshipKind]int),
	}

	var strengthSum float64
	for _, r := range mapping.Matrix.Relationships {
		stats.KindHistogram[r.Kind]++
		strengthSum += r.Strength
	}
	if stats.TotalRelationships > 0 {
		stats.MeanStrength = strengthSum / float64(stats.TotalRelationships)
	}

	var strongest *model.ComponentRelationship
	for i, cr := range mapping.ComponentRelationships {
		if strongest == nil || cr.Strength > strongest.Strength {
			strongest = &mapping.ComponentRelationships[i]
		}
	}
	if strongest != nil {
		stats.StrongestComponentRelDesc = fmt.Sprintf("%s -> %s (%.2f)", strongest.Source, strongest.Target, strongest.Strength)
	}

	stats.LayerRelationshipCount = len(mapping.LayerRelationships)
	for _, lr := range mapping.LayerRelationships {
		if lr.IsViolation {
			stats.LayerViolationCount++
		}
	}

	for _, s := range symbols {
		switch s.Kind {
		case model.KindMethod:
			stats.MethodCount++
		case model.KindClass:
			stats.ClassCount++
		}
	}

	for _, n := range mapping.CallHierarchy {
		if len(n.Callers) == 0 {
			stats.RootMethodCount++
		}
		if len(n.Callees) == 0 {
			stats.LeafMethodCount++
		}
	}

	for _, n := range mapping.InheritanceTree {
		if n.Depth > stats.MaxInheritanceDepth {
			stats.MaxInheritanceDepth = n.Depth
		}
	}

	stats.MaxCallDepth = maxCallDepth(mapping.CallHierarchy)

	return stats
}

// maxCallDepth computes the longest acyclic call chain over the call
// hierarchy's callee edges, guarding against recursion with a visited set.
func maxCallDepth(nodes []model.CallHierarchyNode) int {
	byMethod := make(map[string]model.CallHierarchyNode, len(nodes))
	for _, n := range nodes {
		byMethod[n.MethodFQN] = n
	}

	var depth func(fqn string, visited map[string]bool) int
	depth = func(fqn string, visited map[string]bool) int {
		if visited[fqn] {
			return 0
		}
		visited[fqn] = true
		node, ok := byMethod[fqn]
		if !ok {
			return 0
		}
		max := 0
		for _, callee := range node.Callees {
			if d := depth(callee, visited) + 1; d > max {
				max = d
			}
		}
		delete(visited, fqn)
		return max
	}

	max := 0
	for _, n := range nodes {
		if d := depth(n.MethodFQN, make(map[string]bool)); d > max {
			max = d
		}
	}
	return max
}
