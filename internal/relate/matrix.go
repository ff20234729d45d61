package relate

import (
	"sort"

	"github.com/oxhq/archlens/internal/model"
)

// buildMatrix implements spec §4.5's matrix assembly: one Relationship
// per static edge, plus one ComponentMembership per class-in-component
// and one LayerMembership per component-in-layer, indexed by distinct
// sources/targets/kinds.
func buildMatrix(staticEdges []model.Dependency, components []model.Component, layers []model.Layer) model.RelationshipMatrix {
	var rels []model.Relationship

	for _, e := range staticEdges {
		rels = append(rels, model.Relationship{
			SourceID: e.OriginID, TargetID: e.TargetID,
			Kind: toRelationshipKind(e.Kind), Strength: relationshipStrength(e.Kind),
			Direction: model.DirOutbound,
		})
	}

	for _, c := range components {
		for _, fqn := range c.ClassFQNs {
			rels = append(rels, model.Relationship{
				SourceID: fqn, TargetID: c.Name,
				Kind: model.RelComponentMembership, Strength: 1.0,
				Direction: model.DirBidirectional,
			})
		}
	}

	for _, l := range layers {
		namespaces := make(map[string]bool, len(l.MemberComponents))
		for _, ns := range l.MemberComponents {
			namespaces[ns] = true
		}
		for _, c := range components {
			if namespaces[c.Name] {
				rels = append(rels, model.Relationship{
					SourceID: c.Name, TargetID: l.Name,
					Kind: model.RelLayerMembership, Strength: 1.0,
					Direction: model.DirBidirectional,
				})
			}
		}
	}

	sources := distinctSet(rels, func(r model.Relationship) string { return r.SourceID })
	targets := distinctSet(rels, func(r model.Relationship) string { return r.TargetID })

	kindSet := make(map[model.RelationshipKind]bool)
	for _, r := range rels {
		kindSet[r.Kind] = true
	}
	kinds := make([]model.RelationshipKind, 0, len(kindSet))
	for k := range kindSet {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	return model.RelationshipMatrix{Relationships: rels, Sources: sources, Targets: targets, Kinds: kinds}
}

func distinctSet(rels []model.Relationship, key func(model.Relationship) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rels {
		k := key(r)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
