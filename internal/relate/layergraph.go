package relate

import (
	"sort"

	"github.com/oxhq/archlens/internal/model"
)

// buildLayerRelationships aggregates static edges by the pair of layers
// their endpoints' namespaces fall in, per spec §4.5. A relationship
// from a higher-level layer (further from the user) into a lower-level
// one is flagged as a violation and carries a 0.5 layer-crossing penalty
// versus the raw dependency-kind strength; legitimate downward
// relationships, toward higher levels, keep full strength.
func buildLayerRelationships(staticEdges []model.Dependency, layers []model.Layer, symbols []model.Symbol) []model.LayerRelationship {
	nsToLayers := make(map[string][]model.Layer)
	for _, l := range layers {
		for _, ns := range l.MemberComponents {
			nsToLayers[ns] = append(nsToLayers[ns], l)
		}
	}
	fqnToNamespace := make(map[string]string, len(symbols))
	for _, s := range symbols {
		if ns := s.Namespace(); ns != "" {
			fqnToNamespace[s.FQN] = ns
		}
	}

	type agg struct {
		count    int
		strength float64
		violated bool
	}
	pairs := make(map[[2]string]*agg)

	for _, e := range staticEdges {
		srcNS, ok1 := fqnToNamespace[e.OriginID]
		tgtNS, ok2 := fqnToNamespace[e.TargetID]
		if !ok1 || !ok2 {
			continue
		}
		for _, srcLayer := range nsToLayers[srcNS] {
			for _, tgtLayer := range nsToLayers[tgtNS] {
				if srcLayer.Name == tgtLayer.Name {
					continue
				}
				key := [2]string{srcLayer.Name, tgtLayer.Name}
				a, ok := pairs[key]
				if !ok {
					a = &agg{}
					pairs[key] = a
				}
				a.count++
				if srcLayer.Level > tgtLayer.Level {
					a.strength += relationshipStrength(e.Kind) * 0.5
					a.violated = true
				} else {
					a.strength += relationshipStrength(e.Kind)
				}
			}
		}
	}

	var out []model.LayerRelationship
	for key, a := range pairs {
		out = append(out, model.LayerRelationship{
			Source: key[0], Target: key[1], Count: a.count,
			Strength: a.strength / float64(a.count), IsViolation: a.violated,
		})
	}

	levelOf := make(map[string]int, len(layers))
	for _, l := range layers {
		levelOf[l.Name] = l.Level
	}
	sort.Slice(out, func(i, j int) bool {
		if levelOf[out[i].Source] != levelOf[out[j].Source] {
			return levelOf[out[i].Source] < levelOf[out[j].Source]
		}
		return levelOf[out[i].Target] < levelOf[out[j].Target]
	})
	return out
}
