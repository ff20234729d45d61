package relate

import (
	"sort"

	"github.com/oxhq/archlens/internal/model"
)

// buildComponentRelationships aggregates static edges by the pair of
// components their endpoints fall in, per spec §4.5.
func buildComponentRelationships(staticEdges []model.Dependency, components []model.Component) []model.ComponentRelationship {
	classToComponent := make(map[string]string)
	for _, c := range components {
		for _, fqn := range c.ClassFQNs {
			classToComponent[fqn] = c.Name
		}
	}

	type agg struct {
		count    int
		kinds    map[model.RelationshipKind]bool
		strength float64
	}
	pairs := make(map[[2]string]*agg)

	for _, e := range staticEdges {
		src, ok1 := classToComponent[e.OriginID]
		tgt, ok2 := classToComponent[e.TargetID]
		if !ok1 || !ok2 || src == tgt {
			continue
		}
		key := [2]string{src, tgt}
		a, ok := pairs[key]
		if !ok {
			a = &agg{kinds: make(map[model.RelationshipKind]bool)}
			pairs[key] = a
		}
		a.count++
		a.kinds[toRelationshipKind(e.Kind)] = true
		a.strength += relationshipStrength(e.Kind)
	}

	var out []model.ComponentRelationship
	for key, a := range pairs {
		kinds := make([]model.RelationshipKind, 0, len(a.kinds))
		for k := range a.kinds {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		out = append(out, model.ComponentRelationship{
			Source: key[0], Target: key[1], Count: a.count,
			Kinds: kinds, Strength: a.strength / float64(a.count),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Strength != out[j].Strength {
			return out[i].Strength > out[j].Strength
		}
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})
	return out
}
