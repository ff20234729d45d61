package relate

import (
	"math"
	"sort"

	"github.com/oxhq/archlens/internal/model"
)

// buildDependencyStrengthMatrix implements spec §4.5's weighted
// dependency-strength matrix: per ordered (source, target) pair with at
// least one static edge, strength is the summed per-edge strength scaled
// by log10(count+1), which rewards repeated coupling without letting a
// single noisy hub dominate linearly.
func buildDependencyStrengthMatrix(staticEdges []model.Dependency) model.DependencyStrengthMatrix {
	type agg struct {
		count      int
		kinds      map[model.RelationshipKind]bool
		sumStrength float64
		maxStrength float64
	}
	pairs := make(map[[2]string]*agg)

	for _, e := range staticEdges {
		key := [2]string{e.OriginID, e.TargetID}
		a, ok := pairs[key]
		if !ok {
			a = &agg{kinds: make(map[model.RelationshipKind]bool)}
			pairs[key] = a
		}
		s := relationshipStrength(e.Kind)
		a.count++
		a.kinds[toRelationshipKind(e.Kind)] = true
		a.sumStrength += s
		if s > a.maxStrength {
			a.maxStrength = s
		}
	}

	var entries []model.DependencyMatrixEntry
	minStrength, maxStrength := math.Inf(1), math.Inf(-1)
	for key, a := range pairs {
		kinds := make([]model.RelationshipKind, 0, len(a.kinds))
		for k := range a.kinds {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

		strength := a.sumStrength * math.Log10(float64(a.count)+1)
		entries = append(entries, model.DependencyMatrixEntry{
			Source: key[0], Target: key[1], Count: a.count, Kinds: kinds,
			Strength: strength, MaxStrength: a.maxStrength,
			AvgStrength: a.sumStrength / float64(a.count),
		})
		if strength < minStrength {
			minStrength = strength
		}
		if strength > maxStrength {
			maxStrength = strength
		}
	}
	if len(entries) == 0 {
		minStrength, maxStrength = 0, 0
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Source != entries[j].Source {
			return entries[i].Source < entries[j].Source
		}
		return entries[i].Target < entries[j].Target
	})

	return model.DependencyStrengthMatrix{Entries: entries, MinStrength: minStrength, MaxStrength: maxStrength}
}
