package relate

import (
	"sort"
	"strings"

	"github.com/oxhq/archlens/internal/model"
)

// buildInheritanceTree implements spec §4.5's inheritance tree: one node
// per class/interface symbol, with bases/derived populated from
// Inheritance static edges in both directions, and a recursive depth
// computed from the chain of bases. A visited set breaks any inheritance
// cycle; a class revisited mid-chain contributes no further depth.
func buildInheritanceTree(symbols []model.Symbol, staticEdges []model.Dependency) []model.InheritanceNode {
	bases := make(map[string][]string)
	derived := make(map[string][]string)
	for _, e := range staticEdges {
		if e.Kind != model.DepInheritance {
			continue
		}
		bases[e.OriginID] = appendDistinct(bases[e.OriginID], e.TargetID)
		derived[e.TargetID] = appendDistinct(derived[e.TargetID], e.OriginID)
	}

	depthOf := func(fqn string) int {
		visited := make(map[string]bool)
		var depth func(string) int
		depth = func(cur string) int {
			if visited[cur] {
				return 0
			}
			visited[cur] = true
			max := 0
			for _, b := range bases[cur] {
				if d := depth(b) + 1; d > max {
					max = d
				}
			}
			delete(visited, cur)
			return max
		}
		return depth(fqn)
	}

	var out []model.InheritanceNode
	for _, s := range symbols {
		if s.Kind != model.KindClass && s.Kind != model.KindInterface {
			continue
		}
		out = append(out, model.InheritanceNode{
			ClassFQN:    s.FQN,
			Bases:       bases[s.FQN],
			Derived:     derived[s.FQN],
			Depth:       depthOf(s.FQN),
			IsAbstract:  hasModifier(s.Modifiers, "abstract"),
			IsInterface: s.Kind == model.KindInterface,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ClassFQN < out[j].ClassFQN })
	return out
}

func hasModifier(modifiers []string, want string) bool {
	for _, m := range modifiers {
		if strings.EqualFold(m, want) {
			return true
		}
	}
	return false
}
