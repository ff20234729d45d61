package relate

import (
	"math"
	"sort"
	"strings"

	"github.com/oxhq/archlens/internal/model"
)

// buildCallHierarchy implements spec §4.5's call graph: one node per
// method symbol, populated from MethodCall static edges. A method's
// complexity score, log10(callees+1)*2, rewards fan-out sublinearly so a
// single dispatcher method doesn't dwarf everything else in the tree.
func buildCallHierarchy(symbols []model.Symbol, staticEdges []model.Dependency) []model.CallHierarchyNode {
	callees := make(map[string][]string)
	callers := make(map[string][]string)
	for _, e := range staticEdges {
		if e.Kind != model.DepMethodCall {
			continue
		}
		callees[e.OriginID] = appendDistinct(callees[e.OriginID], e.TargetID)
		callers[e.TargetID] = appendDistinct(callers[e.TargetID], e.OriginID)
	}

	var out []model.CallHierarchyNode
	for _, s := range symbols {
		if s.Kind != model.KindMethod {
			continue
		}
		cs := callees[s.FQN]
		out = append(out, model.CallHierarchyNode{
			MethodFQN:  s.FQN,
			ClassFQN:   classFQNOf(s.FQN),
			Callees:    cs,
			Callers:    callers[s.FQN],
			Complexity: math.Log10(float64(len(cs))+1) * 2,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].MethodFQN < out[j].MethodFQN })
	return out
}

func appendDistinct(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// classFQNOf strips the last dot-segment of a method FQN to recover its
// containing class FQN.
func classFQNOf(methodFQN string) string {
	idx := strings.LastIndex(methodFQN, ".")
	if idx < 0 {
		return ""
	}
	return methodFQN[:idx]
}
