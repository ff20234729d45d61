package architecture

import (
	"sort"

	"github.com/oxhq/archlens/internal/model"
)

// mergedLayers appends any configured custom layers after the four
// built-in ones, assigning each custom layer the next level in
// alphabetical-by-name order for a deterministic layer ordering.
func mergedLayers(custom map[string][]string) []layerDef {
	out := append([]layerDef(nil), builtinLayers...)
	if len(custom) == 0 {
		return out
	}
	names := make([]string, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		out = append(out, layerDef{Name: name, Level: len(builtinLayers) + 1 + i, Indicators: custom[name]})
	}
	return out
}

// inferLayers implements spec §4.4's layer inference: score each class
// against each layer's indicator words (name weight 2, namespace weight
// 1); a class joins every layer it scores positively against. A layer's
// outbound FQNs are the targets of static edges from member classes that
// land outside the layer. Returns the layers (ordered by level) and the
// class -> joined-layer-names index used by violation detection.
func inferLayers(classes []model.Symbol, layers []layerDef, staticEdges []model.Dependency) ([]model.Layer, map[string][]string) {
	classLayers := make(map[string][]string)
	layerMembers := make(map[string][]string) // layer name -> member class FQNs

	for _, def := range layers {
		for _, c := range classes {
			score := 2*countOccurrences(c.Name, def.Indicators) + countOccurrences(c.Namespace(), def.Indicators)
			if score > 0 {
				classLayers[c.FQN] = append(classLayers[c.FQN], def.Name)
				layerMembers[def.Name] = append(layerMembers[def.Name], c.FQN)
			}
		}
	}

	out := make([]model.Layer, 0, len(layers))
	for _, def := range layers {
		members := layerMembers[def.Name]
		memberSet := make(map[string]bool, len(members))
		for _, m := range members {
			memberSet[m] = true
		}

		var outbound []string
		seen := make(map[string]bool)
		for _, m := range members {
			for _, e := range staticEdges {
				if e.OriginID != m || memberSet[e.TargetID] {
					continue
				}
				if !seen[e.TargetID] {
					seen[e.TargetID] = true
					outbound = append(outbound, e.TargetID)
				}
			}
		}

		out = append(out, model.Layer{
			Name:             def.Name,
			Level:            def.Level,
			MemberComponents: distinctNamespacesOf(members, classes),
			OutboundFQNs:     outbound,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out, classLayers
}

// distinctNamespacesOf returns the distinct namespaces of the given class
// FQNs, used as the layer's member-component stand-in when Component
// inference's groupings are not otherwise threaded through.
func distinctNamespacesOf(fqns []string, classes []model.Symbol) []string {
	byFQN := make(map[string]string, len(classes))
	for _, c := range classes {
		byFQN[c.FQN] = c.Namespace()
	}
	seen := make(map[string]bool)
	var out []string
	for _, fqn := range fqns {
		ns := byFQN[fqn]
		if ns == "" || seen[ns] {
			continue
		}
		seen[ns] = true
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}
