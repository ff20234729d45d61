package architecture

import (
	"sort"
	"strings"

	"github.com/oxhq/archlens/internal/model"
)

// inferComponents implements spec §4.4's component inference: group
// classes by namespace, skip singleton groups (a single class on its
// own namespace contributes no useful clustering), and decide each
// component's type from its namespace first, falling back to member
// class-name suffixes, then Unknown. Cross-cutting Logging/Validation
// components are additionally synthesized by scanning every class name.
func inferComponents(classes []model.Symbol) []model.Component {
	byNamespace := make(map[string][]model.Symbol)
	for _, c := range classes {
		ns := c.Namespace()
		if ns == "" {
			continue
		}
		byNamespace[ns] = append(byNamespace[ns], c)
	}

	var names []string
	for ns, members := range byNamespace {
		if len(members) <= 1 {
			continue
		}
		names = append(names, ns)
	}
	sort.Strings(names)

	out := make([]model.Component, 0, len(names)+2)
	for _, ns := range names {
		members := byNamespace[ns]
		out = append(out, model.Component{
			Name:      ns,
			Type:      componentType(ns, members),
			ClassFQNs: fqnsOf(members),
		})
	}

	if logging := crossCuttingComponent("Logging", classes, []string{"Log", "Audit"}); logging != nil {
		out = append(out, *logging)
	}
	if validation := crossCuttingComponent("Validation", classes, []string{"Valid", "Rule"}); validation != nil {
		out = append(out, *validation)
	}

	return out
}

func componentType(namespace string, members []model.Symbol) model.ComponentType {
	lower := strings.ToLower(namespace)
	for _, ind := range componentTypeIndicators {
		if strings.Contains(lower, ind.Substring) {
			return ind.Type
		}
	}
	for _, m := range members {
		if strings.HasSuffix(m.Name, "Service") || strings.HasSuffix(m.Name, "Manager") {
			return model.ComponentService
		}
		if strings.HasSuffix(m.Name, "Model") || strings.HasSuffix(m.Name, "Entity") {
			return model.ComponentDataAccess
		}
	}
	return model.ComponentUnknown
}

func crossCuttingComponent(name string, classes []model.Symbol, indicators []string) *model.Component {
	var fqns []string
	for _, c := range classes {
		if countOccurrences(c.Name, indicators) > 0 {
			fqns = append(fqns, c.FQN)
		}
	}
	if len(fqns) == 0 {
		return nil
	}
	sort.Strings(fqns)
	return &model.Component{Name: name, Type: model.ComponentUtility, ClassFQNs: fqns}
}

func fqnsOf(symbols []model.Symbol, kinds ...model.SymbolKind) []string {
	allow := make(map[model.SymbolKind]bool, len(kinds))
	for _, k := range kinds {
		allow[k] = true
	}
	var out []string
	for _, s := range symbols {
		if len(allow) == 0 || allow[s.Kind] {
			out = append(out, s.FQN)
		}
	}
	sort.Strings(out)
	return out
}
