package architecture

import (
	"sort"
	"strings"

	"github.com/oxhq/archlens/internal/model"
)

// inferModules implements spec §4.4's module grouping: a Module is
// created per top-level namespace segment (the closest available proxy
// for an "assembly") that contains at least one class belonging to a
// detected component; namespaces with no component membership are
// dropped. A component none of whose classes appear in the namespace
// index is grouped under the first dot-separated segment of its own name.
// When the namespace index is empty, a single catch-all Module "Main"
// collects every component.
func inferModules(namespaceIndex map[string][]string, components []model.Component) []model.Module {
	if len(components) == 0 {
		return nil
	}
	if len(namespaceIndex) == 0 {
		names := make([]string, 0, len(components))
		for _, c := range components {
			names = append(names, c.Name)
		}
		sort.Strings(names)
		return []model.Module{{Name: "Main", Components: names}}
	}

	componentRoot := func(c model.Component) string {
		if root, ok := rootSegmentFromIndex(namespaceIndex, c); ok {
			return root
		}
		if i := strings.IndexByte(c.Name, '.'); i >= 0 {
			return c.Name[:i]
		}
		return c.Name
	}

	byRoot := make(map[string][]string)
	for _, c := range components {
		root := componentRoot(c)
		byRoot[root] = append(byRoot[root], c.Name)
	}

	roots := make([]string, 0, len(byRoot))
	for root := range byRoot {
		roots = append(roots, root)
	}
	sort.Strings(roots)

	out := make([]model.Module, 0, len(roots))
	for _, root := range roots {
		names := byRoot[root]
		sort.Strings(names)
		out = append(out, model.Module{Name: root, Components: names})
	}
	return out
}

// rootSegmentFromIndex finds the top-level namespace segment that owns
// at least one of the component's class FQNs, by consulting the
// namespace index built during symbol extraction.
func rootSegmentFromIndex(namespaceIndex map[string][]string, c model.Component) (string, bool) {
	for ns, fqns := range namespaceIndex {
		for _, fqn := range fqns {
			if containsStr(c.ClassFQNs, fqn) {
				root := ns
				if i := strings.IndexByte(ns, '.'); i >= 0 {
					root = ns[:i]
				}
				return root, true
			}
		}
	}
	return "", false
}

func containsStr(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
