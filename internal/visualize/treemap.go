package visualize

import "github.com/oxhq/archlens/internal/model"

// buildTreemap assembles the root -> component -> class-count hierarchy
// spec §4.6 names for the treemap output.
func buildTreemap(components []model.Component) model.TreemapNode {
	root := model.TreemapNode{Name: "root"}
	for _, c := range sortedComponents(components) {
		root.Children = append(root.Children, model.TreemapNode{
			Name: c.Name, Value: len(c.ClassFQNs),
		})
	}
	return root
}
