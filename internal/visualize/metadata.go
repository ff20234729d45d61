package visualize

import (
	"sort"
	"time"

	"github.com/oxhq/archlens/internal/config"
	"github.com/oxhq/archlens/internal/model"
)

// buildMetadata records a VisualizationPackage's generation timestamp,
// the totals spec §4.6 lists, and the toolchain tags (the output
// families actually built this run) so a consumer can tell which
// artifacts to expect without inspecting them all.
func buildMetadata(now time.Time, totalComponents, totalLayers, totalRelationships int, opts config.VisualizationOptions) model.PackageMetadata {
	var tags []string
	if opts.BuildDiagrams {
		tags = append(tags, "mermaid")
	}
	if opts.BuildInteractiveGraph {
		tags = append(tags, "d3")
	}
	if opts.BuildTreemap {
		tags = append(tags, "treemap")
	}
	if opts.BuildNetworkGraph {
		tags = append(tags, "cytoscape")
	}
	if opts.BuildDataExports {
		tags = append(tags, "csv", "json")
	}
	tags = append(tags, "html")
	sort.Strings(tags)

	return model.PackageMetadata{
		GeneratedAt:        now,
		TotalComponents:    totalComponents,
		TotalLayers:        totalLayers,
		TotalRelationships: totalRelationships,
		ToolchainTags:      tags,
	}
}
