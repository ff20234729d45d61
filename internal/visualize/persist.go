package visualize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oxhq/archlens/internal/model"
)

// Persist writes a VisualizationPackage to dir using the on-disk layout
// spec §6 names. This is plain os/path/filepath I/O, not the teacher's
// atomic-writer machinery — these are freshly generated report
// artifacts, not source files under concurrent edit.
func Persist(dir string, pkg *model.VisualizationPackage) error {
	for _, sub := range []string{"mermaid", "d3", "cytoscape", "data", "reports"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", sub, err)
		}
	}

	var artifacts []indexEntry

	for _, d := range pkg.Diagrams {
		title := sanitizeTitle(d.Title)
		path := filepath.Join(dir, "mermaid", title+".mmd")
		if err := os.WriteFile(path, []byte(d.Source), 0o644); err != nil {
			return fmt.Errorf("write mermaid diagram %s: %w", title, err)
		}
		artifacts = append(artifacts, indexEntry{Label: d.Title + " (mermaid)", Path: "mermaid/" + title + ".mmd"})
	}

	if pkg.ForceGraph != nil {
		title := sanitizeTitle(pkg.ForceGraph.Title)
		html, data, err := renderForceGraphHTML(*pkg.ForceGraph)
		if err != nil {
			return fmt.Errorf("render force graph: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "d3", title+".html"), []byte(html), 0o644); err != nil {
			return fmt.Errorf("write force graph html: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "d3", title+"_data.json"), []byte(data), 0o644); err != nil {
			return fmt.Errorf("write force graph data: %w", err)
		}
		artifacts = append(artifacts, indexEntry{Label: "Force graph", Path: "d3/" + title + ".html"})
		artifacts = append(artifacts, indexEntry{Label: "Force graph data", Path: "d3/" + title + "_data.json"})
	}

	if pkg.NetworkGraph != nil {
		const title = "network"
		html, data, err := renderNetworkGraphHTML(*pkg.NetworkGraph)
		if err != nil {
			return fmt.Errorf("render network graph: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "cytoscape", title+".html"), []byte(html), 0o644); err != nil {
			return fmt.Errorf("write network graph html: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "cytoscape", title+"_data.json"), []byte(data), 0o644); err != nil {
			return fmt.Errorf("write network graph data: %w", err)
		}
		artifacts = append(artifacts, indexEntry{Label: "Network graph", Path: "cytoscape/" + title + ".html"})
		artifacts = append(artifacts, indexEntry{Label: "Network graph data", Path: "cytoscape/" + title + "_data.json"})
	}

	if pkg.Treemap != nil {
		data, err := json.MarshalIndent(pkg.Treemap, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal treemap: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "data", "treemap.json"), data, 0o644); err != nil {
			return fmt.Errorf("write treemap: %w", err)
		}
		artifacts = append(artifacts, indexEntry{Label: "Treemap data", Path: "data/treemap.json"})
	}

	if pkg.Exports.RelationshipMatrixJSON != "" {
		if err := os.WriteFile(filepath.Join(dir, "data", "relationship-matrix.json"), []byte(pkg.Exports.RelationshipMatrixJSON), 0o644); err != nil {
			return fmt.Errorf("write relationship matrix: %w", err)
		}
		artifacts = append(artifacts, indexEntry{Label: "Relationship matrix", Path: "data/relationship-matrix.json"})
	}
	if pkg.Exports.ComponentsCSV != "" {
		if err := os.WriteFile(filepath.Join(dir, "data", "components.csv"), []byte(pkg.Exports.ComponentsCSV), 0o644); err != nil {
			return fmt.Errorf("write components csv: %w", err)
		}
		artifacts = append(artifacts, indexEntry{Label: "Components", Path: "data/components.csv"})
	}
	if pkg.Exports.DependenciesCSV != "" {
		if err := os.WriteFile(filepath.Join(dir, "data", "dependencies.csv"), []byte(pkg.Exports.DependenciesCSV), 0o644); err != nil {
			return fmt.Errorf("write dependencies csv: %w", err)
		}
		artifacts = append(artifacts, indexEntry{Label: "Dependencies", Path: "data/dependencies.csv"})
	}

	if pkg.SummaryReportHTML != "" {
		if err := os.WriteFile(filepath.Join(dir, "reports", "summary.html"), []byte(pkg.SummaryReportHTML), 0o644); err != nil {
			return fmt.Errorf("write summary report: %w", err)
		}
		artifacts = append(artifacts, indexEntry{Label: "Summary report", Path: "reports/summary.html"})
	}

	metadata, err := json.MarshalIndent(pkg.Metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "visualization-metadata.json"), metadata, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	artifacts = append(artifacts, indexEntry{Label: "Package metadata", Path: "visualization-metadata.json"})

	indexHTML := buildIndexHTML(artifacts)
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(indexHTML), 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	return nil
}
