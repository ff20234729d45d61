package visualize

import (
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/oxhq/archlens/internal/model"
)

// buildDataExports renders the relationship-matrix JSON, components CSV,
// and dependencies CSV (capped at 1000 rows) spec §4.6 names.
func buildDataExports(matrix model.RelationshipMatrix, components []model.Component, staticEdges []model.Dependency) (model.DataExports, error) {
	matrixJSON, err := json.MarshalIndent(matrix, "", "  ")
	if err != nil {
		return model.DataExports{}, err
	}

	componentsCSV, err := buildComponentsCSV(components)
	if err != nil {
		return model.DataExports{}, err
	}

	dependenciesCSV, err := buildDependenciesCSV(staticEdges)
	if err != nil {
		return model.DataExports{}, err
	}

	return model.DataExports{
		RelationshipMatrixJSON: string(matrixJSON),
		ComponentsCSV:          componentsCSV,
		DependenciesCSV:        dependenciesCSV,
	}, nil
}

func buildComponentsCSV(components []model.Component) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"Name", "Type", "ClassCount", "Interfaces"}); err != nil {
		return "", err
	}
	for _, c := range sortedComponents(components) {
		row := []string{
			c.Name, string(c.Type), strconv.Itoa(len(c.ClassFQNs)),
			strings.Join(c.InterfaceFQNs, ";"),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func buildDependenciesCSV(staticEdges []model.Dependency) (string, error) {
	edges := staticEdges
	if len(edges) > 1000 {
		edges = edges[:1000]
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"From", "To", "Type", "SourceFile"}); err != nil {
		return "", err
	}
	for _, e := range edges {
		row := []string{e.OriginID, e.TargetID, string(e.Kind), e.SourceFile}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}
