package architecture

import (
	"strings"

	"github.com/oxhq/archlens/internal/model"
)

// detectViolations implements spec §4.4's four violation rules.
func detectViolations(
	classes []model.Symbol,
	components []model.Component,
	classLayers map[string][]string,
	staticEdges []model.Dependency,
) []model.ArchitecturalViolation {
	var out []model.ArchitecturalViolation

	out = append(out, layerViolations(classLayers, staticEdges)...)

	for _, comp := range components {
		if len(comp.ClassFQNs) > 20 {
			out = append(out, model.ArchitecturalViolation{
				Kind: model.ViolationGodClass, Location: comp.Name, Severity: model.SeverityHigh,
				Description: "component has more than 20 classes",
			})
		}
		if comp.Type == model.ComponentBusinessLogic && len(comp.ClassFQNs) < 3 {
			out = append(out, model.ArchitecturalViolation{
				Kind: model.ViolationFeatureEnvy, Location: comp.Name, Severity: model.SeverityLow,
				Description: "business-logic component has fewer than 3 classes",
			})
		}
		if comp.Type == model.ComponentDataAccess && allClassNamesContainModelOrEntity(comp.ClassFQNs) {
			out = append(out, model.ArchitecturalViolation{
				Kind: model.ViolationDataClass, Location: comp.Name, Severity: model.SeverityMedium,
				Description: "every class in this data-access component is a plain model/entity",
			})
		}
	}

	return out
}

func layerViolations(classLayers map[string][]string, staticEdges []model.Dependency) []model.ArchitecturalViolation {
	var out []model.ArchitecturalViolation
	for _, e := range staticEdges {
		if inLayer(classLayers, e.OriginID, "Presentation") && inLayer(classLayers, e.TargetID, "Data") {
			out = append(out, model.ArchitecturalViolation{
				Kind:        model.ViolationLayer,
				Location:    e.TargetID,
				Severity:    model.SeverityHigh,
				Description: "Presentation-layer member depends directly on a Data-layer member: " + e.TargetID,
			})
		}
	}
	return out
}

func inLayer(classLayers map[string][]string, fqn, layerName string) bool {
	for _, l := range classLayers[fqn] {
		if l == layerName {
			return true
		}
	}
	return false
}

func allClassNamesContainModelOrEntity(fqns []string) bool {
	if len(fqns) == 0 {
		return false
	}
	for _, fqn := range fqns {
		name := fqn
		if i := strings.LastIndexByte(fqn, '.'); i >= 0 {
			name = fqn[i+1:]
		}
		if !strings.Contains(name, "Model") && !strings.Contains(name, "Entity") {
			return false
		}
	}
	return true
}
