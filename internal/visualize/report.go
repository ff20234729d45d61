package visualize

import (
	"html/template"
	"strings"

	"github.com/oxhq/archlens/internal/model"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Architecture Summary</title></head>
<body>
<h1>Architecture Summary</h1>
<h2>Totals</h2>
<ul>
<li>Components: {{.TotalComponents}}</li>
<li>Layers: {{.TotalLayers}}</li>
<li>Relationships: {{.TotalRelationships}}</li>
</ul>
<h2>Components</h2>
<table border="1">
<tr><th>Name</th><th>Type</th><th>ClassCount</th></tr>
{{range .Components}}<tr><td>{{.Name}}</td><td>{{.Type}}</td><td>{{.ClassCount}}</td></tr>
{{end}}</table>
<h2>Layers</h2>
<table border="1">
<tr><th>Name</th><th>Level</th><th>Components</th></tr>
{{range .Layers}}<tr><td>{{.Name}}</td><td>{{.Level}}</td><td>{{.Components}}</td></tr>
{{end}}</table>
</body>
</html>
`))

type reportComponentRow struct {
	Name       string
	Type       model.ComponentType
	ClassCount int
}

type reportLayerRow struct {
	Name       string
	Level      int
	Components int
}

type reportData struct {
	TotalComponents    int
	TotalLayers        int
	TotalRelationships int
	Components         []reportComponentRow
	Layers             []reportLayerRow
}

// buildSummaryReportHTML renders the HTML summary report spec §4.6
// names: totals, components (Name,Type,ClassCount), and layers
// (Name,Level,Components). html/template's auto-escaping is load-bearing
// here, not stylistic: component and class names are sourced from the
// codebase under analysis and must not be trusted as raw HTML.
func buildSummaryReportHTML(components []model.Component, layers []model.Layer, totalRelationships int) (string, error) {
	data := reportData{
		TotalComponents:    len(components),
		TotalLayers:        len(layers),
		TotalRelationships: totalRelationships,
	}
	for _, c := range sortedComponents(components) {
		data.Components = append(data.Components, reportComponentRow{
			Name: c.Name, Type: c.Type, ClassCount: len(c.ClassFQNs),
		})
	}
	for _, l := range layers {
		data.Layers = append(data.Layers, reportLayerRow{
			Name: l.Name, Level: l.Level, Components: len(l.MemberComponents),
		})
	}

	var b strings.Builder
	if err := reportTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
