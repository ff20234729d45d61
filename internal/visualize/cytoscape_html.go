package visualize

import (
	"encoding/json"
	"html/template"
	"strings"

	"github.com/oxhq/archlens/internal/model"
)

var cytoscapeTemplate = template.Must(template.New("cytoscape").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"><title>Network</title>
<script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
</head>
<body>
<div id="cy" style="width: 960px; height: 600px;"></div>
<script>
const data = {{.DataJS}};
const elements = data.nodes.map(n => ({data: {id: n.id, label: n.label}}))
  .concat(data.edges.map(e => ({data: {id: e.id, source: e.source, target: e.target, label: e.label}})));
cytoscape({container: document.getElementById("cy"), elements: elements, layout: {name: "cose"}});
</script>
</body>
</html>
`))

type cytoscapePage struct {
	DataJS template.JS
}

// renderNetworkGraphHTML renders the cytoscape.js HTML page for the
// network-graph export, with its JSON data blob returned separately for
// the companion "_data.json" file.
func renderNetworkGraphHTML(graph model.NetworkGraph) (html string, dataJSON string, err error) {
	data, err := json.Marshal(graph)
	if err != nil {
		return "", "", err
	}

	var b strings.Builder
	if err := cytoscapeTemplate.Execute(&b, cytoscapePage{DataJS: template.JS(data)}); err != nil {
		return "", "", err
	}
	return b.String(), string(data), nil
}
