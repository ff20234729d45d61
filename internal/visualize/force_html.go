package visualize

import (
	"encoding/json"
	"html/template"
	"strings"

	"github.com/oxhq/archlens/internal/model"
)

var forceGraphTemplate = template.Must(template.New("force").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"><title>{{.Title}}</title>
<script src="https://d3js.org/d3.v7.min.js"></script>
</head>
<body>
<svg width="960" height="600"></svg>
<script>
const graph = {{.DataJS}};
const svg = d3.select("svg");
const sim = d3.forceSimulation(graph.nodes)
  .force("link", d3.forceLink(graph.links).id(d => d.id))
  .force("charge", d3.forceManyBody().strength(-120))
  .force("center", d3.forceCenter(480, 300));
const link = svg.append("g").selectAll("line").data(graph.links).join("line");
const node = svg.append("g").selectAll("circle").data(graph.nodes).join("circle").attr("r", d => 4 + d.size);
sim.on("tick", () => {
  link.attr("x1", d => d.source.x).attr("y1", d => d.source.y)
      .attr("x2", d => d.target.x).attr("y2", d => d.target.y);
  node.attr("cx", d => d.x).attr("cy", d => d.y);
});
</script>
</body>
</html>
`))

type forceGraphPage struct {
	Title  string
	DataJS template.JS
}

// renderForceGraphHTML renders the D3 force-directed HTML page, with its
// backing JSON data blob returned separately so Persist can write the
// companion "<title>_data.json" file spec §6 names.
func renderForceGraphHTML(graph model.ForceGraph) (html string, dataJSON string, err error) {
	data, err := json.Marshal(graph)
	if err != nil {
		return "", "", err
	}

	var b strings.Builder
	page := forceGraphPage{Title: graph.Title, DataJS: template.JS(data)}
	if err := forceGraphTemplate.Execute(&b, page); err != nil {
		return "", "", err
	}
	return b.String(), string(data), nil
}
