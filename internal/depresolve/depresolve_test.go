package depresolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/archlens/internal/config"
	"github.com/oxhq/archlens/internal/diag"
	"github.com/oxhq/archlens/internal/model"
)

func sym(name, fqn string, kind model.SymbolKind, file string, meta map[string]string) model.Symbol {
	return model.Symbol{Name: name, FQN: fqn, Kind: kind, File: file, Metadata: meta}
}

func TestResolveStaticEdges(t *testing.T) {
	code := &model.CodeAnalysis{
		Symbols: []model.Symbol{
			sym("Widget", "Acme.Widget", model.KindClass, "widget.cs",
				map[string]string{"Namespace": "Acme", "BaseTypes": "Acme.Base"}),
			sym("Spin", "Acme.Widget.Spin", model.KindMethod, "widget.cs",
				map[string]string{"Namespace": "Acme"}),
			sym("Color", "Acme.Widget.Color", model.KindProperty, "widget.cs",
				map[string]string{"Namespace": "Acme"}),
		},
	}

	result, diags, err := Resolve(context.Background(), code, nil, nil, nil, nil, config.DefaultResolveOptions(), nil)
	require.NoError(t, err)
	assert.Empty(t, diags)

	var hasUsing, hasInheritance, hasMethodCall, hasPropertyAccess bool
	for _, e := range result.StaticEdges {
		switch e.Kind {
		case model.DepUsingImport:
			hasUsing = true
			assert.Equal(t, "Acme", e.TargetID)
		case model.DepInheritance:
			hasInheritance = true
			assert.Equal(t, "Acme.Base", e.TargetID)
		case model.DepMethodCall:
			hasMethodCall = true
			assert.Equal(t, "Acme.Widget.Spin", e.TargetID)
		case model.DepPropertyAccess:
			hasPropertyAccess = true
			assert.Equal(t, "Acme.Widget.Color", e.TargetID)
		}
	}
	assert.True(t, hasUsing)
	assert.True(t, hasInheritance)
	assert.True(t, hasMethodCall)
	assert.True(t, hasPropertyAccess)
}

func TestResolveStaticEdgesDeduplicates(t *testing.T) {
	code := &model.CodeAnalysis{
		Symbols: []model.Symbol{
			sym("Widget", "Acme.Widget", model.KindClass, "a.cs", map[string]string{"Namespace": "Acme"}),
			sym("Gadget", "Acme.Gadget", model.KindClass, "b.cs", map[string]string{"Namespace": "Acme"}),
		},
	}
	result, _, err := Resolve(context.Background(), code, nil, nil, nil, nil, config.DefaultResolveOptions(), nil)
	require.NoError(t, err)

	count := 0
	for _, e := range result.StaticEdges {
		if e.Kind == model.DepUsingImport && e.OriginID == "a.cs" && e.TargetID == "Acme" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestResolveDynamicEdges(t *testing.T) {
	code := &model.CodeAnalysis{
		Symbols: []model.Symbol{
			sym("Build", "Acme.Factory.Build", model.KindMethod, "f.cs",
				map[string]string{"ReflectionTarget": "Acme.Plugin"}),
		},
	}
	result, _, err := Resolve(context.Background(), code, nil, nil, nil, nil, config.DefaultResolveOptions(), nil)
	require.NoError(t, err)
	require.Len(t, result.DynamicEdges, 1)
	assert.Equal(t, "Acme.Plugin", result.DynamicEdges[0].TargetID)
	assert.True(t, result.DynamicEdges[0].Conditional)
}

func TestResolveExternalPackagesFromSymbolsAndManifest(t *testing.T) {
	dir := t.TempDir()
	manifestPath := dir + "/app.csproj"
	manifestContent := `<Project><ItemGroup><PackageReference Include="Newtonsoft.Json" Version="13.0.1"/></ItemGroup></Project>`

	files := map[string][]byte{manifestPath: []byte(manifestContent)}
	readFile := func(p string) ([]byte, error) { return files[p], nil }

	code := &model.CodeAnalysis{
		Symbols: []model.Symbol{
			sym("Logger", "System.Diagnostics.Logger", model.KindClass, "a.cs",
				map[string]string{"Namespace": "System.Diagnostics"}),
		},
	}

	result, diags, err := Resolve(context.Background(), code,
		[]model.FileRecord{{AbsolutePath: manifestPath}}, nil, nil, readFile,
		config.DefaultResolveOptions(), nil)
	require.NoError(t, err)
	assert.Empty(t, diags)

	byName := map[string]model.ExternalDependency{}
	for _, e := range result.External {
		byName[e.PackageName] = e
	}
	require.Contains(t, byName, "System")
	assert.Equal(t, "Unknown", byName["System"].Version)

	require.Contains(t, byName, "Newtonsoft.Json")
	assert.Equal(t, "13.0.1", byName["Newtonsoft.Json"].Version)
}

func TestResolveDatabaseRefs(t *testing.T) {
	dir := t.TempDir()
	configPath := dir + "/Web.config"
	configContent := `<connectionStrings><add name="Main" connectionString="Data Source=.;Initial Catalog=Orders;Integrated Security=True"/></connectionStrings>`
	sqlPath := dir + "/schema.sql"
	sqlContent := `SELECT * FROM Orders; SELECT * FROM OrderItems;`

	files := map[string][]byte{configPath: []byte(configContent), sqlPath: []byte(sqlContent)}
	readFile := func(p string) ([]byte, error) { return files[p], nil }

	code := &model.CodeAnalysis{}
	result, _, err := Resolve(context.Background(), code, nil,
		[]model.FileRecord{{AbsolutePath: configPath}},
		[]model.FileRecord{{AbsolutePath: sqlPath}},
		readFile, config.DefaultResolveOptions(), nil)
	require.NoError(t, err)

	require.Len(t, result.Databases, 1)
	assert.Equal(t, "Orders", result.Databases[0].DatabaseName)
	assert.Contains(t, result.Databases[0].Tables, "Orders")
	assert.Contains(t, result.Databases[0].Tables, "OrderItems")
}

func TestResolveDatabaseRefsWithoutConnectionStringIsUnknown(t *testing.T) {
	dir := t.TempDir()
	sqlPath := dir + "/schema.sql"
	sqlContent := `SELECT * FROM Orders; SELECT * FROM OrderItems;`

	files := map[string][]byte{sqlPath: []byte(sqlContent)}
	readFile := func(p string) ([]byte, error) { return files[p], nil }

	code := &model.CodeAnalysis{}
	result, _, err := Resolve(context.Background(), code, nil, nil,
		[]model.FileRecord{{AbsolutePath: sqlPath}},
		readFile, config.DefaultResolveOptions(), nil)
	require.NoError(t, err)

	require.Len(t, result.Databases, 1)
	assert.Equal(t, "Unknown", result.Databases[0].DatabaseName)
	assert.Contains(t, result.Databases[0].Tables, "Orders")
	assert.Contains(t, result.Databases[0].Tables, "OrderItems")
}

func TestResolveRejectsNilCodeAnalysis(t *testing.T) {
	_, _, err := Resolve(context.Background(), nil, nil, nil, nil, nil, config.DefaultResolveOptions(), nil)
	assert.Error(t, err)
}

func TestDetectCyclesFindsSimpleCycle(t *testing.T) {
	graph := model.DependencyGraph{
		Nodes: []model.GraphNode{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Edges: []model.GraphEdge{
			{From: "A", To: "B"},
			{From: "B", To: "C"},
			{From: "C", To: "A"},
		},
	}
	cycles := detectCycles(graph)
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"A", "B", "C", "A"}, cycles[0].Cycle)
}

func TestDetectCyclesNoFalsePositiveOnDAG(t *testing.T) {
	graph := model.DependencyGraph{
		Nodes: []model.GraphNode{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Edges: []model.GraphEdge{
			{From: "A", To: "B"},
			{From: "A", To: "C"},
			{From: "B", To: "C"},
		},
	}
	assert.Empty(t, detectCycles(graph))
}

func TestBuildGraphInfersNodeKinds(t *testing.T) {
	edges := []model.Dependency{
		{Kind: model.DepUsingImport, OriginID: "app.cs", TargetID: "System.Collections"},
		{Kind: model.DepInheritance, OriginID: "Acme.Widget", TargetID: "Acme.Base"},
	}
	graph := buildGraph(edges, nil, nil)

	byID := map[string]model.GraphNode{}
	for _, n := range graph.Nodes {
		byID[n.ID] = n
	}
	assert.Equal(t, model.NodeAssembly, byID["System.Collections"].Kind)
	assert.Equal(t, model.NodeClass, byID["Acme.Widget"].Kind)
}

func TestBuildGraphAddsExternalPackageNodes(t *testing.T) {
	edges := []model.Dependency{
		{Kind: model.DepUsingImport, OriginID: "app.cs", TargetID: "System.Diagnostics"},
	}
	external := []model.ExternalDependency{
		{PackageName: "System", ReferencedBy: []string{"app.cs"}},
	}
	graph := buildGraph(edges, nil, external)

	var externalNode *model.GraphNode
	for i, n := range graph.Nodes {
		if n.Label == "System" && n.Kind == model.NodeAssembly && n.ID != "System.Diagnostics" {
			externalNode = &graph.Nodes[i]
		}
	}
	require.NotNil(t, externalNode)

	var found bool
	for _, e := range graph.Edges {
		if e.From == "app.cs" && e.To == externalNode.ID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseManifestCsproj(t *testing.T) {
	src := []byte(`<Project><ItemGroup><PackageReference Include="Serilog" Version="2.10.0"/></ItemGroup></Project>`)
	entries, err := parseManifest(src)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Serilog", entries[0].PackageName)
	assert.Equal(t, "2.10.0", entries[0].Version)
}

func TestParseManifestPackagesConfig(t *testing.T) {
	src := []byte(`<packages><package id="NUnit" version="3.13.0"/></packages>`)
	entries, err := parseManifest(src)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "NUnit", entries[0].PackageName)
	assert.Equal(t, "3.13.0", entries[0].Version)
}

func TestDatabaseNameFromPrefersDatabaseKey(t *testing.T) {
	assert.Equal(t, "Orders", databaseNameFrom("Database=Orders;Server=."))
	assert.Equal(t, "Orders", databaseNameFrom("Initial Catalog=Orders;Server=."))
	assert.Equal(t, ".", databaseNameFrom("Data Source=.;Integrated Security=True"))
	assert.Equal(t, "", databaseNameFrom("Integrated Security=True"))
}

func TestScanReflectionIdiomsAttributesToEnclosingMethod(t *testing.T) {
	byFile := map[string][]model.Symbol{
		"svc.cs": {
			sym("Run", "Acme.Service.Run", model.KindMethod, "svc.cs", nil),
		},
	}
	byFile["svc.cs"][0].Line = 2

	src := []byte("class Service {\nvoid Run() {\n  var m = typeof(Plugin).GetMethod(\"Execute\").Invoke(obj, null);\n}\n}")
	readFile := func(path string) ([]byte, error) { return src, nil }

	edges := scanReflectionIdioms(byFile, readFile, newTestCollector())
	require.Len(t, edges, 1)
	assert.Equal(t, "Acme.Service.Run", edges[0].OriginID)
	assert.Equal(t, "Execute", edges[0].TargetID)
	assert.True(t, edges[0].Conditional)
	assert.Equal(t, model.DepOther, edges[0].Kind)
}

func TestScanReflectionIdiomsIgnoresMatchesOutsideAnyMethod(t *testing.T) {
	byFile := map[string][]model.Symbol{
		"svc.cs": {
			sym("Run", "Acme.Service.Run", model.KindMethod, "svc.cs", nil),
		},
	}
	byFile["svc.cs"][0].Line = 5

	src := []byte("Activator.CreateInstance(typeof(Foo));\nclass Service {\nvoid Run() {}\n}")
	readFile := func(path string) ([]byte, error) { return src, nil }

	edges := scanReflectionIdioms(byFile, readFile, newTestCollector())
	assert.Empty(t, edges)
}

func newTestCollector() *diag.Collector {
	return diag.NewCollector("DependencyResolver")
}
