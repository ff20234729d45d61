package depresolve

import (
	"sort"
	"strings"

	"github.com/oxhq/archlens/internal/model"
)

// buildGraph implements spec §4.3 step 5: collect the union of edge
// endpoints as nodes, infer each node's kind syntactically, and map edge
// kinds onto the graph's smaller edge-kind vocabulary. External packages
// have no natural FQN, so each gets a synthesized node id and one
// Dependency edge per file that references it.
func buildGraph(staticEdges, dynamicEdges []model.Dependency, external []model.ExternalDependency) model.DependencyGraph {
	nodeIDs := make(map[string]bool)
	var edges []model.GraphEdge

	for _, d := range staticEdges {
		nodeIDs[d.OriginID] = true
		nodeIDs[d.TargetID] = true
		edges = append(edges, model.GraphEdge{From: d.OriginID, To: d.TargetID, Kind: mapEdgeKind(d.Kind)})
	}
	for _, d := range dynamicEdges {
		nodeIDs[d.OriginID] = true
		nodeIDs[d.TargetID] = true
		edges = append(edges, model.GraphEdge{
			From: d.OriginID, To: d.TargetID, Kind: model.EdgeDependency,
			Attributes: map[string]string{"IsDynamic": "true"},
		})
	}

	ids := make([]string, 0, len(nodeIDs))
	for id := range nodeIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make([]model.GraphNode, 0, len(ids)+len(external))
	for _, id := range ids {
		nodes = append(nodes, model.GraphNode{ID: id, Label: lastSegment(id), Kind: inferNodeKind(id)})
	}

	for _, ext := range external {
		nodeID := newGraphNodeID()
		nodes = append(nodes, model.GraphNode{ID: nodeID, Label: ext.PackageName, Kind: model.NodeAssembly})
		for _, ref := range ext.ReferencedBy {
			if !nodeIDs[ref] {
				continue // referencing file/symbol never appeared as an edge endpoint
			}
			edges = append(edges, model.GraphEdge{From: ref, To: nodeID, Kind: model.EdgeDependency})
		}
	}

	return model.DependencyGraph{Nodes: nodes, Edges: edges}
}

func mapEdgeKind(k model.DependencyKind) model.GraphEdgeKind {
	switch k {
	case model.DepInheritance:
		return model.EdgeInheritance
	case model.DepMethodCall:
		return model.EdgeMethodCall
	case model.DepPropertyAccess:
		return model.EdgeAssociation
	case model.DepUsingImport:
		return model.EdgeDependency
	default:
		return model.EdgeUnknown
	}
}

// inferNodeKind implements spec §4.3 step 5's syntactic node-kind rule.
func inferNodeKind(fqn string) model.GraphNodeKind {
	switch {
	case strings.HasPrefix(fqn, "System.") || strings.HasPrefix(fqn, "Microsoft."):
		return model.NodeAssembly
	case strings.Contains(fqn, "()"):
		return model.NodeMethod
	}
	last := lastSegment(fqn)
	if last != "" && last[0] >= 'A' && last[0] <= 'Z' {
		return model.NodeClass
	}
	return model.NodeUnknown
}

func lastSegment(fqn string) string {
	if i := strings.LastIndexByte(fqn, '.'); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}

// detectCycles implements spec §4.3 step 6: DFS with a recursion stack,
// emitting one CircularDependency per back-edge found, deduplicated by
// cycle-as-sequence equality.
func detectCycles(graph model.DependencyGraph) []model.CircularDependency {
	adj := make(map[string][]string)
	for _, e := range graph.Edges {
		adj[e.From] = append(adj[e.From], e.To)
	}
	for from := range adj {
		sort.Strings(adj[from])
	}

	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string
	var cycles []model.CircularDependency
	seen := make(map[string]bool)

	var order []string
	for _, n := range graph.Nodes {
		order = append(order, n.ID)
	}

	var visit func(node string)
	visit = func(node string) {
		visited[node] = true
		onStack[node] = true
		path = append(path, node)

		for _, next := range adj[node] {
			if onStack[next] {
				cycle := cycleFrom(path, next)
				key := strings.Join(cycle, "->")
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, model.CircularDependency{Cycle: cycle})
				}
				continue
			}
			if !visited[next] {
				visit(next)
			}
		}

		path = path[:len(path)-1]
		onStack[node] = false
	}

	for _, n := range order {
		if !visited[n] {
			visit(n)
		}
	}

	return cycles
}

// cycleFrom builds the closed cycle sequence starting at target's position
// in path, through the end of path, with target appended once more.
func cycleFrom(path []string, target string) []string {
	start := 0
	for i, n := range path {
		if n == target {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(path)-start+1)
	cycle = append(cycle, path[start:]...)
	cycle = append(cycle, target)
	return cycle
}
