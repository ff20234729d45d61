package visualize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oxhq/archlens/internal/model"
)

// buildComponentDiagram renders a Mermaid flowchart of components: one
// node per component styled by its type, with a placeholder adjacency
// edge between each consecutive pair in sorted name order (richer
// traces are left to the dependency diagram).
func buildComponentDiagram(components []model.Component) model.DiagramSource {
	sorted := sortedComponents(components)

	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, c := range sorted {
		id := sanitizeID(c.Name)
		fmt.Fprintf(&b, "    %s[\"%s (%s)\"]\n", id, c.Name, c.Type)
	}
	for i := 0; i+1 < len(sorted); i++ {
		fmt.Fprintf(&b, "    %s --> %s\n", sanitizeID(sorted[i].Name), sanitizeID(sorted[i+1].Name))
	}
	for _, c := range sorted {
		fmt.Fprintf(&b, "    style %s %s\n", sanitizeID(c.Name), componentStyle(c.Type))
	}

	return model.DiagramSource{Title: "Components", Format: "mermaid", Source: b.String()}
}

func componentStyle(t model.ComponentType) string {
	switch t {
	case model.ComponentUI:
		return "fill:#e1f5fe,stroke:#01579b"
	case model.ComponentBusinessLogic:
		return "fill:#fff3e0,stroke:#e65100"
	case model.ComponentDataAccess:
		return "fill:#f1f8e9,stroke:#33691e"
	case model.ComponentService:
		return "fill:#ede7f6,stroke:#4527a0"
	case model.ComponentInfrastructure:
		return "fill:#eceff1,stroke:#263238"
	default:
		return "fill:#fafafa,stroke:#616161"
	}
}

func sortedComponents(components []model.Component) []model.Component {
	out := append([]model.Component(nil), components...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// buildLayerDiagram renders a Mermaid flowchart of layers: one node per
// layer with its level and member-namespace count, edges between
// consecutive layers in level order, styled by level.
func buildLayerDiagram(layers []model.Layer) model.DiagramSource {
	sorted := append([]model.Layer(nil), layers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })

	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, l := range sorted {
		id := sanitizeID(l.Name)
		fmt.Fprintf(&b, "    %s[\"%s (L%d, %d members)\"]\n", id, l.Name, l.Level, len(l.MemberComponents))
	}
	for i := 0; i+1 < len(sorted); i++ {
		fmt.Fprintf(&b, "    %s --> %s\n", sanitizeID(sorted[i].Name), sanitizeID(sorted[i+1].Name))
	}
	for _, l := range sorted {
		fmt.Fprintf(&b, "    style %s %s\n", sanitizeID(l.Name), layerStyle(l.Level))
	}

	return model.DiagramSource{Title: "Layers", Format: "mermaid", Source: b.String()}
}

func layerStyle(level int) string {
	palette := []string{
		"fill:#e3f2fd,stroke:#0d47a1",
		"fill:#fce4ec,stroke:#880e4f",
		"fill:#fff8e1,stroke:#ff6f00",
		"fill:#e8f5e9,stroke:#1b5e20",
	}
	idx := (level - 1) % len(palette)
	if idx < 0 {
		idx = 0
	}
	return palette[idx]
}

// buildDependencyDiagram renders the top 20 distinct (from,to) pairs by
// count from the dependency-strength matrix, labeling an edge with its
// count whenever it exceeds 1.
func buildDependencyDiagram(matrix model.DependencyStrengthMatrix) model.DiagramSource {
	entries := append([]model.DependencyMatrixEntry(nil), matrix.Entries...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Count > entries[j].Count })
	if len(entries) > 20 {
		entries = entries[:20]
	}

	var b strings.Builder
	b.WriteString("graph LR\n")
	for _, e := range entries {
		from, to := sanitizeID(e.Source), sanitizeID(e.Target)
		if e.Count > 1 {
			fmt.Fprintf(&b, "    %s -->|%d| %s\n", from, e.Count, to)
		} else {
			fmt.Fprintf(&b, "    %s --> %s\n", from, to)
		}
	}

	return model.DiagramSource{Title: "Dependencies", Format: "mermaid", Source: b.String()}
}

// buildCallHierarchyDiagram renders the top 15 methods by callee count,
// each with up to 3 callee edges.
func buildCallHierarchyDiagram(nodes []model.CallHierarchyNode) model.DiagramSource {
	sorted := append([]model.CallHierarchyNode(nil), nodes...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i].Callees) != len(sorted[j].Callees) {
			return len(sorted[i].Callees) > len(sorted[j].Callees)
		}
		return sorted[i].MethodFQN < sorted[j].MethodFQN
	})
	if len(sorted) > 15 {
		sorted = sorted[:15]
	}

	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, n := range sorted {
		callees := n.Callees
		if len(callees) > 3 {
			callees = callees[:3]
		}
		for _, callee := range callees {
			fmt.Fprintf(&b, "    %s --> %s\n", sanitizeID(n.MethodFQN), sanitizeID(callee))
		}
	}

	return model.DiagramSource{Title: "CallHierarchy", Format: "mermaid", Source: b.String()}
}

// buildInheritanceDiagram renders up to 10 classes that participate in
// inheritance (have bases or derived classes), with their base edges.
func buildInheritanceDiagram(nodes []model.InheritanceNode) model.DiagramSource {
	var participants []model.InheritanceNode
	for _, n := range nodes {
		if len(n.Bases) > 0 || len(n.Derived) > 0 {
			participants = append(participants, n)
		}
	}
	sort.Slice(participants, func(i, j int) bool { return participants[i].ClassFQN < participants[j].ClassFQN })
	if len(participants) > 10 {
		participants = participants[:10]
	}

	var b strings.Builder
	b.WriteString("classDiagram\n")
	for _, n := range participants {
		for _, base := range n.Bases {
			fmt.Fprintf(&b, "    %s <|-- %s\n", sanitizeID(base), sanitizeID(n.ClassFQN))
		}
	}

	return model.DiagramSource{Title: "Inheritance", Format: "mermaid", Source: b.String()}
}
