package architecture

import (
	"strings"

	"github.com/oxhq/archlens/internal/model"
)

// computeCohesion implements spec §4.4's cohesion scalar: for every
// class with more than one method, average its LCOM-proxy
// (method count / (method+property count)) and TCC-proxy
// (1 / member count), then mean that per-class average across all
// qualifying classes. Membership is derived the same way as the
// DependencyResolver's containment edges: FQN prefix matching against
// the full symbol table.
func computeCohesion(classes []model.Symbol, allSymbols []model.Symbol) float64 {
	var sum float64
	var n int

	for _, c := range classes {
		methodCount, propertyCount := memberCounts(c.FQN, allSymbols)
		if methodCount <= 1 {
			continue
		}
		memberCount := methodCount + propertyCount
		lcom := float64(methodCount) / float64(memberCount)
		tcc := 1.0 / float64(memberCount)
		sum += (lcom + tcc) / 2
		n++
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func memberCounts(classFQN string, allSymbols []model.Symbol) (methods, properties int) {
	prefix := classFQN + "."
	for _, s := range allSymbols {
		if !strings.HasPrefix(s.FQN, prefix) {
			continue
		}
		switch s.Kind {
		case model.KindMethod:
			methods++
		case model.KindProperty, model.KindField:
			properties++
		}
	}
	return
}

// computeCoupling implements spec §4.4's afferent/efferent coupling
// scalars: in-degree and out-degree per node over static edges, meaned
// across every node that appears as an edge endpoint, plus instability
// = meanEfferent / (meanAfferent + meanEfferent).
func computeCoupling(symbols []model.Symbol, staticEdges []model.Dependency) model.CouplingStats {
	afferent := make(map[string]int)
	efferent := make(map[string]int)
	nodes := make(map[string]bool)

	for _, e := range staticEdges {
		efferent[e.OriginID]++
		afferent[e.TargetID]++
		nodes[e.OriginID] = true
		nodes[e.TargetID] = true
	}

	if len(nodes) == 0 {
		return model.CouplingStats{}
	}

	var sumAff, sumEff float64
	for n := range nodes {
		sumAff += float64(afferent[n])
		sumEff += float64(efferent[n])
	}
	meanAff := sumAff / float64(len(nodes))
	meanEff := sumEff / float64(len(nodes))

	stats := model.CouplingStats{MeanAfferent: meanAff, MeanEfferent: meanEff}
	if denom := meanAff + meanEff; denom != 0 {
		stats.Instability = meanEff / denom
	}
	return stats
}
