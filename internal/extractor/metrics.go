package extractor

import "github.com/oxhq/archlens/internal/model"

// computeComplexity approximates cyclomatic complexity from method count
// alone. This is a design-level heuristic, not a true metric (SPEC_FULL.md
// §4.2): it is monotonically non-decreasing in methodCount and capped.
func computeComplexity(methodCount int) float64 {
	c := 1 + 0.1*float64(methodCount)
	if c > 10 {
		c = 10
	}
	return c
}

// computeMaintainability derives a 0-100 maintainability score that falls
// as complexity rises.
func computeMaintainability(complexity float64) float64 {
	m := 100 - 2*complexity
	if m < 0 {
		m = 0
	}
	return m
}

// computeReadability scores the fraction of symbols whose name is longer
// than three characters, as a percentage.
func computeReadability(symbols []model.Symbol) float64 {
	if len(symbols) == 0 {
		return 0
	}
	longNamed := 0
	for _, s := range symbols {
		if len(s.Name) > 3 {
			longNamed++
		}
	}
	return 100 * float64(longNamed) / float64(len(symbols))
}
