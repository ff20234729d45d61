package architecture

import (
	"sort"
	"strings"

	"github.com/oxhq/archlens/internal/model"
)

// inferPattern implements spec §4.4's architectural-pattern scoring: for
// each candidate, count indicator hits in class names (weight 2) and in
// distinct namespaces (weight 1), normalize by class count, then apply
// the two named heuristic boosts. The highest score wins; Unknown if the
// best score is at or below 10.
func inferPattern(classes []model.Symbol, allSymbols []model.Symbol) model.ArchitecturalPattern {
	if len(classes) == 0 {
		return model.PatternUnknownOverall
	}

	namespaces := make(map[string]bool)
	for _, c := range classes {
		if ns := c.Namespace(); ns != "" {
			namespaces[ns] = true
		}
	}

	best := model.PatternUnknownOverall
	bestScore := 0.0

	for pattern, indicators := range patternIndicators {
		nameHits := 0
		for _, c := range classes {
			nameHits += countOccurrences(c.Name, indicators)
		}
		nsHits := 0
		for ns := range namespaces {
			nsHits += countOccurrences(ns, indicators)
		}
		score := float64(2*nameHits+nsHits) / float64(len(classes)) * 100

		switch pattern {
		case model.PatternMVC:
			if hasControllerWithPublicMethod(classes, allSymbols) {
				score += 20
			}
		case model.PatternRepository:
			if hasRepositoryCRUDMethod(classes, allSymbols) {
				score += 25
			}
		}

		if score > bestScore {
			bestScore = score
			best = pattern
		}
	}

	if bestScore <= 10 {
		return model.PatternUnknownOverall
	}
	return best
}

func hasControllerWithPublicMethod(classes, allSymbols []model.Symbol) bool {
	for _, c := range classes {
		if !strings.Contains(strings.ToLower(c.Name), "controller") {
			continue
		}
		for _, m := range methodsOf(c.FQN, allSymbols) {
			if m.Visibility == model.VisibilityPublic {
				return true
			}
		}
	}
	return false
}

func hasRepositoryCRUDMethod(classes, allSymbols []model.Symbol) bool {
	for _, c := range classes {
		if !strings.Contains(strings.ToLower(c.Name), "repository") {
			continue
		}
		for _, m := range methodsOf(c.FQN, allSymbols) {
			if countOccurrences(m.Name, repositoryMethodVerbs) > 0 {
				return true
			}
		}
	}
	return false
}

// inferDesignPatterns implements spec §4.4's design-pattern detection:
// per pattern kind, score each class by indicator hits in its own name
// (x2) and its method names (x1); classes with sum > 2 participate, and
// confidence is the participants' summed score over (participants x 3),
// capped at 1.
func inferDesignPatterns(classes []model.Symbol, allSymbols []model.Symbol) []model.DesignPatternMatch {
	var out []model.DesignPatternMatch

	for pattern, indicators := range designPatternIndicators {
		var participants []string
		total := 0

		for _, c := range classes {
			nameHits := countOccurrences(c.Name, indicators)
			methodHits := 0
			for _, m := range methodsOf(c.FQN, allSymbols) {
				methodHits += countOccurrences(m.Name, indicators)
			}
			sum := 2*nameHits + methodHits
			if sum > 2 {
				participants = append(participants, c.FQN)
				total += sum
			}
		}

		if len(participants) == 0 {
			continue
		}
		confidence := float64(total) / float64(len(participants)*3)
		if confidence > 1 {
			confidence = 1
		}
		out = append(out, model.DesignPatternMatch{
			Pattern:      pattern,
			Confidence:   confidence,
			Participants: participants,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Pattern < out[j].Pattern })
	return out
}
