// Package techtree picks the single skill that drives the next learning
// session and describes it for content generation.
package techtree

import (
	"github.com/abhisek/storyquest/internal/recommend"
	"github.com/abhisek/storyquest/internal/skillgraph"
)

// Selector walks the prerequisite DAG of a catalog. It holds no mutable state.
type Selector struct {
	catalog *skillgraph.Catalog
}

// New creates a Selector over the given catalog.
func New(catalog *skillgraph.Catalog) *Selector {
	return &Selector{catalog: catalog}
}

// PickNext chooses the next skill among the unlocked, non-dominated skills at
// the lowest available level. Level-1 skills in an interest domain get the
// same boost as in recommendations, and every candidate loses its recency
// penalty, so a root visited in the last few sessions yields to fresh ones.
// Ties go to interest skills, then catalog order. When every skill is
// dominated, the first age-eligible skill in catalog order is returned.
// The bool is false only when no skill is age-eligible.
func (s *Selector) PickNext(age int, interests map[string]bool, progress skillgraph.ProgressMap, history []string) (skillgraph.Skill, bool) {
	available := s.catalog.AvailableSkills(progress, age)

	if len(available) > 0 {
		lowest := available[0].Level
		for _, sk := range available[1:] {
			lowest = min(lowest, sk.Level)
		}
		var preferred, rest []skillgraph.Skill
		for _, sk := range available {
			switch {
			case sk.Level != lowest:
			case isInterestRoot(sk, interests):
				preferred = append(preferred, sk)
			default:
				rest = append(rest, sk)
			}
		}
		return bestScored(append(preferred, rest...), interests, history), true
	}

	for _, sk := range s.catalog.Skills() {
		if skillgraph.AgeEligible(sk, age) {
			return sk, true
		}
	}
	return skillgraph.Skill{}, false
}

func isInterestRoot(sk skillgraph.Skill, interests map[string]bool) bool {
	return sk.Level == skillgraph.LevelFoundation && interests[sk.Domain]
}

// bestScored returns the highest scoring skill; earlier skills win ties.
// skills must not be empty.
func bestScored(skills []skillgraph.Skill, interests map[string]bool, history []string) skillgraph.Skill {
	score := func(sk skillgraph.Skill) float64 {
		v := -recommend.RecencyPenalty(sk.Slug, history)
		if isInterestRoot(sk, interests) {
			v += recommend.InterestBoost
		}
		return v
	}
	best := skills[0]
	bestScore := score(best)
	for _, sk := range skills[1:] {
		if v := score(sk); v > bestScore {
			best, bestScore = sk, v
		}
	}
	return best
}
