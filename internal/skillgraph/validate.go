package skillgraph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCatalog wraps every catalog integrity failure.
var ErrInvalidCatalog = errors.New("invalid skill catalog")

// validateCatalog performs all structural checks on the given data.
// Returns a combined error describing every problem found, or nil if valid.
func validateCatalog(domains []Domain, skills []Skill) error {
	var errs []string

	domainSet := make(map[string]bool, len(domains))
	for _, d := range domains {
		if d.Slug == "" {
			errs = append(errs, "domain with empty slug")
			continue
		}
		if domainSet[d.Slug] {
			errs = append(errs, fmt.Sprintf("duplicate domain: %q", d.Slug))
		}
		domainSet[d.Slug] = true
		if len(d.Levels) != len(AllLevels()) {
			errs = append(errs, fmt.Sprintf("domain %q must name %d levels, got %d", d.Slug, len(AllLevels()), len(d.Levels)))
		}
	}

	slugSet := make(map[string]bool, len(skills))
	populated := make(map[string]bool)
	for _, s := range skills {
		if slugSet[s.Slug] {
			errs = append(errs, fmt.Sprintf("duplicate skill slug: %q", s.Slug))
		}
		slugSet[s.Slug] = true
		if !domainSet[s.Domain] {
			errs = append(errs, fmt.Sprintf("skill %q references unknown domain %q", s.Slug, s.Domain))
		}
		populated[s.Domain] = true
	}

	for _, d := range domains {
		if !populated[d.Slug] {
			errs = append(errs, fmt.Sprintf("domain %q has no skills", d.Slug))
		}
	}

	for _, s := range skills {
		if !s.Level.Valid() {
			errs = append(errs, fmt.Sprintf("skill %q: level must be 1, 2 or 3, got %d", s.Slug, s.Level))
		}
		if s.Level == LevelFoundation && len(s.Prerequisites) > 0 {
			errs = append(errs, fmt.Sprintf("skill %q: level-1 skills must have no prerequisites", s.Slug))
		}
		if s.Level > LevelFoundation && len(s.Prerequisites) == 0 {
			errs = append(errs, fmt.Sprintf("skill %q: level-%d skills need at least one prerequisite", s.Slug, s.Level))
		}
		if s.AgeMin > s.AgeMax {
			errs = append(errs, fmt.Sprintf("skill %q: age_min %d exceeds age_max %d", s.Slug, s.AgeMin, s.AgeMax))
		}
		seen := make(map[string]bool, len(s.Prerequisites))
		for _, prereq := range s.Prerequisites {
			if seen[prereq] {
				errs = append(errs, fmt.Sprintf("skill %q lists prerequisite %q twice", s.Slug, prereq))
			}
			seen[prereq] = true
			if !slugSet[prereq] {
				errs = append(errs, fmt.Sprintf("skill %q references nonexistent prerequisite %q", s.Slug, prereq))
			}
		}
	}

	// Order must be a dense 1..N sequence.
	orders := make(map[int]string, len(skills))
	for _, s := range skills {
		if prev, ok := orders[s.Order]; ok {
			errs = append(errs, fmt.Sprintf("skills %q and %q share order %d", prev, s.Slug, s.Order))
			continue
		}
		orders[s.Order] = s.Slug
	}
	for i := 1; i <= len(skills); i++ {
		if _, ok := orders[i]; !ok {
			errs = append(errs, fmt.Sprintf("order sequence has a gap at %d", i))
		}
	}

	// Check for cycles using Kahn's algorithm.
	inDegree := make(map[string]int, len(skills))
	adjList := make(map[string][]string)
	for _, s := range skills {
		inDegree[s.Slug] = len(s.Prerequisites)
		for _, prereq := range s.Prerequisites {
			adjList[prereq] = append(adjList[prereq], s.Slug)
		}
	}

	var queue []string
	for _, s := range skills {
		if inDegree[s.Slug] == 0 {
			queue = append(queue, s.Slug)
		}
	}

	visited := 0
	for len(queue) > 0 {
		slug := queue[0]
		queue = queue[1:]
		visited++
		for _, dep := range adjList[slug] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if visited < len(skills) {
		var cycleNodes []string
		for _, s := range skills {
			if inDegree[s.Slug] > 0 {
				cycleNodes = append(cycleNodes, s.Slug)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving skills: %s", strings.Join(cycleNodes, ", ")))
	}

	if len(skills) == 0 {
		errs = append(errs, "catalog has no skills")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidCatalog, strings.Join(errs, "\n  "))
	}
	return nil
}
