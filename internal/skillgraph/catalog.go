package skillgraph

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrSkillNotFound is returned when a slug does not name a catalog skill.
var ErrSkillNotFound = errors.New("skill not found")

// Catalog is an immutable skill DAG with precomputed indices.
// It is safe for concurrent use.
type Catalog struct {
	version    int
	domains    []Domain
	domainIdx  map[string]int
	skills     []Skill
	bySlug     map[string]int
	byDomain   map[string][]Skill
	byLevel    map[Level][]Skill
	dependents map[string][]string
	topoOrder  []Skill
}

// New validates the given domains and skills and builds a Catalog.
func New(version int, domains []Domain, skills []Skill) (*Catalog, error) {
	if err := validateCatalog(domains, skills); err != nil {
		return nil, err
	}
	return buildCatalog(version, domains, skills), nil
}

// buildCatalog constructs the indices. Input must already be validated.
func buildCatalog(version int, domains []Domain, skills []Skill) *Catalog {
	sorted := make([]Skill, len(skills))
	copy(sorted, skills)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	c := &Catalog{
		version:    version,
		domains:    slices.Clone(domains),
		domainIdx:  make(map[string]int, len(domains)),
		skills:     sorted,
		bySlug:     make(map[string]int, len(sorted)),
		byDomain:   make(map[string][]Skill),
		byLevel:    make(map[Level][]Skill),
		dependents: make(map[string][]string),
	}

	for i, d := range c.domains {
		c.domainIdx[d.Slug] = i
	}

	for i, s := range c.skills {
		c.bySlug[s.Slug] = i
		c.byDomain[s.Domain] = append(c.byDomain[s.Domain], s)
		c.byLevel[s.Level] = append(c.byLevel[s.Level], s)
		for _, prereq := range s.Prerequisites {
			c.dependents[prereq] = append(c.dependents[prereq], s.Slug)
		}
	}

	// Domain lists are ordered by level, then catalog order.
	for domain, list := range c.byDomain {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Level < list[j].Level })
		c.byDomain[domain] = list
	}

	// Topological sort (Kahn's algorithm), ready set drained in catalog order.
	inDegree := make(map[string]int, len(c.skills))
	for _, s := range c.skills {
		inDegree[s.Slug] = len(s.Prerequisites)
	}
	var queue []string
	for _, s := range c.skills {
		if inDegree[s.Slug] == 0 {
			queue = append(queue, s.Slug)
		}
	}
	for len(queue) > 0 {
		slug := queue[0]
		queue = queue[1:]
		c.topoOrder = append(c.topoOrder, c.skills[c.bySlug[slug]])

		for _, dep := range c.dependents[slug] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	return c
}

// Version returns the catalog data version.
func (c *Catalog) Version() int {
	return c.version
}

// Domains returns all domains in declaration order.
func (c *Catalog) Domains() []Domain {
	return slices.Clone(c.domains)
}

// Domain returns the domain with the given slug.
func (c *Catalog) Domain(slug string) (Domain, bool) {
	i, ok := c.domainIdx[slug]
	if !ok {
		return Domain{}, false
	}
	return c.domains[i], true
}

// LevelName returns the human-readable name of a domain level, or "" if unknown.
func (c *Catalog) LevelName(domain string, level Level) string {
	d, ok := c.Domain(domain)
	if !ok || !level.Valid() || len(d.Levels) < int(level) {
		return ""
	}
	return d.Levels[level-1]
}

// Skill returns a skill by slug.
func (c *Catalog) Skill(slug string) (Skill, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Skill{}, fmt.Errorf("%w: %q", ErrSkillNotFound, slug)
	}
	return c.skills[i], nil
}

// Has reports whether slug names a catalog skill.
func (c *Catalog) Has(slug string) bool {
	_, ok := c.bySlug[slug]
	return ok
}

// Skills returns every skill in catalog order.
func (c *Catalog) Skills() []Skill {
	return slices.Clone(c.skills)
}

// ByDomain returns a domain's skills ordered by level, then catalog order.
func (c *Catalog) ByDomain(domain string) []Skill {
	return slices.Clone(c.byDomain[domain])
}

// ByLevel returns the skills at a level in catalog order.
func (c *Catalog) ByLevel(level Level) []Skill {
	return slices.Clone(c.byLevel[level])
}

// Prerequisites returns the direct prerequisite skills of slug.
func (c *Catalog) Prerequisites(slug string) []Skill {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil
	}
	prereqs := c.skills[i].Prerequisites
	result := make([]Skill, 0, len(prereqs))
	for _, p := range prereqs {
		if j, ok := c.bySlug[p]; ok {
			result = append(result, c.skills[j])
		}
	}
	return result
}

// Dependents returns skills that list slug as a direct prerequisite.
func (c *Catalog) Dependents(slug string) []Skill {
	deps := c.dependents[slug]
	result := make([]Skill, 0, len(deps))
	for _, d := range deps {
		result = append(result, c.skills[c.bySlug[d]])
	}
	return result
}

// TopologicalOrder returns all skills so that prerequisites precede dependents.
func (c *Catalog) TopologicalOrder() []Skill {
	return slices.Clone(c.topoOrder)
}

// AvailableSkills returns age-eligible skills that are unlocked but not yet
// dominated, in catalog order.
func (c *Catalog) AvailableSkills(progress ProgressMap, age int) []Skill {
	var result []Skill
	for _, s := range c.skills {
		if AgeEligible(s, age) && !progress.Dominated(s.Slug) && IsUnlocked(s, progress) {
			result = append(result, s)
		}
	}
	return result
}

// LockedSkills returns all skills with at least one prerequisite not yet dominated.
func (c *Catalog) LockedSkills(progress ProgressMap) []Skill {
	var result []Skill
	for _, s := range c.skills {
		if !IsUnlocked(s, progress) {
			result = append(result, s)
		}
	}
	return result
}
