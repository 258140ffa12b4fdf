package techtree

import "github.com/abhisek/storyquest/internal/skillgraph"

// Context describes a chosen skill for content generation.
type Context struct {
	Slug             string           `json:"slug"`
	Name             string           `json:"name"`
	Domain           string           `json:"domain"`
	DomainName       string           `json:"domain_name"`
	Level            skillgraph.Level `json:"level"`
	LevelName        string           `json:"level_name"`
	Age              int              `json:"age"`
	ReadingLevel     float64          `json:"reading_level"`
	ObjectiveKind    ObjectiveKind    `json:"objective_kind"`
	Objective        string           `json:"objective"`
	TeachingStrategy string           `json:"teaching_strategy"`

	PrerequisitesDominated []string `json:"prerequisites_dominated"`
	PrerequisitesPending   []string `json:"prerequisites_pending"`
	RelatedDominated       []string `json:"related_dominated"`
	RelatedInProgress      []string `json:"related_in_progress"`
}

// BuildContext assembles the descriptive record for skill. Related lists hold
// the names of other skills in the same domain.
func (s *Selector) BuildContext(skill skillgraph.Skill, progress skillgraph.ProgressMap, age int, readingLevel float64) Context {
	var p *skillgraph.Progress
	if rec, ok := progress.Get(skill.Slug); ok {
		p = &rec
	}

	ctx := Context{
		Slug:             skill.Slug,
		Name:             skill.Name,
		Domain:           skill.Domain,
		Level:            skill.Level,
		LevelName:        s.catalog.LevelName(skill.Domain, skill.Level),
		Age:              age,
		ReadingLevel:     readingLevel,
		ObjectiveKind:    ClassifyObjective(p),
		Objective:        SessionObjective(skill, p),
		TeachingStrategy: teachingStrategy(skill, age, readingLevel),
	}
	if d, ok := s.catalog.Domain(skill.Domain); ok {
		ctx.DomainName = d.Name
	}

	for _, pre := range s.catalog.Prerequisites(skill.Slug) {
		if progress.Dominated(pre.Slug) {
			ctx.PrerequisitesDominated = append(ctx.PrerequisitesDominated, pre.Name)
		} else {
			ctx.PrerequisitesPending = append(ctx.PrerequisitesPending, pre.Name)
		}
	}

	for _, rel := range s.catalog.ByDomain(skill.Domain) {
		if rel.Slug == skill.Slug {
			continue
		}
		rec, ok := progress.Get(rel.Slug)
		switch {
		case !ok:
		case rec.IsDominated():
			ctx.RelatedDominated = append(ctx.RelatedDominated, rel.Name)
		case rec.InProgress():
			ctx.RelatedInProgress = append(ctx.RelatedInProgress, rel.Name)
		}
	}

	return ctx
}

// teachingStrategy picks a framing from the learner's age and reading level.
func teachingStrategy(skill skillgraph.Skill, age int, readingLevel float64) string {
	var strategy string
	switch {
	case age <= 6 || readingLevel < 1.5:
		strategy = "Use short sentences, a familiar everyday setting and one concrete example."
	case age <= 9 || readingLevel < 3:
		strategy = "Show the idea through a character's choices, then ask guided why-questions."
	default:
		strategy = "Let the story pose an open problem and invite the reader to reason it through."
	}
	if skill.Level == skillgraph.LevelMastery {
		strategy += " Tie the ending back to the skills this one builds on."
	}
	return strategy
}
