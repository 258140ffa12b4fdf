// Package recommend ranks next-skill suggestions from the prerequisite graph.
package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/abhisek/storyquest/internal/skillgraph"
)

const (
	// DefaultLimit is the number of suggestions returned when Request.Limit is unset.
	DefaultLimit = 5

	// InterestBoost is added when a candidate's domain is one of the learner's interests.
	InterestBoost = 0.25

	// ReinforceMastery is the mastery below which an attempted skill needs remediation.
	ReinforceMastery = 0.6

	// LowAttempts is the attempt count below which a sibling still counts as fresh.
	LowAttempts = 3

	levelPenalty       = 0.15 // per level above 1 in the fallback pool
	bridgeLevelPenalty = 0.1  // per level of distance from the current skill
)

// Suggestion is one ranked recommendation.
type Suggestion struct {
	Slug      string           `json:"slug"`
	Name      string           `json:"name"`
	Emoji     string           `json:"emoji"`
	Domain    string           `json:"domain"`
	Level     skillgraph.Level `json:"level"`
	Intent    Intent           `json:"intent"`
	Rationale string           `json:"rationale"`
	Score     float64          `json:"score"`

	order int
}

// Request carries the learner state for one recommendation call.
// Every field is read-only input.
type Request struct {
	Age       int
	Interests map[string]bool // Domain slugs
	Progress  skillgraph.ProgressMap

	// CurrentSkill is the slug the learner just worked on. Optional.
	CurrentSkill string

	// RecentHistory lists recently visited slugs, oldest first.
	RecentHistory []string

	// IgnorePrerequisites disables unlock gating, for "what's next" previews.
	IgnorePrerequisites bool

	// Limit caps the result length. Zero or negative means DefaultLimit.
	Limit int
}

// Recommender proposes next skills from a catalog. It holds no mutable state
// and is safe for concurrent use.
type Recommender struct {
	catalog *skillgraph.Catalog
}

// New creates a Recommender over the given catalog.
func New(catalog *skillgraph.Catalog) *Recommender {
	return &Recommender{catalog: catalog}
}

// Recommend returns suggestions sorted by score, highest first, never
// including the current skill. The list may be shorter than the limit, or
// empty when nothing qualifies.
func (r *Recommender) Recommend(req Request) []Suggestion {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var candidates []Suggestion
	if current, err := r.catalog.Skill(req.CurrentSkill); err == nil && req.Progress.Dominated(current.Slug) {
		candidates = r.graphCandidates(req, current)
	}
	if len(candidates) == 0 {
		candidates = r.poolCandidates(req)
	}

	for i := range candidates {
		c := &candidates[i]
		if req.Interests[c.Domain] {
			c.Score += InterestBoost
		}
		c.Score -= RecencyPenalty(c.Slug, req.RecentHistory)
		c.Score = math.Round(c.Score*1000) / 1000
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].order < candidates[j].order
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// eligible applies the filters shared by every candidate source.
func (r *Recommender) eligible(req Request, s skillgraph.Skill) bool {
	if s.Slug == req.CurrentSkill {
		return false
	}
	if !skillgraph.AgeEligible(s, req.Age) || req.Progress.Dominated(s.Slug) {
		return false
	}
	if !req.IgnorePrerequisites && !skillgraph.IsUnlocked(s, req.Progress) {
		return false
	}
	return true
}

// graphCandidates builds deepen, reinforce, apply and bridge candidates
// around a dominated current skill.
func (r *Recommender) graphCandidates(req Request, current skillgraph.Skill) []Suggestion {
	buildsOn := make(map[string]bool)
	for _, d := range r.catalog.Dependents(current.Slug) {
		buildsOn[d.Slug] = true
	}

	var out []Suggestion
	for _, s := range r.catalog.Skills() {
		if !r.eligible(req, s) {
			continue
		}
		p, _ := req.Progress.Get(s.Slug)

		switch {
		case s.Domain == current.Domain && needsReinforcement(p):
			out = append(out, newSuggestion(s, IntentReinforce, IntentReinforce.BaseScore(),
				fmt.Sprintf("Strengthen %s before moving further along the %s line.", s.Name, current.Name)))

		case s.Domain == current.Domain:
			if (s.Level == current.Level || s.Level == current.Level+1) && p.Attempts < LowAttempts {
				out = append(out, newSuggestion(s, IntentDeepen, IntentDeepen.BaseScore(),
					fmt.Sprintf("Go deeper in the same skill line as %s.", current.Name)))
			}

		case buildsOn[s.Slug]:
			out = append(out, newSuggestion(s, IntentApply, IntentApply.BaseScore(),
				fmt.Sprintf("Put %s to work in %s.", current.Name, s.Name)))

		default:
			distance := math.Abs(float64(s.Level - current.Level))
			out = append(out, newSuggestion(s, IntentBridge, IntentBridge.BaseScore()-bridgeLevelPenalty*distance,
				fmt.Sprintf("Carry what you learned in %s into a new area.", current.Name)))
		}
	}
	return out
}

// poolCandidates is the global fallback: every eligible skill, lower levels first.
func (r *Recommender) poolCandidates(req Request) []Suggestion {
	var out []Suggestion
	for _, s := range r.catalog.Skills() {
		if !r.eligible(req, s) {
			continue
		}
		p, _ := req.Progress.Get(s.Slug)
		intent, rationale := IntentDeepen, fmt.Sprintf("A good next step: %s.", s.CoreConcept)
		if needsReinforcement(p) {
			intent, rationale = IntentReinforce, fmt.Sprintf("Revisit %s to lock it in.", s.Name)
		}
		score := intent.BaseScore() - levelPenalty*float64(s.Level-skillgraph.LevelFoundation)
		out = append(out, newSuggestion(s, intent, score, rationale))
	}
	return out
}

func needsReinforcement(p skillgraph.Progress) bool {
	return p.Attempts > 0 && p.Mastery < ReinforceMastery
}

func newSuggestion(s skillgraph.Skill, intent Intent, score float64, rationale string) Suggestion {
	return Suggestion{
		Slug:      s.Slug,
		Name:      s.Name,
		Emoji:     s.Emoji,
		Domain:    s.Domain,
		Level:     s.Level,
		Intent:    intent,
		Rationale: rationale,
		Score:     score,
		order:     s.Order,
	}
}
