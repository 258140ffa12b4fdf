package techtree

import (
	"fmt"

	"github.com/abhisek/storyquest/internal/skillgraph"
)

const (
	// ReinforceAfterAttempts is the attempt count after which low mastery
	// switches the objective to reinforcement.
	ReinforceAfterAttempts = 3

	// LowMastery is the mastery below which a practiced skill is reinforced.
	LowMastery = 0.6
)

// ObjectiveKind is the intent of a learning session.
type ObjectiveKind string

const (
	ObjectiveIntroduce   ObjectiveKind = "introduce"
	ObjectiveConsolidate ObjectiveKind = "consolidate"
	ObjectiveReinforce   ObjectiveKind = "reinforce"
	ObjectiveAdvance     ObjectiveKind = "advance"
)

// ClassifyObjective maps a progress record to a session intent. A nil
// record means the skill has never been attempted.
func ClassifyObjective(p *skillgraph.Progress) ObjectiveKind {
	switch {
	case p == nil || p.Attempts == 0:
		return ObjectiveIntroduce
	case p.IsDominated():
		return ObjectiveConsolidate
	case p.Attempts >= ReinforceAfterAttempts && p.Mastery < LowMastery:
		return ObjectiveReinforce
	default:
		return ObjectiveAdvance
	}
}

// SessionObjective returns the human-readable objective for a session on s.
func SessionObjective(s skillgraph.Skill, p *skillgraph.Progress) string {
	concept := s.CoreConcept
	switch ClassifyObjective(p) {
	case ObjectiveIntroduce:
		return fmt.Sprintf("Introduce %s: %s, through a simple story with one clear example.", s.Name, concept)
	case ObjectiveConsolidate:
		return fmt.Sprintf("Consolidate %s by using it in a brand-new setting: %s, somewhere unexpected.", s.Name, concept)
	case ObjectiveReinforce:
		return fmt.Sprintf("Reinforce %s with simpler framing and extra scaffolding: %s.", s.Name, concept)
	default:
		return fmt.Sprintf("Advance %s with a harder situation: %s, with less support.", s.Name, concept)
	}
}
