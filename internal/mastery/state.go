package mastery

import "github.com/abhisek/storyquest/internal/skillgraph"

// State is a skill's position in the learner's tree, for display.
type State string

const (
	StateLocked    State = "locked"
	StateAvailable State = "available"
	StateLearning  State = "learning"
	StateDominated State = "dominated"
)

// ResolveState maps a skill's progress and graph position to its display state.
// Dominated wins over locked so a mastered skill never looks unreachable.
func ResolveState(s skillgraph.Skill, progress skillgraph.ProgressMap) State {
	p, ok := progress.Get(s.Slug)
	switch {
	case ok && p.IsDominated():
		return StateDominated
	case !skillgraph.IsUnlocked(s, progress):
		return StateLocked
	case ok && p.InProgress():
		return StateLearning
	default:
		return StateAvailable
	}
}
