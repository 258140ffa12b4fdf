package skillgraph

// DominationThreshold is the mastery score at or above which a skill counts
// as dominated even when the explicit flag is unset.
const DominationThreshold = 0.85

// Level is a difficulty level within a domain.
type Level int

const (
	LevelFoundation Level = 1 // Entry skills, no prerequisites
	LevelBuilding   Level = 2 // Requires at least one foundation skill
	LevelMastery    Level = 3 // Capstone skills
)

// AllLevels returns the three levels in ascending order.
func AllLevels() []Level {
	return []Level{LevelFoundation, LevelBuilding, LevelMastery}
}

// Valid reports whether l is one of the three catalog levels.
func (l Level) Valid() bool {
	return l >= LevelFoundation && l <= LevelMastery
}

// Domain groups related skills and names their three levels.
type Domain struct {
	Slug   string   `json:"slug"`
	Name   string   `json:"name"`
	Emoji  string   `json:"emoji"`
	Levels []string `json:"levels"`
}

// Skill is a single node in the prerequisite DAG.
type Skill struct {
	Slug          string   `json:"slug"`
	Name          string   `json:"name"`
	Emoji         string   `json:"emoji"`
	Domain        string   `json:"domain"`
	Level         Level    `json:"level"`
	CoreConcept   string   `json:"core_concept"`
	Description   string   `json:"description,omitempty"`
	Prerequisites []string `json:"prerequisites"`
	AgeMin        int      `json:"age_min"`
	AgeMax        int      `json:"age_max"`
	Order         int      `json:"order"`
}

// AgeEligible reports whether age falls inside the skill's age range.
func AgeEligible(s Skill, age int) bool {
	return s.AgeMin <= age && age <= s.AgeMax
}

// IsUnlocked returns true if every prerequisite of s is dominated in progress.
// Skills without prerequisites are always unlocked.
func IsUnlocked(s Skill, progress ProgressMap) bool {
	for _, prereq := range s.Prerequisites {
		if !progress.Dominated(prereq) {
			return false
		}
	}
	return true
}

// Progress is a learner's record for one skill. It is owned by the caller;
// nothing in this module mutates it.
type Progress struct {
	Attempts  int     `json:"attempts"`
	Correct   int     `json:"correct"`
	Mastery   float64 `json:"mastery"`
	Dominated bool    `json:"dominated"`
}

// IsDominated reports whether the skill is flagged mastered or its mastery
// score has reached DominationThreshold.
func (p Progress) IsDominated() bool {
	return p.Dominated || p.Mastery >= DominationThreshold
}

// InProgress reports whether the skill has been attempted but not dominated.
func (p Progress) InProgress() bool {
	return p.Attempts > 0 && !p.IsDominated()
}

// ProgressMap is a read-only snapshot of progress keyed by skill slug.
// A nil map is a valid empty snapshot.
type ProgressMap map[string]Progress

// Get returns the progress for slug and whether a record exists.
func (m ProgressMap) Get(slug string) (Progress, bool) {
	p, ok := m[slug]
	return p, ok
}

// Dominated reports whether slug is dominated. Missing records are not.
func (m ProgressMap) Dominated(slug string) bool {
	p, ok := m[slug]
	return ok && p.IsDominated()
}

// Attempts returns the attempt count for slug, zero when absent.
func (m ProgressMap) Attempts(slug string) int {
	return m[slug].Attempts
}
