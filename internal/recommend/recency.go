package recommend

const (
	// RecencyWindow is how many of the most recent history entries suppress a skill.
	RecencyWindow = 6
	// MaxRecencyPenalty is subtracted for the most recent entry.
	MaxRecencyPenalty = 0.5
)

// RecencyPenalty returns the score penalty for slug given a history ordered
// oldest first. The penalty falls linearly across the last RecencyWindow
// entries and is zero beyond them.
func RecencyPenalty(slug string, history []string) float64 {
	for i := 0; i < RecencyWindow && i < len(history); i++ {
		if history[len(history)-1-i] == slug {
			return MaxRecencyPenalty * float64(RecencyWindow-i) / RecencyWindow
		}
	}
	return 0
}
