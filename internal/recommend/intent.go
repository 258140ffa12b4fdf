package recommend

// Intent is the pedagogical reason a skill is suggested.
type Intent string

const (
	IntentDeepen    Intent = "deepen"    // Same domain, same or next level
	IntentBridge    Intent = "bridge"    // Transfer to a different domain
	IntentApply     Intent = "apply"     // A skill that builds on the one just mastered
	IntentReinforce Intent = "reinforce" // Remediate a weak skill
)

// AllIntents returns every intent, highest default priority first.
func AllIntents() []Intent {
	return []Intent{IntentReinforce, IntentDeepen, IntentApply, IntentBridge}
}

// BaseScore is the starting score for a candidate with this intent.
// Remediation and depth outrank exploration.
func (i Intent) BaseScore() float64 {
	switch i {
	case IntentReinforce:
		return 1.0
	case IntentDeepen:
		return 0.9
	case IntentApply:
		return 0.75
	case IntentBridge:
		return 0.6
	default:
		return 0
	}
}

// Icon returns the display icon for an intent.
func (i Intent) Icon() string {
	switch i {
	case IntentReinforce:
		return "🔄"
	case IntentDeepen:
		return "⛏️"
	case IntentApply:
		return "🛠️"
	case IntentBridge:
		return "🌉"
	default:
		return "?"
	}
}
