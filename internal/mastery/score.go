// Package mastery turns raw attempt counts into the mastery score carried by
// skillgraph.Progress.
package mastery

import "github.com/abhisek/storyquest/internal/skillgraph"

// DefaultVolumeCap is the attempt count at which sample size stops
// discounting accuracy.
const DefaultVolumeCap = 8

// Score computes mastery from attempts and correct answers. Accuracy is
// discounted while the sample is small, so reaching the domination threshold
// needs both accuracy and volume.
func Score(attempts, correct int) float64 {
	if attempts <= 0 {
		return 0
	}
	accuracy := clamp(float64(correct)/float64(attempts), 0, 1)
	return clamp(accuracy*(0.6+0.4*VolumeScore(attempts, DefaultVolumeCap)), 0, 1)
}

// VolumeScore is the fraction of cap reached by attempts.
func VolumeScore(attempts int, cap int) float64 {
	if cap <= 0 {
		return 0.0
	}
	if attempts >= cap {
		return 1.0
	}
	return float64(attempts) / float64(cap)
}

// Apply records one graded attempt and returns the updated progress.
// Domination is sticky once reached.
func Apply(p skillgraph.Progress, correct bool) skillgraph.Progress {
	p.Attempts++
	if correct {
		p.Correct++
	}
	p.Mastery = Score(p.Attempts, p.Correct)
	p.Dominated = p.Dominated || p.Mastery >= skillgraph.DominationThreshold
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
