// Package baseline estimates a learner's starting reading level from a short
// placement test.
package baseline

import (
	"math"

	"github.com/abhisek/storyquest/internal/rating"
)

const (
	// PassAccuracy is the share of correct answers that counts a text as passed.
	PassAccuracy = 0.60
	// BonusAccuracy at the highest passed level bumps the result by half a level.
	BonusAccuracy = 0.80

	MinLevel = 1.0
	MaxLevel = 4.0
)

// Confidence describes how much placement evidence backs a result.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// CategoryTally counts questions and correct answers in one category.
type CategoryTally struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// TextResult is the graded outcome of one placement text.
type TextResult struct {
	Level             float64                           `json:"level"`
	TotalQuestions    int                               `json:"total_questions"`
	Correct           int                               `json:"correct"`
	CorrectByCategory map[rating.Category]CategoryTally `json:"correct_by_category"`
}

// Accuracy returns the share of correct answers, zero for an empty text.
func (t TextResult) Accuracy() float64 {
	if t.TotalQuestions == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.TotalQuestions)
}

// Result is the onboarding estimate.
type Result struct {
	Level               float64                           `json:"level"`
	ComprehensionScore  float64                           `json:"comprehension_score"`
	Confidence          Confidence                        `json:"confidence"`
	PerCategoryAccuracy map[rating.Category]CategoryTally `json:"per_category_accuracy"`
	TextsCompleted      int                               `json:"texts_completed"`
}

// Estimate converts placement results into a starting level and confidence.
func Estimate(results []TextResult) Result {
	res := Result{
		Level:               MinLevel,
		Confidence:          confidenceFor(len(results)),
		PerCategoryAccuracy: make(map[rating.Category]CategoryTally),
		TextsCompleted:      len(results),
	}
	if len(results) == 0 {
		return res
	}

	totalQuestions, totalCorrect := 0, 0
	best := -1
	for i, t := range results {
		totalQuestions += t.TotalQuestions
		totalCorrect += t.Correct

		// Only categories present in this text contribute.
		for c, tally := range t.CorrectByCategory {
			acc := res.PerCategoryAccuracy[c]
			acc.Total += tally.Total
			acc.Correct += tally.Correct
			res.PerCategoryAccuracy[c] = acc
		}

		if t.Accuracy() >= PassAccuracy && (best < 0 || t.Level > results[best].Level) {
			best = i
		}
	}

	if best >= 0 {
		level := results[best].Level
		if results[best].Accuracy() >= BonusAccuracy {
			level += 0.5
		}
		res.Level = math.Min(math.Max(level, MinLevel), MaxLevel)
	}

	if totalQuestions > 0 {
		res.ComprehensionScore = math.Round(float64(totalCorrect)/float64(totalQuestions)*100) / 100
	}
	return res
}

func confidenceFor(texts int) Confidence {
	switch {
	case texts >= 4:
		return ConfidenceHigh
	case texts == 3:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// SeedRating converts a placement result into the learner's first rating.
// The global rating matches a medium vocabulary item at the placed level;
// category ratings shift by how far each category's accuracy sits from the
// overall score.
func (r Result) SeedRating() rating.Rating {
	seed := rating.New()
	seed.Global = rating.ItemRating(r.Level, 3, rating.CategoryVocabulary)

	for _, c := range rating.AllCategories() {
		v := seed.Global
		if tally, ok := r.PerCategoryAccuracy[c]; ok && tally.Total > 0 {
			acc := float64(tally.Correct) / float64(tally.Total)
			v += (acc - r.ComprehensionScore) * 200
		}
		switch c {
		case rating.CategoryLiteral:
			seed.Literal = v
		case rating.CategoryInference:
			seed.Inference = v
		case rating.CategoryVocabulary:
			seed.Vocabulary = v
		case rating.CategorySummary:
			seed.Summary = v
		}
	}

	switch r.Confidence {
	case ConfidenceHigh:
		seed.RD = 250
	case ConfidenceMedium:
		seed.RD = 300
	default:
		seed.RD = rating.MaxRD
	}
	return seed
}
