package rating

import (
	"errors"
	"fmt"
	"math"
)

const (
	// InitialRating is the global and per-category rating of a new learner.
	InitialRating = 1000.0

	// MinRD and MaxRD bound the rating deviation.
	MinRD = 75.0
	MaxRD = 350.0

	// Text levels run from MinTextLevel to MaxTextLevel in steps of 0.5.
	MinTextLevel = 1.0
	MaxTextLevel = 4.0

	// Item difficulty runs from MinDifficulty to MaxDifficulty; 3 is medium.
	MinDifficulty = 1
	MaxDifficulty = 5
)

// ValidTextLevel reports whether level is a nominal text level.
func ValidTextLevel(level float64) bool {
	return level >= MinTextLevel && level <= MaxTextLevel && level*2 == math.Trunc(level*2)
}

// ErrInvalidRating is returned by Validate for malformed ratings.
var ErrInvalidRating = errors.New("invalid rating")

// Category is a question category.
type Category string

const (
	CategoryLiteral    Category = "literal"
	CategoryInference  Category = "inference"
	CategoryVocabulary Category = "vocabulary"
	CategorySummary    Category = "summary"
)

// AllCategories returns the four categories from easiest to hardest.
func AllCategories() []Category {
	return []Category{CategoryLiteral, CategoryVocabulary, CategoryInference, CategorySummary}
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryLiteral, CategoryInference, CategoryVocabulary, CategorySummary:
		return c, nil
	default:
		return "", fmt.Errorf("unknown question category %q", s)
	}
}

// Modifier returns the fixed item-rating offset for the category. At equal
// nominal difficulty, literal recall is easiest and summary hardest.
func (c Category) Modifier() float64 {
	switch c {
	case CategoryLiteral:
		return -50
	case CategoryVocabulary:
		return 0
	case CategoryInference:
		return 50
	case CategorySummary:
		return 80
	default:
		return 0
	}
}

// Rating is a learner's ability estimate.
type Rating struct {
	Global     float64 `json:"global"`
	Literal    float64 `json:"literal"`
	Inference  float64 `json:"inference"`
	Vocabulary float64 `json:"vocabulary"`
	Summary    float64 `json:"summary"`
	RD         float64 `json:"rd"`
}

// New returns the rating assigned at onboarding.
func New() Rating {
	return Rating{
		Global:     InitialRating,
		Literal:    InitialRating,
		Inference:  InitialRating,
		Vocabulary: InitialRating,
		Summary:    InitialRating,
		RD:         MaxRD,
	}
}

// Category returns the sub-rating for c.
func (r Rating) Category(c Category) float64 {
	switch c {
	case CategoryLiteral:
		return r.Literal
	case CategoryInference:
		return r.Inference
	case CategoryVocabulary:
		return r.Vocabulary
	case CategorySummary:
		return r.Summary
	default:
		return r.Global
	}
}

// withCategory returns a copy of r with the sub-rating for c set to v.
func (r Rating) withCategory(c Category, v float64) Rating {
	switch c {
	case CategoryLiteral:
		r.Literal = v
	case CategoryInference:
		r.Inference = v
	case CategoryVocabulary:
		r.Vocabulary = v
	case CategorySummary:
		r.Summary = v
	}
	return r
}

// Validate reports non-finite scalars or an RD outside [MinRD, MaxRD].
func (r Rating) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"global", r.Global},
		{"literal", r.Literal},
		{"inference", r.Inference},
		{"vocabulary", r.Vocabulary},
		{"summary", r.Summary},
		{"rd", r.RD},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidRating, f.name)
		}
	}
	if r.RD < MinRD || r.RD > MaxRD {
		return fmt.Errorf("%w: rd %.2f outside [%.0f, %.0f]", ErrInvalidRating, r.RD, MinRD, MaxRD)
	}
	return nil
}

// GradedResponse is one graded answer from a quiz batch.
type GradedResponse struct {
	Category       Category `json:"category"`
	Correct        bool     `json:"correct"`
	ItemDifficulty int      `json:"item_difficulty"` // 1..5, 3 is medium
}

// Delta is the per-response trace produced by Update.
type Delta struct {
	Category   Category `json:"category"`
	ItemRating float64  `json:"item_rating"`
	DGlobal    float64  `json:"d_global"`
	DCategory  float64  `json:"d_category"`
}
