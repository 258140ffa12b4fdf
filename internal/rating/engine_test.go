package rating

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeCorrect() []GradedResponse {
	return []GradedResponse{
		{Category: CategoryLiteral, Correct: true, ItemDifficulty: 3},
		{Category: CategoryVocabulary, Correct: true, ItemDifficulty: 3},
		{Category: CategoryInference, Correct: true, ItemDifficulty: 3},
	}
}

func TestItemRating(t *testing.T) {
	tests := []struct {
		level      float64
		difficulty int
		category   Category
		want       float64
	}{
		{2.0, 3, CategoryVocabulary, 600},
		{2.0, 3, CategoryLiteral, 550},
		{1.0, 1, CategoryLiteral, 190},
		{4.0, 5, CategorySummary, 1240},
		{2.5, 4, CategoryInference, 830},
	}
	for _, tt := range tests {
		got := ItemRating(tt.level, tt.difficulty, tt.category)
		assert.InDelta(t, tt.want, got, 1e-9, "ItemRating(%v, %d, %s)", tt.level, tt.difficulty, tt.category)
	}
}

func TestCategoryModifier_Ordering(t *testing.T) {
	cats := AllCategories()
	for i := 1; i < len(cats); i++ {
		assert.Less(t, cats[i-1].Modifier(), cats[i].Modifier(),
			"%s should be easier than %s", cats[i-1], cats[i])
	}
}

func TestUpdate_EmptyBatchIsNoOp(t *testing.T) {
	r := Rating{Global: 1234, Literal: 1100, Inference: 900, Vocabulary: 1000, Summary: 950, RD: 180}
	got, deltas := Update(r, nil, 2.5)
	assert.Equal(t, r, got)
	assert.Empty(t, deltas)

	got, deltas = Update(r, []GradedResponse{}, 1.0)
	assert.Equal(t, r, got)
	assert.Empty(t, deltas)
}

func TestUpdate_FreshLearnerAllCorrect(t *testing.T) {
	start := New()
	got, deltas := Update(start, threeCorrect(), 2.0)

	require.Len(t, deltas, 3)
	assert.Greater(t, got.Global, start.Global)
	assert.Less(t, got.RD, start.RD)
	for _, d := range deltas {
		assert.Greater(t, d.DGlobal, 0.0)
		assert.Greater(t, d.DCategory, 0.0)
	}
	assert.Greater(t, got.Literal, start.Literal)
	assert.Greater(t, got.Vocabulary, start.Vocabulary)
	assert.Greater(t, got.Inference, start.Inference)
	assert.Equal(t, start.Summary, got.Summary, "untouched category must not move")
}

func TestUpdate_VeteranMovesLess(t *testing.T) {
	veteran := New()
	veteran.Global = 1200
	veteran.RD = MinRD

	calibrating := New()
	calibrating.Global = 1200

	vGot, _ := Update(veteran, threeCorrect(), 2.0)
	cGot, _ := Update(calibrating, threeCorrect(), 2.0)
	fGot, _ := Update(New(), threeCorrect(), 2.0)

	vDelta := math.Abs(vGot.Global - veteran.Global)
	assert.Less(t, vDelta, math.Abs(cGot.Global-calibrating.Global))
	assert.Less(t, vDelta, math.Abs(fGot.Global-InitialRating))
}

func TestUpdate_RDStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cats := AllCategories()
	for trial := 0; trial < 200; trial++ {
		r := New()
		r.RD = MinRD + rng.Float64()*(MaxRD-MinRD)
		r.Global = 200 + rng.Float64()*1400
		for batch := 0; batch < 10; batch++ {
			n := rng.Intn(8)
			responses := make([]GradedResponse, n)
			for i := range responses {
				responses[i] = GradedResponse{
					Category:       cats[rng.Intn(len(cats))],
					Correct:        rng.Intn(2) == 0,
					ItemDifficulty: 1 + rng.Intn(5),
				}
			}
			level := 1 + float64(rng.Intn(7))*0.5
			r, _ = Update(r, responses, level)
			require.GreaterOrEqual(t, r.RD, MinRD)
			require.LessOrEqual(t, r.RD, MaxRD)
			require.NoError(t, r.Validate())
		}
	}
}

func TestUpdate_MaximalUpsetsStayBounded(t *testing.T) {
	r := New()
	r.Global = 1800
	wrongOnEasy := []GradedResponse{
		{Category: CategoryLiteral, Correct: false, ItemDifficulty: 1},
		{Category: CategoryLiteral, Correct: false, ItemDifficulty: 1},
		{Category: CategoryLiteral, Correct: false, ItemDifficulty: 1},
	}
	for i := 0; i < 20; i++ {
		prev := r
		var deltas []Delta
		r, deltas = Update(r, wrongOnEasy, 1.0)
		for _, d := range deltas {
			assert.LessOrEqual(t, math.Abs(d.DGlobal), 8+MaxRD/50+1e-9)
		}
		assert.LessOrEqual(t, r.Global, prev.Global)
		require.NoError(t, r.Validate())
	}
	assert.InDelta(t, MaxRD, r.RD, 1e-9, "erratic learner should end at maximum uncertainty")
}

func TestUpdate_SingleSwingClamp(t *testing.T) {
	// A huge upset against a hard item would move a Glicko rating by far
	// more than the per-item cap.
	r := New()
	r.Global = 400
	got, deltas := Update(r, []GradedResponse{{Category: CategorySummary, Correct: true, ItemDifficulty: 5}}, 4.0)
	require.Len(t, deltas, 1)
	assert.InDelta(t, 8+MaxRD/50, deltas[0].DGlobal, 1e-9)
	assert.InDelta(t, r.Global+8+MaxRD/50, got.Global, 1e-9)
}

func TestUpdate_SingleResponseSkipsConsistency(t *testing.T) {
	r := New()
	resp := GradedResponse{Category: CategoryVocabulary, Correct: true, ItemDifficulty: 3}
	got, _ := Update(r, []GradedResponse{resp}, 2.0)

	g := glickoG(itemRD)
	e := expectedScore(r.Global, ItemRating(2.0, 3, CategoryVocabulary), g)
	_, wantRD := glickoStep(r.RD, g, e, 1)
	assert.InDelta(t, wantRD, got.RD, 1e-9)
}

func TestUpdate_ConsistencyAdjustment(t *testing.T) {
	easy := []GradedResponse{
		{Category: CategoryLiteral, ItemDifficulty: 2},
		{Category: CategoryLiteral, ItemDifficulty: 2},
		{Category: CategoryLiteral, ItemDifficulty: 2},
	}
	// Folding one response at a time follows the per-item path with no
	// consistency step.
	perItem := func(r Rating, batch []GradedResponse) Rating {
		for _, resp := range batch {
			r, _ = Update(r, []GradedResponse{resp}, 1.0)
		}
		return r
	}

	start := New()
	start.RD = 200

	predictable := make([]GradedResponse, len(easy))
	erratic := make([]GradedResponse, len(easy))
	for i, resp := range easy {
		resp.Correct = true
		predictable[i] = resp
		resp.Correct = false
		erratic[i] = resp
	}

	got, _ := Update(start, predictable, 1.0)
	path := perItem(start, predictable)
	assert.InDelta(t, path.Global, got.Global, 1e-9)
	assert.Less(t, got.RD, path.RD, "predictable learner should end with lower uncertainty")

	got, _ = Update(start, erratic, 1.0)
	path = perItem(start, erratic)
	assert.Greater(t, got.RD, path.RD, "erratic learner should end with higher uncertainty")
	assert.Greater(t, got.RD, start.RD)
}

func TestUpdate_CategoryDeltasAreUndamped(t *testing.T) {
	r := New()
	r.Global = 1600
	r.Literal = 1600
	r.RD = MinRD
	resp := GradedResponse{Category: CategoryLiteral, Correct: true, ItemDifficulty: 1}
	_, deltas := Update(r, []GradedResponse{resp}, 1.0)
	require.Len(t, deltas, 1)

	item := ItemRating(1.0, 1, CategoryLiteral)
	wantCat := minCategoryK * (1 - logisticExpected(r.Literal, item))
	assert.InDelta(t, wantCat, deltas[0].DCategory, 1e-9)
}

func TestFarmingFactor(t *testing.T) {
	assert.Equal(t, 1.0, farmingFactor(50, MinRD), "small gaps are not damped")
	assert.Equal(t, 1.0, farmingFactor(farmingGap, MinRD))

	// Stronger as the gap grows.
	assert.Less(t, farmingFactor(400, MinRD), farmingFactor(200, MinRD))
	// Relaxed while RD is high.
	assert.Greater(t, farmingFactor(400, MaxRD), farmingFactor(400, MinRD))
	// Full strength at the floor.
	assert.InDelta(t, minFarmingFactor, farmingFactor(farmingGap+farmingSpan, MinRD), 1e-9)
	// Never lifted completely.
	assert.Less(t, farmingFactor(farmingGap+farmingSpan, MaxRD), 1.0)
}

func TestAntiFarming_DampsLargeGaps(t *testing.T) {
	g := glickoG(itemRD)
	for _, rd := range []float64{MinRD, 150, 250, MaxRD} {
		for _, gap := range []float64{500, 650, 900} {
			r := Rating{Global: 1500, Literal: 1500, Inference: 1500, Vocabulary: 1500, Summary: 1500, RD: rd}
			// Vocabulary, difficulty 3 item: rating = level*200 + 200.
			level := (r.Global - gap - 200) / 200
			e := expectedScore(r.Global, ItemRating(level, 3, CategoryVocabulary), g)
			raw, _ := glickoStep(rd, g, e, 1)

			_, deltas := Update(r, []GradedResponse{{Category: CategoryVocabulary, Correct: true, ItemDifficulty: 3}}, level)
			require.Len(t, deltas, 1)
			assert.Less(t, math.Abs(deltas[0].DGlobal), math.Abs(raw), "rd=%v gap=%v", rd, gap)
		}
	}
}

func TestAntiFarming_IncorrectNeverDamped(t *testing.T) {
	r := Rating{Global: 1500, Literal: 1500, Inference: 1500, Vocabulary: 1500, Summary: 1500, RD: MinRD}
	level := 1.0
	item := ItemRating(level, 3, CategoryVocabulary)
	g := glickoG(itemRD)
	raw, _ := glickoStep(r.RD, g, expectedScore(r.Global, item, g), 0)

	_, deltas := Update(r, []GradedResponse{{Category: CategoryVocabulary, Correct: false, ItemDifficulty: 3}}, level)
	limit := 8 + r.RD/50
	assert.InDelta(t, math.Max(raw, -limit), deltas[0].DGlobal, 1e-9)
}

func TestUpdate_Deterministic(t *testing.T) {
	r := New()
	batch := append(threeCorrect(), GradedResponse{Category: CategorySummary, Correct: false, ItemDifficulty: 4})
	a, da := Update(r, batch, 2.5)
	b, db := Update(r, batch, 2.5)
	assert.Equal(t, a, b)
	assert.Equal(t, da, db)
}

func TestUpdate_DoesNotMutateInput(t *testing.T) {
	batch := threeCorrect()
	snapshot := append([]GradedResponse(nil), batch...)
	Update(New(), batch, 2.0)
	assert.Equal(t, snapshot, batch)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Rating)
		wantErr bool
	}{
		{"default", func(*Rating) {}, false},
		{"rd floor", func(r *Rating) { r.RD = MinRD }, false},
		{"nan global", func(r *Rating) { r.Global = math.NaN() }, true},
		{"inf summary", func(r *Rating) { r.Summary = math.Inf(1) }, true},
		{"rd too low", func(r *Rating) { r.RD = 10 }, true},
		{"rd too high", func(r *Rating) { r.RD = 351 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidRating), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTextLevelFor(t *testing.T) {
	tests := []struct {
		global float64
		want   float64
	}{
		{100, 1},
		{600, 2},
		{690, 2.5},
		{1000, 4},
		{2000, 4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, TextLevelFor(Rating{Global: tt.global}), 1e-9, "global=%v", tt.global)
	}
}

func TestTextLevelFor_InvertsVocabularyItemRating(t *testing.T) {
	for level := MinTextLevel; level <= MaxTextLevel; level += 0.5 {
		r := Rating{Global: ItemRating(level, 3, CategoryVocabulary)}
		assert.InDelta(t, level, TextLevelFor(r), 1e-9, "level=%v", level)
	}
	// A literal item at the same level sits 50 points lower and rounds to the same level.
	assert.InDelta(t, 2.0, TextLevelFor(Rating{Global: ItemRating(2, 3, CategoryLiteral)}), 1e-9)
}

func TestValidTextLevel(t *testing.T) {
	for _, level := range []float64{1, 1.5, 2, 3.5, 4} {
		assert.True(t, ValidTextLevel(level), "level=%v", level)
	}
	for _, level := range []float64{0, 0.5, 1.25, 4.5, 9, -2} {
		assert.False(t, ValidTextLevel(level), "level=%v", level)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories() {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCategory("trivia")
	assert.Error(t, err)
}
