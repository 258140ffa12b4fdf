package rating

import "math"

const (
	// farmingGap is how far an item must sit below the learner's rating
	// before a correct answer is damped.
	farmingGap = 100.0
	// farmingSpan is the extra gap over which damping ramps to full strength.
	farmingSpan = 400.0
	// minFarmingFactor is the strongest damping, reached at farmingGap+farmingSpan.
	minFarmingFactor = 0.15
	// maxRelaxation is the share of damping lifted at RD == MaxRD.
	maxRelaxation = 0.5

	// brierTarget is the Brier score at which the consistency step is neutral.
	brierTarget = 0.20
	// brierScale converts Brier error into RD points.
	brierScale = 120.0

	minCategoryK   = 12.0
	categoryKPerRD = 0.15
)

// ItemRating is the synthetic rating of a question of the given difficulty
// (1..5) and category in a text of the given nominal level.
func ItemRating(textLevel float64, difficulty int, c Category) float64 {
	return textLevel*200 + 200 + float64(difficulty-3)*80 + c.Modifier()
}

// TextLevelFor maps a rating back to the nominal text level whose medium
// vocabulary items (category modifier 0) match it, snapped to 0.5 steps in
// [MinTextLevel, MaxTextLevel]. It inverts ItemRating(level, 3, CategoryVocabulary).
func TextLevelFor(r Rating) float64 {
	level := (r.Global - ItemRating(0, 3, CategoryVocabulary)) / 200
	level = math.Round(level*2) / 2
	return clamp(level, MinTextLevel, MaxTextLevel)
}

// outcome pairs the expected score with the actual result.
type outcome struct {
	expected float64
	actual   float64
}

// Update folds a batch of graded responses, in order, into r and returns the
// new rating with a per-response trace. An empty batch returns r unchanged.
func Update(r Rating, responses []GradedResponse, textLevel float64) (Rating, []Delta) {
	if len(responses) == 0 {
		return r, []Delta{}
	}

	cur := r
	cur.RD = clamp(cur.RD, MinRD, MaxRD)
	g := glickoG(itemRD)

	deltas := make([]Delta, 0, len(responses))
	outcomes := make([]outcome, 0, len(responses))

	for _, resp := range responses {
		difficulty := min(max(resp.ItemDifficulty, MinDifficulty), MaxDifficulty)
		item := ItemRating(textLevel, difficulty, resp.Category)
		actual := 0.0
		if resp.Correct {
			actual = 1.0
		}
		rd := cur.RD

		e := expectedScore(cur.Global, item, g)
		outcomes = append(outcomes, outcome{expected: e, actual: actual})

		raw, newRD := glickoStep(rd, g, e, actual)

		dGlobal := raw
		if resp.Correct && cur.Global > item {
			dGlobal *= farmingFactor(cur.Global-item, rd)
		}
		limit := 8 + rd/50
		dGlobal = clamp(dGlobal, -limit, limit)

		k := math.Max(minCategoryK, rd*categoryKPerRD)
		catRating := cur.Category(resp.Category)
		dCategory := k * (actual - logisticExpected(catRating, item))

		cur.Global += dGlobal
		cur = cur.withCategory(resp.Category, catRating+dCategory)
		cur.RD = newRD

		deltas = append(deltas, Delta{
			Category:   resp.Category,
			ItemRating: item,
			DGlobal:    dGlobal,
			DCategory:  dCategory,
		})
	}

	if len(outcomes) >= 2 {
		cur.RD = clamp(cur.RD+(brierScore(outcomes)-brierTarget)*brierScale, MinRD, MaxRD)
	}

	return cur, deltas
}

// farmingFactor scales a correct answer's global delta when the item sits
// gap points below the learner. Damping grows with the gap and is partly
// relaxed while RD is high.
func farmingFactor(gap, rd float64) float64 {
	if gap <= farmingGap {
		return 1
	}
	strength := math.Min(1, (gap-farmingGap)/farmingSpan)
	base := 1 - strength*(1-minFarmingFactor)
	relax := (rd - MinRD) / (MaxRD - MinRD) * maxRelaxation
	return base + (1-base)*clamp(relax, 0, maxRelaxation)
}

// brierScore is the mean squared error between expected and actual scores.
func brierScore(outcomes []outcome) float64 {
	sum := 0.0
	for _, o := range outcomes {
		d := o.expected - o.actual
		sum += d * d
	}
	return sum / float64(len(outcomes))
}
