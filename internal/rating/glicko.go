package rating

import "math"

const (
	// q is the Glicko scaling constant ln(10)/400.
	q = math.Ln10 / 400

	// itemRD is the fixed deviation of a synthetic item; items are treated as
	// near-certain in their own difficulty.
	itemRD = 30.0
)

// glickoG attenuates the impact of an opponent by its rating deviation.
func glickoG(rd float64) float64 {
	return 1 / math.Sqrt(1+3*q*q*rd*rd/(math.Pi*math.Pi))
}

// expectedScore is the Glicko win probability against an item.
func expectedScore(r, item, g float64) float64 {
	return 1 / (1 + math.Pow(10, -g*(r-item)/400))
}

// logisticExpected is the plain Elo expectation used for category ratings.
func logisticExpected(r, item float64) float64 {
	return 1 / (1 + math.Pow(10, -(r-item)/400))
}

// glickoStep returns the raw rating delta and the updated RD for one result.
// The returned RD is floored at MinRD.
func glickoStep(rd, g, e, actual float64) (delta, newRD float64) {
	d2inv := q * q * g * g * e * (1 - e)
	denom := 1/(rd*rd) + d2inv
	delta = q / denom * g * (actual - e)
	newRD = clamp(math.Sqrt(1/denom), MinRD, MaxRD)
	return delta, newRD
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
