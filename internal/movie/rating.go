package movie

import "strconv"

// Tier is the display band of a rating. Ordered low to high.
type Tier int

const (
	TierLow    Tier = iota // r < 6
	TierMedium             // 6 <= r < 7
	TierGood               // 7 <= r < 8
	TierHigh               // r >= 8
)

// Tier thresholds. A rating equal to a threshold belongs to the higher tier.
const (
	thresholdHigh   = 8.0
	thresholdGood   = 7.0
	thresholdMedium = 6.0
)

// Classify maps a rating to its tier. Total: NaN and negatives are TierLow.
func Classify(r float64) Tier {
	switch {
	case r >= thresholdHigh:
		return TierHigh
	case r >= thresholdGood:
		return TierGood
	case r >= thresholdMedium:
		return TierMedium
	default:
		return TierLow
	}
}

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierGood:
		return "good"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}

// FormatRating renders a rating with one decimal place.
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// Tier returns the rating tier of the movie.
func (m Movie) Tier() Tier {
	return Classify(m.VoteAverage)
}
