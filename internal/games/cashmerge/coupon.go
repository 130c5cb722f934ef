package cashmerge

import "slices"

// Coupon is the reward shown when a game ends.
type Coupon struct {
	Percent int    `json:"percent"`
	Label   string `json:"label"`
}

// CouponTier is a score threshold and its reward.
type CouponTier struct {
	MinScore int `json:"min_score"`
	Coupon
}

// Highest threshold first.
var couponTiers = []CouponTier{
	{50000, Coupon{Percent: 50, Label: "50% exchange fee discount"}},
	{30000, Coupon{Percent: 30, Label: "30% exchange fee discount"}},
	{10000, Coupon{Percent: 10, Label: "10% exchange fee discount"}},
}

// CouponTiers returns the reward table, highest threshold first.
func CouponTiers() []CouponTier {
	return slices.Clone(couponTiers)
}

// CouponFor returns the coupon earned by a final score.
func CouponFor(score int) (Coupon, bool) {
	for _, tier := range couponTiers {
		if score >= tier.MinScore {
			return tier.Coupon, true
		}
	}
	return Coupon{}, false
}
