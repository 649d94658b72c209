// Package ratio computes the derived ratios stored alongside the running
// counters: kill:death, win:loss and accuracy.
package ratio

import "math"

// KDR returns the kill:death ratio rounded to two decimals.
//
// With no deaths the ratio is undefined; a player with kills and no deaths
// gets their kill count, and a player with neither gets 0.
func KDR(kills, deaths int) float64 {
	return ratio(kills, deaths)
}

// WLR returns the win:loss ratio with the same policy as KDR.
func WLR(wins, losses int) float64 {
	return ratio(wins, losses)
}

// Accuracy returns hits/shots as a percentage rounded to two decimals,
// or 0 when either counter is empty.
func Accuracy(hits, shots int) float64 {
	if hits < 1 || shots < 1 {
		return 0
	}
	return Round2(float64(hits) / float64(shots) * 100)
}

// Round2 rounds x to two decimal places, half away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func ratio(num, den int) float64 {
	if num < 1 && den < 1 {
		return 0
	}
	if num > 0 && den < 1 {
		return float64(num)
	}
	return Round2(float64(num) / float64(den))
}
