// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sequence

// Generation parameters. Every rater must be evaluated on the identical
// stimulus set, so selection is a pure function of these constants.
const (
	Seed          = 42
	GroupCount    = 17
	ItemsPerGroup = 10
	SelectCount   = 10
)

// lcg is the linear-congruential generator the selection is defined
// against: value = (value*9301 + 49297) mod 233280.
type lcg struct {
	value int
}

func newLCG(seed int) *lcg {
	return &lcg{value: seed}
}

// intn draws the next generator value and scales it to [0, n).
// Integer arithmetic: (value*n)/233280 equals floor(value/233280*n).
func (g *lcg) intn(n int) int {
	g.value = (g.value*9301 + 49297) % 233280
	return g.value * n / 233280
}

// Generate returns the fixed ordered list of input image identifiers shown
// in a session. The full group index list is Fisher-Yates shuffled, the
// first SelectCount groups are kept, and one more draw per group picks an
// offset within it. Image identifiers are 1-indexed. Each group contributes
// exactly one image, so the result has no duplicates.
func Generate() []int {
	g := newLCG(Seed)

	groups := make([]int, GroupCount)
	for i := range groups {
		groups[i] = i
	}
	for i := len(groups) - 1; i > 0; i-- {
		j := g.intn(i + 1)
		groups[i], groups[j] = groups[j], groups[i]
	}

	seq := make([]int, 0, SelectCount)
	for _, group := range groups[:SelectCount] {
		offset := g.intn(ItemsPerGroup)
		seq = append(seq, group*ItemsPerGroup+offset+1)
	}

	return seq
}
