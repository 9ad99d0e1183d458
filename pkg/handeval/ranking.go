package handeval

import (
	"holdem-trainer/pkg/deck"
)

// Ranking is the evaluated strength of a player's best five-card hand
type Ranking struct {
	Type HandType `json:"type"`

	// Value is the primary rank of the hand: the quad/trips/high-pair rank, the top card of
	// a straight (5 for a wheel), or the top card of a flush or high-card hand
	Value int `json:"value"`

	// Kickers break ties between hands of the same Type and Value, most significant first
	Kickers []deck.Card `json:"kickers"`

	Description string `json:"description"`
}

// Compare returns 1 if a beats b, -1 if b beats a, or 0 on a tie
// Kickers are compared element-wise over the shorter of the two lists.
func Compare(a, b Ranking) int {
	if c := compareInt(int(a.Type), int(b.Type)); c != 0 {
		return c
	}

	if c := compareInt(a.Value, b.Value); c != 0 {
		return c
	}

	n := len(a.Kickers)
	if len(b.Kickers) < n {
		n = len(b.Kickers)
	}

	for i := 0; i < n; i++ {
		if c := compareInt(a.Kickers[i].Rank, b.Kickers[i].Rank); c != 0 {
			return c
		}
	}

	return 0
}

// Beats returns true if r is strictly better than other
func (r Ranking) Beats(other Ranking) bool {
	return Compare(r, other) > 0
}

func (r Ranking) String() string {
	return r.Description
}

func compareInt(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}

	return 0
}
