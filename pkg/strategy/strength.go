package strategy

import (
	"holdem-trainer/pkg/deck"
	"holdem-trainer/pkg/handeval"
)

// handStrength scores the player's holding from 0 (hopeless) to 1 (the nuts)
func handStrength(hole, community []deck.Card) float64 {
	if len(hole) < 2 {
		return 0
	}

	if len(community) == 0 {
		return preFlopStrength(hole[0], hole[1])
	}

	r := handeval.Evaluate(hole, community)
	score := float64(r.Type-handeval.HighCard) / float64(handeval.RoyalFlush-handeval.HighCard)

	// lift within the category by the primary rank
	score += float64(r.Value) / float64(deck.Ace) * 0.1

	// a hand made only by the board is worth less
	board := handeval.Evaluate(nil, community)
	if r.Type == board.Type && r.Value == board.Value {
		score *= 0.5
	}

	return clamp(score)
}

// preFlopStrength loosely follows the usual starting hand charts
// Pairs and high cards are best, suited and connected cards add a little.
func preFlopStrength(c1, c2 deck.Card) float64 {
	high, low := c1.Rank, c2.Rank
	if low > high {
		high, low = low, high
	}

	score := float64(high+low) / float64(deck.Ace*2) * 0.6
	if high == low {
		score += 0.3 + float64(high)/float64(deck.Ace)*0.1
	}

	if c1.Suit == c2.Suit {
		score += 0.06
	}

	if gap := high - low; gap > 0 && gap <= 2 {
		score += 0.04
	}

	return clamp(score)
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}

	return f
}
