package handeval

import "holdem-trainer/pkg/deck"

// straightLength is the number of cards in a straight
const straightLength = 5

// findStraight returns the highest five-card run in cards, which must be sorted high to low
// The run is ordered high to low, so an ace-low straight is returned as 5,4,3,2,A.
func findStraight(cards deck.Hand) (deck.Hand, int, bool) {
	distinct := make(deck.Hand, 0, len(cards)+1)
	for _, card := range cards {
		if len(distinct) == 0 || distinct[len(distinct)-1].Rank != card.Rank {
			distinct = append(distinct, card)
		}
	}

	// an ace is walked a second time at the bottom to catch the wheel
	lowAce := len(distinct) > 0 && distinct[0].Rank == deck.Ace
	if lowAce {
		distinct = append(distinct, distinct[0])
	}

	run := make(deck.Hand, 0, straightLength)
	prevRank := 0
	for i, card := range distinct {
		rank := card.Rank
		if lowAce && i == len(distinct)-1 {
			rank = card.AceLowRank()
		}

		if len(run) > 0 && rank+1 == prevRank {
			run = append(run, card)
		} else {
			run = append(run[:0], card)
		}
		prevRank = rank

		if len(run) == straightLength {
			return run, rank + straightLength - 1, true
		}
	}

	return nil, 0, false
}
