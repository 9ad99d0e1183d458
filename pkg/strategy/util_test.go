package strategy

import (
	"holdem-trainer/pkg/deck"
	"holdem-trainer/pkg/holdem"
)

// middle always returns the middle of the range, so there is no noise and no bluffing
type middle struct{}

func (middle) Intn(n int) int {
	return n / 2
}

func newContext(style holdem.Style, hole, community string, amountToCall, chips, pot int) *holdem.PlayerDecisionContext {
	return &holdem.PlayerDecisionContext{
		PlayerName:     "Player 1",
		Style:          style,
		HoleCards:      deck.CardsFromString(hole),
		CommunityCards: deck.CardsFromString(community),
		AmountToCall:   amountToCall,
		ChipStack:      chips,
		Pot:            pot,
		MinRaise:       20,
		BigBlind:       20,
	}
}
