package holdem

import (
	"holdem-trainer/pkg/deck"
	"holdem-trainer/pkg/handeval"
)

// Style is a play-style tag for non-human players
// The engine never reads it, decision providers may.
type Style string

// Style constants
const (
	Aggressive Style = "aggressive"
	Nit        Style = "nit"
	Balanced   Style = "balanced"
)

// styles in seat assignment order
var styles = []Style{Aggressive, Nit, Balanced}

// Player is a seat at the table
type Player struct {
	Name      string    `json:"name"`
	Chips     int       `json:"chips"`
	HoleCards deck.Hand `json:"holeCards"`

	// CurrentBet is what the player has in front of them in the current betting round
	CurrentBet int `json:"currentBet"`

	// TotalBetThisRound accumulates over every street and is only cleared when a hand starts
	TotalBetThisRound int `json:"totalBetThisRound"`

	HasFolded bool `json:"hasFolded"`
	HasActed  bool `json:"hasActed"`
	IsAllIn   bool `json:"isAllIn"`
	IsHuman   bool `json:"isHuman"`
	IsDealer  bool `json:"isDealer"`

	// IsActive is false for a seat that started the hand without chips
	IsActive bool `json:"isActive"`

	BestHand      *handeval.Ranking `json:"bestHand"`
	Style         Style             `json:"style"`
	LastAction    Action            `json:"lastAction"`
	LastBetAmount int               `json:"lastBetAmount"`
}

// canAct returns true if the player can still check, call, raise, fold
func (p *Player) canAct() bool {
	return !p.HasFolded && !p.IsAllIn
}

// resetForHand clears everything from the previous hand
// A player without chips sits the hand out.
func (p *Player) resetForHand() {
	p.HoleCards = make(deck.Hand, 0, 2)
	p.CurrentBet = 0
	p.TotalBetThisRound = 0
	p.HasActed = false
	p.IsAllIn = false
	p.LastAction = None
	p.LastBetAmount = 0
	p.BestHand = nil
	p.IsActive = p.Chips > 0
	p.HasFolded = !p.IsActive
}

// bet moves chips from the stack to the table, capped at the stack, and returns the amount moved
func (p *Player) bet(amount int) int {
	amount = max(0, min(amount, p.Chips))
	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalBetThisRound += amount

	return amount
}

// amountToCall returns what the player owes to match the table bet
func (p *Player) amountToCall(currentBet int) int {
	return max(0, currentBet-p.CurrentBet)
}
