package holdem

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"holdem-trainer/pkg/deck"
)

// GameState is the complete state of a table
// A GameState must only be mutated by one goroutine at a time.
type GameState struct {
	Players        []*Player `json:"players"`
	CommunityCards deck.Hand `json:"communityCards"`
	Pot            int       `json:"pot"`

	// SidePot is reserved, every chip goes into Pot
	SidePot int `json:"sidePot"`

	CurrentBet           int    `json:"currentBet"`
	MinRaise             int    `json:"minRaise"`
	LastRaiseAmount      int    `json:"lastRaiseAmount"`
	DealerPosition       int    `json:"dealerPosition"`
	CurrentPlayerIndex   int    `json:"currentPlayerIndex"`
	Phase                Phase  `json:"phase"`
	IsGameActive         bool   `json:"isGameActive"`
	IsBettingRoundActive bool   `json:"isBettingRoundActive"`
	GameMessage          string `json:"gameMessage"`

	// Winners of the last completed hand
	Winners []*Player `json:"winners"`

	SmallBlind int `json:"smallBlind"`
	BigBlind   int `json:"bigBlind"`
	HandNumber int `json:"handNumber"`

	// Log is the history of the current hand
	Log []*LogMessage `json:"log"`

	deck *deck.Deck
}

// LogMessage is an entry in the hand log
// If Seats is empty, it's a general statement about the table.
type LogMessage struct {
	UUID    string    `json:"uuid"`
	Seats   []int     `json:"seats"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// TotalChips returns every chip on the table, stacks plus pot
func (g *GameState) TotalChips() int {
	total := g.Pot + g.SidePot
	for _, p := range g.Players {
		total += p.Chips
	}

	return total
}

// CurrentPlayer returns the player whose turn it is, or nil
func (g *GameState) CurrentPlayer() *Player {
	return g.currentPlayer()
}

func (g *GameState) currentPlayer() *Player {
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}

	return g.Players[g.CurrentPlayerIndex]
}

// HumanSeat returns the seat of the human player, or -1
func (g *GameState) HumanSeat() int {
	for i, p := range g.Players {
		if p.IsHuman {
			return i
		}
	}

	return -1
}

// IsHumanTurn returns true if the human player is the one to act
func (g *GameState) IsHumanTurn() bool {
	p := g.currentPlayer()
	return g.IsBettingRoundActive && p != nil && p.IsHuman
}

// announce sets the game message and records it in the hand log
func (g *GameState) announce(seats []int, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	g.GameMessage = msg
	g.Log = append(g.Log, &LogMessage{
		UUID:    uuid.New().String(),
		Seats:   seats,
		Message: msg,
		Time:    time.Now(),
	})
}

// seat returns the seat index after offset seats, wrapping around the table
func seat(from, offset int) int {
	return (from + offset) % TableSize
}

// eligibleCount returns how many players can still act
func (g *GameState) eligibleCount() int {
	n := 0
	for _, p := range g.Players {
		if p.canAct() {
			n++
		}
	}

	return n
}

// cardsString renders cards with their suit symbols, i.e., "A♠ 10♡ 2♣"
func cardsString(cards deck.Hand) string {
	s := make([]string, len(cards))
	for i, card := range cards {
		s[i] = card.String()
	}

	return strings.Join(s, " ")
}
