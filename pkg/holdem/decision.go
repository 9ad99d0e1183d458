package holdem

import (
	"context"

	"holdem-trainer/pkg/deck"
)

// PlayerActionInfo is what a player can see of another player's last action
type PlayerActionInfo struct {
	PlayerName string `json:"playerName"`
	Action     Action `json:"action"`
	Amount     int    `json:"amount"`
	IsAllIn    bool   `json:"isAllIn"`
}

// PlayerDecisionContext is the read-only view a DecisionProvider decides from
// It is a copy, changes to it never reach the game.
type PlayerDecisionContext struct {
	PlayerName          string             `json:"playerName"`
	Style               Style              `json:"style"`
	HoleCards           []deck.Card        `json:"holeCards"`
	CommunityCards      []deck.Card        `json:"communityCards"`
	Phase               Phase              `json:"phase"`
	ChipStack           int                `json:"chipStack"`
	CurrentBet          int                `json:"currentBet"`
	PlayerCurrentBet    int                `json:"playerCurrentBet"`
	AmountToCall        int                `json:"amountToCall"`
	MinRaise            int                `json:"minRaise"`
	Pot                 int                `json:"pot"`
	BigBlind            int                `json:"bigBlind"`
	Position            int                `json:"position"`
	ActivePlayerCount   int                `json:"activePlayerCount"`
	TotalPlayers        int                `json:"totalPlayers"`
	OtherPlayersActions []PlayerActionInfo `json:"otherPlayersActions"`
}

// Decision is the outcome of a DecisionProvider
// RaiseAmount is only read for Raise and is the size of the raise over the current bet.
type Decision struct {
	Action      Action `json:"action"`
	RaiseAmount int    `json:"raiseAmount"`
}

// DecisionProvider chooses actions for non-human players
// An error, or a decision that is not a valid Action, is treated as a fold.
type DecisionProvider interface {
	DecideAction(ctx context.Context, dc *PlayerDecisionContext) (Decision, error)
}

// DecisionProviderFunc adapts a function to a DecisionProvider
type DecisionProviderFunc func(ctx context.Context, dc *PlayerDecisionContext) (Decision, error)

// DecideAction calls f(ctx, dc)
func (f DecisionProviderFunc) DecideAction(ctx context.Context, dc *PlayerDecisionContext) (Decision, error) {
	return f(ctx, dc)
}

// DecisionContext builds the decision context for the player whose turn it is
func (g *GameState) DecisionContext() *PlayerDecisionContext {
	p := g.currentPlayer()
	if p == nil {
		return nil
	}

	others := make([]PlayerActionInfo, 0, len(g.Players))
	active := 0
	for i, other := range g.Players {
		if other.canAct() {
			active++
		}

		if i == g.CurrentPlayerIndex || other.LastAction == None {
			continue
		}

		others = append(others, PlayerActionInfo{
			PlayerName: other.Name,
			Action:     other.LastAction,
			Amount:     other.LastBetAmount,
			IsAllIn:    other.IsAllIn,
		})
	}

	return &PlayerDecisionContext{
		PlayerName:          p.Name,
		Style:               p.Style,
		HoleCards:           p.HoleCards.Clone(),
		CommunityCards:      g.CommunityCards.Clone(),
		Phase:               g.Phase,
		ChipStack:           p.Chips,
		CurrentBet:          g.CurrentBet,
		PlayerCurrentBet:    p.CurrentBet,
		AmountToCall:        p.amountToCall(g.CurrentBet),
		MinRaise:            g.MinRaise,
		Pot:                 g.Pot,
		BigBlind:            g.BigBlind,
		Position:            g.CurrentPlayerIndex,
		ActivePlayerCount:   active,
		TotalPlayers:        len(g.Players),
		OtherPlayersActions: others,
	}
}
