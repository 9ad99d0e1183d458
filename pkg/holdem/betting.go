package holdem

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"holdem-trainer/pkg/deck"
)

// resetForHand clears the previous hand and moves the button flag to the dealer seat
func (g *GameState) resetForHand() {
	for i, p := range g.Players {
		p.resetForHand()
		p.IsDealer = i == g.DealerPosition
	}

	g.CommunityCards = make(deck.Hand, 0, boardSize)
	g.Pot = 0
	g.SidePot = 0
	g.CurrentBet = 0
	g.MinRaise = g.BigBlind
	g.LastRaiseAmount = 0
	g.Phase = PreFlop
	g.Winners = nil
	g.Log = make([]*LogMessage, 0)
	g.HandNumber++
}

func (e *Engine) postBlinds(state *GameState) {
	sbSeat := seat(state.DealerPosition, 1)
	bbSeat := seat(state.DealerPosition, 2)
	sb := state.Players[sbSeat]
	bb := state.Players[bbSeat]

	sbAmount := postBlind(state, sb, state.SmallBlind)
	bbAmount := postBlind(state, bb, state.BigBlind)

	state.CurrentBet = state.BigBlind
	state.MinRaise = state.BigBlind
	state.LastRaiseAmount = state.BigBlind

	state.announce([]int{sbSeat, bbSeat}, "%s posts small blind ($%d), %s posts big blind ($%d)", sb.Name, sbAmount, bb.Name, bbAmount)
}

// postBlind takes up to the blind from the player, a blind that empties the stack is all-in
func postBlind(state *GameState, p *Player, blind int) int {
	if !p.IsActive {
		return 0
	}

	amount := p.bet(blind)
	state.Pot += amount
	p.LastBetAmount = amount
	if p.Chips == 0 {
		p.IsAllIn = true
	}

	return amount
}

// dealHoleCards deals two cards to every active seat from a fresh deck, one card per pass
func (e *Engine) dealHoleCards(state *GameState) error {
	state.deck = deck.New()

	need := 0
	for _, p := range state.Players {
		if p.IsActive {
			need += 2
		}
	}

	if !state.deck.CanDraw(need + boardSize) {
		return fmt.Errorf("%w: need %d, have %d", ErrDeckTooSmall, need+boardSize, state.deck.CardsLeft())
	}

	for pass := 0; pass < 2; pass++ {
		for _, p := range state.Players {
			if !p.IsActive {
				continue
			}

			card, err := state.deck.DrawRandom(e.rng)
			if err != nil {
				return fmt.Errorf("could not deal hole cards: %w", err)
			}

			p.HoleCards.AddCard(card)
		}
	}

	return nil
}

// startBettingRound opens betting for the current phase
// Pre-flop action starts left of the big blind, later streets left of the dealer.
// A round with at most one player able to act completes at once.
func (e *Engine) startBettingRound(state *GameState) error {
	state.IsBettingRoundActive = true

	offset := 1
	if state.Phase == PreFlop {
		offset = 3
	}
	state.CurrentPlayerIndex = seat(state.DealerPosition, offset)

	if state.eligibleCount() <= 1 {
		return e.endBettingRound(state)
	}

	if !state.Players[state.CurrentPlayerIndex].canAct() {
		e.moveToNextPlayer(state)
		return nil
	}

	state.GameMessage = fmt.Sprintf("%s's turn to act", state.Players[state.CurrentPlayerIndex].Name)
	return nil
}

// isBettingRoundComplete returns true once every player who can act has acted and matched the bet,
// or when at most one player can still act
func (g *GameState) isBettingRoundComplete() bool {
	if g.eligibleCount() <= 1 {
		return true
	}

	for _, p := range g.Players {
		if p.canAct() && (!p.HasActed || p.CurrentBet < g.CurrentBet) {
			return false
		}
	}

	return true
}

// endBettingRound clears the round's bets and moves to the next phase
func (e *Engine) endBettingRound(state *GameState) error {
	for _, p := range state.Players {
		p.CurrentBet = 0
		p.HasActed = false
	}

	state.CurrentBet = 0
	state.MinRaise = state.BigBlind
	state.LastRaiseAmount = 0
	state.IsBettingRoundActive = false
	state.Phase++

	e.logger.WithFields(logrus.Fields{
		"hand":  state.HandNumber,
		"phase": state.Phase.String(),
		"pot":   state.Pot,
	}).Debug("betting round complete")

	if state.Phase == Showdown {
		return e.showdown(state)
	}

	if err := e.dealCommunityCards(state, state.Phase.communityCardsToDeal()); err != nil {
		return err
	}

	state.announce(nil, "%s: %s", state.Phase, cardsString(state.CommunityCards))
	return e.startBettingRound(state)
}

func (e *Engine) dealCommunityCards(state *GameState, n int) error {
	if state.deck == nil {
		return fmt.Errorf("could not deal the %s: %w", state.Phase, deck.ErrEndOfDeck)
	}

	for i := 0; i < n; i++ {
		card, err := state.deck.DrawRandom(e.rng)
		if err != nil {
			return fmt.Errorf("could not deal the %s: %w", state.Phase, err)
		}

		state.CommunityCards.AddCard(card)
	}

	return nil
}

// moveToNextPlayer passes the turn to the next seat that can act
func (e *Engine) moveToNextPlayer(state *GameState) {
	for i := 1; i <= TableSize; i++ {
		next := seat(state.CurrentPlayerIndex, i)
		if state.Players[next].canAct() {
			state.CurrentPlayerIndex = next
			state.GameMessage = fmt.Sprintf("%s's turn to act", state.Players[next].Name)
			return
		}
	}
}

// raise puts the player at the current bet plus the raise, where a raise is at least MinRaise
// A raise larger than the stack is capped at the stack.
func (e *Engine) raise(state *GameState, p *Player, amount int) {
	size := max(amount, state.MinRaise)
	target := state.CurrentBet + size

	paid := p.bet(target - p.CurrentBet)
	state.Pot += paid
	p.LastBetAmount = paid

	if p.CurrentBet > state.CurrentBet {
		increment := p.CurrentBet - state.CurrentBet
		state.CurrentBet = p.CurrentBet
		state.MinRaise = increment
		state.LastRaiseAmount = increment
	}
}

// allIn moves the whole stack in, reopening the betting if it tops the current bet
func (e *Engine) allIn(state *GameState, p *Player) {
	amount := p.bet(p.Chips)
	state.Pot += amount
	p.LastBetAmount = amount
	p.IsAllIn = true

	if p.CurrentBet > state.CurrentBet {
		state.CurrentBet = p.CurrentBet
		state.MinRaise = amount
		state.LastRaiseAmount = amount
	}
}

// LegalActions returns the actions the current player may sensibly take
// A call or raise that would empty the stack is only offered as AllIn, so every legal action moves the hand forward.
func (g *GameState) LegalActions() []Action {
	p := g.currentPlayer()
	if !g.IsBettingRoundActive || p == nil || !p.canAct() {
		return nil
	}

	owed := p.amountToCall(g.CurrentBet)
	actions := []Action{Fold}
	switch {
	case owed == 0:
		actions = append(actions, Check)
	case owed < p.Chips:
		actions = append(actions, Call)
	}

	if p.Chips > owed+g.MinRaise {
		actions = append(actions, Raise)
	}

	if p.Chips > 0 {
		actions = append(actions, AllIn)
	}

	return actions
}

// MaxRaise returns the largest raise the current player can make and still keep chips behind
// It returns 0 when Raise is not legal.
func (g *GameState) MaxRaise() int {
	if !g.IsLegal(Raise) {
		return 0
	}

	p := g.currentPlayer()
	return p.Chips - p.amountToCall(g.CurrentBet) - 1
}

// IsLegal returns true if the action is in LegalActions
func (g *GameState) IsLegal(action Action) bool {
	for _, a := range g.LegalActions() {
		if a == action {
			return true
		}
	}

	return false
}
