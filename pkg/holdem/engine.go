package holdem

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"holdem-trainer/internal/rng"
	"holdem-trainer/pkg/deck"
)

// HumanName is the name of the human seat
const HumanName = "You"

// boardSize is the number of community cards in a full board
const boardSize = 5

// Engine runs hands of no-limit Texas Hold'em on a GameState
// An Engine holds no per-table state and may be shared by sessions.
type Engine struct {
	logger   logrus.FieldLogger
	provider DecisionProvider
	rng      rng.Generator
	options  Options
}

// NewEngine returns a new engine
func NewEngine(logger logrus.FieldLogger, provider DecisionProvider, gen rng.Generator, opts Options) (*Engine, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if provider == nil {
		return nil, errors.New("a decision provider is required")
	}

	if gen == nil {
		gen = rng.Crypto{}
	}

	return &Engine{
		logger:   logger,
		provider: provider,
		rng:      gen,
		options:  opts,
	}, nil
}

// Options returns the engine options
func (e *Engine) Options() Options {
	return e.options
}

// StartNewGame returns a fresh table
// Seat 0 is the human and holds the button, seat i > 0 is "Player i+1" and the styles cycle.
func (e *Engine) StartNewGame() *GameState {
	players := make([]*Player, TableSize)
	for i := range players {
		name := HumanName
		if i > 0 {
			name = fmt.Sprintf("Player %d", i+1)
		}

		players[i] = &Player{
			Name:       name,
			Chips:      e.options.StartingChips,
			HoleCards:  make(deck.Hand, 0, 2),
			IsHuman:    i == 0,
			IsDealer:   i == 0,
			IsActive:   true,
			Style:      styles[i%len(styles)],
			LastAction: None,
		}
	}

	state := &GameState{
		Players:            players,
		CommunityCards:     make(deck.Hand, 0, boardSize),
		DealerPosition:     0,
		CurrentPlayerIndex: 0,
		Phase:              PreFlop,
		IsGameActive:       true,
		SmallBlind:         e.options.SmallBlind,
		BigBlind:           e.options.BigBlind,
		MinRaise:           e.options.BigBlind,
		Log:                make([]*LogMessage, 0),
	}
	state.GameMessage = "New game started! Click 'Start Hand' to begin."

	e.logger.WithField("startingChips", e.options.StartingChips).Info("new game")
	return state
}

// StartHand resets the table, posts blinds, deals hole cards and opens pre-flop betting
func (e *Engine) StartHand(state *GameState) error {
	if !state.IsGameActive {
		state.GameMessage = "Game is not active!"
		return ErrGameNotActive
	}

	if len(state.Players) == 0 {
		state.GameMessage = "No players in game! Please start a new game."
		return ErrNoPlayers
	}

	if len(state.Players) != TableSize {
		return fmt.Errorf("%w: %d of %d seats", ErrTableSize, len(state.Players), TableSize)
	}

	if len(state.Players)*2+boardSize > deck.Size {
		return ErrDeckTooSmall
	}

	if state.IsBettingRoundActive {
		return ErrHandInProgress
	}

	withChips := 0
	for _, p := range state.Players {
		if p.Chips > 0 {
			withChips++
		}
	}

	if withChips < 2 {
		state.GameMessage = "Not enough players with chips to start a hand."
		return ErrNotEnoughPlayers
	}

	state.resetForHand()
	e.logger.WithFields(logrus.Fields{
		"hand":   state.HandNumber,
		"dealer": state.DealerPosition,
	}).Debug("starting hand")

	e.postBlinds(state)

	if err := e.dealHoleCards(state); err != nil {
		return err
	}

	return e.startBettingRound(state)
}

// MakePlayerAction applies an action for the player whose turn it is
// amount is only read for Raise. Legality is not checked, see LegalActions.
func (e *Engine) MakePlayerAction(state *GameState, action Action, amount int) error {
	if !state.IsBettingRoundActive {
		return ErrBettingRoundInactive
	}

	p := state.currentPlayer()
	if p == nil {
		return fmt.Errorf("no player at seat %d", state.CurrentPlayerIndex)
	}

	seatIndex := state.CurrentPlayerIndex
	var logAmount int
	switch action {
	case Fold:
		p.HasFolded = true
		p.LastBetAmount = 0
	case Check:
		p.LastBetAmount = 0
	case Call:
		paid := p.bet(p.amountToCall(state.CurrentBet))
		state.Pot += paid
		p.LastBetAmount = paid
		logAmount = paid
	case Raise:
		e.raise(state, p, amount)
		logAmount = p.CurrentBet
	case AllIn:
		e.allIn(state, p)
		logAmount = p.LastBetAmount
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, string(action))
	}

	p.HasActed = true
	p.LastAction = action
	state.announce([]int{seatIndex}, "%s %s", p.Name, action.LogMessage(logAmount))

	e.logger.WithFields(logrus.Fields{
		"seat":   seatIndex,
		"phase":  state.Phase.String(),
		"action": string(action),
		"amount": p.LastBetAmount,
	}).Debug("player action")

	if state.isBettingRoundComplete() {
		return e.endBettingRound(state)
	}

	e.moveToNextPlayer(state)
	return nil
}

// ProcessNonHumanTurn asks the DecisionProvider to act for the current non-human player
// It returns false, without acting, when there is no non-human player that can act.
func (e *Engine) ProcessNonHumanTurn(ctx context.Context, state *GameState) (bool, error) {
	if !state.IsBettingRoundActive {
		return false, nil
	}

	p := state.currentPlayer()
	if p == nil || p.IsHuman || !p.canAct() {
		return false, nil
	}

	decision := e.decide(ctx, state.DecisionContext())
	return true, e.MakePlayerAction(state, decision.Action, decision.RaiseAmount)
}

type decisionResult struct {
	decision Decision
	err      error
}

// decide calls the provider, bounded by the decision timeout
// Errors, panics, timeouts and invalid actions all fold.
func (e *Engine) decide(ctx context.Context, dc *PlayerDecisionContext) Decision {
	if e.options.DecisionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.options.DecisionTimeout)
		defer cancel()
	}

	result := make(chan decisionResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				result <- decisionResult{err: fmt.Errorf("decision provider panic: %v", r)}
			}
		}()

		decision, err := e.provider.DecideAction(ctx, dc)
		result <- decisionResult{decision: decision, err: err}
	}()

	var res decisionResult
	select {
	case res = <-result:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	logger := e.logger.WithField("player", dc.PlayerName)
	if res.err != nil {
		logger.WithError(res.err).Warn("decision failed, folding")
		return Decision{Action: Fold}
	}

	if !res.decision.Action.IsValid() {
		logger.WithField("action", string(res.decision.Action)).Warn("invalid decision, folding")
		return Decision{Action: Fold}
	}

	return res.decision
}
