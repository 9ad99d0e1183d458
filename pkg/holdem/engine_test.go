package holdem

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-trainer/internal/rng"
	"holdem-trainer/pkg/deck"
)

func TestNewEngine(t *testing.T) {
	a := assert.New(t)

	provider := staticProvider(Call, 0)
	logger := logrus.StandardLogger()

	e, err := NewEngine(logger, provider, nil, DefaultOptions())
	a.NoError(err)
	a.IsType(rng.Crypto{}, e.rng)
	a.Equal(DefaultOptions(), e.Options())

	opts := DefaultOptions()
	opts.SmallBlind = 0
	_, err = NewEngine(logger, provider, nil, opts)
	a.EqualError(err, "small blind must be > 0")

	opts = DefaultOptions()
	opts.BigBlind = 5
	_, err = NewEngine(logger, provider, nil, opts)
	a.EqualError(err, "big blind must be >= the small blind")

	opts = DefaultOptions()
	opts.StartingChips = 0
	_, err = NewEngine(logger, provider, nil, opts)
	a.EqualError(err, "starting chips must be > 0")

	opts = DefaultOptions()
	opts.DecisionTimeout = -time.Second
	_, err = NewEngine(logger, provider, nil, opts)
	a.EqualError(err, "decision timeout must be >= 0")

	_, err = NewEngine(logger, nil, nil, DefaultOptions())
	a.EqualError(err, "a decision provider is required")
}

func TestEngine_StartNewGame(t *testing.T) {
	a := assert.New(t)

	e := setupEngine(t, staticProvider(Call, 0), 1)
	state := e.StartNewGame()

	a.True(state.IsGameActive)
	a.False(state.IsBettingRoundActive)
	a.Equal(PreFlop, state.Phase)
	a.Equal(0, state.DealerPosition)
	a.Equal(10, state.SmallBlind)
	a.Equal(20, state.BigBlind)
	a.Equal(8000, state.TotalChips())
	a.Equal("New game started! Click 'Start Hand' to begin.", state.GameMessage)

	a.Len(state.Players, TableSize)
	a.Equal("You", state.Players[0].Name)
	a.True(state.Players[0].IsHuman)
	a.True(state.Players[0].IsDealer)
	a.Equal("Player 2", state.Players[1].Name)
	a.Equal("Player 8", state.Players[7].Name)
	a.False(state.Players[7].IsHuman)
	a.False(state.Players[7].IsDealer)
	a.Equal(0, state.HumanSeat())

	a.Equal(Aggressive, state.Players[0].Style)
	a.Equal(Nit, state.Players[1].Style)
	a.Equal(Balanced, state.Players[2].Style)
	a.Equal(Aggressive, state.Players[3].Style)

	for _, p := range state.Players {
		a.Equal(1000, p.Chips)
		a.Equal(None, p.LastAction)
		a.Empty(p.HoleCards)
	}
}

func TestEngine_StartHand_guards(t *testing.T) {
	a := assert.New(t)

	e := setupEngine(t, staticProvider(Call, 0), 1)

	state := e.StartNewGame()
	state.IsGameActive = false
	a.Equal(ErrGameNotActive, e.StartHand(state))
	a.Equal("Game is not active!", state.GameMessage)

	state = e.StartNewGame()
	state.Players = nil
	a.Equal(ErrNoPlayers, e.StartHand(state))
	a.Equal("No players in game! Please start a new game.", state.GameMessage)

	state = e.StartNewGame()
	state.Players = state.Players[:5]
	a.True(errors.Is(e.StartHand(state), ErrTableSize))

	state = e.StartNewGame()
	a.NoError(e.StartHand(state))
	a.Equal(ErrHandInProgress, e.StartHand(state))

	state = e.StartNewGame()
	for _, p := range state.Players[1:] {
		p.Chips = 0
	}
	a.Equal(ErrNotEnoughPlayers, e.StartHand(state))
}

func TestEngine_StartHand(t *testing.T) {
	a := assert.New(t)

	_, state := setupHand(t, staticProvider(Call, 0))

	a.Equal(1, state.HandNumber)
	a.True(state.IsBettingRoundActive)
	a.Equal(PreFlop, state.Phase)
	a.Equal(30, state.Pot)
	a.Equal(20, state.CurrentBet)
	a.Equal(20, state.MinRaise)
	a.Equal(20, state.LastRaiseAmount)
	a.Equal(3, state.CurrentPlayerIndex)
	a.Equal("Player 4's turn to act", state.GameMessage)
	a.Empty(state.CommunityCards)
	a.Nil(state.Winners)

	a.Equal(990, state.Players[1].Chips)
	a.Equal(10, state.Players[1].CurrentBet)
	a.Equal(980, state.Players[2].Chips)
	a.Equal(20, state.Players[2].CurrentBet)
	a.Equal(20, state.Players[2].TotalBetThisRound)

	for _, p := range state.Players {
		a.Len(p.HoleCards, 2)
		a.False(p.HasActed)
		a.False(p.HasFolded)
	}

	a.Equal(36, state.deck.CardsLeft())
	assertCardIntegrity(t, state)
	assertChipsConserved(t, state, 8000)

	if a.Len(state.Log, 1) {
		a.Equal("Player 2 posts small blind ($10), Player 3 posts big blind ($20)", state.Log[0].Message)
		a.Equal([]int{1, 2}, state.Log[0].Seats)
		a.NotEmpty(state.Log[0].UUID)
	}
}

func TestEngine_StartHand_shortBlinds(t *testing.T) {
	a := assert.New(t)

	e := setupEngine(t, staticProvider(Call, 0), 1)
	state := e.StartNewGame()
	state.Players[1].Chips = 5
	state.Players[2].Chips = 15

	a.NoError(e.StartHand(state))
	a.Equal(20, state.Pot)
	a.Equal(20, state.CurrentBet, "the table bet is the big blind even when the blind is short")
	a.True(state.Players[1].IsAllIn)
	a.True(state.Players[2].IsAllIn)
	a.Equal(0, state.Players[2].Chips)
	a.Equal("Player 2 posts small blind ($5), Player 3 posts big blind ($15)", state.Log[0].Message)
}

func TestEngine_StartHand_bustedSeatsSitOut(t *testing.T) {
	a := assert.New(t)

	e := setupEngine(t, staticProvider(Call, 0), 1)
	state := e.StartNewGame()
	state.Players[3].Chips = 0
	state.Players[0].Chips += 1000

	a.NoError(e.StartHand(state))
	a.False(state.Players[3].IsActive)
	a.True(state.Players[3].HasFolded)
	a.Empty(state.Players[3].HoleCards)
	a.Equal(4, state.CurrentPlayerIndex, "the busted seat is skipped")
	a.Equal(38, state.deck.CardsLeft())
	assertCardIntegrity(t, state)
}

func TestEngine_fullHand(t *testing.T) {
	a := assert.New(t)

	e, state := setupHand(t, staticProvider(Call, 0))

	// pre-flop: everyone calls, the big blind checks
	callAround(t, e, state, 3, 4, 5, 6, 7, 0, 1)
	a.Equal(PreFlop, state.Phase)
	assertAct(t, e, state, 2, Check)

	a.Equal(Flop, state.Phase)
	a.Len(state.CommunityCards, 3)
	a.Equal(160, state.Pot)
	a.Equal(0, state.CurrentBet)
	a.Equal(20, state.MinRaise)
	a.Equal(1, state.CurrentPlayerIndex, "post-flop action starts left of the dealer")
	for _, p := range state.Players {
		a.Equal(0, p.CurrentBet)
		a.False(p.HasActed)
		a.Equal(20, p.TotalBetThisRound)
	}
	assertCardIntegrity(t, state)

	order := []int{1, 2, 3, 4, 5, 6, 7, 0}
	for _, phase := range []Phase{Flop, Turn, River} {
		a.Equal(phase, state.Phase)
		for _, s := range order {
			assertAct(t, e, state, s, Check)
		}
	}

	a.False(state.IsBettingRoundActive)
	a.Equal(PreFlop, state.Phase)
	a.Len(state.CommunityCards, 5)
	a.Equal(0, state.Pot)
	a.Equal(1, state.DealerPosition)
	a.NotEmpty(state.Winners)
	assertChipsConserved(t, state, 8000)

	for _, p := range state.Players {
		a.NotNil(p.BestHand, "%s was evaluated", p.Name)
	}

	// the next hand moves the button
	a.NoError(e.StartHand(state))
	a.True(state.Players[1].IsDealer)
	a.False(state.Players[0].IsDealer)
	a.Equal(4, state.CurrentPlayerIndex)
	a.Equal(2, state.HandNumber)
	a.Nil(state.Winners)
	for _, p := range state.Players {
		a.Nil(p.BestHand)
		a.Equal(None, p.LastAction)
	}
}

func TestEngine_foldToBigBlind(t *testing.T) {
	a := assert.New(t)

	e, state := setupHand(t, staticProvider(Fold, 0))

	for _, s := range []int{3, 4, 5, 6, 7, 0} {
		assertAct(t, e, state, s, Fold)
	}
	assertAct(t, e, state, 1, Fold)

	a.False(state.IsBettingRoundActive)
	a.Equal("Player 3 wins $30!", state.GameMessage)
	a.Equal([]*Player{state.Players[2]}, state.Winners)
	a.Equal(1010, state.Players[2].Chips)
	a.Equal(990, state.Players[1].Chips)
	a.Nil(state.Players[2].BestHand, "a lone winner is not evaluated")
	a.Equal(0, state.Pot)
	assertChipsConserved(t, state, 8000)
}

func TestEngine_raise(t *testing.T) {
	a := assert.New(t)

	e, state := setupHand(t, staticProvider(Call, 0))

	assertAct(t, e, state, 3, Raise, 40)
	p3 := state.Players[3]
	a.Equal(60, state.CurrentBet)
	a.Equal(40, state.MinRaise)
	a.Equal(40, state.LastRaiseAmount)
	a.Equal(90, state.Pot)
	a.Equal(940, p3.Chips)
	a.Equal(Raise, p3.LastAction)
	a.Equal(60, p3.LastBetAmount)
	a.Equal("Player 4 raises to $60", state.Log[len(state.Log)-1].Message)

	// raises below the minimum are raised to it
	assertAct(t, e, state, 4, Raise, 10)
	a.Equal(100, state.CurrentBet)
	a.Equal(40, state.MinRaise)
	a.Equal(900, state.Players[4].Chips)

	// the earlier raiser must act again
	callAround(t, e, state, 5, 6, 7, 0, 1, 2)
	a.Equal(PreFlop, state.Phase)
	assertAct(t, e, state, 3, Call)
	a.Equal(Flop, state.Phase)
	a.Equal(800, state.Pot)
	assertChipsConserved(t, state, 8000)
}

func TestEngine_raiseCappedByStack(t *testing.T) {
	a := assert.New(t)

	e, state := setupHand(t, staticProvider(Call, 0))
	state.Players[3].Chips = 50

	assertAct(t, e, state, 3, Raise, 100)
	a.Equal(0, state.Players[3].Chips)
	a.Equal(50, state.CurrentBet)
	a.Equal(30, state.MinRaise)
	a.False(state.Players[3].IsAllIn, "only an all-in action marks the player all-in")
}

func TestEngine_allIn(t *testing.T) {
	a := assert.New(t)

	e, state := setupHand(t, staticProvider(Call, 0))

	assertAct(t, e, state, 3, AllIn)
	p3 := state.Players[3]
	a.True(p3.IsAllIn)
	a.Equal(0, p3.Chips)
	a.Equal(1000, p3.LastBetAmount)
	a.Equal(1000, state.CurrentBet)
	a.Equal(1000, state.MinRaise)
	a.Equal(1030, state.Pot)
	a.Equal(4, state.CurrentPlayerIndex)
	a.Equal("Player 4 goes all-in with $1000", state.Log[len(state.Log)-1].Message)

	// a short all-in does not lower the bet
	state.Players[4].Chips = 100
	assertAct(t, e, state, 4, AllIn)
	a.Equal(1000, state.CurrentBet)
	a.Equal(1000, state.MinRaise)
	a.Equal(5, state.CurrentPlayerIndex)
}

func TestEngine_callShortStack(t *testing.T) {
	a := assert.New(t)

	e, state := setupHand(t, staticProvider(Call, 0))
	assertAct(t, e, state, 3, Raise, 480)
	state.Players[4].Chips = 50

	assertAct(t, e, state, 4, Call)
	p4 := state.Players[4]
	a.Equal(0, p4.Chips)
	a.Equal(50, p4.CurrentBet)
	a.Equal(50, p4.LastBetAmount)
	a.Equal(Call, p4.LastAction)
	a.False(p4.IsAllIn, "calling for the whole stack is still a call")
	a.Equal("Player 5 calls $50", state.Log[len(state.Log)-1].Message)
}

func TestEngine_allInRunOut(t *testing.T) {
	a := assert.New(t)

	e, state := setupHand(t, staticProvider(Call, 0))

	assertAct(t, e, state, 3, AllIn)
	for _, s := range []int{4, 5, 6, 7, 0, 1} {
		assertAct(t, e, state, s, Fold)
	}

	// the big blind is the only player left who can act
	a.False(state.IsBettingRoundActive)
	a.Len(state.CommunityCards, 5)
	a.Equal(1, state.DealerPosition)
	a.Len(state.Winners, 1)
	a.NotNil(state.Players[3].BestHand)
	a.NotNil(state.Players[2].BestHand)
	assertChipsConserved(t, state, 8000)
}

func TestEngine_MakePlayerAction_errors(t *testing.T) {
	a := assert.New(t)

	e, state := setupHand(t, staticProvider(Call, 0))

	err := e.MakePlayerAction(state, Action("bet"), 0)
	a.True(errors.Is(err, ErrUnknownAction))
	a.EqualError(err, "unknown action: bet")
	a.Equal(3, state.CurrentPlayerIndex)

	err = e.MakePlayerAction(state, None, 0)
	a.True(errors.Is(err, ErrUnknownAction))

	state = e.StartNewGame()
	a.Equal(ErrBettingRoundInactive, e.MakePlayerAction(state, Call, 0))
}

func TestEngine_checkWhileOwingIsApplied(t *testing.T) {
	a := assert.New(t)

	e, state := setupHand(t, staticProvider(Call, 0))
	assertAct(t, e, state, 3, Check)

	p3 := state.Players[3]
	a.Equal(Check, p3.LastAction)
	a.Equal(0, p3.CurrentBet)
	a.True(p3.HasActed)
	a.Equal(4, state.CurrentPlayerIndex)
}

func TestEngine_ProcessNonHumanTurn(t *testing.T) {
	a := assert.New(t)

	var seen *PlayerDecisionContext
	provider := DecisionProviderFunc(func(ctx context.Context, dc *PlayerDecisionContext) (Decision, error) {
		seen = dc
		return Decision{Action: Call}, nil
	})

	e, state := setupHand(t, provider)

	for s := 3; s <= 7; s++ {
		acted, err := e.ProcessNonHumanTurn(context.Background(), state)
		a.NoError(err)
		a.True(acted)
		a.Equal(Call, state.Players[s].LastAction)
	}

	a.Equal("Player 8", seen.PlayerName)
	a.Equal(7, seen.Position)
	a.Equal(20, seen.AmountToCall)
	a.Len(seen.OtherPlayersActions, 4)

	// the human is up
	a.True(state.IsHumanTurn())
	acted, err := e.ProcessNonHumanTurn(context.Background(), state)
	a.NoError(err)
	a.False(acted)
	a.Equal(0, state.CurrentPlayerIndex)

	state = e.StartNewGame()
	acted, err = e.ProcessNonHumanTurn(context.Background(), state)
	a.NoError(err)
	a.False(acted, "no betting round")
}

func TestEngine_ProcessNonHumanTurn_failuresFold(t *testing.T) {
	providers := map[string]DecisionProvider{
		"error": DecisionProviderFunc(func(ctx context.Context, dc *PlayerDecisionContext) (Decision, error) {
			return Decision{Action: Call}, errors.New("boom")
		}),
		"panic": DecisionProviderFunc(func(ctx context.Context, dc *PlayerDecisionContext) (Decision, error) {
			panic("boom")
		}),
		"invalid": staticProvider(Action("bet"), 0),
		"none":    staticProvider(None, 0),
		"timeout": DecisionProviderFunc(func(ctx context.Context, dc *PlayerDecisionContext) (Decision, error) {
			<-ctx.Done()
			return Decision{Action: Call}, ctx.Err()
		}),
	}

	for name, provider := range providers {
		t.Run(name, func(t *testing.T) {
			a := assert.New(t)

			opts := DefaultOptions()
			opts.DecisionTimeout = 10 * time.Millisecond
			e, err := NewEngine(logrus.StandardLogger(), provider, rng.NewSeeded(1), opts)
			require.NoError(t, err)

			state := e.StartNewGame()
			require.NoError(t, e.StartHand(state))

			acted, err := e.ProcessNonHumanTurn(context.Background(), state)
			a.NoError(err)
			a.True(acted)
			a.True(state.Players[3].HasFolded)
			a.Equal(Fold, state.Players[3].LastAction)
			a.Equal(4, state.CurrentPlayerIndex)
		})
	}
}

func TestEngine_decisionContextIsACopy(t *testing.T) {
	a := assert.New(t)

	provider := DecisionProviderFunc(func(ctx context.Context, dc *PlayerDecisionContext) (Decision, error) {
		dc.HoleCards[0] = deck.CardFromString("2c")
		dc.ChipStack = 0
		return Decision{Action: Check}, nil
	})

	e, state := setupHand(t, provider)
	before := state.Players[3].HoleCards.Clone()

	_, err := e.ProcessNonHumanTurn(context.Background(), state)
	a.NoError(err)
	a.Equal(before, state.Players[3].HoleCards)
	a.Equal(1000, state.Players[3].Chips)
}

// many hands of random play must never create or lose chips or cards
func TestEngine_randomPlay(t *testing.T) {
	gen := rng.NewSeeded(99)
	e := setupEngine(t, randomProvider(gen), 7)
	state := e.StartNewGame()
	human := randomProvider(gen)

	for hand := 0; hand < 300; hand++ {
		err := e.StartHand(state)
		if errors.Is(err, ErrNotEnoughPlayers) {
			break
		}
		require.NoError(t, err)
		assertCardIntegrity(t, state)

		for steps := 0; state.IsBettingRoundActive; steps++ {
			require.Less(t, steps, 5000, "hand never finished")

			if state.IsHumanTurn() {
				d, _ := human.DecideAction(context.Background(), state.DecisionContext())
				require.NoError(t, e.MakePlayerAction(state, d.Action, d.RaiseAmount))
			} else {
				acted, err := e.ProcessNonHumanTurn(context.Background(), state)
				require.NoError(t, err)
				require.True(t, acted)
			}

			assertChipsConserved(t, state, 8000)
			if state.IsBettingRoundActive {
				assert.Equal(t, map[Phase]int{PreFlop: 0, Flop: 3, Turn: 4, River: 5}[state.Phase], len(state.CommunityCards))
				assert.True(t, state.CurrentPlayer().canAct())
			}
		}

		assert.Equal(t, 0, state.Pot)
		assert.NotEmpty(t, state.Winners)
		for _, p := range state.Players {
			assert.True(t, p.Chips >= 0)
		}
	}
}

func TestEngine_shortStackOnlyLegalActions(t *testing.T) {
	a := assert.New(t)

	e := setupEngine(t, staticProvider(Call, 0), 1)
	state := e.StartNewGame()
	state.Players[0].Chips = 5
	require.NoError(t, e.StartHand(state))

	for steps := 0; state.Phase == PreFlop; steps++ {
		require.Less(t, steps, 50, "pre-flop never finished")

		if !state.IsHumanTurn() {
			acted, err := e.ProcessNonHumanTurn(context.Background(), state)
			require.NoError(t, err)
			require.True(t, acted)
			continue
		}

		a.Equal([]Action{Fold, AllIn}, state.LegalActions(), "the call covers the stack")
		assertAct(t, e, state, 0, AllIn)
	}

	a.Equal(Flop, state.Phase)
	a.True(state.IsBettingRoundActive)
	a.True(state.Players[0].IsAllIn)
	a.Equal(0, state.Players[0].Chips)
	assertChipsConserved(t, state, 7005)
}

// every seat plays only legal actions and never folds, so every hand must reach a showdown
func TestEngine_legalPlayTerminates(t *testing.T) {
	gen := rng.NewSeeded(5)
	e := setupEngine(t, staticProvider(Fold, 0), 11)
	state := e.StartNewGame()

	for hand := 0; hand < 200; hand++ {
		// short stacks make blinds, calls and raises run into the stack size
		if hand%10 == 0 {
			for _, p := range state.Players {
				p.Chips = 1 + gen.Intn(400)
			}
		}

		err := e.StartHand(state)
		if errors.Is(err, ErrNotEnoughPlayers) {
			state = e.StartNewGame()
			continue
		}
		require.NoError(t, err)
		total := state.TotalChips()

		for steps := 0; state.IsBettingRoundActive; steps++ {
			require.Less(t, steps, 2000, "hand %d never finished", hand)

			seat := state.CurrentPlayerIndex
			action, amount := legalAction(t, gen, state)
			require.NoError(t, e.MakePlayerAction(state, action, amount))
			assertChipsConserved(t, state, total)

			if action == Call || action == Raise {
				assert.Positive(t, state.Players[seat].Chips, "%s emptied the stack without going all-in", action)
			}
		}

		assert.Equal(t, 0, state.Pot)
		assert.Len(t, state.CommunityCards, boardSize)
		assert.NotEmpty(t, state.Winners)
	}
}
