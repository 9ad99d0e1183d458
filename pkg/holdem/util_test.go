package holdem

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-trainer/internal/rng"
	"holdem-trainer/pkg/deck"
)

func staticProvider(action Action, amount int) DecisionProvider {
	return DecisionProviderFunc(func(ctx context.Context, dc *PlayerDecisionContext) (Decision, error) {
		return Decision{Action: action, RaiseAmount: amount}, nil
	})
}

// randomProvider picks any action, legal or not, with small raises
func randomProvider(gen rng.Generator) DecisionProvider {
	actions := []Action{Fold, Check, Call, Call, Call, Raise, AllIn}
	return DecisionProviderFunc(func(ctx context.Context, dc *PlayerDecisionContext) (Decision, error) {
		a := actions[gen.Intn(len(actions))]
		if a == AllIn && gen.Intn(4) > 0 {
			a = Call
		}

		return Decision{Action: a, RaiseAmount: gen.Intn(100)}, nil
	})
}

func setupEngine(t *testing.T, provider DecisionProvider, seed int64) *Engine {
	t.Helper()

	opts := DefaultOptions()
	e, err := NewEngine(logrus.StandardLogger(), provider, rng.NewSeeded(seed), opts)
	require.NoError(t, err)
	return e
}

func setupHand(t *testing.T, provider DecisionProvider) (*Engine, *GameState) {
	t.Helper()

	e := setupEngine(t, provider, 1)
	state := e.StartNewGame()
	require.NoError(t, e.StartHand(state))
	return e, state
}

func assertAct(t *testing.T, e *Engine, state *GameState, seat int, action Action, amount ...int) {
	t.Helper()

	require.Equal(t, seat, state.CurrentPlayerIndex, "expected seat %d to act, got %d", seat, state.CurrentPlayerIndex)

	amt := 0
	if len(amount) == 1 {
		amt = amount[0]
	}

	require.NoError(t, e.MakePlayerAction(state, action, amt))
}

func assertChipsConserved(t *testing.T, state *GameState, total int) {
	t.Helper()
	assert.Equal(t, total, state.TotalChips(), "chips were created or destroyed")
}

// assertCardIntegrity checks every card is in exactly one place
func assertCardIntegrity(t *testing.T, state *GameState) {
	t.Helper()

	seen := make(map[deck.Card]string)
	check := func(card deck.Card, where string) {
		if prev, ok := seen[card]; ok {
			assert.Failf(t, "duplicate card", "%s in %s and %s", card, prev, where)
		}
		seen[card] = where
	}

	for _, p := range state.Players {
		for _, card := range p.HoleCards {
			check(card, p.Name)
		}
	}

	for _, card := range state.CommunityCards {
		check(card, "community")
	}

	for _, card := range state.deck.Cards {
		check(card, "deck")
	}

	assert.Equal(t, deck.Size, len(seen))
}

func callAround(t *testing.T, e *Engine, state *GameState, seats ...int) {
	t.Helper()
	for _, s := range seats {
		assertAct(t, e, state, s, Call)
	}
}

// legalAction picks uniformly from the legal actions other than Fold, raising by a random legal amount
func legalAction(t *testing.T, gen rng.Generator, state *GameState) (Action, int) {
	t.Helper()

	var choices []Action
	for _, action := range state.LegalActions() {
		if action != Fold {
			choices = append(choices, action)
		}
	}
	require.NotEmpty(t, choices, "%s has nothing to do but fold", state.CurrentPlayer().Name)

	action := choices[gen.Intn(len(choices))]
	if action != Raise {
		return action, 0
	}

	return action, state.MinRaise + gen.Intn(state.MaxRaise()-state.MinRaise+1)
}
