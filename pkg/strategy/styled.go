package strategy

import (
	"context"

	"github.com/sirupsen/logrus"

	"holdem-trainer/internal/rng"
	"holdem-trainer/pkg/holdem"
)

// profile holds the thresholds for one play style
type profile struct {
	// foldBelow is the strength under which a bet is folded
	foldBelow float64
	// raiseAbove is the strength over which the player raises
	raiseAbove float64
	// bluff is the percent chance of raising regardless of strength
	bluff int
	// potFraction sizes raises as a fraction of the pot, in quarters
	potFraction int
}

var profiles = map[holdem.Style]profile{
	holdem.Aggressive: {foldBelow: 0.2, raiseAbove: 0.45, bluff: 15, potFraction: 3},
	holdem.Nit:        {foldBelow: 0.45, raiseAbove: 0.7, bluff: 2, potFraction: 2},
	holdem.Balanced:   {foldBelow: 0.32, raiseAbove: 0.58, bluff: 7, potFraction: 2},
}

// Styled plays according to the player's Style
// Only actions the player can take are returned.
type Styled struct {
	logger logrus.FieldLogger
	rng    rng.Generator
}

// NewStyled returns a Styled provider
func NewStyled(logger logrus.FieldLogger, gen rng.Generator) *Styled {
	return &Styled{
		logger: logger,
		rng:    gen,
	}
}

// DecideAction implements holdem.DecisionProvider
func (s *Styled) DecideAction(ctx context.Context, dc *holdem.PlayerDecisionContext) (holdem.Decision, error) {
	if err := ctx.Err(); err != nil {
		return holdem.Decision{}, err
	}

	prof, ok := profiles[dc.Style]
	if !ok {
		prof = profiles[holdem.Balanced]
	}

	// +/- 0.1 of noise keeps the players from being fully predictable
	strength := clamp(handStrength(dc.HoleCards, dc.CommunityCards) + float64(s.rng.Intn(21)-10)/100)
	bluffing := s.rng.Intn(100) < prof.bluff

	decision := s.choose(dc, prof, strength, bluffing)

	s.logger.WithFields(logrus.Fields{
		"player":   dc.PlayerName,
		"style":    string(dc.Style),
		"strength": strength,
		"bluffing": bluffing,
		"action":   string(decision.Action),
		"raise":    decision.RaiseAmount,
	}).Debug("styled decision")

	return decision, nil
}

func (s *Styled) choose(dc *holdem.PlayerDecisionContext, prof profile, strength float64, bluffing bool) holdem.Decision {
	wantsRaise := strength >= prof.raiseAbove || bluffing

	if dc.AmountToCall >= dc.ChipStack {
		if wantsRaise || strength >= prof.foldBelow*2 {
			return holdem.Decision{Action: holdem.AllIn}
		}

		return holdem.Decision{Action: holdem.Fold}
	}

	if wantsRaise && dc.ChipStack > dc.AmountToCall {
		size := max(dc.MinRaise, dc.Pot*prof.potFraction/4)
		if dc.AmountToCall+size >= dc.ChipStack {
			return holdem.Decision{Action: holdem.AllIn}
		}

		return holdem.Decision{Action: holdem.Raise, RaiseAmount: size}
	}

	if dc.AmountToCall == 0 {
		return holdem.Decision{Action: holdem.Check}
	}

	// weaker hands may still call a cheap bet
	price := float64(dc.AmountToCall) / float64(dc.Pot+dc.AmountToCall)
	if strength < prof.foldBelow && price > strength/2 {
		return holdem.Decision{Action: holdem.Fold}
	}

	return holdem.Decision{Action: holdem.Call}
}
