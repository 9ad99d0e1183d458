package strategy

import (
	"context"

	"github.com/sirupsen/logrus"

	"holdem-trainer/pkg/holdem"
)

// Passive never folds and never raises
// It checks when nothing is owed, goes all-in when the call covers the stack, and calls otherwise.
type Passive struct {
	logger logrus.FieldLogger
}

// NewPassive returns a Passive provider
func NewPassive(logger logrus.FieldLogger) *Passive {
	return &Passive{logger: logger}
}

// DecideAction implements holdem.DecisionProvider
func (p *Passive) DecideAction(ctx context.Context, dc *holdem.PlayerDecisionContext) (holdem.Decision, error) {
	if err := ctx.Err(); err != nil {
		return holdem.Decision{}, err
	}

	logger := p.logger.WithFields(logrus.Fields{
		"player":       dc.PlayerName,
		"amountToCall": dc.AmountToCall,
		"chips":        dc.ChipStack,
	})

	var action holdem.Action
	switch {
	case dc.AmountToCall == 0:
		action = holdem.Check
	case dc.AmountToCall >= dc.ChipStack:
		action = holdem.AllIn
	default:
		action = holdem.Call
	}

	logger.WithField("action", string(action)).Debug("passive decision")
	return holdem.Decision{Action: action}, nil
}
