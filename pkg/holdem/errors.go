package holdem

import (
	"errors"
	"fmt"
)

// errors returned by the engine
var (
	ErrGameNotActive        = errors.New("game is not active")
	ErrNoPlayers            = errors.New("no players in game")
	ErrTableSize            = errors.New("table must be fully seated")
	ErrNotEnoughPlayers     = errors.New("at least two players need chips")
	ErrDeckTooSmall         = errors.New("not enough cards in the deck")
	ErrHandInProgress       = errors.New("a hand is already in progress")
	ErrBettingRoundInactive = errors.New("betting round is not active")
	ErrUnknownAction        = errors.New("unknown action")
)

// PlayerError is an error caused by the player that can be shown to them
type PlayerError string

func (p PlayerError) Error() string {
	return string(p)
}

// NewPlayerError returns a formatted PlayerError
func NewPlayerError(format string, a ...interface{}) PlayerError {
	return PlayerError(fmt.Sprintf(format, a...))
}
