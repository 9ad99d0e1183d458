package holdem

import (
	"encoding/json"
	"fmt"
)

// Phase is the street of the current hand
type Phase int

// Phase constants
const (
	PreFlop Phase = iota
	Flop
	Turn
	River
	Showdown
)

// String returns the name of the phase
func (p Phase) String() string {
	switch p {
	case PreFlop:
		return "Pre-flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	case Showdown:
		return "Showdown"
	}

	panic(fmt.Sprintf("unknown phase: %d", p))
}

// MarshalJSON encodes JSON
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(p),
		Name: p.String(),
	})
}

// communityCardsToDeal returns how many cards are dealt when entering the phase
func (p Phase) communityCardsToDeal() int {
	switch p {
	case Flop:
		return 3
	case Turn, River:
		return 1
	}

	return 0
}
