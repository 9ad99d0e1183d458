package holdem

import (
	"errors"
	"time"
)

// TableSize is the fixed number of seats
const TableSize = 8

// Options configures the table
type Options struct {
	SmallBlind    int
	BigBlind      int
	StartingChips int

	// DecisionTimeout bounds how long a DecisionProvider may take, zero means no limit
	DecisionTimeout time.Duration
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		SmallBlind:      10,
		BigBlind:        20,
		StartingChips:   1000,
		DecisionTimeout: 5 * time.Second,
	}
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be > 0")
	}

	if opts.BigBlind < opts.SmallBlind {
		return errors.New("big blind must be >= the small blind")
	}

	if opts.StartingChips <= 0 {
		return errors.New("starting chips must be > 0")
	}

	if opts.DecisionTimeout < 0 {
		return errors.New("decision timeout must be >= 0")
	}

	return nil
}
