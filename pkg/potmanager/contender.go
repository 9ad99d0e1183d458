package potmanager

import "holdem-trainer/pkg/handeval"

// Contender is a player still eligible to win the pot at showdown
type Contender interface {
	// ID identifies the contender, typically the seat index
	ID() int
	Ranking() handeval.Ranking
}
