package potmanager

import "fmt"

// ContenderError is a pot error that should be reported back to the caller
type ContenderError string

func (c ContenderError) Error() string {
	return string(c)
}

func newContenderError(format string, a ...interface{}) ContenderError {
	return ContenderError(fmt.Sprintf(format, a...))
}

// Split divides the pot into n shares
// Each share gets pot/n and the first pot%n shares receive one extra chip, so the
// shares always sum to the pot.
func Split(pot, n int) []int {
	if n <= 0 {
		return nil
	}

	base := pot / n
	remainder := pot % n

	shares := make([]int, n)
	for i := range shares {
		shares[i] = base
		if i < remainder {
			shares[i]++
		}
	}

	return shares
}

// Payouts divides the pot between the winners in the order given, keyed by contender ID
func Payouts(pot int, winners []Contender) (map[int]int, error) {
	if len(winners) == 0 {
		return nil, newContenderError("cannot pay a pot of %d to zero winners", pot)
	}

	if pot < 0 {
		return nil, newContenderError("cannot pay a negative pot: %d", pot)
	}

	payouts := make(map[int]int, len(winners))
	for i, share := range Split(pot, len(winners)) {
		payouts[winners[i].ID()] += share
	}

	return payouts, nil
}
