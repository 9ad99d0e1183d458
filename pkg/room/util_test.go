package room

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"holdem-trainer/internal/rng"
	"holdem-trainer/pkg/holdem"
	"holdem-trainer/pkg/strategy"
)

func setupEngine(t *testing.T) *holdem.Engine {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	engine, err := holdem.NewEngine(logger, strategy.NewPassive(logger), rng.NewSeeded(42), holdem.DefaultOptions())
	assert.NoError(t, err)
	return engine
}

func setupDealer(t *testing.T) *Dealer {
	t.Helper()

	d := NewDealer(logrus.StandardLogger(), setupEngine(t), "abc", "test")
	d.StartShift()
	t.Cleanup(d.EndShift)

	return d
}

func assertChips(t *testing.T, view *holdem.View, expected int) {
	t.Helper()

	total := view.Pot
	for _, p := range view.Players {
		total += p.Chips
	}

	assert.Equal(t, expected, total)
}
