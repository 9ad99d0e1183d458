package strategy

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"holdem-trainer/internal/rng"
	"holdem-trainer/pkg/holdem"
)

// Factory creates a decision provider
type Factory func(logger logrus.FieldLogger, gen rng.Generator) holdem.DecisionProvider

var factories = map[string]Factory{
	"passive": func(logger logrus.FieldLogger, _ rng.Generator) holdem.DecisionProvider {
		return NewPassive(logger)
	},
	"styled": func(logger logrus.FieldLogger, gen rng.Generator) holdem.DecisionProvider {
		return NewStyled(logger, gen)
	},
}

// New returns the provider registered under the name
func New(name string, logger logrus.FieldLogger, gen rng.Generator) (holdem.DecisionProvider, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("no strategy with name: %s", name)
	}

	return factory(logger, gen), nil
}
