package room

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"holdem-trainer/internal/rng"
	"holdem-trainer/internal/util"
	"holdem-trainer/pkg/holdem"
)

// ErrSessionNotFound is returned when there is no session with the ID
var ErrSessionNotFound = errors.New("session not found")

// PitBoss is responsible for opening and closing sessions
type PitBoss struct {
	logger  logrus.FieldLogger
	engine  *holdem.Engine
	rng     rng.Generator
	dealers map[string]*Dealer
	lock    sync.RWMutex
}

// NewPitBoss returns a new PitBoss
// Every session is run by the same engine.
func NewPitBoss(logger logrus.FieldLogger, engine *holdem.Engine, gen rng.Generator) *PitBoss {
	if gen == nil {
		gen = rng.Crypto{}
	}

	return &PitBoss{
		logger:  logger,
		engine:  engine,
		rng:     gen,
		dealers: make(map[string]*Dealer),
	}
}

// NewSession opens a session, starts its dealer and seats a fresh game
func (p *PitBoss) NewSession() *Dealer {
	id := uuid.New().String()
	dealer := NewDealer(p.logger, p.engine, id, util.GetRandomName(p.rng))
	dealer.state = p.engine.StartNewGame()
	dealer.StartShift()

	p.lock.Lock()
	p.dealers[id] = dealer
	p.lock.Unlock()

	p.logger.WithFields(logrus.Fields{
		"session": id,
		"name":    dealer.Name,
	}).Info("session opened")

	return dealer
}

// Dealer returns the dealer running the session
func (p *PitBoss) Dealer(id string) (*Dealer, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dealer, ok := p.dealers[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return dealer, nil
}

// EndSession stops the dealer and forgets the session
func (p *PitBoss) EndSession(id string) error {
	p.lock.Lock()
	dealer, ok := p.dealers[id]
	delete(p.dealers, id)
	p.lock.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	dealer.EndShift()
	for _, client := range dealer.Clients() {
		select {
		case client.Close <- "session ended":
		default:
		}
	}

	p.logger.WithField("session", id).Info("session closed")
	return nil
}

// Sessions returns the IDs of the open sessions, sorted
func (p *PitBoss) Sessions() []string {
	p.lock.RLock()
	defer p.lock.RUnlock()

	ids := make([]string, 0, len(p.dealers))
	for id := range p.dealers {
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids
}

// Shutdown ends every session
func (p *PitBoss) Shutdown() {
	for _, id := range p.Sessions() {
		_ = p.EndSession(id)
	}
}
