package room

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"holdem-trainer/pkg/holdem"
)

// ErrShiftEnded is returned once the dealer has stopped running
var ErrShiftEnded = errors.New("the session has ended")

// Dealer runs one session: one table, one run loop
// Every read and write of the table happens inside the run loop.
type Dealer struct {
	ID   string
	Name string

	engine *holdem.Engine
	state  *holdem.GameState
	logger logrus.FieldLogger

	clients map[*Client]bool
	lock    sync.RWMutex

	// ctx bounds non-human decisions, it is cancelled when the shift ends
	ctx    context.Context
	cancel context.CancelFunc

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
func NewDealer(logger logrus.FieldLogger, engine *holdem.Engine, id, name string) *Dealer {
	ctx, cancel := context.WithCancel(context.Background())

	return &Dealer{
		ID:            id,
		Name:          name,
		engine:        engine,
		logger:        logger.WithFields(logrus.Fields{"session": id, "name": name}),
		clients:       make(map[*Client]bool),
		ctx:           ctx,
		cancel:        cancel,
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift stops the run loop and cancels any decision in progress
// It is safe to call more than once.
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		d.cancel()
		close(d.close)
	})
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec runs fn in the run loop and waits for it to finish
func (d *Dealer) exec(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		fn()
	}

	select {
	case d.execInRunLoop <- wrapped:
	case <-d.close:
		return ErrShiftEnded
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-d.close:
		return ErrShiftEnded
	}
}

// NewGame replaces the table with a fresh game
func (d *Dealer) NewGame(ctx context.Context) (*holdem.View, error) {
	var view *holdem.View
	err := d.exec(ctx, func() {
		d.state = d.engine.StartNewGame()
		view = d.viewAndBroadcast()
	})

	return view, err
}

// StartHand deals a new hand and plays non-human turns until the human must act or the hand is over
func (d *Dealer) StartHand(ctx context.Context) (*holdem.View, error) {
	var view *holdem.View
	var handErr error
	err := d.exec(ctx, func() {
		if d.state == nil {
			handErr = holdem.NewPlayerError("start a new game first")
			return
		}

		if err := d.engine.StartHand(d.state); err != nil {
			handErr = playerFacing(err)
			return
		}

		d.viewAndBroadcast()
		handErr = d.playNonHumanTurns()
		view = d.viewAndBroadcast()
	})
	if err != nil {
		return nil, err
	}

	return view, handErr
}

// Act applies the human's action then plays non-human turns
func (d *Dealer) Act(ctx context.Context, action holdem.Action, amount int) (*holdem.View, error) {
	var view *holdem.View
	var actErr error
	err := d.exec(ctx, func() {
		if actErr = d.validateHumanAction(action, amount); actErr != nil {
			return
		}

		if err := d.engine.MakePlayerAction(d.state, action, amount); err != nil {
			actErr = err
			return
		}

		d.viewAndBroadcast()
		actErr = d.playNonHumanTurns()
		view = d.viewAndBroadcast()
	})
	if err != nil {
		return nil, err
	}

	return view, actErr
}

// View returns the table as seen by the human
func (d *Dealer) View(ctx context.Context) (*holdem.View, error) {
	var view *holdem.View
	err := d.exec(ctx, func() {
		view = d.view()
	})

	return view, err
}

// AddClient adds a client and sends it the current view
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	select {
	case d.execInRunLoop <- func() {
		if view := d.view(); view != nil {
			client.Send(view)
		}
	}:
	case <-d.close:
	}
}

// RemoveClient removes a client
func (d *Dealer) RemoveClient(client *Client) {
	d.lock.Lock()
	delete(d.clients, client)
	d.lock.Unlock()
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// NOTE: must only be called from the run loop
func (d *Dealer) validateHumanAction(action holdem.Action, amount int) error {
	if d.state == nil || !d.state.IsBettingRoundActive {
		return holdem.NewPlayerError("there is no hand in progress")
	}

	if !d.state.IsHumanTurn() {
		return holdem.NewPlayerError("it is not your turn")
	}

	if !action.IsValid() {
		return holdem.NewPlayerError("unknown action: %s", string(action))
	}

	if !d.state.IsLegal(action) {
		return holdem.NewPlayerError("you cannot %s right now", string(action))
	}

	if action == holdem.Raise {
		if amount < 0 {
			return holdem.NewPlayerError("raise amount must be positive")
		}

		if limit := d.state.MaxRaise(); amount > limit {
			return holdem.NewPlayerError("you can raise by at most $%d, go all-in instead", limit)
		}
	}

	return nil
}

// playNonHumanTurns lets the decision providers act until a human is up or the hand is over
// NOTE: must only be called from the run loop
func (d *Dealer) playNonHumanTurns() error {
	for {
		acted, err := d.engine.ProcessNonHumanTurn(d.ctx, d.state)
		if err != nil {
			d.logger.WithError(err).Error("could not process non-human turn")
			return err
		}

		if !acted {
			return nil
		}

		d.viewAndBroadcast()
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) view() *holdem.View {
	if d.state == nil {
		return nil
	}

	return d.state.View(d.state.HumanSeat())
}

// NOTE: must only be called from the run loop
func (d *Dealer) viewAndBroadcast() *holdem.View {
	view := d.view()
	if view == nil {
		return nil
	}

	for _, client := range d.Clients() {
		if !client.Send(view) {
			d.logger.Warn("client is not keeping up, dropped a view")
		}
	}

	return view
}

// playerFacing converts the errors a player can cause into a PlayerError
func playerFacing(err error) error {
	switch {
	case errors.Is(err, holdem.ErrHandInProgress),
		errors.Is(err, holdem.ErrNotEnoughPlayers),
		errors.Is(err, holdem.ErrGameNotActive):
		return holdem.NewPlayerError("%s", err.Error())
	}

	return err
}
