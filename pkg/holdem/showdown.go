package holdem

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"holdem-trainer/pkg/handeval"
	"holdem-trainer/pkg/potmanager"
)

// seatContender adapts a seated player to a potmanager.Contender
type seatContender struct {
	seat   int
	player *Player
}

func (s seatContender) ID() int {
	return s.seat
}

func (s seatContender) Ranking() handeval.Ranking {
	if s.player.BestHand == nil {
		return handeval.Ranking{}
	}

	return *s.player.BestHand
}

// showdown pays the pot to the best hand(s), moves the button, and readies the next hand
func (e *Engine) showdown(state *GameState) error {
	state.IsBettingRoundActive = false

	contenders := make([]seatContender, 0, len(state.Players))
	for i, p := range state.Players {
		if !p.HasFolded {
			contenders = append(contenders, seatContender{seat: i, player: p})
		}
	}

	if len(contenders) == 0 {
		return errors.New("showdown with no players left in the hand")
	}

	pot := state.Pot
	if len(contenders) == 1 {
		winner := contenders[0]
		winner.player.Chips += pot
		state.Winners = []*Player{winner.player}
		state.announce([]int{winner.seat}, "%s wins $%d!", winner.player.Name, pot)
	} else if err := e.payBestHands(state, contenders); err != nil {
		return err
	}

	e.logger.WithFields(logrus.Fields{
		"hand":    state.HandNumber,
		"pot":     pot,
		"winners": len(state.Winners),
	}).Info("hand complete")

	state.Pot = 0
	state.DealerPosition = seat(state.DealerPosition, 1)
	state.Phase = PreFlop
	return nil
}

func (e *Engine) payBestHands(state *GameState, contenders []seatContender) error {
	wm := potmanager.NewWinManager()
	for _, c := range contenders {
		ranking := handeval.Evaluate(c.player.HoleCards, state.CommunityCards)
		c.player.BestHand = &ranking
		wm.AddContender(c)
	}

	winners := wm.GetWinners()
	payouts, err := potmanager.Payouts(state.Pot, winners)
	if err != nil {
		return fmt.Errorf("could not pay the pot: %w", err)
	}

	names := make([]string, len(winners))
	seats := make([]int, len(winners))
	state.Winners = make([]*Player, len(winners))
	for i, w := range winners {
		p := state.Players[w.ID()]
		p.Chips += payouts[w.ID()]
		state.Winners[i] = p
		names[i] = p.Name
		seats[i] = w.ID()
	}

	description := winners[0].Ranking().Description
	if len(winners) == 1 {
		state.announce(seats, "%s wins $%d with %s!", names[0], state.Pot, description)
	} else {
		state.announce(seats, "%s split $%d with %s!", strings.Join(names, ", "), state.Pot, description)
	}

	return nil
}
