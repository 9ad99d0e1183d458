package holdem

import (
	"holdem-trainer/pkg/deck"
	"holdem-trainer/pkg/handeval"
)

// PlayerView is a player as seen from one seat
type PlayerView struct {
	Seat          int               `json:"seat"`
	Name          string            `json:"name"`
	Chips         int               `json:"chips"`
	HoleCards     deck.Hand         `json:"holeCards"`
	CurrentBet    int               `json:"currentBet"`
	HasFolded     bool              `json:"hasFolded"`
	IsAllIn       bool              `json:"isAllIn"`
	IsHuman       bool              `json:"isHuman"`
	IsDealer      bool              `json:"isDealer"`
	IsActive      bool              `json:"isActive"`
	IsWinner      bool              `json:"isWinner"`
	Style         Style             `json:"style"`
	LastAction    Action            `json:"lastAction"`
	LastBetAmount int               `json:"lastBetAmount"`
	BestHand      *handeval.Ranking `json:"bestHand"`
}

// View is the table as seen from one seat
type View struct {
	Players              []*PlayerView `json:"players"`
	CommunityCards       deck.Hand     `json:"communityCards"`
	Pot                  int           `json:"pot"`
	CurrentBet           int           `json:"currentBet"`
	MinRaise             int           `json:"minRaise"`
	MaxRaise             int           `json:"maxRaise"`
	AmountToCall         int           `json:"amountToCall"`
	DealerPosition       int           `json:"dealerPosition"`
	CurrentPlayerIndex   int           `json:"currentPlayerIndex"`
	Phase                Phase         `json:"phase"`
	IsGameActive         bool          `json:"isGameActive"`
	IsBettingRoundActive bool          `json:"isBettingRoundActive"`
	GameMessage          string        `json:"gameMessage"`
	HandNumber           int           `json:"handNumber"`
	LegalActions         []Action      `json:"legalActions"`
	Log                  []*LogMessage `json:"log"`
}

// View returns the table as seen from the seat
// Other seats' hole cards stay hidden until they are shown down.
func (g *GameState) View(viewer int) *View {
	winners := make(map[*Player]bool, len(g.Winners))
	for _, w := range g.Winners {
		winners[w] = true
	}

	players := make([]*PlayerView, len(g.Players))
	for i, p := range g.Players {
		// a hand won without a showdown is never evaluated, so the cards stay mucked
		reveal := i == viewer || (!g.IsBettingRoundActive && p.BestHand != nil && !p.HasFolded)

		pv := &PlayerView{
			Seat:          i,
			Name:          p.Name,
			Chips:         p.Chips,
			CurrentBet:    p.CurrentBet,
			HasFolded:     p.HasFolded,
			IsAllIn:       p.IsAllIn,
			IsHuman:       p.IsHuman,
			IsDealer:      p.IsDealer,
			IsActive:      p.IsActive,
			IsWinner:      winners[p],
			Style:         p.Style,
			LastAction:    p.LastAction,
			LastBetAmount: p.LastBetAmount,
			HoleCards:     deck.Hand{},
		}

		if reveal {
			pv.HoleCards = p.HoleCards.Clone()
			pv.BestHand = p.BestHand
		}

		players[i] = pv
	}

	v := &View{
		Players:              players,
		CommunityCards:       g.CommunityCards.Clone(),
		Pot:                  g.Pot,
		CurrentBet:           g.CurrentBet,
		MinRaise:             g.MinRaise,
		DealerPosition:       g.DealerPosition,
		CurrentPlayerIndex:   g.CurrentPlayerIndex,
		Phase:                g.Phase,
		IsGameActive:         g.IsGameActive,
		IsBettingRoundActive: g.IsBettingRoundActive,
		GameMessage:          g.GameMessage,
		HandNumber:           g.HandNumber,
		Log:                  append([]*LogMessage(nil), g.Log...),
		LegalActions:         []Action{},
	}

	if g.CurrentPlayerIndex == viewer {
		if p := g.currentPlayer(); p != nil {
			v.AmountToCall = p.amountToCall(g.CurrentBet)
		}

		if actions := g.LegalActions(); actions != nil {
			v.LegalActions = actions
		}

		v.MaxRaise = g.MaxRaise()
	}

	return v
}
