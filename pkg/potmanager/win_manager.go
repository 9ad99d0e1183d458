package potmanager

import (
	"sort"

	"holdem-trainer/pkg/handeval"
)

// WinManager orders contenders by hand strength
type WinManager struct {
	contenders []Contender
}

// NewWinManager returns an empty WinManager
func NewWinManager() *WinManager {
	return &WinManager{
		contenders: make([]Contender, 0),
	}
}

// AddContender adds a contender
// The order contenders are added is kept within a tier and decides who receives odd chips.
func (w *WinManager) AddContender(c Contender) {
	w.contenders = append(w.contenders, c)
}

// GetSortedTiers returns the contenders grouped by equal rankings, strongest tier first
func (w *WinManager) GetSortedTiers() [][]Contender {
	sorted := make([]Contender, len(w.contenders))
	copy(sorted, w.contenders)

	sort.SliceStable(sorted, func(i, j int) bool {
		return handeval.Compare(sorted[i].Ranking(), sorted[j].Ranking()) > 0
	})

	tiers := make([][]Contender, 0)
	for _, c := range sorted {
		n := len(tiers)
		if n > 0 && handeval.Compare(tiers[n-1][0].Ranking(), c.Ranking()) == 0 {
			tiers[n-1] = append(tiers[n-1], c)
			continue
		}

		tiers = append(tiers, []Contender{c})
	}

	return tiers
}

// GetWinners returns the strongest tier, or nil when there are no contenders
func (w *WinManager) GetWinners() []Contender {
	tiers := w.GetSortedTiers()
	if len(tiers) == 0 {
		return nil
	}

	return tiers[0]
}
