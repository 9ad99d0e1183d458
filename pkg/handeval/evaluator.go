package handeval

import (
	"fmt"

	"holdem-trainer/pkg/deck"
)

// number of cards in a poker hand
const handSize = 5

// analyzer holds the groupings of a collection of cards
type analyzer struct {
	// cards sorted high to low
	cards deck.Hand

	// groups of equal rank, best first
	quads []deck.Hand
	trips []deck.Hand
	pairs []deck.Hand

	bySuit map[deck.Suit]deck.Hand
}

// Evaluate returns the best five-card ranking that can be made from the hole and community cards
func Evaluate(hole, community []deck.Card) Ranking {
	cards := make(deck.Hand, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)

	return newAnalyzer(cards).ranking()
}

func newAnalyzer(cards deck.Hand) *analyzer {
	a := &analyzer{
		cards:  cards.SortByRank(),
		bySuit: make(map[deck.Suit]deck.Hand),
	}

	for i := 0; i < len(a.cards); {
		j := i
		for j < len(a.cards) && a.cards[j].Rank == a.cards[i].Rank {
			j++
		}

		group := a.cards[i:j]
		switch len(group) {
		case 4:
			a.quads = append(a.quads, group)
		case 3:
			a.trips = append(a.trips, group)
		case 2:
			a.pairs = append(a.pairs, group)
		}

		i = j
	}

	for _, card := range a.cards {
		a.bySuit[card.Suit] = append(a.bySuit[card.Suit], card)
	}

	return a
}

// the order here is required, the first match is the best hand
var categories = []func(a *analyzer) (Ranking, bool){
	(*analyzer).straightFlush,
	(*analyzer).fourOfAKind,
	(*analyzer).fullHouse,
	(*analyzer).flush,
	(*analyzer).straight,
	(*analyzer).threeOfAKind,
	(*analyzer).twoPair,
	(*analyzer).pair,
}

func (a *analyzer) ranking() Ranking {
	for _, category := range categories {
		if r, ok := category(a); ok {
			return r
		}
	}

	return a.highCard()
}

// kickers returns the n highest cards of distinct rank, skipping the excluded ranks
func (a *analyzer) kickers(n int, exclude ...int) []deck.Card {
	skip := make(map[int]bool, len(exclude))
	for _, rank := range exclude {
		skip[rank] = true
	}

	kickers := make([]deck.Card, 0, n)
	for _, card := range a.cards {
		if len(kickers) == n {
			break
		}

		if skip[card.Rank] {
			continue
		}

		skip[card.Rank] = true
		kickers = append(kickers, card)
	}

	return kickers
}

func (a *analyzer) flushCards() (deck.Hand, bool) {
	for _, suit := range deck.Suits {
		if cards := a.bySuit[suit]; len(cards) >= handSize {
			return cards, true
		}
	}

	return nil, false
}

func (a *analyzer) straightFlush() (Ranking, bool) {
	cards, ok := a.flushCards()
	if !ok {
		return Ranking{}, false
	}

	run, high, ok := findStraight(cards)
	if !ok {
		return Ranking{}, false
	}

	if high == deck.Ace {
		return Ranking{
			Type:        RoyalFlush,
			Value:       high,
			Kickers:     run,
			Description: "Royal Flush",
		}, true
	}

	return Ranking{
		Type:        StraightFlush,
		Value:       high,
		Kickers:     run,
		Description: fmt.Sprintf("Straight Flush, %s high", deck.RankName(high)),
	}, true
}

func (a *analyzer) fourOfAKind() (Ranking, bool) {
	if len(a.quads) == 0 {
		return Ranking{}, false
	}

	rank := a.quads[0][0].Rank
	return Ranking{
		Type:        FourOfAKind,
		Value:       rank,
		Kickers:     a.kickers(1, rank),
		Description: fmt.Sprintf("Four %s", deck.RankNamePlural(rank)),
	}, true
}

// fullHouse uses the best trips, filled by the better of a second set of trips or the best pair
func (a *analyzer) fullHouse() (Ranking, bool) {
	if len(a.trips) == 0 {
		return Ranking{}, false
	}

	var fill deck.Hand
	if len(a.pairs) > 0 {
		fill = a.pairs[0]
	}

	if len(a.trips) >= 2 && (fill == nil || a.trips[1][0].Rank > fill[0].Rank) {
		fill = a.trips[1]
	}

	if fill == nil {
		return Ranking{}, false
	}

	rank := a.trips[0][0].Rank
	return Ranking{
		Type:        FullHouse,
		Value:       rank,
		Kickers:     []deck.Card{fill[0]},
		Description: fmt.Sprintf("%s full of %s", deck.RankNamePlural(rank), deck.RankNamePlural(fill[0].Rank)),
	}, true
}

func (a *analyzer) flush() (Ranking, bool) {
	cards, ok := a.flushCards()
	if !ok {
		return Ranking{}, false
	}

	top := cards[:handSize].Clone()
	return Ranking{
		Type:        Flush,
		Value:       top[0].Rank,
		Kickers:     top,
		Description: fmt.Sprintf("Flush, %s high", deck.RankName(top[0].Rank)),
	}, true
}

func (a *analyzer) straight() (Ranking, bool) {
	run, high, ok := findStraight(a.cards)
	if !ok {
		return Ranking{}, false
	}

	return Ranking{
		Type:        Straight,
		Value:       high,
		Kickers:     run,
		Description: fmt.Sprintf("Straight, %s high", deck.RankName(high)),
	}, true
}

func (a *analyzer) threeOfAKind() (Ranking, bool) {
	if len(a.trips) == 0 {
		return Ranking{}, false
	}

	rank := a.trips[0][0].Rank
	return Ranking{
		Type:        ThreeOfAKind,
		Value:       rank,
		Kickers:     a.kickers(2, rank),
		Description: fmt.Sprintf("Three %s", deck.RankNamePlural(rank)),
	}, true
}

func (a *analyzer) twoPair() (Ranking, bool) {
	if len(a.pairs) < 2 {
		return Ranking{}, false
	}

	high, low := a.pairs[0][0], a.pairs[1][0]
	kickers := append([]deck.Card{low}, a.kickers(1, high.Rank, low.Rank)...)
	return Ranking{
		Type:        TwoPair,
		Value:       high.Rank,
		Kickers:     kickers,
		Description: fmt.Sprintf("Two Pair, %s and %s", deck.RankNamePlural(high.Rank), deck.RankNamePlural(low.Rank)),
	}, true
}

func (a *analyzer) pair() (Ranking, bool) {
	if len(a.pairs) == 0 {
		return Ranking{}, false
	}

	rank := a.pairs[0][0].Rank
	return Ranking{
		Type:        Pair,
		Value:       rank,
		Kickers:     a.kickers(3, rank),
		Description: fmt.Sprintf("Pair of %s", deck.RankNamePlural(rank)),
	}, true
}

func (a *analyzer) highCard() Ranking {
	kickers := a.kickers(handSize)
	value := 0
	description := "No cards"
	if len(kickers) > 0 {
		value = kickers[0].Rank
		description = fmt.Sprintf("%s high", deck.RankName(value))
	}

	return Ranking{
		Type:        HighCard,
		Value:       value,
		Kickers:     kickers,
		Description: description,
	}
}
