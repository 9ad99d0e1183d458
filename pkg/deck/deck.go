package deck

import (
	"errors"

	"holdem-trainer/internal/rng"
)

// ErrEndOfDeck is an error when there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Size is the number of cards in a standard deck
const Size = 52

// Deck represents the deck of cards
type Deck struct {
	Cards Hand
}

// New returns a full, ordered deck (no shuffle)
// Randomness is applied when drawing, see DrawRandom.
func New() *Deck {
	cards := make(Hand, 0, Size)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	return &Deck{
		Cards: cards,
	}
}

// DrawRandom removes and returns a card chosen uniformly from the remaining cards
func (d *Deck) DrawRandom(gen rng.Generator) (Card, error) {
	if len(d.Cards) == 0 {
		return Card{}, ErrEndOfDeck
	}

	i := gen.Intn(len(d.Cards))
	card := d.Cards[i]
	d.Cards = append(d.Cards[:i], d.Cards[i+1:]...)

	return card, nil
}

// CanDraw returns true if the deck has enough cards to draw
func (d *Deck) CanDraw(n int) bool {
	return len(d.Cards) >= n
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
