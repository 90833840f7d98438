package cards

import "math/rand"

// NewDeck52 creates a standard 52-card deck in a uniformly random
// order. A full table of 10 players draws at most 25 cards per hand,
// so a fresh deck always covers a complete hand.
func NewDeck52() Stack {
	deck := make(Stack, 0, 52)
	for _, suit := range Suits {
		for rank := 2; rank <= 14; rank++ {
			deck = append(deck, NewCard(suit, rank))
		}
	}

	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	return deck
}

// DealCard removes and returns the card at the tail of the deck.
// Drawing from an empty deck is a defect in the caller, never a
// runtime condition, so it panics.
func DealCard(deck Stack) (Card, Stack) {
	if len(deck) == 0 {
		panic("dealing from an empty deck")
	}

	card := deck[len(deck)-1]
	return card, deck[:len(deck)-1]
}
