package cards

// Suit represents a card suit
type Suit string

const (
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
)

// Suits lists the four suits in deck-building order
var Suits = []Suit{Spades, Hearts, Clubs, Diamonds}

// Card represents an immutable playing card. Rank runs from 2 (deuce)
// to 14 (ace); Label is the display form sent to clients.
type Card struct {
	Suit  Suit   `json:"suit"`
	Rank  int    `json:"rank"`
	Label string `json:"label"`
}

// String returns the string representation of a card
func (c Card) String() string {
	return c.Label + "-" + string(c.Suit)
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

var rankLabels = map[int]string{
	2: "2", 3: "3", 4: "4", 5: "5", 6: "6", 7: "7", 8: "8",
	9: "9", 10: "10", 11: "J", 12: "Q", 13: "K", 14: "A",
}

// NewCard builds the card for a suit and rank value
func NewCard(suit Suit, rank int) Card {
	return Card{Suit: suit, Rank: rank, Label: rankLabels[rank]}
}

// Stack represents multiple cards
type Stack []Card

func (s Stack) String() string {
	var out string
	for i, c := range s {
		if i > 0 {
			out += " "
		}
		out += c.String()
	}
	return out
}
