package domain

import (
	"github.com/lazharichir/holdem/domain/cards"
	"github.com/lazharichir/holdem/domain/hands"
)

// Player represents a seated participant. Stack, Bet and TotalBet are
// integer chips; Bet is the current betting round's commitment and
// TotalBet the cumulative commitment for the whole hand, which drives
// the side-pot math. A player with AllIn set always has Stack == 0.
type Player struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Stack        int         `json:"stack"`
	Bet          int         `json:"bet"`
	TotalBet     int         `json:"totalBet"`
	Hand         cards.Stack `json:"hand"`
	Folded       bool        `json:"folded"`
	AllIn        bool        `json:"allIn"`
	Status       string      `json:"status"`
	SeatIndex    int         `json:"seatIndex"`
	Avatar       string      `json:"avatar"`
	NeedsProfile bool        `json:"needsProfile"`

	// bestHand is set for contenders at showdown and discarded with
	// the hand
	bestHand *hands.Evaluation
}

// canAct reports whether a player may still take betting actions this
// hand: not folded, not all-in, and holding chips or a live bet
func (p *Player) canAct() bool {
	return !p.Folded && !p.AllIn && p.Stack+p.Bet > 0
}

// contends reports whether a player still has a claim on the pot
func (p *Player) contends() bool {
	return !p.Folded && p.Stack+p.Bet > 0
}
