package domain

import "github.com/lazharichir/holdem/domain/cards"

// PlayerView is a player as one recipient sees them; Hand is blank
// unless the viewer is entitled to it
type PlayerView struct {
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
}

// SidePotView hides the eligible ids from clients and only carries the
// head count
type SidePotView struct {
	Amount        int `json:"amount"`
	EligibleCount int `json:"eligibleCount"`
}

// State is the room snapshot pushed to one recipient
type State struct {
	ID                 string        `json:"id"`
	Players            []PlayerView  `json:"players"`
	Community          cards.Stack   `json:"community"`
	Pot                int           `json:"pot"`
	SidePots           []SidePotView `json:"sidePots"`
	SpeedMs            int           `json:"speedMs"`
	MaxPlayers         int           `json:"maxPlayers"`
	InitialStack       int           `json:"initialStack"`
	CarryOverBalances  bool          `json:"carryOverBalances"`
	DealerIndex        int           `json:"dealerIndex"`
	CurrentPlayerIndex int           `json:"currentPlayerIndex"`
	CurrentBet         int           `json:"currentBet"`
	MinRaise           int           `json:"minRaise"`
	Stage              Stage         `json:"stage"`
	HandActive         bool          `json:"handActive"`
	RevealHands        bool          `json:"revealHands"`
	HostID             string        `json:"hostId"`
}

// StateFor builds a freshly-redacted snapshot for one recipient: they
// see their own hole cards always, and everyone's once the hand has
// reached its reveal (showdown or hand over). Views are computed per
// push and never cached, so each mutation fans out into distinct,
// correctly-redacted payloads.
func (r *Room) StateFor(viewerID string) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateFor(viewerID)
}

func (r *Room) stateFor(viewerID string) State {
	players := make([]PlayerView, 0, len(r.Players))
	for _, p := range r.Players {
		view := PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			Stack:        p.Stack,
			Bet:          p.Bet,
			TotalBet:     p.TotalBet,
			Hand:         cards.Stack{},
			Folded:       p.Folded,
			AllIn:        p.AllIn,
			Status:       p.Status,
			SeatIndex:    p.SeatIndex,
			Avatar:       p.Avatar,
			NeedsProfile: p.NeedsProfile,
		}
		if p.ID == viewerID || r.RevealHands || !r.HandActive {
			view.Hand = append(cards.Stack{}, p.Hand...)
		}
		players = append(players, view)
	}

	pots := computeSidePots(r.Players)
	potViews := make([]SidePotView, 0, len(pots))
	for _, pot := range pots {
		potViews = append(potViews, SidePotView{Amount: pot.Amount, EligibleCount: len(pot.Eligible)})
	}

	return State{
		ID:                 r.ID,
		Players:            players,
		Community:          append(cards.Stack{}, r.Community...),
		Pot:                r.Pot,
		SidePots:           potViews,
		SpeedMs:            r.SpeedMs,
		MaxPlayers:         r.MaxPlayers,
		InitialStack:       r.InitialStack,
		CarryOverBalances:  r.CarryOverBalances,
		DealerIndex:        r.DealerIndex,
		CurrentPlayerIndex: r.CurrentPlayerIndex,
		CurrentBet:         r.CurrentBet,
		MinRaise:           r.MinRaise,
		Stage:              r.Stage,
		HandActive:         r.HandActive,
		RevealHands:        r.RevealHands,
		HostID:             r.HostID,
	}
}
