package domain

import (
	"testing"

	"github.com/lazharichir/holdem/domain/hands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSidePots_EqualContributionsFormOnePot(t *testing.T) {
	players := []*Player{
		{ID: "a", TotalBet: 500, SeatIndex: 0},
		{ID: "b", TotalBet: 500, SeatIndex: 1},
	}

	pots := computeSidePots(players)

	require.Len(t, pots, 1)
	assert.Equal(t, 1000, pots[0].Amount)
	assert.Equal(t, 500, pots[0].Level)
	assert.ElementsMatch(t, []string{"a", "b"}, pots[0].Eligible)
}

func TestComputeSidePots_ShortStackCreatesSidePot(t *testing.T) {
	// One short all-in at 300, two others bet to 900
	players := []*Player{
		{ID: "a", TotalBet: 300, SeatIndex: 0, AllIn: true},
		{ID: "b", TotalBet: 900, SeatIndex: 1},
		{ID: "c", TotalBet: 900, SeatIndex: 2},
	}

	pots := computeSidePots(players)

	require.Len(t, pots, 2)

	main := pots[0]
	assert.Equal(t, 900, main.Amount, "Main pot is 300 from each of three players")
	assert.ElementsMatch(t, []string{"a", "b", "c"}, main.Eligible)

	side := pots[1]
	assert.Equal(t, 1200, side.Amount, "Side pot is 600 from each of the two deep stacks")
	assert.ElementsMatch(t, []string{"b", "c"}, side.Eligible)
}

func TestComputeSidePots_AmountsAlwaysSumToContributions(t *testing.T) {
	tests := []struct {
		name      string
		totalBets []int
		folded    []bool
	}{
		{"two equal", []int{100, 100}, []bool{false, false}},
		{"three tiers", []int{50, 200, 750}, []bool{false, false, false}},
		{"with a folder", []int{40, 400, 400, 400}, []bool{true, false, false, false}},
		{"everyone different", []int{1, 2, 3, 4, 5}, []bool{false, false, false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var players []*Player
			sum := 0
			for i, bet := range tt.totalBets {
				players = append(players, &Player{
					ID:        string(rune('a' + i)),
					TotalBet:  bet,
					Folded:    tt.folded[i],
					SeatIndex: i,
				})
				sum += bet
			}

			pots := computeSidePots(players)

			got := 0
			for _, pot := range pots {
				got += pot.Amount
			}
			assert.Equal(t, sum, got, "Side pots must account for every contributed chip")
		})
	}
}

func TestComputeSidePots_FoldedPlayersContributeButCannotWin(t *testing.T) {
	players := []*Player{
		{ID: "a", TotalBet: 200, SeatIndex: 0, Folded: true},
		{ID: "b", TotalBet: 200, SeatIndex: 1},
		{ID: "c", TotalBet: 200, SeatIndex: 2},
	}

	pots := computeSidePots(players)

	require.Len(t, pots, 1)
	assert.Equal(t, 600, pots[0].Amount)
	assert.ElementsMatch(t, []string{"b", "c"}, pots[0].Eligible)
}

func TestComputeSidePots_OrphanSliceFoldsIntoPreviousPot(t *testing.T) {
	// The deepest contributor folded; their excess has no eligible
	// claimant of its own and merges downward so no chip is stranded
	players := []*Player{
		{ID: "a", TotalBet: 900, SeatIndex: 0, Folded: true},
		{ID: "b", TotalBet: 300, SeatIndex: 1},
		{ID: "c", TotalBet: 300, SeatIndex: 2},
	}

	pots := computeSidePots(players)

	require.Len(t, pots, 1)
	assert.Equal(t, 1500, pots[0].Amount)
	assert.ElementsMatch(t, []string{"b", "c"}, pots[0].Eligible)
}

func TestComputeSidePots_NoContributions(t *testing.T) {
	players := []*Player{
		{ID: "a", SeatIndex: 0},
		{ID: "b", SeatIndex: 1},
	}

	assert.Nil(t, computeSidePots(players))
}

// riggedContender builds a player with a preset showdown evaluation
func riggedContender(id string, seat, totalBet int, eval hands.Evaluation) *Player {
	return &Player{
		ID:        id,
		SeatIndex: seat,
		TotalBet:  totalBet,
		bestHand:  &eval,
	}
}

func TestResolveSidePots_BestHandTakesThePot(t *testing.T) {
	winner := riggedContender("a", 0, 500, hands.Evaluation{Rank: hands.Flush, Kickers: []int{14, 9, 7, 4, 2}})
	loser := riggedContender("b", 1, 500, hands.Evaluation{Rank: hands.OnePair, Kickers: []int{13, 12, 9, 5}})

	room := NewRoom("test")
	room.Players = []*Player{winner, loser}
	room.Pot = 1000
	room.HandActive = true

	room.resolveSidePots([]*Player{winner, loser})

	assert.Equal(t, 1000, winner.Stack)
	assert.Equal(t, "Wins main pot", winner.Status)
	assert.Equal(t, 0, loser.Stack)
	assert.Equal(t, 0, room.Pot)
	assert.False(t, room.HandActive)
}

func TestResolveSidePots_OddChipGoesToLowestSeat(t *testing.T) {
	// Pot of 7 split two ways: 4 to the lower seat, 3 to the other
	tie := hands.Evaluation{Rank: hands.Straight, Kickers: []int{9}}
	lowSeat := riggedContender("b", 1, 3, tie)
	highSeat := riggedContender("c", 4, 3, tie)
	folder := &Player{ID: "a", SeatIndex: 0, TotalBet: 1, Folded: true}

	room := NewRoom("test")
	room.Players = []*Player{folder, lowSeat, highSeat}
	room.Pot = 7
	room.HandActive = true

	room.resolveSidePots([]*Player{lowSeat, highSeat})

	assert.Equal(t, 4, lowSeat.Stack)
	assert.Equal(t, 3, highSeat.Stack)
	assert.Equal(t, 0, room.Pot)
}

func TestResolveSidePots_ShortStackWinsOnlyTheMainPot(t *testing.T) {
	// The short all-in holds the best hand but only contests the main
	// pot; the side pot goes to the best of the two deep stacks.
	short := riggedContender("a", 0, 300, hands.Evaluation{Rank: hands.FourOfAKind, Kickers: []int{9, 14}})
	deep1 := riggedContender("b", 1, 900, hands.Evaluation{Rank: hands.TwoPair, Kickers: []int{13, 9, 11}})
	deep2 := riggedContender("c", 2, 900, hands.Evaluation{Rank: hands.OnePair, Kickers: []int{8, 14, 11, 6}})

	room := NewRoom("test")
	room.Players = []*Player{short, deep1, deep2}
	room.Pot = 2100
	room.HandActive = true

	room.resolveSidePots([]*Player{short, deep1, deep2})

	assert.Equal(t, 900, short.Stack, "Short stack takes the 900 main pot")
	assert.Equal(t, 1200, deep1.Stack, "Second-best hand takes the 1200 side pot")
	assert.Equal(t, 0, deep2.Stack)
	assert.Equal(t, "Wins main pot", short.Status)
	assert.Equal(t, "Wins side pot", deep1.Status)
	assert.Equal(t, 0, room.Pot)
}

func TestResolveSidePots_SplitPotConservesChips(t *testing.T) {
	tie := hands.Evaluation{Rank: hands.Straight, Kickers: []int{10}}
	a := riggedContender("a", 0, 333, tie)
	b := riggedContender("b", 1, 333, tie)
	c := riggedContender("c", 2, 333, tie)

	room := NewRoom("test")
	room.Players = []*Player{a, b, c}
	room.Pot = 999
	room.HandActive = true

	room.resolveSidePots([]*Player{a, b, c})

	assert.Equal(t, 333, a.Stack)
	assert.Equal(t, 333, b.Stack)
	assert.Equal(t, 333, c.Stack)
	assert.Equal(t, 0, room.Pot)
}
