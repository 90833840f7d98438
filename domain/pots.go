package domain

import (
	"sort"

	"github.com/lazharichir/holdem/domain/hands"
)

// SidePot is one slice of the pot, derived from the players'
// cumulative contributions whenever needed and never stored. Eligible
// holds the ids of the non-folded players whose total contribution
// reaches Level; only they can win this slice.
type SidePot struct {
	Amount   int
	Eligible []string
	Level    int
}

// computeSidePots splits the hand's chips into a main pot and side
// pots from the distinct contribution levels, ascending. The slice
// between two levels is (level - prev) times the number of players who
// contributed at least that much, so the pot amounts always sum to the
// players' total contributions exactly.
func computeSidePots(players []*Player) []SidePot {
	type contribution struct {
		id       string
		totalBet int
		folded   bool
	}

	var contribs []contribution
	for _, p := range players {
		if p.TotalBet > 0 {
			contribs = append(contribs, contribution{id: p.ID, totalBet: p.TotalBet, folded: p.Folded})
		}
	}
	if len(contribs) == 0 {
		return nil
	}

	levelSet := make(map[int]bool)
	for _, c := range contribs {
		levelSet[c.totalBet] = true
	}
	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	var pots []SidePot
	prev := 0
	for _, level := range levels {
		matched := 0
		var eligible []string
		for _, c := range contribs {
			if c.totalBet >= level {
				matched++
				if !c.folded {
					eligible = append(eligible, c.id)
				}
			}
		}

		amount := (level - prev) * matched
		prev = level
		if amount == 0 {
			continue
		}

		// A slice whose contributors all folded has no one to claim
		// it; fold it into the previous pot so no chip is lost.
		if len(eligible) == 0 && len(pots) > 0 {
			pots[len(pots)-1].Amount += amount
			continue
		}

		pots = append(pots, SidePot{Amount: amount, Eligible: eligible, Level: level})
	}

	return pots
}

// resolveSidePots settles every pot independently: among each pot's
// eligible contenders the maximal hand takes it, ties split it with
// integer division, and the remainder goes one chip at a time to
// winners by ascending seat index. Post-condition: the room pot is
// empty and every chip has landed in a stack.
func (r *Room) resolveSidePots(contenders []*Player) {
	pots := computeSidePots(r.Players)
	if len(pots) == 0 {
		r.HandActive = false
		return
	}

	byID := make(map[string]*Player, len(contenders))
	for _, p := range contenders {
		byID[p.ID] = p
	}

	for _, p := range r.Players {
		if !p.Folded {
			p.Status = ""
		}
	}

	for index, pot := range pots {
		var eligible []*Player
		for _, id := range pot.Eligible {
			if p, ok := byID[id]; ok && p.bestHand != nil {
				eligible = append(eligible, p)
			}
		}
		if len(eligible) == 0 {
			continue
		}

		var best *hands.Evaluation
		for _, p := range eligible {
			if best == nil || hands.Compare(*p.bestHand, *best) > 0 {
				best = p.bestHand
			}
		}

		var winners []*Player
		for _, p := range eligible {
			if hands.Compare(*p.bestHand, *best) == 0 {
				winners = append(winners, p)
			}
		}

		share := pot.Amount / len(winners)
		remainder := pot.Amount - share*len(winners)

		sort.Slice(winners, func(i, j int) bool {
			return winners[i].SeatIndex < winners[j].SeatIndex
		})
		for _, p := range winners {
			p.Stack += share
			if remainder > 0 {
				p.Stack++
				remainder--
			}
			if index == 0 {
				p.Status = "Wins main pot"
			} else {
				p.Status = "Wins side pot"
			}
		}
	}

	r.Pot = 0
	r.HandActive = false
}
