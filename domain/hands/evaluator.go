package hands

import (
	"sort"

	"github.com/lazharichir/holdem/domain/cards"
)

// HandRank represents the category of a five-card poker hand
type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var rankNames = map[HandRank]string{
	HighCard:      "High Card",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
}

func (r HandRank) String() string {
	return rankNames[r]
}

// Evaluation represents the strength of a five-card hand. Kickers hold
// the tie-break ranks, most significant first; their layout depends on
// the hand rank (e.g. a full house carries [tripsRank, pairRank],
// a straight carries only its high card).
type Evaluation struct {
	Rank    HandRank `json:"rank"`
	Kickers []int    `json:"kickers"`
}

// rankGroup is a set of cards sharing a rank value
type rankGroup struct {
	rank  int
	count int
}

// EvaluateFive ranks exactly five cards
func EvaluateFive(hand cards.Stack) Evaluation {
	if len(hand) != 5 {
		panic("hand must contain exactly five cards")
	}

	ranks := make([]int, 5)
	for i, card := range hand {
		ranks[i] = card.Rank
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	counts := make(map[int]int)
	for _, rank := range ranks {
		counts[rank]++
	}

	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	flush := isFlush(hand)
	straight, straightHigh := detectStraight(ranks)

	switch {
	case flush && straight:
		return Evaluation{Rank: StraightFlush, Kickers: []int{straightHigh}}

	case groups[0].count == 4:
		return Evaluation{Rank: FourOfAKind, Kickers: []int{groups[0].rank, groups[1].rank}}

	case groups[0].count == 3 && groups[1].count == 2:
		return Evaluation{Rank: FullHouse, Kickers: []int{groups[0].rank, groups[1].rank}}

	case flush:
		return Evaluation{Rank: Flush, Kickers: ranks}

	case straight:
		return Evaluation{Rank: Straight, Kickers: []int{straightHigh}}

	case groups[0].count == 3:
		return Evaluation{Rank: ThreeOfAKind, Kickers: append([]int{groups[0].rank}, singleRanks(groups)...)}

	case groups[0].count == 2 && groups[1].count == 2:
		return Evaluation{Rank: TwoPair, Kickers: []int{groups[0].rank, groups[1].rank, groups[2].rank}}

	case groups[0].count == 2:
		return Evaluation{Rank: OnePair, Kickers: append([]int{groups[0].rank}, singleRanks(groups)...)}

	default:
		return Evaluation{Rank: HighCard, Kickers: ranks}
	}
}

// singleRanks returns the ranks of all one-card groups, which the
// group sort already left in descending order
func singleRanks(groups []rankGroup) []int {
	var out []int
	for _, g := range groups {
		if g.count == 1 {
			out = append(out, g.rank)
		}
	}
	return out
}

// isFlush checks if all cards share a suit
func isFlush(hand cards.Stack) bool {
	suit := hand[0].Suit
	for _, card := range hand[1:] {
		if card.Suit != suit {
			return false
		}
	}
	return true
}

// detectStraight finds five consecutive distinct ranks and reports the
// straight's high card. The wheel (A-2-3-4-5) is the one case where
// the ace counts low, ranking as a 5-high straight.
func detectStraight(sortedDesc []int) (bool, int) {
	unique := make([]int, 0, 5)
	for i, rank := range sortedDesc {
		if i > 0 && rank == sortedDesc[i-1] {
			continue
		}
		unique = append(unique, rank)
	}
	if len(unique) != 5 {
		return false, 0
	}

	if unique[0]-unique[4] == 4 {
		return true, unique[0]
	}
	if unique[0] == 14 && unique[1] == 5 && unique[4] == 2 {
		return true, 5
	}
	return false, 0
}

// Compare orders two evaluations:
// -1 if a is weaker than b, 0 on a true tie, 1 if a is stronger.
// Equal ranks compare kickers element-wise, most significant first,
// with a missing slot treated as 0.
func Compare(a, b Evaluation) int {
	if a.Rank != b.Rank {
		if a.Rank < b.Rank {
			return -1
		}
		return 1
	}

	n := len(a.Kickers)
	if len(b.Kickers) > n {
		n = len(b.Kickers)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(a.Kickers) {
			av = a.Kickers[i]
		}
		if i < len(b.Kickers) {
			bv = b.Kickers[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

// combinations generates all k-element index combinations out of n
func combinations(n, k int) [][]int {
	var result [][]int
	var combine func(int, []int)

	combine = func(start int, current []int) {
		if len(current) == k {
			combo := make([]int, k)
			copy(combo, current)
			result = append(result, combo)
			return
		}
		for i := start; i < n; i++ {
			current = append(current, i)
			combine(i+1, current)
			current = current[:len(current)-1]
		}
	}

	combine(0, []int{})
	return result
}

// BestHand evaluates every 5-card subset of the given cards (21 of
// them for the 7 cards seen at showdown) and returns the strongest.
// Compare is a total preorder, so the result does not depend on the
// subset iteration order.
func BestHand(available cards.Stack) Evaluation {
	if len(available) < 5 {
		panic("best hand needs at least five cards")
	}

	var best Evaluation
	first := true
	for _, combo := range combinations(len(available), 5) {
		hand := make(cards.Stack, 5)
		for i, idx := range combo {
			hand[i] = available[idx]
		}

		eval := EvaluateFive(hand)
		if first || Compare(eval, best) > 0 {
			best = eval
			first = false
		}
	}
	return best
}
