package domain

import (
	"errors"

	"github.com/lazharichir/holdem/domain/cards"
	"github.com/lazharichir/holdem/domain/hands"
)

// Action is a betting move a player can make on their turn
type Action string

const (
	ActionFold  Action = "fold"
	ActionCheck Action = "check"
	ActionCall  Action = "call"
	ActionRaise Action = "raise"
)

var (
	ErrNoActiveHand  = errors.New("no hand in progress")
	ErrNotYourTurn   = errors.New("it is not your turn")
	ErrCannotCheck   = errors.New("cannot check facing a bet")
	ErrUnknownAction = errors.New("unknown action")
)

// StartHand begins a new hand: rotates the dealer button, posts the
// blinds and deals hole cards. Requires at least two players holding
// chips. Caller holds the room lock.
func (r *Room) StartHand() error {
	if r.HandActive {
		return ErrHandActive
	}

	funded := 0
	for _, p := range r.Players {
		if p.Stack > 0 {
			funded++
		}
	}
	if funded < 2 {
		r.HandActive = false
		r.Stage = StageIdle
		return ErrNeedTwoPlayers
	}

	r.resetHandState()
	r.DealerIndex = (r.DealerIndex + 1) % len(r.Players)
	r.postBlinds()
	r.dealHoleCards()
	return nil
}

// NewGame clears all hand state without dealing and, unless carryOver
// is set, resets every stack to the room's buy-in. Caller holds the
// room lock.
func (r *Room) NewGame(carryOver bool) {
	r.CarryOverBalances = carryOver

	for _, p := range r.Players {
		if !r.CarryOverBalances {
			p.Stack = r.InitialStack
		}
		p.Bet = 0
		p.TotalBet = 0
		p.Folded = false
		p.AllIn = false
		p.Status = ""
		p.Hand = cards.Stack{}
		p.bestHand = nil
	}

	r.Pot = 0
	r.cancelAdvance()
	r.generation++
	r.Stage = StageIdle
	r.HandActive = false
	r.RevealHands = false
}

// postBlinds takes the forced bets from the two seats after the
// dealer and opens the action just past the big blind
func (r *Room) postBlinds() {
	count := len(r.Players)
	dealer := r.DealerIndex % count
	smallBlind := (dealer + 1) % count
	bigBlind := (dealer + 2) % count

	r.applyForcedBet(r.Players[smallBlind], SmallBlind, "Small Blind")
	r.applyForcedBet(r.Players[bigBlind], BigBlind, "Big Blind")
	r.CurrentBet = BigBlind
	r.MinRaise = BigBlind
	r.CurrentPlayerIndex = (bigBlind + 1) % count
}

func (r *Room) applyForcedBet(p *Player, amount int, label string) {
	bet := min(amount, p.Stack)
	p.Stack -= bet
	p.Bet += bet
	p.TotalBet += bet
	p.Status = label
	if p.Stack == 0 {
		p.AllIn = true
	}
	r.Pot += bet
}

// dealHoleCards deals one card at a time around the table, twice, to
// every player holding chips
func (r *Room) dealHoleCards() {
	for pass := 0; pass < 2; pass++ {
		for _, p := range r.Players {
			if p.Stack > 0 || p.Bet > 0 {
				var card cards.Card
				card, r.Deck = cards.DealCard(r.Deck)
				p.Hand = append(p.Hand, card)
			}
		}
	}
}

// commitBet moves up to amount chips from the player's stack into the
// pot, marking a short stack all-in when it empties
func (r *Room) commitBet(p *Player, amount int) {
	bet := min(amount, p.Stack)
	p.Stack -= bet
	p.Bet += bet
	p.TotalBet += bet
	r.Pot += bet
	if p.Stack == 0 {
		p.AllIn = true
	}
}

// activePlayers are the non-folded players still holding chips or a
// live bet this round
func (r *Room) activePlayers() []*Player {
	var out []*Player
	for _, p := range r.Players {
		if p.contends() {
			out = append(out, p)
		}
	}
	return out
}

// inHand are the non-folded players who were dealt into this hand;
// they retain a claim on the pot even once all-in
func (r *Room) inHand() []*Player {
	var out []*Player
	for _, p := range r.Players {
		if !p.Folded && len(p.Hand) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// nextActivePlayer scans circularly from just after fromIndex for a
// player who can still act, skipping folded, broke and all-in seats.
// Returns -1 when the scan wraps with no one found.
func (r *Room) nextActivePlayer(fromIndex int) int {
	count := len(r.Players)
	idx := fromIndex
	for i := 0; i < count; i++ {
		idx = (idx + 1) % count
		if r.Players[idx].canAct() {
			return idx
		}
	}
	return -1
}

// bettingRoundComplete reports whether the current street's betting is
// settled: at most one contender with chips remains, or every one of
// them is all-in or has matched the current bet
func (r *Room) bettingRoundComplete() bool {
	active := r.activePlayers()
	if len(active) <= 1 {
		return true
	}
	for _, p := range active {
		if !p.AllIn && p.Bet != r.CurrentBet {
			return false
		}
	}
	return true
}

// clearBets resets the per-round commitments (not TotalBet) between
// streets
func (r *Room) clearBets() {
	for _, p := range r.Players {
		p.Bet = 0
		p.Status = ""
	}
	r.CurrentBet = 0
	r.MinRaise = BigBlind
}

// checkForHandEnd awards the pot to the last unfolded player when
// folding has removed everyone else; no evaluation happens
func (r *Room) checkForHandEnd() bool {
	remaining := r.inHand()
	if len(remaining) != 1 {
		return false
	}

	winner := remaining[0]
	winner.Stack += r.Pot
	winner.Status = "Wins pot"
	r.Pot = 0
	r.HandActive = false
	r.RevealHands = true
	r.generation++
	return true
}

// advanceStage deals the next street's community cards and reopens
// betting, or runs the showdown after the river. When nobody is left
// who can act (everyone all-in), it keeps scheduling itself so the
// remaining streets run out automatically.
func (r *Room) advanceStage() {
	switch r.Stage {
	case StagePreflop:
		r.dealCommunity(3)
		r.Stage = StageFlop
	case StageFlop:
		r.dealCommunity(1)
		r.Stage = StageTurn
	case StageTurn:
		r.dealCommunity(1)
		r.Stage = StageRiver
	case StageRiver:
		r.showdown()
		return
	default:
		return
	}

	r.clearBets()
	r.CurrentPlayerIndex = r.nextActivePlayer(r.DealerIndex % len(r.Players))
	if r.CurrentPlayerIndex == -1 {
		r.scheduleAdvance()
		return
	}
	if r.allContendersAllIn() {
		r.scheduleAdvance()
	}
}

func (r *Room) dealCommunity(n int) {
	for i := 0; i < n; i++ {
		var card cards.Card
		card, r.Deck = cards.DealCard(r.Deck)
		r.Community = append(r.Community, card)
	}
}

// allContendersAllIn reports whether a multi-way hand has no player
// left with a decision to make
func (r *Room) allContendersAllIn() bool {
	remaining := r.inHand()
	if len(remaining) <= 1 {
		return false
	}
	for _, p := range remaining {
		if !p.AllIn {
			return false
		}
	}
	return true
}

// HandleAction applies one betting action for the player whose turn it
// is, then advances the turn, the street, or the hand as the rules
// require. Caller holds the room lock.
func (r *Room) HandleAction(playerID string, action Action, raiseTo int) error {
	if !r.HandActive {
		return ErrNoActiveHand
	}
	if r.CurrentPlayerIndex >= len(r.Players) || r.Players[r.CurrentPlayerIndex].ID != playerID {
		return ErrNotYourTurn
	}

	player := r.Players[r.CurrentPlayerIndex]
	callAmount := max(0, r.CurrentBet-player.Bet)
	player.Status = ""

	switch action {
	case ActionFold:
		player.Folded = true
		player.Status = "Folded"

	case ActionCheck:
		if callAmount != 0 {
			return ErrCannotCheck
		}
		player.Status = "Check"

	case ActionCall:
		r.commitBet(player, callAmount)
		if callAmount > 0 {
			player.Status = "Call"
		} else {
			player.Status = "Check"
		}

	case ActionRaise:
		// A short raise request is clamped up to the minimum legal
		// raise-to, never rejected. An all-in for less than a full
		// raise does not reopen the betting: MinRaise only grows.
		minRaiseTo := r.CurrentBet + r.MinRaise
		desired := max(raiseTo, max(minRaiseTo, player.Bet+callAmount))
		raiseAmount := desired - player.Bet
		r.commitBet(player, raiseAmount)
		// A short all-in "raise" can land below the standing bet; the
		// bet to match never goes down.
		r.CurrentBet = max(r.CurrentBet, player.Bet)
		r.MinRaise = max(r.MinRaise, raiseAmount-callAmount)
		player.Status = "Raise"

	default:
		return ErrUnknownAction
	}

	if r.checkForHandEnd() {
		return nil
	}
	if r.bettingRoundComplete() {
		r.scheduleAdvance()
		return nil
	}

	next := r.nextActivePlayer(r.CurrentPlayerIndex)
	if next == -1 {
		r.advanceStage()
		return nil
	}
	r.CurrentPlayerIndex = next
	return nil
}

// showdown reveals the contenders' hole cards, evaluates each over
// their seven available cards, and settles every pot
func (r *Room) showdown() {
	r.RevealHands = true

	contenders := r.inHand()
	for _, p := range contenders {
		available := make(cards.Stack, 0, len(p.Hand)+len(r.Community))
		available = append(available, p.Hand...)
		available = append(available, r.Community...)
		best := hands.BestHand(available)
		p.bestHand = &best
	}

	r.resolveSidePots(contenders)
	r.generation++
}
