package domain

import (
	"errors"
	"sync"
	"time"

	"github.com/lazharichir/holdem/domain/cards"
)

const (
	SmallBlind = 5
	BigBlind   = 10
	MaxSeats   = 10

	DefaultSpeedMs      = 700
	DefaultInitialStack = 1000

	MinSpeedMs      = 300
	MaxSpeedMs      = 2000
	MinInitialStack = 100
	MaxInitialStack = 10000
)

var (
	ErrTableFull      = errors.New("table is full")
	ErrNeedTwoPlayers = errors.New("need 2 players to start")
	ErrHandActive     = errors.New("a hand is already in progress")
)

// Stage identifies the betting street a room is on
type Stage string

const (
	StageIdle    Stage = "idle"
	StagePreflop Stage = "preflop"
	StageFlop    Stage = "flop"
	StageTurn    Stage = "turn"
	StageRiver   Stage = "river"
)

var avatarGradients = []string{
	"linear-gradient(135deg, #f4c35a, #ec6b67)",
	"linear-gradient(135deg, #63d6ff, #4b79ff)",
	"linear-gradient(135deg, #a7ff83, #3aa158)",
	"linear-gradient(135deg, #ff96f3, #9f4bf0)",
	"linear-gradient(135deg, #ffd27d, #ff8d4f)",
	"linear-gradient(135deg, #b4c8ff, #5353ff)",
}

// Observer is notified after a room mutates outside a message handler
// (the auto-advance timer), so the transport can push fresh state.
type Observer func(*Room)

// Room is one poker table. All mutations run under the room's mutex:
// message handlers take it through Lock/Unlock, the advance timer
// takes it itself. Seat order in Players drives turn rotation and the
// odd-chip tie-break.
type Room struct {
	ID                 string
	Players            []*Player
	Deck               cards.Stack
	Community          cards.Stack
	Pot                int
	DealerIndex        int
	CurrentPlayerIndex int
	CurrentBet         int
	MinRaise           int
	Stage              Stage
	HandActive         bool
	RevealHands        bool
	HostID             string
	MaxPlayers         int
	SpeedMs            int
	InitialStack       int
	CarryOverBalances  bool

	mu sync.Mutex

	// generation counts hand lifecycles so a timer scheduled against
	// an older hand detects the room has moved on and no-ops
	generation   int
	advanceTimer *time.Timer
	observers    []Observer
}

// NewRoom creates an empty room with default table settings
func NewRoom(id string) *Room {
	return &Room{
		ID:                id,
		Players:           []*Player{},
		Deck:              cards.Stack{},
		Community:         cards.Stack{},
		MinRaise:          BigBlind,
		Stage:             StageIdle,
		MaxPlayers:        MaxSeats,
		SpeedMs:           DefaultSpeedMs,
		InitialStack:      DefaultInitialStack,
		CarryOverBalances: true,
	}
}

// Lock takes the room's exclusive-access boundary
func (r *Room) Lock() { r.mu.Lock() }

// Unlock releases it
func (r *Room) Unlock() { r.mu.Unlock() }

// AddObserver registers a callback for timer-driven state changes
func (r *Room) AddObserver(obs Observer) {
	r.mu.Lock()
	r.observers = append(r.observers, obs)
	r.mu.Unlock()
}

// notify runs the observers. Must be called without the lock held;
// observers read the room through its locking accessors.
func (r *Room) notify() {
	for _, obs := range r.observers {
		obs(r)
	}
}

// FindPlayer returns the seated player with the given id, or nil
func (r *Room) FindPlayer(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// availableSeat returns the lowest free seat index below MaxPlayers,
// or -1 when the table is full
func (r *Room) availableSeat() int {
	taken := make(map[int]bool, len(r.Players))
	for _, p := range r.Players {
		taken[p.SeatIndex] = true
	}
	for i := 0; i < r.MaxPlayers; i++ {
		if !taken[i] {
			return i
		}
	}
	return -1
}

// AddPlayer seats a new player, optionally granting the host role.
// Names are trimmed to 16 characters; empty names become "Player".
func (r *Room) AddPlayer(id, name string, asHost bool) (*Player, error) {
	if len(r.Players) >= r.MaxPlayers {
		return nil, ErrTableFull
	}
	seat := r.availableSeat()
	if seat == -1 {
		return nil, ErrTableFull
	}

	player := &Player{
		ID:           id,
		Name:         cleanName(name),
		Stack:        r.InitialStack,
		Hand:         cards.Stack{},
		SeatIndex:    seat,
		Avatar:       avatarGradients[seat%len(avatarGradients)],
		NeedsProfile: true,
	}
	r.Players = append(r.Players, player)

	if asHost && r.HostID == "" {
		r.HostID = id
	}

	return player, nil
}

// RemovePlayer unseats a player and repairs the room around the gap:
// the host role is vacated, a hand with fewer than two players left is
// aborted to idle, and if the departing player was the current actor
// the turn advances to the next eligible seat (falling back to the
// dealer's). Returns the removed player, or nil if they were not here.
func (r *Room) RemovePlayer(id string) *Player {
	idx := -1
	for i, p := range r.Players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	leaving := r.Players[idx]
	wasCurrent := r.HandActive &&
		r.CurrentPlayerIndex < len(r.Players) &&
		r.Players[r.CurrentPlayerIndex].ID == id

	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	if r.HostID == id {
		r.HostID = ""
	}

	if r.HandActive && len(r.Players) < 2 {
		r.HandActive = false
		r.Stage = StageIdle
		r.generation++
	}

	if r.HandActive {
		if r.CurrentPlayerIndex >= len(r.Players) || wasCurrent {
			next := r.nextActivePlayer(r.CurrentPlayerIndex % len(r.Players))
			if next == -1 {
				next = r.DealerIndex % len(r.Players)
			}
			r.CurrentPlayerIndex = next
		}
	}

	return leaving
}

// RenamePlayer updates a player's display name; blank names are
// ignored. Returns the stored name and whether anything changed.
// Caller holds the room lock.
func (r *Room) RenamePlayer(id, name string) (string, bool) {
	p := r.FindPlayer(id)
	if p == nil || name == "" {
		return "", false
	}
	p.Name = cleanName(name)
	return p.Name, true
}

// UpdateProfile applies a profile submission and clears the player's
// pending profile requirement. Caller holds the room lock.
func (r *Room) UpdateProfile(id, name, avatar string) bool {
	p := r.FindPlayer(id)
	if p == nil {
		return false
	}
	if name != "" {
		p.Name = cleanName(name)
	}
	if avatar != "" {
		p.Avatar = avatar
	}
	p.NeedsProfile = false
	return true
}

// Empty reports whether no player remains seated
func (r *Room) Empty() bool {
	return len(r.Players) == 0
}

// SetSpeed stores the inter-street delay, clamped to the safe range
func (r *Room) SetSpeed(speedMs int) {
	r.SpeedMs = clamp(speedMs, MinSpeedMs, MaxSpeedMs)
}

// SetMaxPlayers stores the seat limit, clamped to 2..MaxSeats. Already
// seated players keep their seats even above a lowered limit.
func (r *Room) SetMaxPlayers(maxPlayers int) {
	r.MaxPlayers = clamp(maxPlayers, 2, MaxSeats)
}

// SetInitialStack stores the buy-in for future joins and resets,
// clamped to the safe range
func (r *Room) SetInitialStack(initialStack int) {
	r.InitialStack = clamp(initialStack, MinInitialStack, MaxInitialStack)
}

// resetHandState rebuilds the deck, clears the board, pot and player
// hand state, cancels any pending advance, and opens the preflop round
func (r *Room) resetHandState() {
	r.Deck = cards.NewDeck52()
	r.Community = cards.Stack{}
	r.Pot = 0
	r.cancelAdvance()
	r.generation++
	r.CurrentBet = 0
	r.MinRaise = BigBlind
	r.Stage = StagePreflop
	r.HandActive = true
	r.RevealHands = false

	for _, p := range r.Players {
		p.Bet = 0
		p.TotalBet = 0
		p.Hand = cards.Stack{}
		p.Folded = false
		p.AllIn = false
		p.Status = ""
		p.bestHand = nil
	}
}

// scheduleAdvance arms the auto-advance timer. At most one may be
// pending per room; scheduling while one exists is a no-op.
func (r *Room) scheduleAdvance() {
	if !r.HandActive || r.advanceTimer != nil {
		return
	}
	gen := r.generation
	r.advanceTimer = time.AfterFunc(time.Duration(r.SpeedMs)*time.Millisecond, func() {
		r.advanceFired(gen)
	})
}

// cancelAdvance stops a pending advance timer, if any
func (r *Room) cancelAdvance() {
	if r.advanceTimer != nil {
		r.advanceTimer.Stop()
		r.advanceTimer = nil
	}
}

// advanceFired is the timer callback. The generation guard makes a
// stale timer (hand ended, room reset) harmless.
func (r *Room) advanceFired(gen int) {
	r.mu.Lock()
	r.advanceTimer = nil
	if gen != r.generation || !r.HandActive {
		r.mu.Unlock()
		return
	}
	r.advanceStage()
	r.mu.Unlock()

	r.notify()
}

func cleanName(name string) string {
	trimmed := []rune(name)
	if len(trimmed) > 16 {
		trimmed = trimmed[:16]
	}
	if len(trimmed) == 0 {
		return "Player"
	}
	return string(trimmed)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
