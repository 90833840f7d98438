package commands

import "encoding/json"

// Envelope is the wire frame for every client message: a type tag and
// a kind-specific payload decoded by the router
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client message types
const (
	TypeJoin            = "JOIN"
	TypeStartHand       = "START_HAND"
	TypeNewGame         = "NEW_GAME"
	TypePlayerAction    = "PLAYER_ACTION"
	TypeSetSpeed        = "SET_SPEED"
	TypeSetMaxPlayers   = "SET_MAX_PLAYERS"
	TypeSetInitialStack = "SET_INITIAL_STACK"
	TypeSetName         = "SET_NAME"
	TypeSetProfile      = "SET_PROFILE"
)

// Join seats the sender in a room, optionally claiming the host role
// with the shared host key
type Join struct {
	Name    string `json:"name"`
	RoomID  string `json:"roomId"`
	HostKey string `json:"hostKey,omitempty"`
}

// StartHand begins a hand (host only)
type StartHand struct{}

// NewGame resets the table without dealing (host only)
type NewGame struct {
	CarryOver bool `json:"carryOver"`
}

// PlayerAction is a betting move by the player whose turn it is
type PlayerAction struct {
	Action  string `json:"action"`
	RaiseTo int    `json:"raiseTo,omitempty"`
}

// SetSpeed adjusts the auto-advance delay (host only)
type SetSpeed struct {
	SpeedMs int `json:"speedMs"`
}

// SetMaxPlayers adjusts the seat limit (host only)
type SetMaxPlayers struct {
	MaxPlayers int `json:"maxPlayers"`
}

// SetInitialStack adjusts the buy-in (host only)
type SetInitialStack struct {
	InitialStack int `json:"initialStack"`
}

// SetName updates the sender's display name
type SetName struct {
	Name string `json:"name"`
}

// SetProfile updates the sender's name and avatar and clears their
// pending profile requirement
type SetProfile struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
