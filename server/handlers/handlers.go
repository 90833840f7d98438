package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/sanity-io/litter"
	"go.uber.org/zap"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/commands"
	"github.com/lazharichir/holdem/server/connection"
)

// Router decodes client envelopes into typed commands, checks
// authorization, applies the mutation under the room's lock, and fans
// the refreshed state out to every connection in the room
type Router struct {
	store   *domain.Store
	connMgr *connection.Manager
	hostKey string
	log     *zap.Logger
	debug   bool
}

// NewRouter creates a message router
func NewRouter(store *domain.Store, connMgr *connection.Manager, hostKey string, log *zap.Logger, debug bool) *Router {
	return &Router{
		store:   store,
		connMgr: connMgr,
		hostKey: hostKey,
		log:     log,
		debug:   debug,
	}
}

// serverMessage is the outbound envelope
type serverMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Info is a transient human-readable notice
type Info struct {
	Text string `json:"text"`
}

// HandleMessage processes one inbound frame. Malformed frames are
// dropped without a reply; framing is not part of the trusted
// contract.
func (rt *Router) HandleMessage(client *connection.Client, raw []byte) {
	var envelope commands.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Type == "" {
		rt.log.Debug("dropping malformed message", zap.String("client", client.ID))
		return
	}

	if rt.debug {
		rt.log.Debug("command received",
			zap.String("client", client.ID),
			zap.String("type", envelope.Type),
			zap.String("envelope", litter.Sdump(envelope)),
		)
	}

	if envelope.Type == commands.TypeJoin {
		rt.handleJoin(client, envelope.Payload)
		return
	}

	// Everything else requires an existing room binding
	room, ok := rt.store.Get(client.RoomID)
	if !ok {
		return
	}
	room.Lock()
	seated := room.FindPlayer(client.ID) != nil
	room.Unlock()
	if !seated {
		return
	}

	switch envelope.Type {
	case commands.TypeStartHand:
		rt.handleStartHand(client, room)
	case commands.TypeNewGame:
		rt.handleNewGame(client, room, envelope.Payload)
	case commands.TypePlayerAction:
		rt.handlePlayerAction(client, room, envelope.Payload)
	case commands.TypeSetSpeed:
		rt.handleSetSpeed(client, room, envelope.Payload)
	case commands.TypeSetMaxPlayers:
		rt.handleSetMaxPlayers(client, room, envelope.Payload)
	case commands.TypeSetInitialStack:
		rt.handleSetInitialStack(client, room, envelope.Payload)
	case commands.TypeSetName:
		rt.handleSetName(client, room, envelope.Payload)
	case commands.TypeSetProfile:
		rt.handleSetProfile(client, room, envelope.Payload)
	default:
		rt.log.Debug("unknown message type", zap.String("type", envelope.Type))
	}
}

func (rt *Router) handleJoin(client *connection.Client, payload json.RawMessage) {
	var cmd commands.Join
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return
	}

	// A connection is bound to at most one room and one identity
	if client.RoomID != "" {
		return
	}

	roomID := cmd.RoomID
	if roomID == "" {
		roomID = "lobby"
	}

	room, created := rt.store.GetOrCreate(roomID)
	if created {
		room.AddObserver(rt.SyncRoom)
		rt.log.Info("room created", zap.String("room", roomID))
	}

	asHost := cmd.HostKey != "" && cmd.HostKey == rt.hostKey

	room.Lock()
	player, err := room.AddPlayer(client.ID, cmd.Name, asHost)
	room.Unlock()

	if errors.Is(err, domain.ErrTableFull) {
		rt.sendInfo(client.ID, "Table is full.")
		return
	}
	if err != nil {
		rt.log.Warn("join failed", zap.String("room", roomID), zap.Error(err))
		return
	}

	client.RoomID = roomID
	rt.connMgr.BindRoom(client.ID, roomID)
	rt.log.Info("player joined",
		zap.String("room", roomID),
		zap.String("player", client.ID),
		zap.Int("seat", player.SeatIndex),
	)

	rt.broadcastInfo(room, player.Name+" joined the table.")
	rt.SyncRoom(room)
}

func (rt *Router) handleStartHand(client *connection.Client, room *domain.Room) {
	room.Lock()
	if room.HostID != client.ID {
		room.Unlock()
		rt.sendInfo(client.ID, "Only the host can start a hand.")
		return
	}
	err := room.StartHand()
	room.Unlock()

	switch {
	case errors.Is(err, domain.ErrNeedTwoPlayers):
		rt.broadcastInfo(room, "Need 2 players to start.")
		rt.SyncRoom(room)
	case errors.Is(err, domain.ErrHandActive):
		// Hand already running; nothing to do.
	default:
		rt.SyncRoom(room)
	}
}

func (rt *Router) handleNewGame(client *connection.Client, room *domain.Room, payload json.RawMessage) {
	var cmd commands.NewGame
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return
	}

	room.Lock()
	if room.HostID != client.ID {
		room.Unlock()
		rt.sendInfo(client.ID, "Only the host can reset the game.")
		return
	}
	room.NewGame(cmd.CarryOver)
	room.Unlock()

	rt.SyncRoom(room)
}

func (rt *Router) handlePlayerAction(client *connection.Client, room *domain.Room, payload json.RawMessage) {
	var cmd commands.PlayerAction
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return
	}

	room.Lock()
	player := room.FindPlayer(client.ID)
	if player == nil {
		room.Unlock()
		return
	}
	if player.NeedsProfile {
		room.Unlock()
		rt.sendInfo(client.ID, "Set your profile before playing.")
		return
	}
	err := room.HandleAction(client.ID, domain.Action(cmd.Action), cmd.RaiseTo)
	room.Unlock()

	switch {
	case errors.Is(err, domain.ErrNotYourTurn):
		rt.sendInfo(client.ID, "It is not your turn.")
		return
	case errors.Is(err, domain.ErrNoActiveHand):
		rt.sendInfo(client.ID, "No hand in progress.")
		return
	case errors.Is(err, domain.ErrCannotCheck):
		rt.sendInfo(client.ID, "You cannot check facing a bet.")
		return
	case errors.Is(err, domain.ErrUnknownAction):
		return
	}

	rt.SyncRoom(room)
}

func (rt *Router) handleSetSpeed(client *connection.Client, room *domain.Room, payload json.RawMessage) {
	var cmd commands.SetSpeed
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return
	}

	room.Lock()
	if room.HostID != client.ID {
		room.Unlock()
		rt.sendInfo(client.ID, "Only the host can set speed.")
		return
	}
	room.SetSpeed(cmd.SpeedMs)
	room.Unlock()

	rt.SyncRoom(room)
}

func (rt *Router) handleSetMaxPlayers(client *connection.Client, room *domain.Room, payload json.RawMessage) {
	var cmd commands.SetMaxPlayers
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return
	}

	room.Lock()
	if room.HostID != client.ID {
		room.Unlock()
		rt.sendInfo(client.ID, "Only the host can change seats.")
		return
	}
	room.SetMaxPlayers(cmd.MaxPlayers)
	room.Unlock()

	rt.SyncRoom(room)
}

func (rt *Router) handleSetInitialStack(client *connection.Client, room *domain.Room, payload json.RawMessage) {
	var cmd commands.SetInitialStack
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return
	}

	room.Lock()
	if room.HostID != client.ID {
		room.Unlock()
		rt.sendInfo(client.ID, "Only the host can set buy-in.")
		return
	}
	room.SetInitialStack(cmd.InitialStack)
	room.Unlock()

	rt.SyncRoom(room)
}

func (rt *Router) handleSetName(client *connection.Client, room *domain.Room, payload json.RawMessage) {
	var cmd commands.SetName
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return
	}

	room.Lock()
	name, changed := room.RenamePlayer(client.ID, strings.TrimSpace(cmd.Name))
	room.Unlock()
	if !changed {
		return
	}

	rt.broadcastInfo(room, name+" updated their name.")
	rt.SyncRoom(room)
}

func (rt *Router) handleSetProfile(client *connection.Client, room *domain.Room, payload json.RawMessage) {
	var cmd commands.SetProfile
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return
	}

	room.Lock()
	room.UpdateProfile(client.ID, strings.TrimSpace(cmd.Name), strings.TrimSpace(cmd.Avatar))
	room.Unlock()

	rt.SyncRoom(room)
}

// HandleDisconnect removes a departing client's player from its room,
// repairing host role and turn order, and drops the room once empty
func (rt *Router) HandleDisconnect(client *connection.Client) {
	room, ok := rt.store.Get(client.RoomID)
	if !ok {
		return
	}

	room.Lock()
	leaving := room.RemovePlayer(client.ID)
	empty := room.Empty()
	room.Unlock()

	if leaving == nil {
		return
	}

	rt.log.Info("player left",
		zap.String("room", room.ID),
		zap.String("player", client.ID),
	)

	if empty {
		rt.store.Remove(room.ID)
		rt.log.Info("room discarded", zap.String("room", room.ID))
		return
	}

	rt.broadcastInfo(room, leaving.Name+" left the table.")
	rt.SyncRoom(room)
}

// SyncRoom recomputes and pushes a per-recipient snapshot to every
// connection bound to the room. Registered as the room's observer so
// timer-driven advances reach clients without a triggering message.
func (rt *Router) SyncRoom(room *domain.Room) {
	for _, clientID := range rt.connMgr.ClientsInRoom(room.ID) {
		state := room.StateFor(clientID)
		data, err := json.Marshal(serverMessage{Type: "STATE", Payload: state})
		if err != nil {
			rt.log.Error("failed to marshal state", zap.Error(err))
			return
		}
		rt.connMgr.Deliver(clientID, data)
	}
}

func (rt *Router) sendInfo(clientID, text string) {
	data, err := json.Marshal(serverMessage{Type: "INFO", Payload: Info{Text: text}})
	if err != nil {
		return
	}
	rt.connMgr.Deliver(clientID, data)
}

func (rt *Router) broadcastInfo(room *domain.Room, text string) {
	for _, clientID := range rt.connMgr.ClientsInRoom(room.ID) {
		rt.sendInfo(clientID, text)
	}
}
