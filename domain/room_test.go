package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlayer_AllocatesLowestFreeSeat(t *testing.T) {
	room := NewRoom("r1")

	a, err := room.AddPlayer("a", "Alice", false)
	require.NoError(t, err)
	b, err := room.AddPlayer("b", "Bob", false)
	require.NoError(t, err)

	assert.Equal(t, 0, a.SeatIndex)
	assert.Equal(t, 1, b.SeatIndex)

	// Seat 0 frees up and is reused before seat 2
	room.RemovePlayer("a")
	c, err := room.AddPlayer("c", "Cleo", false)
	require.NoError(t, err)
	assert.Equal(t, 0, c.SeatIndex)
}

func TestAddPlayer_Defaults(t *testing.T) {
	room := NewRoom("r1")

	p, err := room.AddPlayer("a", "", false)
	require.NoError(t, err)

	assert.Equal(t, "Player", p.Name)
	assert.Equal(t, room.InitialStack, p.Stack)
	assert.True(t, p.NeedsProfile)
	assert.NotEmpty(t, p.Avatar)
}

func TestAddPlayer_TrimsLongNames(t *testing.T) {
	room := NewRoom("r1")

	p, err := room.AddPlayer("a", "An Extremely Long Player Name", false)
	require.NoError(t, err)

	assert.Len(t, []rune(p.Name), 16)
}

func TestAddPlayer_TableFull(t *testing.T) {
	room := NewRoom("r1")
	room.SetMaxPlayers(2)

	_, err := room.AddPlayer("a", "Alice", false)
	require.NoError(t, err)
	_, err = room.AddPlayer("b", "Bob", false)
	require.NoError(t, err)

	_, err = room.AddPlayer("c", "Cleo", false)
	assert.ErrorIs(t, err, ErrTableFull)
}

func TestAddPlayer_HostRole(t *testing.T) {
	room := NewRoom("r1")

	_, err := room.AddPlayer("a", "Alice", false)
	require.NoError(t, err)
	assert.Empty(t, room.HostID, "No host without the key")

	_, err = room.AddPlayer("b", "Bob", true)
	require.NoError(t, err)
	assert.Equal(t, "b", room.HostID)

	// The role is not reassigned while held
	_, err = room.AddPlayer("c", "Cleo", true)
	require.NoError(t, err)
	assert.Equal(t, "b", room.HostID)
}

func TestRemovePlayer_VacatesHostRole(t *testing.T) {
	room := NewRoom("r1")
	room.AddPlayer("a", "Alice", true)
	room.AddPlayer("b", "Bob", false)

	removed := room.RemovePlayer("a")

	require.NotNil(t, removed)
	assert.Empty(t, room.HostID)

	// A later joiner with the key can claim the vacancy
	_, err := room.AddPlayer("c", "Cleo", true)
	require.NoError(t, err)
	assert.Equal(t, "c", room.HostID)
}

func TestRemovePlayer_AbortsHandBelowTwoPlayers(t *testing.T) {
	room := newTestRoom(1000, 1000)
	require.NoError(t, room.StartHand())

	room.RemovePlayer("a")

	assert.False(t, room.HandActive)
	assert.Equal(t, StageIdle, room.Stage)
}

func TestRemovePlayer_AdvancesTurnPastTheDeparted(t *testing.T) {
	room := newTestRoom(1000, 1000, 1000)
	require.NoError(t, room.StartHand())

	// Seat 1 is the current actor and leaves mid-hand
	current := room.Players[room.CurrentPlayerIndex]
	require.Equal(t, "b", current.ID)

	room.RemovePlayer("b")

	require.True(t, room.HandActive)
	acting := room.Players[room.CurrentPlayerIndex]
	assert.NotEqual(t, "b", acting.ID)
	assert.True(t, acting.canAct())
}

func TestRemovePlayer_UnknownIDIsNil(t *testing.T) {
	room := NewRoom("r1")
	assert.Nil(t, room.RemovePlayer("ghost"))
}

func TestSettingClamps(t *testing.T) {
	room := NewRoom("r1")

	room.SetSpeed(50)
	assert.Equal(t, MinSpeedMs, room.SpeedMs)
	room.SetSpeed(99999)
	assert.Equal(t, MaxSpeedMs, room.SpeedMs)
	room.SetSpeed(700)
	assert.Equal(t, 700, room.SpeedMs)

	room.SetMaxPlayers(1)
	assert.Equal(t, 2, room.MaxPlayers)
	room.SetMaxPlayers(50)
	assert.Equal(t, MaxSeats, room.MaxPlayers)

	room.SetInitialStack(1)
	assert.Equal(t, MinInitialStack, room.InitialStack)
	room.SetInitialStack(999999)
	assert.Equal(t, MaxInitialStack, room.InitialStack)
}

func TestAdvanceTimer_FiresAndNotifiesObservers(t *testing.T) {
	room := newTestRoom(1000, 1000)
	notified := make(chan struct{}, 1)
	room.AddObserver(func(*Room) {
		select {
		case notified <- struct{}{}:
		default:
		}
	})
	room.SetSpeed(MinSpeedMs)

	require.NoError(t, room.StartHand())
	require.NoError(t, room.HandleAction("a", ActionRaise, 1000))
	require.NoError(t, room.HandleAction("b", ActionCall, 0))

	select {
	case <-notified:
	case <-time.After(2 * time.Second):
		t.Fatal("advance timer never fired")
	}

	room.Lock()
	stage := room.Stage
	room.Unlock()
	assert.NotEqual(t, StagePreflop, stage, "The timer advanced the street without input")
}

func TestRenamePlayer(t *testing.T) {
	room := NewRoom("r1")
	room.AddPlayer("a", "Alice", false)

	name, changed := room.RenamePlayer("a", "Alicia")
	assert.True(t, changed)
	assert.Equal(t, "Alicia", name)

	_, changed = room.RenamePlayer("a", "")
	assert.False(t, changed, "Blank names are ignored")

	_, changed = room.RenamePlayer("ghost", "Nobody")
	assert.False(t, changed)
}

func TestUpdateProfile_ClearsPendingRequirement(t *testing.T) {
	room := NewRoom("r1")
	p, _ := room.AddPlayer("a", "Alice", false)
	require.True(t, p.NeedsProfile)

	ok := room.UpdateProfile("a", "Ace", "linear-gradient(135deg, #000, #fff)")

	assert.True(t, ok)
	assert.Equal(t, "Ace", p.Name)
	assert.Equal(t, "linear-gradient(135deg, #000, #fff)", p.Avatar)
	assert.False(t, p.NeedsProfile)
}

func TestUpdateProfile_EmptyFieldsKeepCurrentValues(t *testing.T) {
	room := NewRoom("r1")
	p, _ := room.AddPlayer("a", "Alice", false)
	avatar := p.Avatar

	room.UpdateProfile("a", "", "")

	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, avatar, p.Avatar)
	assert.False(t, p.NeedsProfile, "Even an empty submission clears the gate")
}
