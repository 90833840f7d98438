package domain

import "sync"

// Store owns every live room, keyed by room id. Rooms come into being
// on first reference and are dropped once their last participant
// leaves; nothing survives the process.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewStore creates an empty room store
func NewStore() *Store {
	return &Store{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the room with the given id, creating it when
// first referenced. The second result reports whether it was created.
func (s *Store) GetOrCreate(id string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if room, ok := s.rooms[id]; ok {
		return room, false
	}
	room := NewRoom(id)
	s.rooms[id] = room
	return room, true
}

// Get returns the room with the given id, if it exists
func (s *Store) Get(id string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	return room, ok
}

// Remove drops a room from the store
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
}

// Count reports the number of live rooms
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
