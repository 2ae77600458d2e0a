package room

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/quizhub/quizhub/quiz/ident"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrWrongPassword = errors.New("wrong password")
)

// Registry is the single source of truth for room membership and phase.
// It is constructed once at process start and injected into the transports;
// there is no ambient global instance.
type Registry struct {
	rooms map[string]*Room
	mu    sync.RWMutex
}

// NewRegistry creates an empty room registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// Create installs a new room in the waiting phase with no players and
// returns a snapshot of it. The identifier is generated fresh and verified
// unique against the registry. Capacity values below 1 fall back to
// DefaultCapacity; an empty password means an open room. The caller must
// separately record the creating connection as host via SetHost.
func (reg *Registry) Create(capacity int, password string) *Room {
	if capacity < 1 {
		capacity = DefaultCapacity
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	id := ident.NewUnique(func(candidate string) bool {
		_, exists := reg.rooms[candidate]
		return exists
	})

	r := &Room{
		ID:        id,
		Players:   []Player{},
		Phase:     PhaseWaiting,
		Capacity:  capacity,
		Password:  password,
		CreatedAt: time.Now(),
	}
	reg.rooms[id] = r

	return r.clone()
}

// SetHost records the exclusive controlling connection of a room. No-op if
// the room does not exist.
func (reg *Registry) SetHost(roomID, connID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if r, ok := reg.rooms[roomID]; ok {
		r.HostID = connID
	}
}

// Get returns a snapshot of a room by identifier.
func (reg *Registry) Get(id string) (*Room, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	r, ok := reg.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r.clone(), nil
}

// ListActive returns summaries for rooms still in the waiting phase,
// ordered by creation time. Rooms that are playing or finished are never
// listed.
func (reg *Registry) ListActive() []Summary {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	type entry struct {
		summary   Summary
		createdAt time.Time
	}

	entries := make([]entry, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		if r.Phase != PhaseWaiting {
			continue
		}
		entries = append(entries, entry{
			summary: Summary{
				ID:          r.ID,
				PlayerCount: len(r.Players),
				Capacity:    r.Capacity,
				Locked:      r.Locked(),
			},
			createdAt: r.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].createdAt.Before(entries[j].createdAt)
	})

	summaries := make([]Summary, len(entries))
	for i, e := range entries {
		summaries[i] = e.summary
	}
	return summaries
}

// Join admits a player into a room. It fails with ErrRoomNotFound,
// ErrRoomFull (capacity reached, checked before insertion), or
// ErrWrongPassword (room has a password and the supplied one does not
// match; an open room accepts any or no password). On success the player
// is appended with a zero score and a snapshot of the room is returned.
func (reg *Registry) Join(id, connID, nickname, password string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	r, ok := reg.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if len(r.Players) >= r.Capacity {
		return nil, ErrRoomFull
	}
	if r.Password != "" && r.Password != password {
		return nil, ErrWrongPassword
	}

	r.Players = append(r.Players, Player{
		ConnID:   connID,
		Nickname: nickname,
	})

	return r.clone(), nil
}

// RemovePlayer deletes a player's membership record by connection
// identity. No-op if the room or player is absent.
func (reg *Registry) RemovePlayer(roomID, connID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	r, ok := reg.rooms[roomID]
	if !ok {
		return
	}

	for i, p := range r.Players {
		if p.ConnID == connID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return
		}
	}
}

// SetPhase overwrites a room's phase unconditionally. Keeping transitions
// forward-only is left to caller discipline. No-op if the room is absent.
func (reg *Registry) SetPhase(roomID string, phase Phase) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if r, ok := reg.rooms[roomID]; ok {
		r.Phase = phase
	}
}

// Destroy removes a room entirely. No-op if the room is absent.
func (reg *Registry) Destroy(roomID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	delete(reg.rooms, roomID)
}

// Count returns the number of rooms in the registry, in any phase.
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}
