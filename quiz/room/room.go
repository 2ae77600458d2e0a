package room

import "time"

// Phase is the lifecycle stage of a room. Transitions only move forward
// (waiting -> playing -> finished); the registry does not police this,
// callers are expected to keep it one-directional.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// DefaultCapacity is the player ceiling applied when a room is created
// without an explicit capacity.
const DefaultCapacity = 20

// Player is one joined player's membership record within a room.
type Player struct {
	ConnID   string `json:"id"`
	Nickname string `json:"name"`
	Score    int    `json:"score"`
}

// Room is one quiz game instance: exactly one host connection for its
// entire lifetime and a bounded, ordered set of players.
type Room struct {
	ID        string    `json:"id"`
	HostID    string    `json:"host_id"`
	Players   []Player  `json:"players"`
	Phase     Phase     `json:"phase"`
	Capacity  int       `json:"capacity"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Locked reports whether the room requires a password to join.
func (r *Room) Locked() bool {
	return r.Password != ""
}

// HasPlayer reports whether the given connection is a player of the room.
func (r *Room) HasPlayer(connID string) bool {
	for _, p := range r.Players {
		if p.ConnID == connID {
			return true
		}
	}
	return false
}

// clone returns a copy of the room with its own player slice, safe to hand
// out across goroutines.
func (r *Room) clone() *Room {
	c := *r
	c.Players = make([]Player, len(r.Players))
	copy(c.Players, r.Players)
	return &c
}

// Summary is the public view of a waiting room exposed by ListActive.
// It deliberately hides the password, player identities, and quiz content.
type Summary struct {
	ID          string `json:"id"`
	PlayerCount int    `json:"count"`
	Capacity    int    `json:"capacity"`
	Locked      bool   `json:"locked"`
}
