// Package room provides the room registry for the QuizHub session broker.
//
// The room package implements:
//   - Thread-safe room storage and retrieval
//   - Unique room identifier generation
//   - Join admission control (capacity and password checks)
//   - Room phase tracking (waiting, playing, finished)
//   - Player membership management
//
// Core Types:
//
// Registry is the single source of truth for room state. Room represents
// one quiz game instance with exactly one host connection and a bounded,
// ordered list of players. Summary is the public, password-free view of a
// waiting room used in room listings.
//
// Room Identifiers:
//
// Rooms use 6-character uppercase alphanumeric IDs for easy sharing. The
// registry verifies candidate identifiers against existing rooms and
// retries on collision, so installed identifiers are unique.
//
// Concurrency:
//
// The registry is thread-safe and supports concurrent operations from the
// websocket event loop and the REST API. All accessors return snapshots
// with independent player slices, so callers never observe a room mid
// mutation.
//
// Usage:
//
//	reg := room.NewRegistry()
//
//	r := reg.Create(20, "")
//	reg.SetHost(r.ID, hostConnID)
//
//	joined, err := reg.Join(r.ID, connID, "alice", "")
//	if err != nil {
//		// ErrRoomNotFound, ErrRoomFull, or ErrWrongPassword
//	}
//
// Lifecycle:
//
// A room exists exactly as long as its host connection: the disconnect
// reconciler in the websocket transport destroys the room the moment the
// host drops. Player departures only remove the membership record.
package room
