package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/quizhub/quizhub/quiz/catalog"
	"github.com/quizhub/quizhub/quiz/room"
)

// ErrAccessDenied is returned when the room creation capability check
// rejects the supplied key.
var ErrAccessDenied = errors.New("access denied")

// Broker defines all broker operations exposed to the transports. It sits
// between the websocket/REST/MCP surfaces and the room registry and quiz
// catalog, so every transport goes through the same admission and
// lifecycle rules.
type Broker interface {
	// Room lifecycle
	CreateRoom(ctx context.Context, adminKey string, capacity int, password, hostConnID string) (*room.Room, error)
	JoinRoom(ctx context.Context, roomID, connID, nickname, password string) (*room.Room, error)
	LeaveRoom(ctx context.Context, roomID, connID string)
	CloseRoom(ctx context.Context, roomID string) (*room.Room, error)

	// Game phase
	StartGame(ctx context.Context, roomID string) (*room.Room, error)
	EndGame(ctx context.Context, roomID string) (*room.Room, error)

	// Queries
	GetRoom(ctx context.Context, roomID string) (*room.Room, error)
	ListRooms(ctx context.Context) []room.Summary

	// Catalog
	PublishQuiz(ctx context.Context, title, author string, data []json.RawMessage) (*catalog.Quiz, error)
	ListQuizzes(ctx context.Context) []*catalog.Quiz
}

// Authorizer decides whether a connection presenting the given key may
// create rooms. It exists so the static shared-secret check can be swapped
// for real authentication without touching the event router.
type Authorizer interface {
	CanCreateRoom(key string) bool
}
