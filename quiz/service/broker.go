package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/quizhub/quizhub/quiz/catalog"
	"github.com/quizhub/quizhub/quiz/room"
)

// brokerImpl implements the Broker interface.
type brokerImpl struct {
	rooms           *room.Registry
	quizzes         *catalog.Catalog
	auth            Authorizer
	defaultCapacity int
	logger          *slog.Logger
}

// NewBroker creates a broker over the given registry and catalog. The
// authorizer gates room creation; capacity values below 1 on CreateRoom
// fall back to defaultCapacity.
func NewBroker(rooms *room.Registry, quizzes *catalog.Catalog, auth Authorizer, defaultCapacity int, logger *slog.Logger) Broker {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultCapacity < 1 {
		defaultCapacity = room.DefaultCapacity
	}
	return &brokerImpl{
		rooms:           rooms,
		quizzes:         quizzes,
		auth:            auth,
		defaultCapacity: defaultCapacity,
		logger:          logger,
	}
}

// CreateRoom creates a room and records the creating connection as its
// host. Fails with ErrAccessDenied when the authorizer rejects the key;
// in that case no room is installed.
func (b *brokerImpl) CreateRoom(ctx context.Context, adminKey string, capacity int, password, hostConnID string) (*room.Room, error) {
	if !b.auth.CanCreateRoom(adminKey) {
		b.logger.Warn("room creation denied", "conn_id", hostConnID)
		return nil, ErrAccessDenied
	}

	if capacity < 1 {
		capacity = b.defaultCapacity
	}

	r := b.rooms.Create(capacity, password)
	b.rooms.SetHost(r.ID, hostConnID)
	r.HostID = hostConnID

	b.logger.Info("room created", "room_id", r.ID, "host_id", hostConnID, "capacity", capacity, "locked", r.Locked())
	return r, nil
}

// JoinRoom admits a player into a room, surfacing the registry's
// admission errors unchanged.
func (b *brokerImpl) JoinRoom(ctx context.Context, roomID, connID, nickname, password string) (*room.Room, error) {
	r, err := b.rooms.Join(roomID, connID, nickname, password)
	if err != nil {
		return nil, fmt.Errorf("failed to join room %s: %w", roomID, err)
	}

	b.logger.Info("player joined", "room_id", roomID, "conn_id", connID, "nickname", nickname, "players", len(r.Players))
	return r, nil
}

// LeaveRoom removes a player's membership record. Missing room or player
// is a silent no-op.
func (b *brokerImpl) LeaveRoom(ctx context.Context, roomID, connID string) {
	b.rooms.RemovePlayer(roomID, connID)
	b.logger.Info("player left", "room_id", roomID, "conn_id", connID)
}

// CloseRoom destroys a room and returns its final snapshot so the caller
// can notify the former members.
func (b *brokerImpl) CloseRoom(ctx context.Context, roomID string) (*room.Room, error) {
	r, err := b.rooms.Get(roomID)
	if err != nil {
		return nil, err
	}

	b.rooms.Destroy(roomID)
	b.logger.Info("room closed", "room_id", roomID, "players", len(r.Players))
	return r, nil
}

// StartGame moves a room into the playing phase and returns the updated
// snapshot. A started room no longer appears in active listings.
func (b *brokerImpl) StartGame(ctx context.Context, roomID string) (*room.Room, error) {
	if _, err := b.rooms.Get(roomID); err != nil {
		return nil, err
	}

	b.rooms.SetPhase(roomID, room.PhasePlaying)
	b.logger.Info("game started", "room_id", roomID)
	return b.rooms.Get(roomID)
}

// EndGame moves a room into the finished phase and returns the updated
// snapshot. The room itself stays alive until its host disconnects.
func (b *brokerImpl) EndGame(ctx context.Context, roomID string) (*room.Room, error) {
	if _, err := b.rooms.Get(roomID); err != nil {
		return nil, err
	}

	b.rooms.SetPhase(roomID, room.PhaseFinished)
	b.logger.Info("game ended", "room_id", roomID)
	return b.rooms.Get(roomID)
}

// GetRoom returns a snapshot of a room by identifier.
func (b *brokerImpl) GetRoom(ctx context.Context, roomID string) (*room.Room, error) {
	return b.rooms.Get(roomID)
}

// ListRooms returns summaries of rooms still accepting players.
func (b *brokerImpl) ListRooms(ctx context.Context) []room.Summary {
	return b.rooms.ListActive()
}

// PublishQuiz appends a quiz to the catalog. Missing metadata is
// defaulted by the catalog; the question count is always derived.
func (b *brokerImpl) PublishQuiz(ctx context.Context, title, author string, data []json.RawMessage) (*catalog.Quiz, error) {
	q := b.quizzes.Publish(title, author, data)
	b.logger.Info("quiz published", "quiz_id", q.ID, "title", q.Title, "questions", q.QuestionCount)
	return q, nil
}

// ListQuizzes returns the full catalog in publication order.
func (b *brokerImpl) ListQuizzes(ctx context.Context) []*catalog.Quiz {
	return b.quizzes.List()
}
