package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/quizhub/quizhub/quiz/room"
	"github.com/quizhub/quizhub/quiz/service"
)

// dispatch routes one inbound envelope to its handler. It runs on the
// hub's event loop, so handlers may freely read and mutate client session
// context and rely on registry state not changing underneath them.
func (h *Hub) dispatch(c *Client, env Envelope) {
	switch env.Event {
	case EventListQuizzes:
		h.handleListQuizzes(c)
	case EventPublishQuiz:
		h.handlePublishQuiz(c, env.Data)
	case EventCreateRoom:
		h.handleCreateRoom(c, env.Data)
	case EventGameUpdate:
		h.handleGameUpdate(c, env.Data)
	case EventGameStart:
		h.handleGameStart(c)
	case EventGameEnd:
		h.handleGameEnd(c)
	case EventGetRooms:
		h.handleGetRooms(c)
	case EventJoinRoom:
		h.handleJoinRoom(c, env.Data)
	case EventPlayerAnswer:
		h.handlePlayerAnswer(c, env.Data)
	default:
		h.sendError(c, "unknown event")
	}
}

func (h *Hub) handleListQuizzes(c *Client) {
	h.send(c, EventQuizzesList, h.broker.ListQuizzes(context.Background()))
}

func (h *Hub) handlePublishQuiz(c *Client, data json.RawMessage) {
	var payload publishQuizPayload
	if len(data) > 0 {
		json.Unmarshal(data, &payload)
	}

	ctx := context.Background()
	q, err := h.broker.PublishQuiz(ctx, payload.Title, payload.Author, payload.Data)
	if err != nil {
		h.sendError(c, "failed to publish quiz")
		return
	}

	h.broadcastAll(EventQuizzesList, h.broker.ListQuizzes(ctx))
	h.send(c, EventPublishSuccess, publishSuccessPayload{ID: q.ID})
}

func (h *Hub) handleCreateRoom(c *Client, data json.RawMessage) {
	if c.roomID != "" {
		h.sendError(c, "already in a room")
		return
	}

	var payload createRoomPayload
	if len(data) > 0 {
		json.Unmarshal(data, &payload)
	}

	ctx := context.Background()
	r, err := h.broker.CreateRoom(ctx, payload.AdminKey, payload.Capacity, payload.Password, c.ID)
	if err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	c.roomID = r.ID
	c.isHost = true

	h.send(c, EventRoomCreated, roomCreatedPayload{RoomID: r.ID})
	h.broadcastAll(EventRoomsList, h.broker.ListRooms(ctx))
}

func (h *Hub) handleGameUpdate(c *Client, data json.RawMessage) {
	r, ok := h.hostedRoom(c)
	if !ok {
		return
	}

	// Relay the host's payload untouched to every other member of the
	// room; it is never echoed back to the host.
	var payload any
	if len(data) > 0 {
		payload = data
	}
	frame, okMarshal := h.marshalEnvelope(EventGameUpdate, payload)
	if !okMarshal {
		return
	}
	for _, p := range r.Players {
		if client, exists := h.clients[p.ConnID]; exists {
			h.deliver(client, frame)
		}
	}
}

func (h *Hub) handleGameStart(c *Client) {
	if _, ok := h.hostedRoom(c); !ok {
		return
	}

	ctx := context.Background()
	r, err := h.broker.StartGame(ctx, c.roomID)
	if err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	h.sendToPlayers(r, EventGameStart, nil)
	// The started room drops out of the waiting-only active list.
	h.broadcastAll(EventRoomsList, h.broker.ListRooms(ctx))
}

func (h *Hub) handleGameEnd(c *Client) {
	if _, ok := h.hostedRoom(c); !ok {
		return
	}

	ctx := context.Background()
	if _, err := h.broker.EndGame(ctx, c.roomID); err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	h.broadcastAll(EventRoomsList, h.broker.ListRooms(ctx))
}

func (h *Hub) handleGetRooms(c *Client) {
	h.send(c, EventRoomsList, h.broker.ListRooms(context.Background()))
}

func (h *Hub) handleJoinRoom(c *Client, data json.RawMessage) {
	if c.roomID != "" {
		h.sendError(c, "already in a room")
		return
	}

	var payload joinRoomPayload
	if len(data) > 0 {
		json.Unmarshal(data, &payload)
	}

	ctx := context.Background()
	r, err := h.broker.JoinRoom(ctx, payload.RoomID, c.ID, payload.Nickname, payload.Password)
	if err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	c.roomID = r.ID
	c.isHost = false
	c.nickname = payload.Nickname
	c.score = 0

	h.sendToConn(r.HostID, EventPlayerJoined, playerJoinedPayload{Name: payload.Nickname, ID: c.ID})
	h.send(c, EventJoinedSuccess, joinedSuccessPayload{RoomID: r.ID})
}

func (h *Hub) handlePlayerAnswer(c *Client, data json.RawMessage) {
	if c.roomID == "" || c.isHost {
		h.sendError(c, "you are not a player in a room")
		return
	}

	r, err := h.broker.GetRoom(context.Background(), c.roomID)
	if err != nil {
		h.sendError(c, errorMessage(err))
		return
	}

	var payload playerAnswerPayload
	if len(data) > 0 {
		json.Unmarshal(data, &payload)
	}
	if len(payload.Answer) == 0 {
		payload.Answer = json.RawMessage("null")
	}

	h.sendToConn(r.HostID, EventPlayerAnswer, playerAnswerRelayPayload{
		PlayerID: c.ID,
		Answer:   payload.Answer,
	})
}

// hostedRoom returns the room the connection hosts, reporting an error to
// the connection when it does not host one.
func (h *Hub) hostedRoom(c *Client) (*room.Room, bool) {
	if c.roomID == "" || !c.isHost {
		h.sendError(c, "you are not hosting a room")
		return nil, false
	}

	r, err := h.broker.GetRoom(context.Background(), c.roomID)
	if err != nil {
		h.sendError(c, errorMessage(err))
		return nil, false
	}
	return r, true
}

// errorMessage maps broker and registry errors to the human-readable
// notices surfaced to the originating connection.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		return "access denied"
	case errors.Is(err, room.ErrRoomNotFound):
		return "room not found"
	case errors.Is(err, room.ErrRoomFull):
		return "room is full"
	case errors.Is(err, room.ErrWrongPassword):
		return "wrong password"
	default:
		return err.Error()
	}
}
