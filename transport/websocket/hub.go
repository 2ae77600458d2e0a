package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"github.com/quizhub/quizhub/quiz/room"
	"github.com/quizhub/quizhub/quiz/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// inboundMessage pairs a parsed envelope with the connection it arrived on.
type inboundMessage struct {
	client *Client
	env    Envelope
}

// Hub maintains the set of active connections and runs the event loop. All
// inbound events, registrations, and disconnects are processed one at a
// time on the Run goroutine, so handlers never race each other and every
// registry mutation within one event is atomic from the clients'
// perspective.
type Hub struct {
	broker service.Broker
	logger *slog.Logger

	// Registered connections by connection ID.
	clients map[string]*Client

	// Register requests from new connections.
	register chan *Client

	// Unregister requests from closing connections.
	unregister chan *Client

	// Inbound envelopes from connections.
	inbound chan inboundMessage
}

// NewHub creates a hub over the given broker.
func NewHub(broker service.Broker, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		broker:     broker,
		logger:     logger,
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundMessage),
	}
}

// Run starts the hub's event loop. It must be called exactly once, in its
// own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.inbound:
			h.dispatch(msg.client, msg.env)
		}
	}
}

// ServeWS upgrades an HTTP request to a WebSocket connection and hands it
// to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// registerClient adds a connection to the hub.
func (h *Hub) registerClient(client *Client) {
	h.clients[client.ID] = client
	h.logger.Info("client connected", "conn_id", client.ID, "total", len(h.clients))
}

// unregisterClient removes a connection and reconciles registry state with
// its loss. A host loss tears the room down and notifies its members; a
// player loss removes the membership record and notifies the host; a
// connection with no room association needs no reconciliation.
func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	delete(h.clients, client.ID)
	close(client.send)
	h.logger.Info("client disconnected", "conn_id", client.ID, "total", len(h.clients))

	if client.roomID == "" {
		return
	}

	ctx := context.Background()

	if client.isHost {
		r, err := h.broker.CloseRoom(ctx, client.roomID)
		if err != nil {
			return
		}
		h.sendToPlayers(r, EventGameEnd, gameEndPayload{Reason: "host_disconnected"})
		h.broadcastAll(EventRoomsList, h.broker.ListRooms(ctx))
		return
	}

	h.broker.LeaveRoom(ctx, client.roomID, client.ID)
	if r, err := h.broker.GetRoom(ctx, client.roomID); err == nil {
		h.sendToConn(r.HostID, EventPlayerLeft, playerLeftPayload{ID: client.ID})
	}
}

// marshalEnvelope encodes an outbound event. Marshal failures are logged
// and produce no frame; they never take a connection down.
func (h *Hub) marshalEnvelope(event string, v any) ([]byte, bool) {
	var data json.RawMessage
	if v != nil {
		encoded, err := json.Marshal(v)
		if err != nil {
			h.logger.Error("failed to marshal outbound payload", "event", event, "error", err)
			return nil, false
		}
		data = encoded
	}

	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Error("failed to marshal envelope", "event", event, "error", err)
		return nil, false
	}
	return frame, true
}

// deliver queues a frame on one connection without blocking. A connection
// whose queue is full is considered dead and unregistered. Delivery is
// identity-checked first: unregistering closes the send channel, and a
// handler may still hold the stale *Client for a later emission within
// the same event, so writing without the check could panic the event loop.
func (h *Hub) deliver(client *Client, frame []byte) {
	if current, ok := h.clients[client.ID]; !ok || current != client {
		return
	}
	select {
	case client.send <- frame:
	default:
		h.unregisterClient(client)
	}
}

// send emits an event to a single connection.
func (h *Hub) send(client *Client, event string, v any) {
	if frame, ok := h.marshalEnvelope(event, v); ok {
		h.deliver(client, frame)
	}
}

// sendToConn emits an event to the connection with the given identity, if
// it is still registered.
func (h *Hub) sendToConn(connID, event string, v any) {
	if client, ok := h.clients[connID]; ok {
		h.send(client, event, v)
	}
}

// sendError reports a failure to the originating connection only. Errors
// never propagate to other connections.
func (h *Hub) sendError(client *Client, message string) {
	h.send(client, EventErrorMsg, errorPayload{Message: message})
}

// broadcastAll emits an event to every registered connection. Membership
// is enumerated at emission time and delivery is fire-and-forget.
func (h *Hub) broadcastAll(event string, v any) {
	frame, ok := h.marshalEnvelope(event, v)
	if !ok {
		return
	}
	for _, client := range h.clients {
		h.deliver(client, frame)
	}
}

// sendToPlayers emits an event to every player of a room, never to its
// host.
func (h *Hub) sendToPlayers(r *room.Room, event string, v any) {
	frame, ok := h.marshalEnvelope(event, v)
	if !ok {
		return
	}

	playerIDs := lo.Map(r.Players, func(p room.Player, _ int) string { return p.ConnID })
	for _, id := range playerIDs {
		if client, ok := h.clients[id]; ok {
			h.deliver(client, frame)
		}
	}
}

// ClientCount reports the number of registered connections. Safe only on
// the hub's own goroutine; used by handlers and tests.
func (h *Hub) ClientCount() int {
	return len(h.clients)
}
