// Package websocket provides the WebSocket transport for the QuizHub
// session broker.
//
// The websocket package implements:
//   - Real-time bidirectional communication
//   - Role-aware connection session context (host or player)
//   - Event routing to broker operations
//   - Scoped broadcasting (one connection, a room's players, or everyone)
//   - Disconnect reconciliation against the room registry
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub owns all
// connections. Each connection runs dedicated read and write goroutines,
// but every parsed event is handed to the hub's single Run loop, so
// handlers execute one at a time and registry mutations within a handler
// are atomic from the clients' point of view.
//
// Message Protocol:
//
// Messages in both directions are JSON envelopes:
//   - Incoming: {"event": "join_room", "data": {"roomId": "A1B2C3", "nickname": "alice"}}
//   - Outgoing: {"event": "rooms_list", "data": [{"id": "A1B2C3", "count": 1, ...}]}
//
// Errors are reported only to the originating connection as
// {"event": "error_msg", "data": {"message": "..."}}.
//
// Session Context:
//
// A connection is assigned a UUID identity on upgrade and may associate
// with at most one room, either as its host (create_room) or as a player
// (join_room). The association lives only as long as the connection.
//
// Connection Lifecycle:
//
// 1. Client connects to /ws and is registered with the hub
// 2. Client sends named events, receives scoped broadcasts
// 3. Disconnection triggers reconciliation: a host loss destroys the
//    room and notifies its players, a player loss removes the membership
//    record and notifies the host
//
// Usage:
//
//	hub := websocket.NewHub(broker, logger)
//	go hub.Run()
//
//	mux.HandleFunc("/ws", hub.ServeWS)
package websocket
