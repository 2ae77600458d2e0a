package websocket

import "encoding/json"

// Inbound event names.
const (
	EventListQuizzes  = "list_quizzes"
	EventPublishQuiz  = "publish_quiz"
	EventCreateRoom   = "create_room"
	EventGameUpdate   = "game_update"
	EventGameStart    = "game_start"
	EventGameEnd      = "game_end"
	EventGetRooms     = "get_rooms"
	EventJoinRoom     = "join_room"
	EventPlayerAnswer = "player_answer"
)

// Outbound event names.
const (
	EventQuizzesList    = "public_quizzes_list"
	EventPublishSuccess = "publish_success"
	EventRoomCreated    = "room_created"
	EventErrorMsg       = "error_msg"
	EventRoomsList      = "rooms_list"
	EventPlayerJoined   = "player_joined"
	EventJoinedSuccess  = "joined_success"
	EventPlayerLeft     = "player_left"
)

// Envelope is the wire format for every message in both directions: a
// named event with a structured payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Inbound payloads. Missing or malformed fields are defended against by
// defaulting in the handlers rather than rejected.

type createRoomPayload struct {
	AdminKey string `json:"adminKey"`
	Capacity int    `json:"capacity,omitempty"`
	Password string `json:"password,omitempty"`
}

type joinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Nickname string `json:"nickname"`
	Password string `json:"password,omitempty"`
}

type publishQuizPayload struct {
	Title  string            `json:"title,omitempty"`
	Author string            `json:"author,omitempty"`
	Data   []json.RawMessage `json:"data"`
}

type playerAnswerPayload struct {
	Answer json.RawMessage `json:"answer"`
}

// Outbound payloads.

type errorPayload struct {
	Message string `json:"message"`
}

type roomCreatedPayload struct {
	RoomID string `json:"roomId"`
}

type publishSuccessPayload struct {
	ID string `json:"id"`
}

type playerJoinedPayload struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type joinedSuccessPayload struct {
	RoomID string `json:"roomId"`
}

type playerAnswerRelayPayload struct {
	PlayerID string          `json:"playerId"`
	Answer   json.RawMessage `json:"answer"`
}

type playerLeftPayload struct {
	ID string `json:"id"`
}

type gameEndPayload struct {
	Reason string `json:"reason,omitempty"`
}
