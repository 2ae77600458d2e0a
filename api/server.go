package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/quizhub/quizhub/quiz/service"
	"github.com/quizhub/quizhub/transport/websocket"
)

// Server represents the REST API server.
type Server struct {
	broker   service.Broker
	hub      *websocket.Hub
	router   *mux.Router
	validate *validator.Validate
	logger   *slog.Logger
}

// NewServer creates a new API server over the broker and websocket hub.
func NewServer(broker service.Broker, hub *websocket.Hub, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		broker:   broker,
		hub:      hub,
		router:   mux.NewRouter(),
		validate: validator.New(),
		logger:   logger,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Rooms
	api.HandleFunc("/rooms", s.handleListRooms).Methods("GET")
	api.HandleFunc("/rooms", s.handleCreateRoom).Methods("POST")
	api.HandleFunc("/rooms/{id}", s.handleGetRoom).Methods("GET")

	// Quiz catalog
	api.HandleFunc("/quizzes", s.handleListQuizzes).Methods("GET")
	api.HandleFunc("/quizzes", s.handlePublishQuiz).Methods("POST")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files for the bundled clients
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// Room handlers

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	summaries := s.broker.ListRooms(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(summaries),
		"rooms": summaries,
	})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	rm, err := s.broker.GetRoom(r.Context(), vars["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, rm)
}

// handleCreateRoom creates a room gated by the admin key. The optional
// hostId field binds an existing websocket connection as host; a room
// created without one has no host connection, is never torn down by the
// disconnect reconciler, and persists until the process exits.
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminKey string `json:"adminKey" validate:"required"`
		Capacity int    `json:"capacity" validate:"gte=0"`
		Password string `json:"password"`
		HostID   string `json:"hostId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rm, err := s.broker.CreateRoom(r.Context(), req.AdminKey, req.Capacity, req.Password, req.HostID)
	if err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			respondError(w, http.StatusForbidden, "access denied")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, rm)
}

// Catalog handlers

func (s *Server) handleListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes := s.broker.ListQuizzes(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(quizzes),
		"quizzes": quizzes,
	})
}

func (s *Server) handlePublishQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title  string            `json:"title"`
		Author string            `json:"author"`
		Data   []json.RawMessage `json:"data" validate:"required,min=1"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "quiz data is required")
		return
	}

	q, err := s.broker.PublishQuiz(r.Context(), req.Title, req.Author, req.Data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, q)
}

// WebSocket handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "websocket transport disabled", http.StatusServiceUnavailable)
		return
	}
	s.hub.ServeWS(w, r)
}

// Health check

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"active_rooms": len(s.broker.ListRooms(r.Context())),
	})
}
