package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/quizhub/quizhub/quiz/room"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"status": "ok",
		"rooms":  float64(2),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api/health", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["status"] != expectedResponse["status"] {
		t.Errorf("Expected status %v, got %v", expectedResponse["status"], response["status"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api/rooms", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/rooms", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_JSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"error": "access denied"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("POST", "/api/rooms", map[string]string{"adminKey": "wrong"}, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 403 response")
	}

	if err.Error() != "access denied" {
		t.Errorf("Expected API error body to surface, got: %v", err)
	}
}

func TestClient_handleCreateRoom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/rooms" {
			t.Errorf("Expected POST /api/rooms, got %s %s", r.Method, r.URL.Path)
		}

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["adminKey"] != "1453" {
			t.Errorf("Expected adminKey to be forwarded, got %v", body["adminKey"])
		}

		resp := room.Room{
			ID:        "AB12CD",
			Phase:     room.PhaseWaiting,
			Capacity:  8,
			CreatedAt: time.Now(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "create_room",
			Arguments: map[string]interface{}{
				"admin_key": "1453",
				"capacity":  float64(8),
			},
		},
	}

	result, err := client.handleCreateRoom(ctx, request)
	if err != nil {
		t.Fatalf("handleCreateRoom failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(text.Text, "AB12CD") {
		t.Errorf("Expected room ID in result, got: %s", text.Text)
	}
}

func TestClient_handleListRooms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"count": 1,
			"rooms": []room.Summary{
				{ID: "XY99ZZ", PlayerCount: 3, Capacity: 20, Locked: true},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "list_rooms",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleListRooms(ctx, request)
	if err != nil {
		t.Fatalf("handleListRooms failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	for _, want := range []string{"XY99ZZ", "3/20", "locked"} {
		if !strings.Contains(text.Text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text.Text)
		}
	}
}

func TestFormatRoom(t *testing.T) {
	r := &room.Room{
		ID:       "QQ77AA",
		HostID:   "host-conn",
		Phase:    room.PhasePlaying,
		Capacity: 10,
		Players: []room.Player{
			{ConnID: "p1", Nickname: "alice", Score: 12},
			{ConnID: "p2", Nickname: "bob", Score: 7},
		},
	}

	result := formatRoom(r)

	expectedFields := []string{
		"Room QQ77AA",
		"Phase: playing",
		"Host: host-conn",
		"Players (2/10)",
		"alice",
		"score=7",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}
