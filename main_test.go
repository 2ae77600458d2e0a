package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quizhub/quizhub/quiz/config"
	"github.com/quizhub/quizhub/transport/mcp"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}
}

func TestBuildBroker(t *testing.T) {
	cfg := &config.Config{
		Host:            "localhost",
		Port:            8080,
		AdminKey:        "1453",
		DefaultCapacity: 20,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	broker := buildBroker(cfg, logger)
	if broker == nil {
		t.Fatal("Expected broker to be initialized")
	}

	rooms := broker.ListRooms(t.Context())
	if len(rooms) != 0 {
		t.Errorf("Expected no rooms on a fresh broker, got %d", len(rooms))
	}
}

func TestMCPHandler(t *testing.T) {
	client := mcp.NewClient("http://localhost:8080")
	handler := mcpHandler(client)

	t.Run("rejects non-POST", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
		rec := httptest.NewRecorder()

		handler(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405 for GET, got %d", rec.Code)
		}
	})

	t.Run("answers initialize", func(t *testing.T) {
		body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0.0.1"}}}`
		req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response["jsonrpc"] != "2.0" {
			t.Errorf("Expected jsonrpc 2.0 response, got: %v", response)
		}
	})
}
