package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quizhub/quizhub/quiz/catalog"
	"github.com/quizhub/quizhub/quiz/room"
)

// Client is a thin MCP client that proxies to the REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API.
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools.
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"QuizHub Session Broker",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`QuizHub Session Broker - MCP Interface

This is a thin client that proxies all requests to the REST API server.

The broker hosts real-time quiz rooms: one host connection drives a
room's game, players join over websocket, answer questions, and receive
broadcast updates. These tools cover the administrative surface.

AVAILABLE TOOLS:
- list_rooms: List rooms still accepting players
- get_room: Inspect one room (phase, host, players)
- create_room: Create a room (requires the admin key)
- list_quizzes: List the published quiz catalog
- publish_quiz: Publish a quiz definition to the catalog
- health: Check broker health`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools.
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List rooms that are still accepting players",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRooms)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_room",
		Description: "Get details of a specific room",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID to retrieve",
				},
			},
			Required: []string{"room_id"},
		},
	}, c.handleGetRoom)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_room",
		Description: "Create a new quiz room (requires the admin key). The room has no host connection, so it outlives websocket disconnects and persists until the broker restarts",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"admin_key": map[string]interface{}{
					"type":        "string",
					"description": "Admin key gating room creation",
				},
				"capacity": map[string]interface{}{
					"type":        "integer",
					"description": "Player ceiling (optional, defaults from configuration)",
				},
				"password": map[string]interface{}{
					"type":        "string",
					"description": "Join password (optional, omit for an open room)",
				},
			},
			Required: []string{"admin_key"},
		},
	}, c.handleCreateRoom)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_quizzes",
		Description: "List the published quiz catalog",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListQuizzes)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "publish_quiz",
		Description: "Publish a quiz definition to the catalog",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Quiz title (optional, defaults to Untitled Quiz)",
				},
				"author": map[string]interface{}{
					"type":        "string",
					"description": "Quiz author (optional, defaults to Anonymous)",
				},
				"data": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "object"},
					"description": "Question list; the question count is derived from its length",
				},
			},
			Required: []string{"data"},
		},
	}, c.handlePublishQuiz)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "health",
		Description: "Check broker health",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleHealth)
}

// GetMCPServer returns the underlying MCP server for serving.
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// apiCall performs one JSON request against the REST API.
func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int            `json:"count"`
		Rooms []room.Summary `json:"rooms"`
	}

	err := c.apiCall("GET", "/api/rooms", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Rooms (%d):\n\n", response.Count)
	for _, r := range response.Rooms {
		locked := "open"
		if r.Locked {
			locked = "locked"
		}
		fmt.Fprintf(&b, "- %s (%d/%d players, %s)\n", r.ID, r.PlayerCount, r.Capacity, locked)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)

	var r room.Room
	err := c.apiCall("GET", fmt.Sprintf("/api/rooms/%s", roomID), nil, &r)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRoom(&r)), nil
}

func (c *Client) handleCreateRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	adminKey, _ := args["admin_key"].(string)
	capacity, _ := args["capacity"].(float64)
	password, _ := args["password"].(string)

	body := map[string]interface{}{
		"adminKey": adminKey,
		"capacity": int(capacity),
		"password": password,
	}

	var r room.Room
	err := c.apiCall("POST", "/api/rooms", body, &r)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created room: %s\nCapacity: %d\n", r.ID, r.Capacity)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListQuizzes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int            `json:"count"`
		Quizzes []catalog.Quiz `json:"quizzes"`
	}

	err := c.apiCall("GET", "/api/quizzes", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Published Quizzes (%d):\n\n", response.Count)
	for _, q := range response.Quizzes {
		fmt.Fprintf(&b, "- %s: %q by %s (%d questions, %s)\n",
			q.ID, q.Title, q.Author, q.QuestionCount, q.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handlePublishQuiz(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	title, _ := args["title"].(string)
	author, _ := args["author"].(string)
	data, _ := args["data"].([]interface{})

	body := map[string]interface{}{
		"title":  title,
		"author": author,
		"data":   data,
	}

	var q catalog.Quiz
	err := c.apiCall("POST", "/api/quizzes", body, &q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Published quiz: %s\nTitle: %s\nQuestions: %d\n", q.ID, q.Title, q.QuestionCount)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response map[string]interface{}

	err := c.apiCall("GET", "/api/health", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Broker status: %v", response["status"])), nil
}

// formatRoom renders a room for tool output.
func formatRoom(r *room.Room) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Room %s\n", r.ID)
	fmt.Fprintf(&b, "Phase: %s\n", r.Phase)
	fmt.Fprintf(&b, "Host: %s\n", r.HostID)
	fmt.Fprintf(&b, "Players (%d/%d):\n", len(r.Players), r.Capacity)
	for _, p := range r.Players {
		fmt.Fprintf(&b, "  - %s (%s) score=%d\n", p.Nickname, p.ConnID, p.Score)
	}
	return b.String()
}
