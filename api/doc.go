// Package api provides HTTP REST API handlers for the QuizHub session
// broker.
//
// The api package implements:
//   - Room listing, inspection, and admin-gated creation
//   - Quiz catalog listing and publishing
//   - WebSocket upgrade handling
//   - Health checking
//   - Static file serving for the bundled clients
//
// Endpoints:
//
// Rooms:
//   - GET /api/rooms - List rooms still accepting players
//   - GET /api/rooms/{id} - Get one room
//   - POST /api/rooms - Create a room (requires the admin key)
//
// Catalog:
//   - GET /api/quizzes - Full quiz catalog
//   - POST /api/quizzes - Publish a quiz
//
// Other:
//   - GET /api/health - Health check
//   - GET /ws - WebSocket upgrade
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Room creation is sent as:
//
//	{
//	  "adminKey": "1453",
//	  "capacity": 20,        // optional, defaults from configuration
//	  "password": "secret"   // optional, omit for an open room
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// A wrong admin key maps to 403, a missing room to 404, and malformed
// payloads to 400.
package api
