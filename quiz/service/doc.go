// Package service provides the business logic layer for the QuizHub
// session broker.
//
// The service package implements:
//   - Room lifecycle orchestration (create, join, leave, close)
//   - Game phase transitions (start, end)
//   - Quiz catalog publication and listing
//   - Pluggable room creation authorization
//
// Core Interfaces:
//
// Broker is the main service interface providing high-level broker
// operations. Authorizer is the capability check gating room creation;
// StaticKeyAuthorizer implements it around the configured shared secret.
//
// Architecture:
//
// The service layer sits between the transport layer (WebSocket/REST/MCP)
// and the room registry and quiz catalog, so every transport goes through
// the same admission rules. State lives in the injected registry and
// catalog; the broker itself is stateless and safe for concurrent use.
//
// Usage:
//
//	registry := room.NewRegistry()
//	cat := catalog.NewCatalog()
//	auth := service.NewStaticKeyAuthorizer(cfg.AdminKey)
//	broker := service.NewBroker(registry, cat, auth, cfg.DefaultCapacity, logger)
//
//	r, err := broker.CreateRoom(ctx, key, 0, "", hostConnID)
//	if errors.Is(err, service.ErrAccessDenied) {
//		// wrong admin key, nothing was created
//	}
package service
