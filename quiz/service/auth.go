package service

import "crypto/subtle"

// StaticKeyAuthorizer grants the room creation capability to anyone who
// presents the configured shared secret. It is deliberately not a security
// boundary; it is the smallest Authorizer that satisfies the broker.
type StaticKeyAuthorizer struct {
	key string
}

// NewStaticKeyAuthorizer creates an authorizer around a fixed shared secret.
func NewStaticKeyAuthorizer(key string) *StaticKeyAuthorizer {
	return &StaticKeyAuthorizer{key: key}
}

// CanCreateRoom reports whether the supplied key matches the configured
// secret. An empty configured secret rejects everything.
func (a *StaticKeyAuthorizer) CanCreateRoom(key string) bool {
	if a.key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a.key), []byte(key)) == 1
}
