// Package notifications holds the in-process push token registry and the
// best-effort fanout service that delivers notifications through the
// push gateway.
package notifications

import (
	"sync"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// Registration ties a device push token to the courier who registered it.
type Registration struct {
	Token      string
	CourierID  kernel.UUID
	BusinessID kernel.UUID
	Name       string
	Role       courier.Role
}

// Registry is a concurrency-safe in-memory store of device push tokens.
// Tokens live for the process lifetime; devices re-register on app start,
// so losing them on restart only delays notifications until the next
// launch.
type Registry struct {
	mu      sync.Mutex
	byToken map[string]Registration
}

// NewRegistry creates an empty token registry.
func NewRegistry() *Registry {
	return &Registry{
		byToken: make(map[string]Registration),
	}
}

// Register stores or refreshes a device token. A token re-registered by a
// different courier moves to the new owner, covering shared devices.
func (r *Registry) Register(reg Registration) {
	if reg.Token == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byToken[reg.Token] = reg
}

// Remove drops a device token, used on logout.
func (r *Registry) Remove(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byToken, token)
}

// BusinessTokens returns every token registered by the business's staff.
func (r *Registry) BusinessTokens(businessID kernel.UUID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tokens []string
	for token, reg := range r.byToken {
		if reg.BusinessID.IsEqual(businessID) {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// RoleTokens returns the business's tokens held by any of the given roles.
func (r *Registry) RoleTokens(businessID kernel.UUID, roles ...courier.Role) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tokens []string
	for token, reg := range r.byToken {
		if !reg.BusinessID.IsEqual(businessID) {
			continue
		}
		for _, role := range roles {
			if reg.Role == role {
				tokens = append(tokens, token)
				break
			}
		}
	}
	return tokens
}
