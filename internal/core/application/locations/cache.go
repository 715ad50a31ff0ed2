// Package locations keeps the last known position of every active courier
// in process memory so supervisors get live map data without touching the
// database on every read.
//
// The cache is authoritative for reads only; position reports are
// persisted first and then mirrored here. With a single service instance
// the mirror cannot drift from the store by more than one in-flight
// write. Running multiple instances would need a shared cache instead.
package locations

import (
	"context"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// StaleAfter is how long a position report stays fresh. A snapshot taken
// at exactly this age is still fresh; one moment later it is stale.
const StaleAfter = 30 * time.Minute

// CourierLocation is one courier's position as seen by a snapshot.
type CourierLocation struct {
	CourierID kernel.UUID
	Name      string
	Role      courier.Role
	Position  kernel.GeoPoint
	UpdatedAt time.Time
	IsStale   bool
}

type entry struct {
	businessID kernel.UUID
	name       string
	role       courier.Role
	position   kernel.GeoPoint
	updatedAt  *time.Time
}

// Cache is a concurrency-safe map of courier id to last known position.
type Cache struct {
	mu      sync.RWMutex
	entries map[kernel.UUID]entry
}

// NewCache creates an empty location cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[kernel.UUID]entry),
	}
}

// Put mirrors the courier's current state into the cache. Callers persist
// the aggregate first; the cache never sees state the store has not.
func (c *Cache) Put(aggregate *courier.Courier) {
	if aggregate == nil || aggregate.Validate() != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[aggregate.ID()] = entry{
		businessID: aggregate.BusinessID(),
		name:       aggregate.Name(),
		role:       aggregate.Role(),
		position:   aggregate.Location(),
		updatedAt:  aggregate.LastLocationUpdate(),
	}
}

// Remove drops a courier from the cache, used when a courier is
// deactivated.
func (c *Cache) Remove(id kernel.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)
}

// Snapshot returns the business's courier positions with staleness
// computed against now. Couriers that never reported a position are
// omitted: there is nothing to place on the map.
func (c *Cache) Snapshot(businessID kernel.UUID, now time.Time) []CourierLocation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]CourierLocation, 0, len(c.entries))
	for id, e := range c.entries {
		if !e.businessID.IsEqual(businessID) {
			continue
		}
		if e.updatedAt == nil || e.position.IsZero() {
			continue
		}

		result = append(result, CourierLocation{
			CourierID: id,
			Name:      e.name,
			Role:      e.role,
			Position:  e.position,
			UpdatedAt: *e.updatedAt,
			IsStale:   now.Sub(*e.updatedAt) > StaleAfter,
		})
	}

	return result
}

// Hydrate replaces the cache contents with every active courier from the
// store. Called at startup and periodically to pick up courier metadata
// changes and deactivations.
func (c *Cache) Hydrate(ctx context.Context, couriers ports.CourierRepository) error {
	active, err := couriers.GetAllActive(ctx)
	if err != nil {
		return err
	}

	fresh := make(map[kernel.UUID]entry, len(active))
	for _, aggregate := range active {
		fresh[aggregate.ID()] = entry{
			businessID: aggregate.BusinessID(),
			name:       aggregate.Name(),
			role:       aggregate.Role(),
			position:   aggregate.Location(),
			updatedAt:  aggregate.LastLocationUpdate(),
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = fresh

	return nil
}
