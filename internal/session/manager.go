package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rsempe/tracemyride/internal/gateway"
	"github.com/rsempe/tracemyride/internal/route"
	"github.com/rsempe/tracemyride/internal/stream"
)

const savedRoutesKey = "planner:saved-routes"

// Manager owns the live sessions, one per connected map tab, and the
// best-effort cache of the saved-route list.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	gw              gateway.Service
	hub             *stream.Hub
	redis           *redis.Client
	clickToleranceM float64

	cacheMu      sync.Mutex
	cachedRoutes []route.SavedRouteSummary
	cacheWarm    bool
}

func NewManager(gw gateway.Service, hub *stream.Hub, rdb *redis.Client, clickToleranceM float64) *Manager {
	return &Manager{
		sessions:        map[string]*Session{},
		gw:              gw,
		hub:             hub,
		redis:           rdb,
		clickToleranceM: clickToleranceM,
	}
}

// Create starts a fresh idle session, optionally seeded with the one-shot
// geolocation result.
func (m *Manager) Create(seed *LatLng) *Session {
	s := New(uuid.NewString(), m.gw, m.hub, m.clickToleranceM)
	if seed != nil && validCoordinate(seed.Lat, seed.Lng) {
		s.SetUserLocation(seed.Lat, seed.Lng)
	}

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SavedRoutes lists the persisted routes. Fetch failures fall back to the
// last successfully fetched list, never to an error: the saved list is a
// best-effort surface.
func (m *Manager) SavedRoutes(ctx context.Context) []route.SavedRouteSummary {
	summaries, err := m.gw.ListRoutes(ctx)
	if err != nil {
		log.Printf("saved routes fetch failed: %v", err)
		return m.cachedSavedRoutes(ctx)
	}
	if summaries == nil {
		summaries = []route.SavedRouteSummary{}
	}

	m.cacheMu.Lock()
	m.cachedRoutes = summaries
	m.cacheWarm = true
	m.cacheMu.Unlock()

	if m.redis != nil {
		if payload, err := json.Marshal(summaries); err == nil {
			if err := m.redis.Set(ctx, savedRoutesKey, payload, 0).Err(); err != nil {
				log.Printf("saved routes cache write failed: %v", err)
			}
		}
	}
	return summaries
}

func (m *Manager) cachedSavedRoutes(ctx context.Context) []route.SavedRouteSummary {
	m.cacheMu.Lock()
	if m.cacheWarm {
		cached := m.cachedRoutes
		m.cacheMu.Unlock()
		return cached
	}
	m.cacheMu.Unlock()

	if m.redis != nil {
		if payload, err := m.redis.Get(ctx, savedRoutesKey).Bytes(); err == nil {
			var summaries []route.SavedRouteSummary
			if err := json.Unmarshal(payload, &summaries); err == nil {
				return summaries
			}
		}
	}
	return []route.SavedRouteSummary{}
}

func (m *Manager) SavedRoute(ctx context.Context, id string) (route.SavedRouteDetail, error) {
	return m.gw.GetRoute(ctx, id)
}

// DeleteSavedRoute removes a persisted route and drops the cached list so
// the next fetch cannot resurrect it.
func (m *Manager) DeleteSavedRoute(ctx context.Context, id string) error {
	if err := m.gw.DeleteRoute(ctx, id); err != nil {
		return err
	}

	m.cacheMu.Lock()
	m.cachedRoutes = nil
	m.cacheWarm = false
	m.cacheMu.Unlock()

	if m.redis != nil {
		if err := m.redis.Del(ctx, savedRoutesKey).Err(); err != nil {
			log.Printf("saved routes cache invalidation failed: %v", err)
		}
	}
	return nil
}
