package session

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/rsempe/tracemyride/internal/gateway"
	"github.com/rsempe/tracemyride/internal/layers"
	"github.com/rsempe/tracemyride/internal/route"
	"github.com/rsempe/tracemyride/internal/stream"
	"github.com/rsempe/tracemyride/internal/waypoint"

	"github.com/rsempe/tracemyride/internal/explorer"
)

// Session is the interactive state for one map tab: the current mode, the
// drawn path, the displayed route, and the explorer state. All mutation goes
// through its mutex; gateway calls run with the lock released and are
// reconciled by per-operation tokens so only the latest issued call may
// apply its result.
type Session struct {
	mu sync.Mutex

	id           string
	mode         Mode
	loading      bool
	errMsg       string
	userLocation *orb.Point

	route    *route.Route
	path     *waypoint.Path
	filter   *explorer.Filter
	explored route.ExploredRouteSet
	selected *int64

	fit    *layers.Fit
	fitSeq uint64

	// generation tokens, one per operation kind
	genToken     uint64
	snapToken    uint64
	exploreToken uint64

	gw              gateway.Service
	hub             *stream.Hub
	clickToleranceM float64
}

func New(id string, gw gateway.Service, hub *stream.Hub, clickToleranceM float64) *Session {
	if clickToleranceM <= 0 {
		clickToleranceM = 50
	}
	return &Session{
		id:              id,
		mode:            ModeIdle,
		path:            waypoint.NewPath(),
		filter:          explorer.NewFilter(),
		gw:              gw,
		hub:             hub,
		clickToleranceM: clickToleranceM,
	}
}

func (s *Session) ID() string {
	return s.id
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RouteSummary struct {
	DistanceKm    float64 `json:"distance_km"`
	ElevationGain float64 `json:"elevation_gain"`
	ElevationLoss float64 `json:"elevation_loss"`
	PointCount    int     `json:"point_count"`
}

// Snapshot is the session state the UI renders its controls from.
type Snapshot struct {
	ID            string                  `json:"id"`
	Mode          Mode                    `json:"mode"`
	Loading       bool                    `json:"loading"`
	Error         string                  `json:"error,omitempty"`
	UserLocation  *LatLng                 `json:"user_location,omitempty"`
	Route         *RouteSummary           `json:"route,omitempty"`
	Profile       []route.ElevationSample `json:"elevation_profile,omitempty"`
	PathLength    int                     `json:"path_length"`
	RouteTypes    []string                `json:"route_types"`
	ExploredCount int                     `json:"explored_count"`
	SelectedOSMID *int64                  `json:"selected_osm_id,omitempty"`
}

// LayerState carries the four renderable layers plus the latest viewport-fit
// request. Each layer is rebuilt from scratch on every change; the client
// applies a fit when fit_seq increases.
type LayerState struct {
	Route      *geojson.FeatureCollection `json:"route"`
	Waypoints  *geojson.FeatureCollection `json:"waypoints"`
	Candidates *geojson.FeatureCollection `json:"candidates"`
	Selection  *geojson.FeatureCollection `json:"selection"`
	Fit        *layers.Fit                `json:"fit,omitempty"`
	FitSeq     uint64                     `json:"fit_seq"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:            s.id,
		Mode:          s.mode,
		Loading:       s.loading,
		Error:         s.errMsg,
		PathLength:    s.path.Len(),
		RouteTypes:    s.filter.Enabled(),
		ExploredCount: len(s.explored.Routes),
	}
	if s.userLocation != nil {
		snap.UserLocation = &LatLng{Lat: s.userLocation.Lat(), Lng: s.userLocation.Lon()}
	}
	if s.route != nil {
		snap.Route = &RouteSummary{
			DistanceKm:    s.route.DistanceKm,
			ElevationGain: s.route.ElevationGain,
			ElevationLoss: s.route.ElevationLoss,
			PointCount:    len(s.route.Geometry),
		}
		snap.Profile = s.route.Profile
	}
	if s.selected != nil {
		id := *s.selected
		snap.SelectedOSMID = &id
	}
	return snap
}

func (s *Session) Layers() LayerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layersLocked()
}

func (s *Session) layersLocked() LayerState {
	return LayerState{
		Route:      layers.RouteLayer(s.route),
		Waypoints:  layers.WaypointLayer(s.path.Coordinates()),
		Candidates: layers.CandidateLayer(s.explored),
		Selection:  layers.SelectionLayer(s.explored, s.selected),
		Fit:        s.fit,
		FitSeq:     s.fitSeq,
	}
}

// requestFitLocked records a viewport-fit request for the given geometry,
// honoring the more-than-one-coordinate rule.
func (s *Session) requestFitLocked(g orb.Geometry) {
	fit, ok := layers.FitTo(g)
	if !ok {
		return
	}
	s.fit = &fit
	s.fitSeq++
}

// publish pushes the current snapshot and layers to the session's stream
// subscribers.
func (s *Session) publish() {
	if s.hub == nil {
		return
	}

	s.mu.Lock()
	state := struct {
		Session Snapshot   `json:"session"`
		Layers  LayerState `json:"layers"`
	}{s.snapshotLocked(), s.layersLocked()}
	id := s.id
	s.mu.Unlock()

	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("session %s: marshal state: %v", id, err)
		return
	}
	s.hub.Broadcast(id, payload)
}
