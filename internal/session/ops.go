package session

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/rsempe/tracemyride/internal/gateway"
	"github.com/rsempe/tracemyride/internal/layers"
	"github.com/rsempe/tracemyride/internal/route"
)

const (
	msgNoStartPoint   = "set a start point on the map first"
	msgPathTooShort   = "draw at least two points before snapping"
	msgBusyGenerating = "finish the current action before generating a route"
	msgBadDistance    = "distance must be between 0 and 100 km"
	msgBadRadius      = "radius must be between 1 and 20 km"
	msgNotExploring   = "enter explore mode first"
	msgNotDrawing     = "not in drawing mode"
	msgNoRoute        = "no route to clear"
	msgNoRouteToSave  = "no route to save"
	msgBadCoordinate  = "coordinate out of range"
	msgUnknownRoute   = "selected route is not in the current results"
)

// GenerateSettings are the user's generation controls.
type GenerateSettings struct {
	DistanceKm      float64  `json:"distance_km"`
	Loop            bool     `json:"loop"`
	ElevationTarget *float64 `json:"elevation_target,omitempty"`
	PreferTrails    bool     `json:"prefer_trails,omitempty"`
}

func validCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// SetUserLocation places the start point. Used both for the one-shot
// geolocation seed and for map clicks outside drawing/exploring.
func (s *Session) SetUserLocation(lat, lng float64) Snapshot {
	s.mu.Lock()
	if !validCoordinate(lat, lng) {
		snap := s.rejectLocked(msgBadCoordinate)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	pt := orb.Point{lng, lat}
	s.userLocation = &pt
	s.errMsg = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

// Click dispatches a pointer click by the current mode: drawing appends a
// waypoint, exploring hit-tests the candidate layer and nothing else, any
// other mode repositions the start point. A miss in exploring mode is
// consumed without falling through.
func (s *Session) Click(lat, lng, toleranceM float64) Snapshot {
	s.mu.Lock()
	if !validCoordinate(lat, lng) {
		snap := s.rejectLocked(msgBadCoordinate)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	if toleranceM <= 0 {
		toleranceM = s.clickToleranceM
	}
	pt := orb.Point{lng, lat}

	switch s.mode {
	case ModeDrawing:
		s.path.Append(pt)
	case ModeExploring:
		if osmID, ok := layers.NearestCandidate(s.explored, pt, toleranceM); ok {
			s.selectLocked(osmID)
		}
	case ModeGenerating:
		// input is advisory-disabled while generating; ignore strays
	default:
		s.userLocation = &pt
	}

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

// StartDrawing enters drawing mode from any other mode, clearing the current
// route and any previously drawn path. Already drawing is a no-op.
func (s *Session) StartDrawing() Snapshot {
	s.mu.Lock()
	if s.mode != ModeDrawing {
		s.mode = ModeDrawing
		s.route = nil
		s.path.Clear()
		s.errMsg = ""
		s.invalidatePendingLocked()
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

func (s *Session) UndoWaypoint() Snapshot {
	s.mu.Lock()
	if s.mode != ModeDrawing {
		snap := s.rejectLocked(msgNotDrawing)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	s.path.Undo()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

func (s *Session) CancelDrawing() Snapshot {
	s.mu.Lock()
	if s.mode != ModeDrawing {
		snap := s.rejectLocked(msgNotDrawing)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	s.mode = ModeIdle
	s.path.Clear()
	s.errMsg = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

// FinalizeDrawing snaps the drawn path to the road network. On gateway
// failure the session stays in drawing mode with the path intact so the user
// can retry or keep editing.
func (s *Session) FinalizeDrawing(ctx context.Context) Snapshot {
	s.mu.Lock()
	if s.mode != ModeDrawing {
		snap := s.rejectLocked(msgNotDrawing)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	if s.path.Len() < 2 {
		snap := s.rejectLocked(msgPathTooShort)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	coords := s.path.Coordinates()
	s.loading = true
	s.errMsg = ""
	s.snapToken++
	token := s.snapToken
	s.mu.Unlock()

	r, err := s.gw.Snap(ctx, coords)

	s.mu.Lock()
	if token != s.snapToken {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
	} else {
		s.route = &r
		s.path.Clear()
		s.mode = ModeViewing
		s.requestFitLocked(r.Geometry)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

// Generate asks the backend for a route matching the settings, starting at
// the user location. Failure drops the session back to idle. A newer generate
// supersedes one still in flight; the superseded completion is discarded.
func (s *Session) Generate(ctx context.Context, settings GenerateSettings) Snapshot {
	s.mu.Lock()
	if s.mode == ModeDrawing || s.mode == ModeExploring {
		snap := s.rejectLocked(msgBusyGenerating)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	if s.userLocation == nil {
		snap := s.rejectLocked(msgNoStartPoint)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	if settings.DistanceKm <= 0 || settings.DistanceKm > 100 {
		snap := s.rejectLocked(msgBadDistance)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	origin := *s.userLocation
	s.mode = ModeGenerating
	s.loading = true
	s.errMsg = ""
	s.genToken++
	token := s.genToken
	s.mu.Unlock()
	s.publish()

	r, err := s.gw.Generate(ctx, gateway.GenerateParams{
		Lat:             origin.Lat(),
		Lng:             origin.Lon(),
		DistanceKm:      settings.DistanceKm,
		Loop:            settings.Loop,
		ElevationTarget: settings.ElevationTarget,
		PreferTrails:    settings.PreferTrails,
	})

	s.mu.Lock()
	if token != s.genToken {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.loading = false
	if err != nil {
		s.mode = ModeIdle
		s.errMsg = err.Error()
	} else {
		s.route = &r
		s.mode = ModeViewing
		s.requestFitLocked(r.Geometry)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

// StartExploring enters explorer mode. Requires a start point to center the
// proximity query on.
func (s *Session) StartExploring() Snapshot {
	s.mu.Lock()
	if s.userLocation == nil {
		snap := s.rejectLocked(msgNoStartPoint)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	s.mode = ModeExploring
	s.errMsg = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

// ExploreQuery runs a proximity query with the enabled route types. The
// result set replaces the previous one wholesale and always clears the
// selection; failure keeps the mode and the previous results.
func (s *Session) ExploreQuery(ctx context.Context, radiusKm float64) Snapshot {
	s.mu.Lock()
	if s.mode != ModeExploring {
		snap := s.rejectLocked(msgNotExploring)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	if s.userLocation == nil {
		snap := s.rejectLocked(msgNoStartPoint)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	if radiusKm == 0 {
		radiusKm = 5
	}
	if radiusKm < 1 || radiusKm > 20 {
		snap := s.rejectLocked(msgBadRadius)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	origin := *s.userLocation
	routeTypes := s.filter.Enabled()
	s.loading = true
	s.errMsg = ""
	s.exploreToken++
	token := s.exploreToken
	s.mu.Unlock()
	s.publish()

	set, err := s.gw.Explore(ctx, gateway.ExploreParams{
		Lat:        origin.Lat(),
		Lng:        origin.Lon(),
		RadiusKm:   radiusKm,
		RouteTypes: routeTypes,
	})

	s.mu.Lock()
	if token != s.exploreToken {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap
	}
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
	} else {
		s.explored = set
		s.selected = nil
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

// ExitExploring leaves explorer mode, dropping the result set and selection.
func (s *Session) ExitExploring() Snapshot {
	s.mu.Lock()
	if s.mode != ModeExploring {
		snap := s.rejectLocked(msgNotExploring)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	s.mode = ModeIdle
	s.explored = route.ExploredRouteSet{}
	s.selected = nil
	s.errMsg = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

// SelectExplored selects a candidate by id, e.g. from a results list.
func (s *Session) SelectExplored(osmID int64) Snapshot {
	s.mu.Lock()
	if _, ok := s.explored.Find(osmID); !ok {
		snap := s.rejectLocked(msgUnknownRoute)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	s.selectLocked(osmID)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

func (s *Session) selectLocked(osmID int64) {
	r, ok := s.explored.Find(osmID)
	if !ok {
		return
	}
	id := osmID
	s.selected = &id
	s.errMsg = ""
	s.requestFitLocked(r.Geometry)
}

func (s *Session) ClearSelection() Snapshot {
	s.mu.Lock()
	s.selected = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

// ToggleRouteType flips an explorer filter. The set can never become empty.
func (s *Session) ToggleRouteType(routeType string) Snapshot {
	s.mu.Lock()
	s.filter.Toggle(routeType)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

// ClearRoute drops the displayed route and returns to idle.
func (s *Session) ClearRoute() Snapshot {
	s.mu.Lock()
	if s.mode != ModeViewing {
		snap := s.rejectLocked(msgNoRoute)
		s.mu.Unlock()
		s.publish()
		return snap
	}
	s.mode = ModeIdle
	s.route = nil
	s.errMsg = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return snap
}

// SaveRoute persists the displayed route under a name via the gateway.
func (s *Session) SaveRoute(ctx context.Context, name string) (route.SavedRouteSummary, Snapshot) {
	s.mu.Lock()
	if s.route == nil {
		snap := s.rejectLocked(msgNoRouteToSave)
		s.mu.Unlock()
		s.publish()
		return route.SavedRouteSummary{}, snap
	}
	current := *s.route
	s.mu.Unlock()

	if name == "" {
		name = "Untitled Route"
	}
	summary, err := s.gw.SaveRoute(ctx, name, current)

	s.mu.Lock()
	if err != nil {
		s.errMsg = err.Error()
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.publish()
	return summary, snap
}

// invalidatePendingLocked retires every in-flight gateway call. Their
// completions will see a newer token and leave the session untouched.
func (s *Session) invalidatePendingLocked() {
	s.genToken++
	s.snapToken++
	s.exploreToken++
	s.loading = false
}

func (s *Session) rejectLocked(msg string) Snapshot {
	s.errMsg = msg
	return s.snapshotLocked()
}
