package route

import (
	"time"

	"github.com/paulmach/orb"
)

// ElevationSample is one entry of a route's elevation profile. Elevation is
// nil where the elevation service had no reading for the sampled point.
type ElevationSample struct {
	DistanceKm float64  `json:"distance_km"`
	Elevation  *float64 `json:"elevation"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
}

// Route is the currently displayed generated or snapped route.
type Route struct {
	Geometry      orb.LineString
	DistanceKm    float64
	ElevationGain float64
	ElevationLoss float64
	Profile       []ElevationSample
}

// ExploredRoute is a pre-mapped named trail returned by a proximity query.
type ExploredRoute struct {
	OSMID      int64
	Name       string
	Ref        string
	RouteType  string
	Network    string
	DistanceKm float64
	Geometry   orb.Geometry
}

// ExploredRouteSet holds the candidates of the last explorer query. It is
// replaced wholesale per query, never merged.
type ExploredRouteSet struct {
	Routes   []ExploredRoute
	Center   orb.Point
	RadiusKm float64
}

func (s ExploredRouteSet) Find(osmID int64) (ExploredRoute, bool) {
	for _, r := range s.Routes {
		if r.OSMID == osmID {
			return r, true
		}
	}
	return ExploredRoute{}, false
}

type SavedRouteSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	DistanceKm    float64   `json:"distance_km"`
	ElevationGain *float64  `json:"elevation_gain"`
	ElevationLoss *float64  `json:"elevation_loss"`
	CreatedAt     time.Time `json:"created_at"`
}

type SavedRouteDetail struct {
	SavedRouteSummary
	GeoJSON          Route             `json:"geojson"`
	ElevationProfile []ElevationSample `json:"elevation_profile"`
}
