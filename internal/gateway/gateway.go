package gateway

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/rsempe/tracemyride/internal/route"
)

// Service is the remote routing/elevation/storage backend. Route synthesis,
// road-network snapping and persistence all live behind this boundary; the
// session controller only drives it.
type Service interface {
	Generate(ctx context.Context, params GenerateParams) (route.Route, error)
	Snap(ctx context.Context, coordinates []orb.Point) (route.Route, error)
	Explore(ctx context.Context, params ExploreParams) (route.ExploredRouteSet, error)
	SaveRoute(ctx context.Context, name string, r route.Route) (route.SavedRouteSummary, error)
	ListRoutes(ctx context.Context) ([]route.SavedRouteSummary, error)
	GetRoute(ctx context.Context, id string) (route.SavedRouteDetail, error)
	DeleteRoute(ctx context.Context, id string) error
}

type GenerateParams struct {
	Lat             float64  `json:"lat"`
	Lng             float64  `json:"lng"`
	DistanceKm      float64  `json:"distance_km"`
	Loop            bool     `json:"loop"`
	ElevationTarget *float64 `json:"elevation_target,omitempty"`
	PreferTrails    bool     `json:"prefer_trails,omitempty"`
}

type ExploreParams struct {
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	RadiusKm   float64  `json:"radius_km"`
	RouteTypes []string `json:"route_types"`
}
