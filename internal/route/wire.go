package route

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Wire shapes match the routing backend: a route travels as a GeoJSON
// Feature<LineString> with distance/elevation properties plus a sibling
// elevation_profile array.

var ErrNotLineString = errors.New("route geometry is not a LineString")

type routeWire struct {
	Type             string            `json:"type"`
	Geometry         *geojson.Geometry `json:"geometry"`
	Properties       routeProperties   `json:"properties"`
	ElevationProfile []ElevationSample `json:"elevation_profile,omitempty"`
}

type routeProperties struct {
	DistanceKm    float64 `json:"distance_km"`
	ElevationGain float64 `json:"elevation_gain"`
	ElevationLoss float64 `json:"elevation_loss"`
}

func (r Route) MarshalJSON() ([]byte, error) {
	return json.Marshal(routeWire{
		Type:     "Feature",
		Geometry: geojson.NewGeometry(r.Geometry),
		Properties: routeProperties{
			DistanceKm:    r.DistanceKm,
			ElevationGain: r.ElevationGain,
			ElevationLoss: r.ElevationLoss,
		},
		ElevationProfile: r.Profile,
	})
}

func (r *Route) UnmarshalJSON(data []byte) error {
	var wire routeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Geometry == nil {
		return errors.New("route feature has no geometry")
	}
	line, ok := wire.Geometry.Geometry().(orb.LineString)
	if !ok {
		return ErrNotLineString
	}
	r.Geometry = line
	r.DistanceKm = wire.Properties.DistanceKm
	r.ElevationGain = wire.Properties.ElevationGain
	r.ElevationLoss = wire.Properties.ElevationLoss
	r.Profile = wire.ElevationProfile
	return nil
}

type exploredWire struct {
	OSMID     int64            `json:"osm_id"`
	Name      *string          `json:"name"`
	Ref       *string          `json:"ref"`
	RouteType string           `json:"route_type"`
	Network   *string          `json:"network"`
	Distance  *float64         `json:"distance"`
	GeoJSON   *geojson.Feature `json:"geojson"`
}

func (e ExploredRoute) MarshalJSON() ([]byte, error) {
	f := geojson.NewFeature(e.Geometry)
	f.Properties["osm_id"] = e.OSMID
	f.Properties["name"] = e.Name
	f.Properties["route_type"] = e.RouteType

	wire := exploredWire{
		OSMID:     e.OSMID,
		RouteType: e.RouteType,
		GeoJSON:   f,
	}
	if e.Name != "" {
		wire.Name = &e.Name
	}
	if e.Ref != "" {
		wire.Ref = &e.Ref
	}
	if e.Network != "" {
		wire.Network = &e.Network
	}
	if e.DistanceKm != 0 {
		wire.Distance = &e.DistanceKm
	}
	return json.Marshal(wire)
}

func (e *ExploredRoute) UnmarshalJSON(data []byte) error {
	var wire exploredWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.GeoJSON == nil || wire.GeoJSON.Geometry == nil {
		return fmt.Errorf("explored route %d has no geometry", wire.OSMID)
	}
	switch wire.GeoJSON.Geometry.(type) {
	case orb.LineString, orb.MultiLineString:
	default:
		return fmt.Errorf("explored route %d has unsupported geometry %T", wire.OSMID, wire.GeoJSON.Geometry)
	}

	e.OSMID = wire.OSMID
	e.RouteType = wire.RouteType
	e.Geometry = wire.GeoJSON.Geometry
	if wire.Name != nil {
		e.Name = *wire.Name
	}
	if wire.Ref != nil {
		e.Ref = *wire.Ref
	}
	if wire.Network != nil {
		e.Network = *wire.Network
	}
	if wire.Distance != nil {
		e.DistanceKm = *wire.Distance
	}
	return nil
}

type exploredSetWire struct {
	Routes      []ExploredRoute `json:"routes"`
	QueryCenter struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"query_center"`
	QueryRadiusKm float64 `json:"query_radius_km"`
}

func (s ExploredRouteSet) MarshalJSON() ([]byte, error) {
	wire := exploredSetWire{Routes: s.Routes, QueryRadiusKm: s.RadiusKm}
	if wire.Routes == nil {
		wire.Routes = []ExploredRoute{}
	}
	wire.QueryCenter.Lat = s.Center.Lat()
	wire.QueryCenter.Lng = s.Center.Lon()
	return json.Marshal(wire)
}

func (s *ExploredRouteSet) UnmarshalJSON(data []byte) error {
	var wire exploredSetWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	s.Routes = wire.Routes
	s.Center = orb.Point{wire.QueryCenter.Lng, wire.QueryCenter.Lat}
	s.RadiusKm = wire.QueryRadiusKm
	return nil
}
