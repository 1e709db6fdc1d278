package route

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

func TestRouteUnmarshalFeature(t *testing.T) {
	payload := []byte(`{
		"type": "Feature",
		"geometry": {"type": "LineString", "coordinates": [[5.05, 44.06], [5.06, 44.07]]},
		"properties": {"distance_km": 7.3, "elevation_gain": 210, "elevation_loss": 195},
		"elevation_profile": [
			{"distance_km": 0, "elevation": 310.5, "lat": 44.06, "lng": 5.05},
			{"distance_km": 7.3, "elevation": null, "lat": 44.07, "lng": 5.06}
		]
	}`)

	var r Route
	if err := json.Unmarshal(payload, &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(r.Geometry) != 2 {
		t.Fatalf("expected 2 coordinates, got %d", len(r.Geometry))
	}
	if r.Geometry[0].Lon() != 5.05 || r.Geometry[0].Lat() != 44.06 {
		t.Fatalf("unexpected first coordinate: %v", r.Geometry[0])
	}
	if r.DistanceKm != 7.3 || r.ElevationGain != 210 || r.ElevationLoss != 195 {
		t.Fatalf("unexpected properties: %+v", r)
	}
	if len(r.Profile) != 2 {
		t.Fatalf("expected profile carried")
	}
	if r.Profile[0].Elevation == nil || *r.Profile[0].Elevation != 310.5 {
		t.Fatalf("unexpected first sample: %+v", r.Profile[0])
	}
	if r.Profile[1].Elevation != nil {
		t.Fatalf("null elevation must decode to nil")
	}
}

func TestRouteRejectsNonLineString(t *testing.T) {
	payload := []byte(`{
		"type": "Feature",
		"geometry": {"type": "Point", "coordinates": [5.05, 44.06]},
		"properties": {"distance_km": 0, "elevation_gain": 0, "elevation_loss": 0}
	}`)

	var r Route
	err := json.Unmarshal(payload, &r)
	if !errors.Is(err, ErrNotLineString) {
		t.Fatalf("expected ErrNotLineString, got %v", err)
	}
}

func TestRouteRejectsMissingGeometry(t *testing.T) {
	var r Route
	if err := json.Unmarshal([]byte(`{"type": "Feature", "properties": {}}`), &r); err == nil {
		t.Fatalf("expected error for missing geometry")
	}
}

func TestRouteMarshalShape(t *testing.T) {
	r := Route{
		Geometry:      orb.LineString{{5.05, 44.06}, {5.06, 44.07}},
		DistanceKm:    7.3,
		ElevationGain: 210,
	}

	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var wire map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("decode wire: %v", err)
	}
	if string(wire["type"]) != `"Feature"` {
		t.Fatalf("route must travel as a Feature, got %s", wire["type"])
	}
	if _, ok := wire["geometry"]; !ok {
		t.Fatalf("missing geometry member")
	}
	if _, ok := wire["properties"]; !ok {
		t.Fatalf("missing properties member")
	}
}

func TestExploredRouteNullableFields(t *testing.T) {
	payload := []byte(`{
		"osm_id": 102,
		"name": null,
		"ref": null,
		"route_type": "bicycle",
		"network": null,
		"distance": null,
		"geojson": {
			"type": "Feature",
			"geometry": {"type": "LineString", "coordinates": [[5.2, 44.2], [5.3, 44.3]]},
			"properties": {}
		}
	}`)

	var e ExploredRoute
	if err := json.Unmarshal(payload, &e); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if e.OSMID != 102 || e.RouteType != "bicycle" {
		t.Fatalf("unexpected route: %+v", e)
	}
	if e.Name != "" || e.Ref != "" || e.Network != "" || e.DistanceKm != 0 {
		t.Fatalf("null fields must be zero values: %+v", e)
	}
	if _, ok := e.Geometry.(orb.LineString); !ok {
		t.Fatalf("expected LineString, got %T", e.Geometry)
	}
}

func TestExploredRouteRejectsPointGeometry(t *testing.T) {
	payload := []byte(`{
		"osm_id": 103,
		"route_type": "hiking",
		"geojson": {
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [5.2, 44.2]},
			"properties": {}
		}
	}`)

	var e ExploredRoute
	if err := json.Unmarshal(payload, &e); err == nil {
		t.Fatalf("expected error for point geometry")
	}
}

func TestExploredRouteSetDecode(t *testing.T) {
	payload := []byte(`{
		"routes": [
			{
				"osm_id": 101,
				"name": "GR 4",
				"route_type": "hiking",
				"geojson": {
					"type": "Feature",
					"geometry": {"type": "MultiLineString", "coordinates": [[[5.0, 44.0], [5.1, 44.1]]]},
					"properties": {}
				}
			}
		],
		"query_center": {"lat": 44.06, "lng": 5.05},
		"query_radius_km": 5
	}`)

	var set ExploredRouteSet
	if err := json.Unmarshal(payload, &set); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(set.Routes) != 1 || set.Routes[0].OSMID != 101 {
		t.Fatalf("unexpected set: %+v", set)
	}
	if set.Center.Lat() != 44.06 || set.Center.Lon() != 5.05 {
		t.Fatalf("unexpected center: %v", set.Center)
	}
	if set.RadiusKm != 5 {
		t.Fatalf("unexpected radius: %v", set.RadiusKm)
	}
}

func TestExploredRouteSetFind(t *testing.T) {
	set := ExploredRouteSet{Routes: []ExploredRoute{
		{OSMID: 1, Name: "a"},
		{OSMID: 2, Name: "b"},
	}}

	if r, ok := set.Find(2); !ok || r.Name != "b" {
		t.Fatalf("expected to find route 2")
	}
	if _, ok := set.Find(9); ok {
		t.Fatalf("expected miss for unknown id")
	}
}
