package layers

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/rsempe/tracemyride/internal/route"
)

// Candidate colors keyed by OSM route category. Categories the map has no
// entry for fall back to defaultColor.
var categoryColors = map[string]string{
	"hiking":  "#e8590c",
	"foot":    "#2b8a3e",
	"bicycle": "#1971c2",
	"mtb":     "#862e9c",
	"running": "#c2255c",
}

const defaultColor = "#495057"

func CategoryColor(routeType string) string {
	if color, ok := categoryColors[routeType]; ok {
		return color
	}
	return defaultColor
}

// RouteLayer holds the single current route, or nothing.
func RouteLayer(r *route.Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if r == nil {
		return fc
	}

	f := geojson.NewFeature(r.Geometry)
	f.Properties["distance_km"] = r.DistanceKm
	f.Properties["elevation_gain"] = r.ElevationGain
	f.Properties["elevation_loss"] = r.ElevationLoss
	fc.Append(f)
	return fc
}

// WaypointLayer has one point feature per drawn waypoint, tagged with its
// draw index so the client can number the markers.
func WaypointLayer(points []orb.Point) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, pt := range points {
		f := geojson.NewFeature(pt)
		f.Properties["index"] = i
		fc.Append(f)
	}
	return fc
}

// CandidateLayer has one feature per explored route, colored by category.
func CandidateLayer(set route.ExploredRouteSet) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range set.Routes {
		fc.Append(candidateFeature(r))
	}
	return fc
}

// SelectionLayer holds the selected candidate, or nothing. A selection id
// absent from the set yields an empty layer.
func SelectionLayer(set route.ExploredRouteSet, osmID *int64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if osmID == nil {
		return fc
	}
	r, ok := set.Find(*osmID)
	if !ok {
		return fc
	}
	fc.Append(candidateFeature(r))
	return fc
}

func candidateFeature(r route.ExploredRoute) *geojson.Feature {
	f := geojson.NewFeature(r.Geometry)
	f.ID = r.OSMID
	f.Properties["osm_id"] = r.OSMID
	f.Properties["name"] = r.Name
	f.Properties["ref"] = r.Ref
	f.Properties["route_type"] = r.RouteType
	f.Properties["network"] = r.Network
	f.Properties["distance_km"] = r.DistanceKm
	f.Properties["color"] = CategoryColor(r.RouteType)
	return f
}
