package layers

import (
	"encoding/json"

	"github.com/paulmach/orb"
)

// FitPaddingPx is the fixed margin the client applies around a fitted bound.
const FitPaddingPx = 60

// Fit asks the map client to fit its viewport to a bounding box.
type Fit struct {
	Bound   orb.Bound
	Padding int
}

func (f Fit) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Bounds  [2][2]float64 `json:"bounds"`
		Padding int           `json:"padding"`
	}{
		Bounds: [2][2]float64{
			{f.Bound.Min.Lon(), f.Bound.Min.Lat()},
			{f.Bound.Max.Lon(), f.Bound.Max.Lat()},
		},
		Padding: f.Padding,
	})
}

// FitTo computes the minimal axis-aligned bound over every coordinate of the
// geometry. Geometries with fewer than two coordinates cannot be fitted and
// report ok=false.
func FitTo(g orb.Geometry) (Fit, bool) {
	pts := Flatten(g)
	if len(pts) < 2 {
		return Fit{}, false
	}

	bound := orb.Bound{Min: pts[0], Max: pts[0]}
	for _, pt := range pts[1:] {
		bound = bound.Extend(pt)
	}
	return Fit{Bound: bound, Padding: FitPaddingPx}, true
}

// Flatten reduces a geometry to its flat coordinate list.
func Flatten(g orb.Geometry) []orb.Point {
	switch geom := g.(type) {
	case orb.Point:
		return []orb.Point{geom}
	case orb.MultiPoint:
		return geom
	case orb.LineString:
		return geom
	case orb.MultiLineString:
		var pts []orb.Point
		for _, line := range geom {
			pts = append(pts, line...)
		}
		return pts
	case orb.Ring:
		return geom
	case orb.Polygon:
		var pts []orb.Point
		for _, ring := range geom {
			pts = append(pts, ring...)
		}
		return pts
	case orb.Collection:
		var pts []orb.Point
		for _, sub := range geom {
			pts = append(pts, Flatten(sub)...)
		}
		return pts
	default:
		return nil
	}
}
