package layers

import (
	"github.com/paulmach/orb"

	"github.com/rsempe/tracemyride/internal/route"
	"github.com/rsempe/tracemyride/internal/shared/geo"
)

// NearestCandidate hit-tests a pointer position against the candidate layer
// and returns the osm id of the nearest route within toleranceM meters. Ties
// go to the earliest candidate in the set, matching render order.
func NearestCandidate(set route.ExploredRouteSet, click orb.Point, toleranceM float64) (int64, bool) {
	best := toleranceM
	var bestID int64
	found := false

	for _, r := range set.Routes {
		d := distanceToGeometryM(r.Geometry, click)
		if d < best {
			best = d
			bestID = r.OSMID
			found = true
		}
	}
	return bestID, found
}

func distanceToGeometryM(g orb.Geometry, pt orb.Point) float64 {
	switch geom := g.(type) {
	case orb.LineString:
		return distanceToLineM(geom, pt)
	case orb.MultiLineString:
		best := -1.0
		for _, line := range geom {
			if d := distanceToLineM(line, pt); best < 0 || d < best {
				best = d
			}
		}
		if best < 0 {
			return maxDistanceM
		}
		return best
	case orb.Point:
		return pointDistanceM(geom, pt)
	default:
		return maxDistanceM
	}
}

const maxDistanceM = 1e12

func distanceToLineM(line orb.LineString, pt orb.Point) float64 {
	if len(line) == 0 {
		return maxDistanceM
	}
	if len(line) == 1 {
		return pointDistanceM(line[0], pt)
	}

	best := maxDistanceM
	for i := 1; i < len(line); i++ {
		proj := projectToSegment(pt, line[i-1], line[i])
		if d := pointDistanceM(proj, pt); d < best {
			best = d
		}
	}
	return best
}

// projectToSegment projects pt onto the segment [a, b] in lng/lat space and
// clamps to the segment's ends.
func projectToSegment(pt, a, b orb.Point) orb.Point {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	if dx == 0 && dy == 0 {
		return a
	}

	t := ((pt[0]-a[0])*dx + (pt[1]-a[1])*dy) / (dx*dx + dy*dy)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return orb.Point{a[0] + t*dx, a[1] + t*dy}
}

func pointDistanceM(a, b orb.Point) float64 {
	return geo.HaversineKm(a.Lat(), a.Lon(), b.Lat(), b.Lon()) * 1000
}
