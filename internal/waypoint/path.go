package waypoint

import "github.com/paulmach/orb"

// Path is the ordered list of points the user has drawn so far. It is only
// mutated while the session is in drawing mode; the session controller
// enforces that, not the path itself.
type Path struct {
	points []orb.Point
}

func NewPath() *Path {
	return &Path{}
}

func (p *Path) Append(pt orb.Point) {
	p.points = append(p.points, pt)
}

// Undo removes the most recent point. Undoing an empty path is a no-op.
func (p *Path) Undo() {
	if len(p.points) == 0 {
		return
	}
	p.points = p.points[:len(p.points)-1]
}

func (p *Path) Clear() {
	p.points = nil
}

func (p *Path) Len() int {
	return len(p.points)
}

// Coordinates returns a copy of the drawn points in draw order.
func (p *Path) Coordinates() []orb.Point {
	out := make([]orb.Point, len(p.points))
	copy(out, p.points)
	return out
}
