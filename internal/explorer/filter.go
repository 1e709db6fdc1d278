package explorer

// AllRouteTypes is the fixed set of OSM route categories the explorer can
// query, in display order.
var AllRouteTypes = []string{"hiking", "foot", "bicycle", "mtb", "running"}

func KnownRouteType(routeType string) bool {
	for _, rt := range AllRouteTypes {
		if rt == routeType {
			return true
		}
	}
	return false
}

// Filter is the explorer's enabled route-type set. It can never become
// empty: disabling the sole remaining type is a no-op.
type Filter struct {
	enabled map[string]bool
}

// NewFilter starts with every route type enabled.
func NewFilter() *Filter {
	enabled := make(map[string]bool, len(AllRouteTypes))
	for _, rt := range AllRouteTypes {
		enabled[rt] = true
	}
	return &Filter{enabled: enabled}
}

// Toggle flips the given type and reports whether anything changed.
func (f *Filter) Toggle(routeType string) bool {
	if !KnownRouteType(routeType) {
		return false
	}
	if f.enabled[routeType] {
		if f.Count() == 1 {
			return false
		}
		f.enabled[routeType] = false
		return true
	}
	f.enabled[routeType] = true
	return true
}

func (f *Filter) Has(routeType string) bool {
	return f.enabled[routeType]
}

func (f *Filter) Count() int {
	n := 0
	for _, on := range f.enabled {
		if on {
			n++
		}
	}
	return n
}

// Enabled returns the enabled types in AllRouteTypes order.
func (f *Filter) Enabled() []string {
	out := make([]string, 0, len(AllRouteTypes))
	for _, rt := range AllRouteTypes {
		if f.enabled[rt] {
			out = append(out, rt)
		}
	}
	return out
}
