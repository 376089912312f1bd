package config

// Point is a "lat,lon" pair as written in the .boatride file.
type Point struct {
	// Lat is the latitude in decimal degrees.
	Lat float64 `yaml:"lat"`

	// Lon is the longitude in decimal degrees.
	Lon float64 `yaml:"lon"`
}

// RouteConfig holds configuration for a single named route.
// This allows customizing scoring behavior per route: the sandbar run gets
// the skiff, the offshore run gets the cruiser and a slower speed.
type RouteConfig struct {
	// Points is the route polyline. A route defined only on the backend
	// has no points here; they are fetched when the route is scored.
	Points []Point `yaml:"points,omitempty"`

	// SpeedKnots overrides the global cruising speed for this route.
	// If zero, the global speed is used.
	SpeedKnots float64 `yaml:"speedKnots,omitempty"`

	// Boat names the boat profile to score this route with.
	// If empty, the global boat (or the user's default) is used.
	Boat string `yaml:"boat,omitempty"`

	// Depart is a departure time in RFC 3339 or "15:04" form.
	// If empty, the departure comes from the --depart flag or "now".
	Depart string `yaml:"depart,omitempty"`
}

// File represents the structure of the .boatride configuration file.
type File struct {
	// Routes maps route names to their configurations.
	// Keys are the names used on the command line (e.g., "sandbar").
	Routes map[string]RouteConfig `yaml:"routes,omitempty"`

	// Defaults contains default route configuration applied to all routes
	// unless overridden in the route-specific configuration.
	Defaults RouteConfig `yaml:"defaults,omitempty"`
}

// GetRouteConfig returns the configuration for a named route.
// It merges the route-specific configuration with defaults.
func (cf *File) GetRouteConfig(name string) RouteConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with route-specific configuration if present
	if routeConfig, ok := cf.Routes[name]; ok {
		if len(routeConfig.Points) > 0 {
			result.Points = routeConfig.Points
		}
		if routeConfig.SpeedKnots != 0 {
			result.SpeedKnots = routeConfig.SpeedKnots
		}
		if routeConfig.Boat != "" {
			result.Boat = routeConfig.Boat
		}
		if routeConfig.Depart != "" {
			result.Depart = routeConfig.Depart
		}
	}

	return result
}

// RouteNames returns the configured route names in map order.
// Callers that need deterministic output should sort the result.
func (cf *File) RouteNames() []string {
	names := make([]string, 0, len(cf.Routes))
	for name := range cf.Routes {
		names = append(names, name)
	}
	return names
}
