package sitemap

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed routes.yml
var routesYAML []byte

// StaticRoute is one hand-assigned entry in the route catalog.
type StaticRoute struct {
	Path       string     `yaml:"path"`
	Priority   float64    `yaml:"priority"`
	ChangeFreq ChangeFreq `yaml:"changefreq"`
}

type routeCategory struct {
	Name   string        `yaml:"name"`
	Routes []StaticRoute `yaml:"routes"`
}

type routeCatalog struct {
	Categories []routeCategory `yaml:"categories"`
}

// LoadRoutes parses the embedded catalog, preserving declaration order across
// categories.
func LoadRoutes() ([]StaticRoute, error) {
	var catalog routeCatalog
	if err := yaml.Unmarshal(routesYAML, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse route catalog: %w", err)
	}

	var routes []StaticRoute
	for _, category := range catalog.Categories {
		for _, route := range category.Routes {
			if err := validateRoute(category.Name, route); err != nil {
				return nil, err
			}
			routes = append(routes, route)
		}
	}

	if len(routes) == 0 {
		return nil, fmt.Errorf("route catalog is empty")
	}

	return routes, nil
}

func validateRoute(category string, route StaticRoute) error {
	if !strings.HasPrefix(route.Path, "/") {
		return fmt.Errorf("invalid route in category %s: path %q must start with /", category, route.Path)
	}
	if route.Priority < 0 || route.Priority > 1 {
		return fmt.Errorf("invalid route in category %s: priority %v for %s must be in [0,1]", category, route.Priority, route.Path)
	}
	if !route.ChangeFreq.Valid() {
		return fmt.Errorf("invalid route in category %s: unknown changefreq %q for %s", category, route.ChangeFreq, route.Path)
	}
	return nil
}
