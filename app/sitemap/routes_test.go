package sitemap

import (
	"testing"
)

func TestLoadRoutes(t *testing.T) {
	routes, err := LoadRoutes()
	if err != nil {
		t.Fatalf("LoadRoutes failed: %v", err)
	}

	if len(routes) == 0 {
		t.Fatal("Expected routes in embedded catalog")
	}

	if routes[0].Path != "/" {
		t.Errorf("Expected homepage first in catalog, got %s", routes[0].Path)
	}
	if routes[0].Priority != 1.0 {
		t.Errorf("Expected homepage priority 1.0, got %v", routes[0].Priority)
	}

	seen := make(map[string]bool, len(routes))
	for _, route := range routes {
		if seen[route.Path] {
			t.Errorf("Duplicate route path %s", route.Path)
		}
		seen[route.Path] = true
	}

	for _, path := range []string{"/order", "/cakes", "/gift-hampers", "/blog", "/letterbox-delivery"} {
		if !seen[path] {
			t.Errorf("Expected catalog to contain %s", path)
		}
	}
}

func TestValidateRoute(t *testing.T) {
	valid := StaticRoute{Path: "/cakes", Priority: 0.9, ChangeFreq: ChangeFreqDaily}
	if err := validateRoute("core", valid); err != nil {
		t.Errorf("Expected valid route, got %v", err)
	}

	cases := map[string]StaticRoute{
		"missing leading slash": {Path: "cakes", Priority: 0.9, ChangeFreq: ChangeFreqDaily},
		"priority above range":  {Path: "/cakes", Priority: 1.2, ChangeFreq: ChangeFreqDaily},
		"priority below range":  {Path: "/cakes", Priority: -0.1, ChangeFreq: ChangeFreqDaily},
		"unknown changefreq":    {Path: "/cakes", Priority: 0.9, ChangeFreq: "sometimes"},
	}

	for name, route := range cases {
		if err := validateRoute("core", route); err == nil {
			t.Errorf("Expected error for %s", name)
		}
	}
}
