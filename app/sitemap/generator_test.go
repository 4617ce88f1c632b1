package sitemap

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateProducesValidDocument(t *testing.T) {
	entries := []Entry{
		{
			URL:          "https://ovenandcrumb.co.uk/",
			LastModified: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			ChangeFreq:   ChangeFreqDaily,
			Priority:     1.0,
		},
		{
			URL:        "https://ovenandcrumb.co.uk/cakes/honey-cake",
			ChangeFreq: ChangeFreqWeekly,
			Priority:   0.8,
		},
	}

	body, err := Generate(entries)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	output := string(body)

	if !strings.HasPrefix(output, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("Expected XML declaration at start of document")
	}
	if !strings.Contains(output, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Error("Expected urlset element with sitemap namespace")
	}
	if !strings.Contains(output, "<loc>https://ovenandcrumb.co.uk/</loc>") {
		t.Error("Expected homepage loc element")
	}
	if !strings.Contains(output, "<lastmod>2025-06-01T12:00:00Z</lastmod>") {
		t.Error("Expected RFC3339 lastmod element")
	}
	if !strings.Contains(output, "<changefreq>daily</changefreq>") {
		t.Error("Expected changefreq element")
	}
	if !strings.Contains(output, "<priority>1.0</priority>") {
		t.Error("Expected priority rendered as 1.0")
	}
	if !strings.Contains(output, "<priority>0.8</priority>") {
		t.Error("Expected priority rendered as 0.8")
	}
}

func TestGenerateOmitsZeroLastmod(t *testing.T) {
	entries := []Entry{
		{URL: "https://ovenandcrumb.co.uk/cakes/honey-cake", ChangeFreq: ChangeFreqWeekly, Priority: 0.8},
	}

	body, err := Generate(entries)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if strings.Contains(string(body), "<lastmod>") {
		t.Error("Expected no lastmod element for zero timestamp")
	}
}

func TestFormatPriority(t *testing.T) {
	cases := map[float64]string{
		1.0:  "1.0",
		0.95: "0.95",
		0.8:  "0.8",
		0.3:  "0.3",
		0.0:  "0.0",
	}

	for value, expected := range cases {
		if got := formatPriority(value); got != expected {
			t.Errorf("formatPriority(%v) = %q, expected %q", value, got, expected)
		}
	}
}
