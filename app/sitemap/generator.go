package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// XMLNamespace is the sitemap protocol namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ContentType is the media type the sitemap document is served with.
const ContentType = "application/xml; charset=utf-8"

type urlSet struct {
	XMLName xml.Name  `xml:"urlset"`
	XMLNS   string    `xml:"xmlns,attr"`
	URLs    []urlNode `xml:"url"`
}

type urlNode struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Generate renders the entries as a sitemap XML document.
func Generate(entries []Entry) ([]byte, error) {
	set := urlSet{
		XMLNS: XMLNamespace,
		URLs:  make([]urlNode, 0, len(entries)),
	}

	for _, entry := range entries {
		node := urlNode{
			Loc:        entry.URL,
			ChangeFreq: string(entry.ChangeFreq),
			Priority:   formatPriority(entry.Priority),
		}
		if !entry.LastModified.IsZero() {
			node.LastMod = entry.LastModified.Format(time.RFC3339)
		}
		set.URLs = append(set.URLs, node)
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render sitemap: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}

// RenderDocument builds and renders the complete sitemap, satisfying the
// document renderer contract used by the snapshot warmer and HTTP handlers.
func (b *Builder) RenderDocument(ctx context.Context, now time.Time) (string, []byte, error) {
	entries, err := b.Build(ctx, now)
	if err != nil {
		return "", nil, err
	}

	body, err := Generate(entries)
	if err != nil {
		return "", nil, err
	}

	return ContentType, body, nil
}

// formatPriority renders the value with the shortest decimal form, keeping at
// least one fractional digit ("1.0" rather than "1").
func formatPriority(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
