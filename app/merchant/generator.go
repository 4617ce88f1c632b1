package merchant

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/currency"

	"github.com/ovenandcrumb/bakehouse/app/content"
)

// Generator renders the Google Shopping product feed as an RSS 2.0 document
// with the merchant namespace.
type Generator struct {
	source   Source
	resolver *ImageResolver
	baseURL  string
}

func NewGenerator(source Source, resolver *ImageResolver, baseURL string) *Generator {
	return &Generator{
		source:   source,
		resolver: resolver,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// Run fetches cakes and hampers concurrently and renders the complete feed.
// Any fetch failure fails the whole generation; a partial or malformed feed
// is never returned. An empty catalog is valid output.
func (g *Generator) Run(ctx context.Context, now time.Time) (string, error) {
	var (
		cakes   []content.Cake
		hampers []content.GiftHamper
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		cakes, err = g.source.GetCakes(gctx)
		return err
	})
	eg.Go(func() error {
		var err error
		hampers, err = g.source.GetGiftHampers(gctx)
		return err
	})

	if err := eg.Wait(); err != nil {
		return "", fmt.Errorf("failed to generate merchant feed: %w", err)
	}

	items := make([]Item, 0, len(cakes)+len(hampers))
	for _, cake := range cakes {
		items = append(items, g.BuildCakeItem(cake))
	}
	for _, hamper := range hampers {
		items = append(items, g.BuildHamperItem(hamper))
	}

	return g.render(items, now), nil
}

// ContentType is the media type the feed document is served with.
const ContentType = "application/xml; charset=utf-8"

// RenderDocument satisfies the document renderer contract used by the
// snapshot warmer and HTTP handlers.
func (g *Generator) RenderDocument(ctx context.Context, now time.Time) (string, []byte, error) {
	feed, err := g.Run(ctx, now)
	if err != nil {
		return "", nil, err
	}
	return ContentType, []byte(feed), nil
}

func (g *Generator) BuildCakeItem(cake content.Cake) Item {
	price := cake.Price
	if price == 0 {
		price = defaultCakePrice
	}

	description := cake.Description.Flatten()
	if description == "" {
		description = fmt.Sprintf("%s, baked fresh to order by %s.", cake.Name, brandName)
	}

	productType := cake.Category
	if productType == "" {
		productType = "Cakes"
	}

	return Item{
		ID:           cake.ID,
		Title:        cake.Name,
		Description:  description,
		Link:         fmt.Sprintf("%s/cakes/%s", g.baseURL, cake.URLSegment()),
		ImageURL:     g.resolver.ResolveCake(cake),
		Price:        formatPrice(price),
		Availability: defaultAvailability,
		ProductType:  productType,
		CustomLabel:  "cake",
	}
}

func (g *Generator) BuildHamperItem(hamper content.GiftHamper) Item {
	price := hamper.Price
	if price == 0 {
		price = defaultHamperPrice
	}

	description := hamper.ShortDescription.Flatten()
	if description == "" {
		description = fmt.Sprintf("%s, baked fresh to order by %s.", hamper.Name, brandName)
	}

	return Item{
		ID:           hamper.ID,
		Title:        hamper.Name,
		Description:  description,
		Link:         fmt.Sprintf("%s/gift-hampers/%s", g.baseURL, hamper.URLSegment()),
		ImageURL:     g.resolver.ResolveHamper(hamper),
		Price:        formatPrice(price),
		Availability: defaultAvailability,
		ProductType:  "Gift Hampers",
		CustomLabel:  "hamper",
	}
}

func (g *Generator) render(items []Item, now time.Time) string {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:g="http://base.google.com/ns/1.0">`)
	buf.WriteString("\n  <channel>\n")

	writeElement(&buf, "title", brandName, 4)
	writeElement(&buf, "link", g.baseURL, 4)
	writeElement(&buf, "description", fmt.Sprintf("Product feed for %s", brandName), 4)
	writeElement(&buf, "lastBuildDate", now.Format(time.RFC1123Z), 4)

	for _, item := range items {
		g.writeItem(&buf, item)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String()
}

func (g *Generator) writeItem(buf *bytes.Buffer, item Item) {
	buf.WriteString("    <item>\n")

	writeElement(buf, "g:id", item.ID, 6)
	writeElement(buf, "g:title", item.Title, 6)
	writeElement(buf, "g:description", item.Description, 6)
	writeElement(buf, "g:link", item.Link, 6)
	writeElement(buf, "g:image_link", item.ImageURL, 6)
	writeElement(buf, "g:price", item.Price, 6)
	writeElement(buf, "g:availability", item.Availability, 6)
	writeElement(buf, "g:condition", productCondition, 6)
	writeElement(buf, "g:brand", brandName, 6)

	// Auxiliary merchant fields with fixed values.
	writeElement(buf, "g:google_product_category", googleProductCategory, 6)
	writeElement(buf, "g:product_type", item.ProductType, 6)
	writeElement(buf, "g:identifier_exists", "no", 6)
	writeElement(buf, "g:adult", "no", 6)
	writeElement(buf, "g:is_bundle", "no", 6)
	writeElement(buf, "g:custom_label_0", item.CustomLabel, 6)
	writeElement(buf, "g:min_handling_time", "1", 6)
	writeElement(buf, "g:max_handling_time", "3", 6)

	buf.WriteString("      <g:shipping>\n")
	writeElement(buf, "g:country", "GB", 8)
	writeElement(buf, "g:service", "Standard", 8)
	writeElement(buf, "g:price", formatPrice(4.99), 8)
	buf.WriteString("      </g:shipping>\n")

	buf.WriteString("    </item>\n")
}

func writeElement(buf *bytes.Buffer, tag, value string, indent int) {
	if value == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	buf.WriteString(escapeXML(value))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

// escapeXML escapes the five XML entities, ampersand first so entities
// introduced by the later replacements are never escaped twice.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&#39;")
	return s
}

func formatPrice(amount float64) string {
	return fmt.Sprintf("%.2f %s", amount, currency.GBP)
}
