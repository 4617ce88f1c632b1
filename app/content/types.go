package content

import (
	"encoding/json"
	"time"
)

// Slug is the URL-safe identifier assigned to a document in the content source.
type Slug struct {
	Current string `json:"current"`
}

// AssetRef points at an image asset held by the content source CDN.
type AssetRef struct {
	Ref string `json:"_ref"`
}

// Image is a single image field. IsMain marks the author's preferred image
// within a gallery.
type Image struct {
	Asset  *AssetRef `json:"asset"`
	IsMain bool      `json:"isMain"`
}

// HasAsset reports whether the image carries a resolvable asset reference.
func (i *Image) HasAsset() bool {
	return i != nil && i.Asset != nil && i.Asset.Ref != ""
}

// SEO holds author-supplied overrides of the default crawl hints.
type SEO struct {
	Priority   *float64 `json:"priority"`
	ChangeFreq string   `json:"changefreq"`
}

// Designs groups cake design galleries by finish.
type Designs struct {
	Standard   []Image `json:"standard"`
	Individual []Image `json:"individual"`
}

// Cake is a product record. Legacy records predate the designs gallery and
// carry a flat images list instead.
type Cake struct {
	ID          string   `json:"_id"`
	Slug        *Slug    `json:"slug"`
	UpdatedAt   string   `json:"_updatedAt"`
	Name        string   `json:"name"`
	Description RichText `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	SEO         *SEO     `json:"seo"`
	MainImage   *Image   `json:"mainImage"`
	Designs     *Designs `json:"designs"`
	Images      []Image  `json:"images"`
}

// GiftHamper is a product record for the hamper range.
type GiftHamper struct {
	ID               string   `json:"_id"`
	Slug             *Slug    `json:"slug"`
	UpdatedAt        string   `json:"_updatedAt"`
	Name             string   `json:"name"`
	ShortDescription RichText `json:"shortDescription"`
	Price            float64  `json:"price"`
	SEO              *SEO     `json:"seo"`
	Images           []Image  `json:"images"`
}

// BlogPost is an editorial record.
type BlogPost struct {
	ID        string `json:"_id"`
	Slug      *Slug  `json:"slug"`
	UpdatedAt string `json:"_updatedAt"`
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	SEO       *SEO   `json:"seo"`
}

// OrderNote is a fulfilment note attached to an order, optionally with
// uploaded image references.
type OrderNote struct {
	Text      string   `json:"text"`
	ImageRefs []string `json:"imageRefs,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// Order is an order document. Status is an advisory workflow label; any
// string value is accepted and persisted.
type Order struct {
	ID             string      `json:"_id"`
	OrderNumber    string      `json:"orderNumber"`
	CustomerName   string      `json:"customerName"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	Status         string      `json:"status"`
	DeliveryMethod string      `json:"deliveryMethod"`
	DeliveryDate   string      `json:"deliveryDate"`
	Address        string      `json:"address"`
	Total          float64     `json:"total"`
	Notes          []OrderNote `json:"notes"`
	CreatedAt      string      `json:"_createdAt"`
	UpdatedAt      string      `json:"_updatedAt"`
}

// URLSegment returns the path segment for a record: the slug when present,
// otherwise the document ID.
func URLSegment(slug *Slug, id string) string {
	if slug != nil && slug.Current != "" {
		return slug.Current
	}
	return id
}

func (c Cake) URLSegment() string       { return URLSegment(c.Slug, c.ID) }
func (h GiftHamper) URLSegment() string { return URLSegment(h.Slug, h.ID) }
func (p BlogPost) URLSegment() string   { return URLSegment(p.Slug, p.ID) }

// LastUpdated parses the record's _updatedAt timestamp. An unparseable or
// missing value yields the zero time; callers treat that as "no edit
// timestamp" rather than an error.
func LastUpdated(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (c Cake) LastUpdated() time.Time       { return LastUpdated(c.UpdatedAt) }
func (h GiftHamper) LastUpdated() time.Time { return LastUpdated(h.UpdatedAt) }
func (p BlogPost) LastUpdated() time.Time   { return LastUpdated(p.UpdatedAt) }

// RichText is a description field whose shape varies between a plain string
// and an array of rich-text blocks, depending on the age of the record.
type RichText struct {
	Text   string
	Blocks []Block
}

// Block is one paragraph of rich text.
type Block struct {
	Children []Span `json:"children"`
}

// Span is one text run within a block.
type Span struct {
	Text string `json:"text"`
}

func (rt *RichText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		rt.Text = s
		rt.Blocks = nil
		return nil
	}

	var blocks []Block
	if err := json.Unmarshal(data, &blocks); err == nil {
		rt.Text = ""
		rt.Blocks = blocks
		return nil
	}

	// Unknown shape (e.g. null): treat as empty rather than failing the
	// whole document decode.
	rt.Text = ""
	rt.Blocks = nil
	return nil
}

func (rt RichText) MarshalJSON() ([]byte, error) {
	if rt.Blocks != nil {
		return json.Marshal(rt.Blocks)
	}
	return json.Marshal(rt.Text)
}

// Flatten normalizes the field to plain text: block span texts are
// concatenated and blocks joined with a single space.
func (rt RichText) Flatten() string {
	if rt.Text != "" {
		return rt.Text
	}

	out := ""
	for _, block := range rt.Blocks {
		blockText := ""
		for _, span := range block.Children {
			blockText += span.Text
		}
		if blockText == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += blockText
	}
	return out
}
