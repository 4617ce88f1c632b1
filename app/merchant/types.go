package merchant

import (
	"context"

	"github.com/ovenandcrumb/bakehouse/app/content"
)

// Source is the read side of the content source used by the merchant feed.
type Source interface {
	GetCakes(ctx context.Context) ([]content.Cake, error)
	GetGiftHampers(ctx context.Context) ([]content.GiftHamper, error)
}

var _ Source = (*content.Client)(nil)

// Item is one shopping-feed product entry. ImageURL is always a
// fully-qualified URL; the feed never emits an item without an image.
type Item struct {
	ID           string
	Title        string
	Description  string
	Link         string
	ImageURL     string
	Price        string
	Availability string
	ProductType  string
	CustomLabel  string
}

// Default product values applied when a record field is absent.
const (
	defaultCakePrice   = 25
	defaultHamperPrice = 35

	defaultAvailability = "in stock"
	productCondition    = "new"
	brandName           = "Oven & Crumb"

	googleProductCategory = "Food, Beverages & Tobacco > Food Items > Bakery"
)
