package merchant

import (
	"strings"
	"testing"

	"github.com/ovenandcrumb/bakehouse/app/content"
)

const testPlaceholder = "https://ovenandcrumb.co.uk/images/product-placeholder.jpg"

func newTestResolver() *ImageResolver {
	urls := content.NewImageURLBuilder("bakehouse", "production")
	return NewImageResolver(urls, testPlaceholder)
}

func asset(ref string) *content.AssetRef {
	return &content.AssetRef{Ref: ref}
}

func TestResolveCakePrefersMainImage(t *testing.T) {
	resolver := newTestResolver()

	cake := content.Cake{
		MainImage: &content.Image{Asset: asset("image-main1234-800x600-jpg")},
		Designs: &content.Designs{
			Standard: []content.Image{{Asset: asset("image-gallery99-800x600-jpg"), IsMain: true}},
		},
	}

	url := resolver.ResolveCake(cake)
	if !strings.Contains(url, "main1234") {
		t.Errorf("Expected main image to win, got %s", url)
	}
}

func TestResolveCakePrefersMainFlaggedGalleryEntry(t *testing.T) {
	resolver := newTestResolver()

	cake := content.Cake{
		Designs: &content.Designs{
			Standard: []content.Image{
				{Asset: asset("image-first111-800x600-jpg")},
				{Asset: asset("image-flagged2-800x600-jpg"), IsMain: true},
			},
		},
	}

	url := resolver.ResolveCake(cake)
	if !strings.Contains(url, "flagged2") {
		t.Errorf("Expected main-flagged gallery entry to win, got %s", url)
	}
}

func TestResolveCakeFallsBackThroughGallery(t *testing.T) {
	resolver := newTestResolver()

	cake := content.Cake{
		Designs: &content.Designs{
			Standard: []content.Image{
				{IsMain: true}, // flagged but no asset
				{Asset: asset("image-usable11-800x600-jpg")},
			},
		},
	}

	url := resolver.ResolveCake(cake)
	if !strings.Contains(url, "usable11") {
		t.Errorf("Expected first gallery entry with an asset, got %s", url)
	}
}

func TestResolveCakeUsesLegacyImagesList(t *testing.T) {
	resolver := newTestResolver()

	// Old records have neither a main image nor a designs gallery, only the
	// flat images list with pre-canonical refs.
	cake := content.Cake{
		Images: []content.Image{{Asset: asset("legacy-1")}},
	}

	url := resolver.ResolveCake(cake)
	if url == testPlaceholder {
		t.Fatalf("Expected legacy image to resolve, got placeholder")
	}
	if !strings.Contains(url, "legacy-1") {
		t.Errorf("Expected legacy ref in URL, got %s", url)
	}
}

func TestResolveCakePlaceholderWhenNothingResolves(t *testing.T) {
	resolver := newTestResolver()

	cases := map[string]content.Cake{
		"no image fields":       {},
		"empty designs gallery": {Designs: &content.Designs{}},
		"assetless entries":     {Designs: &content.Designs{Standard: []content.Image{{}}}, Images: []content.Image{{}}},
	}

	for name, cake := range cases {
		if url := resolver.ResolveCake(cake); url != testPlaceholder {
			t.Errorf("Expected placeholder for %s, got %s", name, url)
		}
	}
}

func TestResolveCakeNeverReturnsEmpty(t *testing.T) {
	resolver := newTestResolver()

	cakes := []content.Cake{
		{},
		{MainImage: &content.Image{}},
		{MainImage: &content.Image{Asset: asset("")}},
		{Designs: &content.Designs{Standard: []content.Image{{}, {}}}},
		{Images: []content.Image{{}}},
		{MainImage: &content.Image{Asset: asset("image-ok123456-800x600-jpg")}},
	}

	for i, cake := range cakes {
		if url := resolver.ResolveCake(cake); url == "" {
			t.Errorf("Case %d: resolver returned empty URL", i)
		}
	}
}

func TestResolveHamperChain(t *testing.T) {
	resolver := newTestResolver()

	flagged := content.GiftHamper{
		Images: []content.Image{
			{Asset: asset("image-plain111-800x600-jpg")},
			{Asset: asset("image-starred1-800x600-jpg"), IsMain: true},
		},
	}
	if url := resolver.ResolveHamper(flagged); !strings.Contains(url, "starred1") {
		t.Errorf("Expected main-flagged hamper image, got %s", url)
	}

	unflagged := content.GiftHamper{
		Images: []content.Image{{Asset: asset("image-plain111-800x600-jpg")}},
	}
	if url := resolver.ResolveHamper(unflagged); !strings.Contains(url, "plain111") {
		t.Errorf("Expected first hamper image with asset, got %s", url)
	}

	empty := content.GiftHamper{}
	if url := resolver.ResolveHamper(empty); url != testPlaceholder {
		t.Errorf("Expected placeholder for imageless hamper, got %s", url)
	}
}
