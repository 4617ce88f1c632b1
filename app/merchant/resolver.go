package merchant

import (
	"github.com/ovenandcrumb/bakehouse/app/content"
)

// imageCandidate produces a candidate image, or nil when the rule does not
// apply. Candidates are evaluated lazily in priority order; the first
// non-nil result wins.
type imageCandidate func() *content.Image

func firstMatch(candidates ...imageCandidate) *content.Image {
	for _, candidate := range candidates {
		if img := candidate(); img != nil {
			return img
		}
	}
	return nil
}

// ImageResolver selects exactly one advertisable image URL per record. It
// never returns an empty URL: records whose image fields are absent or
// unresolvable fall back to the placeholder. Some legacy records lack a main
// image entirely, which used to silently drop the image tag and get the item
// rejected by the feed validator.
type ImageResolver struct {
	urls        *content.ImageURLBuilder
	placeholder string
}

const renditionSize = 800

func NewImageResolver(urls *content.ImageURLBuilder, placeholderURL string) *ImageResolver {
	return &ImageResolver{urls: urls, placeholder: placeholderURL}
}

// ResolveCake picks the cake image: main image, then the standard design
// gallery (preferring entries flagged as main, then any with an asset, then
// the first regardless), then the legacy flat images list, then the
// placeholder.
func (r *ImageResolver) ResolveCake(cake content.Cake) string {
	standard := []content.Image{}
	if cake.Designs != nil {
		standard = cake.Designs.Standard
	}

	img := firstMatch(
		func() *content.Image {
			if cake.MainImage.HasAsset() {
				return cake.MainImage
			}
			return nil
		},
		func() *content.Image { return firstMainWithAsset(standard) },
		func() *content.Image { return firstWithAsset(standard) },
		func() *content.Image { return firstAny(standard) },
		func() *content.Image { return firstWithAsset(cake.Images) },
	)

	return r.resolve(img)
}

// ResolveHamper picks the hamper image from its gallery: main-flagged entry,
// then any with an asset, then the first regardless, then the placeholder.
func (r *ImageResolver) ResolveHamper(hamper content.GiftHamper) string {
	img := firstMatch(
		func() *content.Image { return firstMainWithAsset(hamper.Images) },
		func() *content.Image { return firstWithAsset(hamper.Images) },
		func() *content.Image { return firstAny(hamper.Images) },
	)

	return r.resolve(img)
}

func (r *ImageResolver) resolve(img *content.Image) string {
	if !img.HasAsset() {
		return r.placeholder
	}
	if url := r.urls.Resolve(img.Asset.Ref, renditionSize, renditionSize); url != "" {
		return url
	}
	return r.placeholder
}

func firstMainWithAsset(images []content.Image) *content.Image {
	for i := range images {
		if images[i].IsMain && images[i].HasAsset() {
			return &images[i]
		}
	}
	return nil
}

func firstWithAsset(images []content.Image) *content.Image {
	for i := range images {
		if images[i].HasAsset() {
			return &images[i]
		}
	}
	return nil
}

func firstAny(images []content.Image) *content.Image {
	if len(images) == 0 {
		return nil
	}
	return &images[0]
}
