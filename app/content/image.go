package content

import (
	"fmt"
	"regexp"
)

const cdnBase = "https://cdn.sanity.io/images"

// assetRefPattern matches the canonical asset reference shape:
// image-<asset id>-<width>x<height>-<extension>
var assetRefPattern = regexp.MustCompile(`^image-([a-zA-Z0-9]+)-(\d+x\d+)-([a-z0-9]+)$`)

// ImageURLBuilder resolves asset references to CDN rendition URLs.
type ImageURLBuilder struct {
	projectID string
	dataset   string
}

func NewImageURLBuilder(projectID, dataset string) *ImageURLBuilder {
	return &ImageURLBuilder{projectID: projectID, dataset: dataset}
}

// Resolve returns a fixed-size rendition URL for the given asset reference.
// Legacy references that do not follow the canonical shape are passed through
// as the file path so the record still yields a usable URL. An empty
// reference yields an empty string; callers fall back to a placeholder.
func (b *ImageURLBuilder) Resolve(ref string, width, height int) string {
	if ref == "" {
		return ""
	}

	file := ref
	if m := assetRefPattern.FindStringSubmatch(ref); m != nil {
		file = fmt.Sprintf("%s-%s.%s", m[1], m[2], m[3])
	}

	return fmt.Sprintf("%s/%s/%s/%s?w=%d&h=%d&fit=crop", cdnBase, b.projectID, b.dataset, file, width, height)
}
