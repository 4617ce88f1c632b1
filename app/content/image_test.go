package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCanonicalAssetRef(t *testing.T) {
	b := NewImageURLBuilder("bakehouse", "production")

	url := b.Resolve("image-a1b2c3d4-2000x3000-jpg", 800, 800)
	assert.Equal(t, "https://cdn.sanity.io/images/bakehouse/production/a1b2c3d4-2000x3000.jpg?w=800&h=800&fit=crop", url)
}

func TestResolveLegacyRefPassesThrough(t *testing.T) {
	b := NewImageURLBuilder("bakehouse", "production")

	// Legacy records carry refs that predate the canonical naming; they
	// must still yield a usable URL rather than being dropped.
	url := b.Resolve("legacy-1", 800, 800)
	assert.Contains(t, url, "legacy-1")
	assert.Contains(t, url, "w=800")
}

func TestResolveEmptyRef(t *testing.T) {
	b := NewImageURLBuilder("bakehouse", "production")
	assert.Empty(t, b.Resolve("", 800, 800))
}
