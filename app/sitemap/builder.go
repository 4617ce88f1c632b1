package sitemap

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ovenandcrumb/bakehouse/app/content"
)

// Source is the read side of the content source used by the sitemap.
type Source interface {
	GetCakes(ctx context.Context) ([]content.Cake, error)
	GetBlogPosts(ctx context.Context) ([]content.BlogPost, error)
	GetGiftHampers(ctx context.Context) ([]content.GiftHamper, error)
}

var _ Source = (*content.Client)(nil)

// Builder assembles the complete sitemap from the static route catalog and
// the dynamic content records.
type Builder struct {
	source  Source
	baseURL string
	routes  []StaticRoute
}

func NewBuilder(source Source, baseURL string) (*Builder, error) {
	routes, err := LoadRoutes()
	if err != nil {
		return nil, err
	}

	return &Builder{
		source:  source,
		baseURL: strings.TrimRight(baseURL, "/"),
		routes:  routes,
	}, nil
}

// Build fetches all record types concurrently, maps them to entries and
// returns the merged list sorted by priority descending. Ties keep input
// order: static routes, then cakes, then hampers, then posts. Any fetch
// failure fails the whole build; a partial sitemap is never returned.
func (b *Builder) Build(ctx context.Context, now time.Time) ([]Entry, error) {
	var (
		cakes   []content.Cake
		posts   []content.BlogPost
		hampers []content.GiftHamper
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cakes, err = b.source.GetCakes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = b.source.GetBlogPosts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		hampers, err = b.source.GetGiftHampers(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build sitemap: %w", err)
	}

	entries := make([]Entry, 0, len(b.routes)+len(cakes)+len(hampers)+len(posts))

	for _, route := range b.routes {
		entries = append(entries, b.mapStaticRoute(route, now))
	}
	for _, cake := range cakes {
		entries = append(entries, b.MapCake(cake))
	}
	for _, hamper := range hampers {
		entries = append(entries, b.MapHamper(hamper))
	}
	for _, post := range posts {
		entries = append(entries, b.MapPost(post))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Priority > entries[j].Priority
	})

	return entries, nil
}

// mapStaticRoute builds the entry for a catalog route. Static pages have no
// natural edit timestamp, so the injected clock value is used.
func (b *Builder) mapStaticRoute(route StaticRoute, now time.Time) Entry {
	return Entry{
		URL:          b.baseURL + route.Path,
		LastModified: now,
		ChangeFreq:   route.ChangeFreq,
		Priority:     route.Priority,
	}
}

func (b *Builder) MapCake(cake content.Cake) Entry {
	return b.mapRecord("cakes", cake.URLSegment(), cake.LastUpdated(), cake.SEO, cakePriority, cakeChangeFreq)
}

func (b *Builder) MapPost(post content.BlogPost) Entry {
	return b.mapRecord("blog", post.URLSegment(), post.LastUpdated(), post.SEO, postPriority, postChangeFreq)
}

func (b *Builder) MapHamper(hamper content.GiftHamper) Entry {
	return b.mapRecord("gift-hampers", hamper.URLSegment(), hamper.LastUpdated(), hamper.SEO, hamperPriority, hamperChangeFreq)
}

// mapRecord converts one content record into an entry, applying the type
// defaults when the author supplied no SEO override. Missing optional fields
// are never an error.
func (b *Builder) mapRecord(segment, slug string, lastModified time.Time, seo *content.SEO, defaultPriority float64, defaultFreq ChangeFreq) Entry {
	entry := Entry{
		URL:          fmt.Sprintf("%s/%s/%s", b.baseURL, segment, slug),
		LastModified: lastModified,
		ChangeFreq:   defaultFreq,
		Priority:     defaultPriority,
	}

	if seo != nil {
		if seo.Priority != nil && *seo.Priority >= 0 && *seo.Priority <= 1 {
			entry.Priority = *seo.Priority
		}
		if freq := ChangeFreq(seo.ChangeFreq); freq.Valid() {
			entry.ChangeFreq = freq
		}
	}

	return entry
}
