package sitemap

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ovenandcrumb/bakehouse/app/content"
)

type fakeSource struct {
	cakes      []content.Cake
	posts      []content.BlogPost
	hampers    []content.GiftHamper
	cakesErr   error
	postsErr   error
	hampersErr error
}

func (f *fakeSource) GetCakes(ctx context.Context) ([]content.Cake, error) {
	return f.cakes, f.cakesErr
}

func (f *fakeSource) GetBlogPosts(ctx context.Context) ([]content.BlogPost, error) {
	return f.posts, f.postsErr
}

func (f *fakeSource) GetGiftHampers(ctx context.Context) ([]content.GiftHamper, error) {
	return f.hampers, f.hampersErr
}

func newTestBuilder(t *testing.T, source Source) *Builder {
	t.Helper()
	builder, err := NewBuilder(source, "https://ovenandcrumb.co.uk/")
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	return builder
}

func TestBuildIncludesEveryRouteAndRecord(t *testing.T) {
	source := &fakeSource{
		cakes: []content.Cake{
			{ID: "cake-1", Slug: &content.Slug{Current: "honey-cake"}, UpdatedAt: "2025-05-01T09:00:00Z"},
		},
		posts: []content.BlogPost{
			{ID: "post-1", Slug: &content.Slug{Current: "wedding-season"}, UpdatedAt: "2025-04-12T08:00:00Z"},
		},
		hampers: []content.GiftHamper{
			{ID: "hamper-1", Slug: &content.Slug{Current: "treat-box"}, UpdatedAt: "2025-03-20T15:00:00Z"},
		},
	}

	builder := newTestBuilder(t, source)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	entries, err := builder.Build(context.Background(), now)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(entries) != len(builder.routes)+3 {
		t.Errorf("Expected %d entries, got %d", len(builder.routes)+3, len(entries))
	}

	urls := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		urls[entry.URL] = entry
	}

	home, ok := urls["https://ovenandcrumb.co.uk/"]
	if !ok {
		t.Fatal("Expected homepage entry")
	}
	if home.Priority != 1.0 {
		t.Errorf("Expected homepage priority 1.0, got %v", home.Priority)
	}
	if !home.LastModified.Equal(now) {
		t.Errorf("Expected homepage lastmod %v, got %v", now, home.LastModified)
	}

	for _, url := range []string{
		"https://ovenandcrumb.co.uk/cakes/honey-cake",
		"https://ovenandcrumb.co.uk/blog/wedding-season",
		"https://ovenandcrumb.co.uk/gift-hampers/treat-box",
	} {
		if _, ok := urls[url]; !ok {
			t.Errorf("Expected entry for %s", url)
		}
	}
}

func TestBuildSortsByPriorityKeepingInputOrderOnTies(t *testing.T) {
	source := &fakeSource{
		cakes: []content.Cake{
			{ID: "cake-a", Slug: &content.Slug{Current: "first-cake"}},
			{ID: "cake-b", Slug: &content.Slug{Current: "second-cake"}},
		},
		hampers: []content.GiftHamper{
			{ID: "hamper-a", Slug: &content.Slug{Current: "first-hamper"}},
		},
	}

	builder := newTestBuilder(t, source)

	entries, err := builder.Build(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].Priority > entries[i-1].Priority {
			t.Fatalf("Entries out of order at %d: %v before %v", i, entries[i-1].Priority, entries[i].Priority)
		}
	}

	// Both cakes share the 0.8 default with the blog index route; ties must
	// preserve input order, static routes first and cakes in catalog order.
	var tied []string
	for _, entry := range entries {
		if entry.Priority == 0.8 {
			tied = append(tied, entry.URL)
		}
	}
	if len(tied) < 3 {
		t.Fatalf("Expected at least three entries at priority 0.8, got %v", tied)
	}
	if !strings.HasSuffix(tied[0], "/blog") {
		t.Errorf("Expected static /blog route first among ties, got %s", tied[0])
	}
	first := indexOf(tied, "/cakes/first-cake")
	second := indexOf(tied, "/cakes/second-cake")
	if first == -1 || second == -1 || first > second {
		t.Errorf("Expected cakes in input order among ties, got %v", tied)
	}
}

func indexOf(urls []string, suffix string) int {
	for i, url := range urls {
		if strings.HasSuffix(url, suffix) {
			return i
		}
	}
	return -1
}

func TestBuildAppliesSeoOverrides(t *testing.T) {
	priority := 0.95
	source := &fakeSource{
		cakes: []content.Cake{
			{
				ID:   "cake-1",
				Slug: &content.Slug{Current: "signature-cake"},
				SEO:  &content.SEO{Priority: &priority, ChangeFreq: "daily"},
			},
		},
	}

	builder := newTestBuilder(t, source)
	entry := builder.MapCake(source.cakes[0])

	if entry.Priority != 0.95 {
		t.Errorf("Expected priority 0.95, got %v", entry.Priority)
	}
	if entry.ChangeFreq != ChangeFreqDaily {
		t.Errorf("Expected changefreq daily, got %s", entry.ChangeFreq)
	}
}

func TestMapRecordIgnoresInvalidSeoValues(t *testing.T) {
	badPriority := 1.5
	builder := newTestBuilder(t, &fakeSource{})

	entry := builder.MapCake(content.Cake{
		ID:   "cake-1",
		Slug: &content.Slug{Current: "honey-cake"},
		SEO:  &content.SEO{Priority: &badPriority, ChangeFreq: "sometimes"},
	})

	if entry.Priority != 0.8 {
		t.Errorf("Expected default priority 0.8 for out-of-range override, got %v", entry.Priority)
	}
	if entry.ChangeFreq != ChangeFreqWeekly {
		t.Errorf("Expected default changefreq weekly for unknown override, got %s", entry.ChangeFreq)
	}
}

func TestMapRecordDefaults(t *testing.T) {
	builder := newTestBuilder(t, &fakeSource{})

	cake := builder.MapCake(content.Cake{ID: "c", Slug: &content.Slug{Current: "c"}})
	if cake.Priority != 0.8 || cake.ChangeFreq != ChangeFreqWeekly {
		t.Errorf("Unexpected cake defaults: %v %s", cake.Priority, cake.ChangeFreq)
	}

	post := builder.MapPost(content.BlogPost{ID: "p", Slug: &content.Slug{Current: "p"}})
	if post.Priority != 0.6 || post.ChangeFreq != ChangeFreqMonthly {
		t.Errorf("Unexpected post defaults: %v %s", post.Priority, post.ChangeFreq)
	}

	hamper := builder.MapHamper(content.GiftHamper{ID: "h", Slug: &content.Slug{Current: "h"}})
	if hamper.Priority != 0.7 || hamper.ChangeFreq != ChangeFreqWeekly {
		t.Errorf("Unexpected hamper defaults: %v %s", hamper.Priority, hamper.ChangeFreq)
	}
}

func TestMapHamperWithoutSlugUsesID(t *testing.T) {
	builder := newTestBuilder(t, &fakeSource{})

	entry := builder.MapHamper(content.GiftHamper{ID: "hamper-123"})
	if entry.URL != "https://ovenandcrumb.co.uk/gift-hampers/hamper-123" {
		t.Errorf("Expected document ID in URL, got %s", entry.URL)
	}
}

func TestMapCakeToleratesInvalidTimestamp(t *testing.T) {
	builder := newTestBuilder(t, &fakeSource{})

	entry := builder.MapCake(content.Cake{
		ID:        "cake-1",
		Slug:      &content.Slug{Current: "honey-cake"},
		UpdatedAt: "not-a-date",
	})

	if !entry.LastModified.IsZero() {
		t.Errorf("Expected zero lastmod for unparseable timestamp, got %v", entry.LastModified)
	}
}

func TestBuildFailsWhenAnyFetchFails(t *testing.T) {
	fetchErr := errors.New("content source unavailable")

	for name, source := range map[string]*fakeSource{
		"cakes":   {cakesErr: fetchErr},
		"posts":   {postsErr: fetchErr},
		"hampers": {hampersErr: fetchErr},
	} {
		builder := newTestBuilder(t, source)
		entries, err := builder.Build(context.Background(), time.Now())
		if err == nil {
			t.Errorf("Expected error when %s fetch fails", name)
		}
		if entries != nil {
			t.Errorf("Expected no entries when %s fetch fails", name)
		}
	}
}
