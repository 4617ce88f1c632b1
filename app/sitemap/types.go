package sitemap

import (
	"time"
)

// ChangeFreq is the crawl-hint change frequency of a URL.
type ChangeFreq string

const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// Valid reports whether the value is one of the sitemap protocol frequencies.
func (cf ChangeFreq) Valid() bool {
	switch cf {
	case ChangeFreqAlways, ChangeFreqHourly, ChangeFreqDaily, ChangeFreqWeekly,
		ChangeFreqMonthly, ChangeFreqYearly, ChangeFreqNever:
		return true
	}
	return false
}

// Entry is one URL record in the sitemap. LastModified may be the zero time,
// in which case the lastmod element is omitted from the rendered XML.
type Entry struct {
	URL          string
	LastModified time.Time
	ChangeFreq   ChangeFreq
	Priority     float64
}

// Default crawl hints per record type, applied when a record carries no SEO
// override.
const (
	cakePriority   = 0.8
	postPriority   = 0.6
	hamperPriority = 0.7
)

const (
	cakeChangeFreq   = ChangeFreqWeekly
	postChangeFreq   = ChangeFreqMonthly
	hamperChangeFreq = ChangeFreqWeekly
)
