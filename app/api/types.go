package api

import (
	"time"

	"github.com/ovenandcrumb/bakehouse/app/database"
	"github.com/ovenandcrumb/bakehouse/app/merchant"
	"github.com/ovenandcrumb/bakehouse/app/orders"
	"github.com/ovenandcrumb/bakehouse/app/sitemap"
	"github.com/ovenandcrumb/bakehouse/app/tasks"
)

// Snapshot cache keys for the generated documents.
const (
	SitemapDocument      = "sitemap.xml"
	MerchantFeedDocument = "merchant-feed.xml"
)

var (
	_ tasks.DocumentRenderer = (*sitemap.Builder)(nil)
	_ tasks.DocumentRenderer = (*merchant.Generator)(nil)
)

type Handler struct {
	sitemapDoc  tasks.DocumentRenderer
	merchantDoc tasks.DocumentRenderer
	snapshots   database.SnapshotRepository
	orderSvc    *orders.Service
	maxAge      time.Duration
	baseURL     string
}

func NewHandler(sitemapDoc, merchantDoc tasks.DocumentRenderer,
	snapshots database.SnapshotRepository, orderSvc *orders.Service,
	maxAge time.Duration, baseURL string) *Handler {
	return &Handler{
		sitemapDoc:  sitemapDoc,
		merchantDoc: merchantDoc,
		snapshots:   snapshots,
		orderSvc:    orderSvc,
		maxAge:      maxAge,
		baseURL:     baseURL,
	}
}
