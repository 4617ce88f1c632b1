package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Content source configuration
	CMSProjectID  string `long:"cms-project" env:"CMS_PROJECT_ID" default:"bakehouse" description:"Content source project identifier"`
	CMSDataset    string `long:"cms-dataset" env:"CMS_DATASET" default:"production" description:"Content source dataset"`
	CMSAPIVersion string `long:"cms-api-version" env:"CMS_API_VERSION" default:"2024-01-01" description:"Content source API version"`
	CMSToken      string `long:"cms-token" env:"CMS_TOKEN" description:"Content source API token (required for order mutations)"`
	CMSBaseUrl    string `long:"cms-base-url" env:"CMS_BASE_URL" description:"Override content source base URL (e.g. for a local mock)"`

	// Application configuration
	Port            string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl         string `long:"base-url" env:"BASE_URL" default:"https://ovenandcrumb.co.uk" description:"Public base URL of the storefront"`
	DBPath          string `long:"db-path" env:"DB_PATH" default:"./bakehouse.db" description:"Path to the sqlite snapshot cache database"`
	SnapshotMaxAge  int    `long:"snapshot-max-age" env:"SNAPSHOT_MAX_AGE" default:"10800" description:"Snapshot cache expiry in seconds"`
	RefreshInterval int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"3600" description:"Snapshot warmer interval in seconds"`
	WorkerCount     int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for snapshot refresh"`
	APIAccessKey    string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the order endpoints (optional)"`
	AdminPassword   string `long:"admin-password" env:"ADMIN_PASSWORD" description:"Password required for permanent order deletion"`

	// Email notifications
	EmailAPIKey  string `long:"email-api-key" env:"EMAIL_API_KEY" description:"Transactional email provider API key (notifications disabled when empty)"`
	EmailFrom    string `long:"email-from" env:"EMAIL_FROM" default:"orders@ovenandcrumb.co.uk" description:"From address for order notifications"`
	EmailBaseUrl string `long:"email-base-url" env:"EMAIL_BASE_URL" default:"https://api.resend.com" description:"Transactional email provider base URL"`
	AdminEmail   string `long:"admin-email" env:"ADMIN_EMAIL" description:"Address copied on order status notifications (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Bakehouse/1.0" description:"User agent string for outbound HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"Europe/London" description:"Timezone for timestamps (e.g. UTC, Europe/London)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		CMSProjectID:    raw.CMSProjectID,
		CMSDataset:      raw.CMSDataset,
		CMSAPIVersion:   raw.CMSAPIVersion,
		CMSToken:        raw.CMSToken,
		CMSBaseUrl:      raw.CMSBaseUrl,
		Port:            raw.Port,
		BaseUrl:         raw.BaseUrl,
		DBPath:          raw.DBPath,
		SnapshotMaxAge:  raw.SnapshotMaxAge,
		RefreshInterval: raw.RefreshInterval,
		WorkerCount:     raw.WorkerCount,
		APIAccessKey:    raw.APIAccessKey,
		AdminPassword:   raw.AdminPassword,
		EmailAPIKey:     raw.EmailAPIKey,
		EmailFrom:       raw.EmailFrom,
		EmailBaseUrl:    raw.EmailBaseUrl,
		AdminEmail:      raw.AdminEmail,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
