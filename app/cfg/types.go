package cfg

type Cfg struct {
	// Content source (headless CMS) configuration
	CMSProjectID  string
	CMSDataset    string
	CMSAPIVersion string
	CMSToken      string
	CMSBaseUrl    string

	// Application configuration
	Port            string
	BaseUrl         string
	DBPath          string
	SnapshotMaxAge  int
	RefreshInterval int
	WorkerCount     int
	APIAccessKey    string
	AdminPassword   string

	// Email notifications
	EmailAPIKey  string
	EmailFrom    string
	EmailBaseUrl string
	AdminEmail   string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
