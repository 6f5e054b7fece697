package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/bausano/link-crawler/internal/crawler"
	"github.com/bausano/link-crawler/internal/store"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "link-crawler"

	// DefaultListenAddress is where the HTTP API listens.
	DefaultListenAddress = ":8000"

	// DefaultTimeout bounds each page fetch at the transport level.
	DefaultTimeout = 30 * time.Second

	// DefaultShutdownTimeout bounds graceful HTTP server shutdown.
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultUserAgent identifies the crawler in HTTP requests.
	DefaultUserAgent = crawler.DefaultUserAgent

	// DefaultMaxBodySize limits the response body size read per page.
	DefaultMaxBodySize = crawler.DefaultMaxBodySize

	// DefaultStoreDriver is the URL store backend.
	DefaultStoreDriver = store.DriverMemory
)

// Config holds all configuration options.
type Config struct {
	// ListenAddress is the host:port of the HTTP API.
	ListenAddress string

	// Timeout is the per-request HTTP client timeout.
	Timeout time.Duration

	// ShutdownTimeout bounds how long the server waits for in-flight API requests.
	ShutdownTimeout time.Duration

	// UserAgent is the User-Agent header sent with fetches.
	UserAgent string

	// MaxBodySize is the maximum number of body bytes read per page.
	MaxBodySize int64

	// StoreDriver selects the URL store backend ("memory" or "sqlite").
	StoreDriver string

	// Verbose enables debug logging.
	Verbose bool

	// JSONLogs switches log output to JSON.
	JSONLogs bool

	// ConfigFilePath is the site configuration file given on the command line.
	ConfigFilePath string

	// SiteConfigs holds per-host settings loaded from the configuration file.
	SiteConfigs *File

	// JSONReport and MarkdownReport select the crawl command's output format.
	// They are mutually exclusive; neither means plain text.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile is where the crawl command writes its report. Empty means stdout.
	ReportFile string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		ListenAddress:   DefaultListenAddress,
		Timeout:         DefaultTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		UserAgent:       DefaultUserAgent,
		MaxBodySize:     DefaultMaxBodySize,
		StoreDriver:     DefaultStoreDriver,
		SiteConfigs:     &File{Sites: make(map[string]SiteConfig)},
	}
}

// XDGConfigFile returns the configuration file path under the XDG config directory.
// On Linux: ~/.config/link-crawler/config.yaml
func XDGConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Validate checks if the configuration is valid and returns the first problem found.
func (c *Config) Validate() error {
	if c.ListenAddress == "" {
		return ErrInvalidListenAddress
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if !store.IsKnownDriver(c.StoreDriver) {
		return ErrUnknownStoreDriver
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// HeadersFor returns the request headers configured for host, including the
// site cookie and user agent override when set.
func (c *Config) HeadersFor(host string) map[string]string {
	if c.SiteConfigs == nil {
		return nil
	}

	site := c.SiteConfigs.GetSiteConfig(host)
	headers := make(map[string]string, len(site.Headers)+2)
	for k, v := range site.Headers {
		headers[k] = v
	}
	if site.Cookie != "" {
		headers["Cookie"] = site.Cookie
	}
	if site.UserAgent != "" {
		headers["User-Agent"] = site.UserAgent
	}

	return headers
}
