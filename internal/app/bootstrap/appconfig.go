// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"net/netip"
	"time"

	"golang.org/x/text/language"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//
// AppConfig carries what is specific to Rent360: the MongoDB connection,
// session cookies, Google sign-in, list-view behaviour and the demo seed.
// The struct is passed to most lifecycle hooks, so any configuration
// needed during startup, request handling, or shutdown should live here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: rent360-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // How long a sign-in lasts

	// BaseURL is the public origin, used to build the Google callback URL.
	BaseURL string // e.g., "https://rent360.example" or "http://localhost:8080"

	// Google OAuth. Sign-in with Google is offered only when both are set.
	GoogleClientID     string
	GoogleClientSecret string

	// AdminEmail is promoted to admin on startup (created as a Google-only
	// account when missing). Blank disables.
	AdminEmail string

	// List views
	CollationLocale      language.Tag  // string sort order, e.g. "es"
	MaintenanceAttention time.Duration // open requests older than this need attention
	TicketAttention      time.Duration
	PaymentAttention     time.Duration

	// TrustedProxies are the reverse proxies whose forwarding headers name
	// the client. Empty means clients connect directly.
	TrustedProxies []netip.Prefix

	// OverdueSweepInterval is how often pending payments past due are moved
	// to overdue. Zero disables the sweep.
	OverdueSweepInterval time.Duration

	// SeedDemoData fills empty collections with the embedded demo portfolio.
	SeedDemoData bool

	// MetricsEnabled mounts /metrics and the request middleware.
	MetricsEnabled bool
}

// GoogleEnabled reports whether Google sign-in is configured.
func (c AppConfig) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
