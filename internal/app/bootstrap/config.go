// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/rent360/rent360/internal/app/system/ratelimit"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// devSessionKey is the development default; production refuses it.
const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for Rent360.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: RENT360_MONGO_URI, RENT360_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "rent360", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "rent360-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session lifetime (e.g., 12h, 720h)"},

	// Public origin for OAuth callbacks
	{Name: "base_url", Default: "http://localhost:8080", Desc: "Public base URL (used for the Google callback)"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email promoted to admin on startup (created if missing)"},

	// List views
	{Name: "collation_locale", Default: "es", Desc: "BCP 47 locale for sorting names and titles"},
	{Name: "maintenance_attention_after", Default: "72h", Desc: "Open maintenance older than this is flagged (0 disables)"},
	{Name: "ticket_attention_after", Default: "48h", Desc: "Open tickets older than this are flagged (0 disables)"},
	{Name: "payment_attention_after", Default: "720h", Desc: "Unpaid payments this far past due are flagged (0 disables)"},

	// Reverse proxies
	{Name: "trusted_proxies", Default: "", Desc: "Comma-separated CIDRs/IPs whose X-Forwarded-For is believed (blank trusts none)"},

	// Background work
	{Name: "overdue_sweep_interval", Default: "1h", Desc: "How often pending payments past due are marked overdue (0 disables)"},

	// Demo data and metrics
	{Name: "seed_demo_data", Default: false, Desc: "Fill empty collections with the demo portfolio on startup"},
	{Name: "metrics_enabled", Default: true, Desc: "Expose Prometheus metrics at /metrics"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, RENT360_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "RENT360", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	locale, err := language.Parse(appValues.String("collation_locale"))
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("collation_locale: %w", err)
	}

	proxies, err := ratelimit.ParseTrustedProxies(appValues.String("trusted_proxies"))
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("trusted_proxies: %w", err)
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 30*24*time.Hour),

		BaseURL: appValues.String("base_url"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		AdminEmail: appValues.String("admin_email"),

		CollationLocale:      locale,
		MaintenanceAttention: appValues.Duration("maintenance_attention_after", 72*time.Hour),
		TicketAttention:      appValues.Duration("ticket_attention_after", 48*time.Hour),
		PaymentAttention:     appValues.Duration("payment_attention_after", 30*24*time.Hour),

		TrustedProxies: proxies,

		OverdueSweepInterval: appValues.Duration("overdue_sweep_interval", time.Hour),

		SeedDemoData:   appValues.Bool("seed_demo_data"),
		MetricsEnabled: appValues.Bool("metrics_enabled"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is checked here so a typo fails before any connection
// attempt.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateAppConfig(coreCfg.Env, appCfg)
}

// validateAppConfig holds the checks that do not need a logger.
func validateAppConfig(env string, appCfg AppConfig) error {
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must be set")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters")
	}
	if env == "prod" && appCfg.SessionKey == devSessionKey {
		return fmt.Errorf("session_key must be changed in production")
	}
	if (appCfg.GoogleClientID == "") != (appCfg.GoogleClientSecret == "") {
		return fmt.Errorf("google_client_id and google_client_secret must be set together")
	}
	if appCfg.GoogleEnabled() && appCfg.BaseURL == "" {
		return fmt.Errorf("base_url is required for Google sign-in")
	}
	if appCfg.SessionMaxAge <= 0 {
		return fmt.Errorf("session_max_age must be positive")
	}
	if appCfg.OverdueSweepInterval < 0 {
		return fmt.Errorf("overdue_sweep_interval must not be negative")
	}
	return nil
}
