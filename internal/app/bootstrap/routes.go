// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	authgooglefeature "github.com/rent360/rent360/internal/app/features/authgoogle"
	contractsfeature "github.com/rent360/rent360/internal/app/features/contracts"
	dashboardfeature "github.com/rent360/rent360/internal/app/features/dashboard"
	_ "github.com/rent360/rent360/internal/app/features/dashboard/views"
	errorsfeature "github.com/rent360/rent360/internal/app/features/errors"
	healthfeature "github.com/rent360/rent360/internal/app/features/health"
	homefeature "github.com/rent360/rent360/internal/app/features/home"
	_ "github.com/rent360/rent360/internal/app/features/home/views"
	loginfeature "github.com/rent360/rent360/internal/app/features/login"
	logoutfeature "github.com/rent360/rent360/internal/app/features/logout"
	maintenancefeature "github.com/rent360/rent360/internal/app/features/maintenance"
	paymentsfeature "github.com/rent360/rent360/internal/app/features/payments"
	profilefeature "github.com/rent360/rent360/internal/app/features/profile"
	propertiesfeature "github.com/rent360/rent360/internal/app/features/properties"
	ratingsfeature "github.com/rent360/rent360/internal/app/features/ratings"
	reportsfeature "github.com/rent360/rent360/internal/app/features/reports"
	"github.com/rent360/rent360/internal/app/features/shared/listing"
	tenantsfeature "github.com/rent360/rent360/internal/app/features/tenants"
	ticketsfeature "github.com/rent360/rent360/internal/app/features/tickets"
	userinfofeature "github.com/rent360/rent360/internal/app/features/userinfo"
	"github.com/rent360/rent360/internal/app/listviews"
	userstore "github.com/rent360/rent360/internal/app/store/users"
	"github.com/rent360/rent360/internal/app/system/auth"
	"github.com/rent360/rent360/internal/app/system/metrics"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Rent360 boots the template engine, applies session middleware, and
// mounts every list page next to its /api/v1 JSON twin so both surfaces
// share one handler and one view binding.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.Rent360MongoDatabase

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh user data on each request, so role
	// changes and disabled accounts take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	var m *metrics.Metrics
	if appCfg.MetricsEnabled {
		m = metrics.New()
	}

	listDeps := listing.Deps{
		DB:      db,
		Log:     logger,
		ErrLog:  errLog,
		Metrics: m,
		Views:   viewOptions(appCfg),
	}

	r := chi.NewRouter()
	r.Use(m.Middleware)

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Rent360MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(appCfg.GoogleEnabled(), logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Identity lookup used by the page chrome
	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	// Authentication
	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, appCfg.GoogleEnabled(), logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	if appCfg.GoogleEnabled() {
		googleHandler := authgooglefeature.NewHandler(db, sessionMgr,
			appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, appCfg.SessionKey, secure, logger)
		r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
	}

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Role dashboards
	dashboardHandler := dashboardfeature.NewHandler(listDeps)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))
	r.Mount("/api/v1/dashboard", dashboardfeature.APIRoutes(dashboardHandler, sessionMgr))

	// List pages and their JSON twins
	propertiesHandler := propertiesfeature.NewHandler(listDeps)
	r.Mount("/properties", propertiesfeature.Routes(propertiesHandler, sessionMgr))
	r.Mount("/api/v1/properties", propertiesfeature.APIRoutes(propertiesHandler, sessionMgr))

	tenantsHandler := tenantsfeature.NewHandler(listDeps)
	r.Mount("/tenants", tenantsfeature.Routes(tenantsHandler, sessionMgr))
	r.Mount("/api/v1/tenants", tenantsfeature.APIRoutes(tenantsHandler, sessionMgr))

	contractsHandler := contractsfeature.NewHandler(listDeps)
	r.Mount("/contracts", contractsfeature.Routes(contractsHandler, sessionMgr))
	r.Mount("/api/v1/contracts", contractsfeature.APIRoutes(contractsHandler, sessionMgr))

	paymentsHandler := paymentsfeature.NewHandler(listDeps)
	r.Mount("/payments", paymentsfeature.Routes(paymentsHandler, sessionMgr))
	r.Mount("/api/v1/payments", paymentsfeature.APIRoutes(paymentsHandler, sessionMgr))

	maintenanceHandler := maintenancefeature.NewHandler(listDeps)
	r.Mount("/maintenance", maintenancefeature.Routes(maintenanceHandler, sessionMgr))
	r.Mount("/api/v1/maintenance", maintenancefeature.APIRoutes(maintenanceHandler, sessionMgr))

	ratingsHandler := ratingsfeature.NewHandler(listDeps)
	r.Mount("/ratings", ratingsfeature.Routes(ratingsHandler, sessionMgr))
	r.Mount("/api/v1/ratings", ratingsfeature.APIRoutes(ratingsHandler, sessionMgr))

	ticketsHandler := ticketsfeature.NewHandler(listDeps)
	r.Mount("/tickets", ticketsfeature.Routes(ticketsHandler, sessionMgr))
	r.Mount("/api/v1/tickets", ticketsfeature.APIRoutes(ticketsHandler, sessionMgr))

	// Account
	profileHandler := profilefeature.NewHandler(db, errLog, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	// CSV exports
	reportsHandler := reportsfeature.NewHandler(listDeps)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler, sessionMgr))

	return r, nil
}

// viewOptions maps the list-view settings onto listviews.Options. Now is
// filled per request.
func viewOptions(appCfg AppConfig) listviews.Options {
	return listviews.Options{
		Locale:               appCfg.CollationLocale,
		MaintenanceAttention: appCfg.MaintenanceAttention,
		TicketAttention:      appCfg.TicketAttention,
		PaymentAttention:     appCfg.PaymentAttention,
	}
}
