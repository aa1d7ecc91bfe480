// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/senspa/spadmin-go/internal/api"
	"github.com/senspa/spadmin-go/internal/auth"
	"github.com/senspa/spadmin-go/internal/cache"
	"github.com/senspa/spadmin-go/internal/config"
	"github.com/senspa/spadmin-go/internal/handler"
	"github.com/senspa/spadmin-go/internal/middleware"
	"github.com/senspa/spadmin-go/internal/render"
	"github.com/senspa/spadmin-go/internal/session"
	"github.com/senspa/spadmin-go/internal/store"
	"github.com/senspa/spadmin-go/internal/version"
	"github.com/senspa/spadmin-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// entityHandlers defines the standard handler methods for a managed entity.
type entityHandlers struct {
	List       http.HandlerFunc
	NewForm    http.HandlerFunc
	Create     http.HandlerFunc
	EditForm   http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	BulkDelete http.HandlerFunc
}

// registerEntity registers the standard admin routes for one entity.
// Routes: GET /, GET /new, POST /, GET /{id}/edit, POST /{id},
// POST /{id}/delete, POST /delete (bulk).
func registerEntity(r chi.Router, base string, h entityHandlers) {
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base, h.Create)
	r.Get(base+handler.RouteParamIDEdit, h.EditForm)
	r.Post(base+handler.RouteParamID, h.Update)
	r.Post(base+handler.RouteParamIDDelete, h.Delete)
	if h.BulkDelete != nil {
		r.Post(base+handler.RouteSuffixDelete, h.BulkDelete)
	}
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "spadmin - Sen Spa administration panel\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPADMIN_API_URL           Backend REST API base URL (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPADMIN_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPADMIN_DB_PATH           SQLite session database path (default: ./data/spadmin.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPADMIN_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPADMIN_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SPADMIN_REDIS_URL         Redis URL for distributed collection caching (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("spadmin %s\n", info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	slog.Info("spadmin starting", "version", versionInfo.Version, "commit", versionInfo.GitCommit)

	// Ensure data directory exists for the session store
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing session database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Initialize session manager and credential store
	sessionManager := session.New(db, cfg.IsDevelopment())
	creds := auth.NewCredentials(sessionManager)
	creds.OnExpired(func(ctx context.Context) {
		slog.Info("backend session expired, credentials cleared")
	})
	slog.Info("session manager initialized")

	// Backend API client authenticates every request with the session token
	client := api.New(api.Config{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     time.Duration(cfg.APITimeout) * time.Second,
		Credentials: creds,
	})
	slog.Info("backend client initialized", "url", cfg.APIBaseURL)

	// Collection cache: Redis when configured, in-memory otherwise
	cacheConfig := cache.DefaultCacheConfig()
	cacheConfig.RedisURL = cfg.RedisURL
	cacheConfig.Prefix = cfg.CachePrefix
	cacheConfig.DefaultTTL = time.Duration(cfg.CacheTTL) * time.Second
	cacher, err := cache.NewCache(cacheConfig)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := cacher.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cfg.UseRedisCache() {
		slog.Info("collection cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("collection cache initialized", "backend", "memory", "ttl", cacheConfig.DefaultTTL)
	}

	// Initialize template renderer from embedded templates
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))
	slog.Info("security headers middleware initialized", "hsts", !cfg.IsDevelopment())

	r.Use(middleware.RequestPath)
	r.Use(sessionManager.LoadAndSave)

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized")

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(client, creds, renderer, sessionManager, loginProtection)
	dashboardHandler := handler.NewDashboardHandler(client, renderer)
	blogsHandler := handler.NewBlogsHandler(client, renderer, cacher)
	servicesHandler := handler.NewServicesHandler(client, renderer, cacher)
	categoriesHandler := handler.NewCategoriesHandler(client, renderer, cacher)
	slidesHandler := handler.NewSlidesHandler(client, renderer, cacher)
	reviewsHandler := handler.NewReviewsHandler(client, renderer, cacher)
	contactsHandler := handler.NewContactsHandler(client, renderer, cacher)
	settingsHandler := handler.NewSettingsHandler(client, renderer)
	siteSettingsHandler := handler.NewSiteSettingsHandler(client, renderer)

	// Auth routes (public, with CSRF and login rate limiting)
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Post(handler.RouteLogout, authHandler.Logout)
	})

	// Admin routes (protected with CSRF)
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.RequireLogin(creds))
		r.Use(middleware.LoadUser(creds))

		r.Get(handler.RouteRoot, dashboardHandler.Show)

		registerEntity(r, handler.RouteBlogs, entityHandlers{
			List: blogsHandler.List, NewForm: blogsHandler.NewForm, Create: blogsHandler.Create,
			EditForm: blogsHandler.EditForm, Update: blogsHandler.Update,
			Delete: blogsHandler.Delete, BulkDelete: blogsHandler.BulkDelete,
		})
		r.Post(handler.RouteBlogs+handler.RouteParamIDToggle, blogsHandler.TogglePublish)

		registerEntity(r, handler.RouteServices, entityHandlers{
			List: servicesHandler.List, NewForm: servicesHandler.NewForm, Create: servicesHandler.Create,
			EditForm: servicesHandler.EditForm, Update: servicesHandler.Update,
			Delete: servicesHandler.Delete, BulkDelete: servicesHandler.BulkDelete,
		})

		registerEntity(r, handler.RouteCategories, entityHandlers{
			List: categoriesHandler.List, NewForm: categoriesHandler.NewForm, Create: categoriesHandler.Create,
			EditForm: categoriesHandler.EditForm, Update: categoriesHandler.Update,
			Delete: categoriesHandler.Delete, BulkDelete: categoriesHandler.BulkDelete,
		})
		r.Post(handler.RouteCategories+handler.RouteParamIDStatus, categoriesHandler.UpdateStatus)
		r.Post(handler.RouteCategories+handler.RouteParamIDRestore, categoriesHandler.Restore)

		registerEntity(r, handler.RouteSlides, entityHandlers{
			List: slidesHandler.List, NewForm: slidesHandler.NewForm, Create: slidesHandler.Create,
			EditForm: slidesHandler.EditForm, Update: slidesHandler.Update,
			Delete: slidesHandler.Delete, BulkDelete: slidesHandler.BulkDelete,
		})
		r.Post(handler.RouteSlides+handler.RouteSuffixReorder, slidesHandler.Reorder)

		// Reviews and contact messages are moderated, not authored
		r.Get(handler.RouteReviews, reviewsHandler.List)
		r.Post(handler.RouteReviews+handler.RouteParamIDToggle, reviewsHandler.ToggleApproval)
		r.Post(handler.RouteReviews+handler.RouteParamIDDelete, reviewsHandler.Delete)

		r.Get(handler.RouteContacts, contactsHandler.List)
		r.Post(handler.RouteContacts+handler.RouteParamIDRead, contactsHandler.MarkRead)
		r.Post(handler.RouteContacts+handler.RouteParamIDDelete, contactsHandler.Delete)

		// Settings pages (admin only)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin())
			r.Get(handler.RouteSettings, settingsHandler.Show)
			r.Post(handler.RouteSettings, settingsHandler.Save)
			r.Get(handler.RouteSiteSettings, siteSettingsHandler.Show)
			r.Post(handler.RouteSiteSettings, siteSettingsHandler.Save)
		})
	})

	// Root redirects to the admin dashboard
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/admin", http.StatusSeeOther)
	})

	// Static file serving from embedded assets
	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	// Static assets: cache for 1 year (31536000 seconds)
	staticHandler := middleware.StaticCache(31536000)(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/static/*", staticHandler)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
