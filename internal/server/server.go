// Package server wires the journal together: it opens the database, builds
// services and handlers, and mounts them on a chi router.
//
// COMPOSITION ROOT:
// New is the only place where concrete types meet. Handlers only see
// services and services only see repository interfaces; the concrete
// sqlite.DB appears nowhere else.
//
// WIRING:
//   config.Config → sqlite.DB (one value implements every repository)
//   sqlite.DB     → Tag/Auth/User/Journal/Template/Export services
//   services      → handlers → chi routes
//
// The assistant and widgets also take outside-world clients (Gemini,
// Open-Meteo) and a clock. Tests replace those through Options.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/yawmiyat/internal/assistant"
	"github.com/sakif/yawmiyat/internal/auth"
	"github.com/sakif/yawmiyat/internal/config"
	"github.com/sakif/yawmiyat/internal/handler"
	"github.com/sakif/yawmiyat/internal/middleware"
	sqliteRepo "github.com/sakif/yawmiyat/internal/repository/sqlite"
	"github.com/sakif/yawmiyat/internal/service"
	"github.com/sakif/yawmiyat/internal/weather"
)

// Server owns the router and the database connection. The connection is
// closed when Start returns.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// Option customises a Server; tests use it to swap the outside world.
//
// FUNCTIONAL OPTIONS:
// New(cfg, logger) is enough in production. A test passes
// WithGenerator(fake) or WithClock(fixed) and leaves everything else alone.
type Option func(*options)

type options struct {
	generator assistant.Generator
	clock     service.Clock
}

// WithGenerator replaces the Gemini client behind /api/assistant.
func WithGenerator(g assistant.Generator) Option {
	return func(o *options) { o.generator = g }
}

// WithClock fixes the time seen by every service.
func WithClock(c service.Clock) Option {
	return func(o *options) { o.clock = c }
}

func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Server, error) {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.generator == nil {
		o.generator = assistant.NewGeminiGenerator(cfg.Assistant.Model)
	}

	db, err := sqliteRepo.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(o); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// Handler exposes the router for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start calls it on the way out.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes builds services and handlers and mounts every route.
//
// MIDDLEWARE ORDER:
// Middleware runs in the order it is added:
// 1. RequestID, so every log line can carry the request id
// 2. RealIP, so the logger sees the client address behind a proxy
// 3. Logger, which records status and duration
// 4. Recoverer, which turns a panic into a 500
//
// ROUTE GROUPS:
//   public         /healthz, /auth/github/*, /api/auth/*
//   optional auth  /api/weather, /api/prayer, /api/today
//   required auth  everything else under /api
//
// A widget works for anonymous visitors; when a session is present,
// /api/today adds the user's streak.
func (s *Server) setupRoutes(o options) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	tokens, err := auth.NewTokenService(s.config.Auth.JWTSecret)
	if err != nil {
		return err
	}
	github := auth.NewGitHubProvider(
		s.config.Auth.GitHub.ClientID,
		s.config.Auth.GitHub.ClientSecret,
		s.config.Auth.GitHub.CallbackURL,
	)
	if !github.Configured() {
		s.logger.Warn("GitHub login disabled: client id or secret missing")
	}

	// DEPENDENCY CHAIN:
	// TagService comes first because AuthService seeds default tags for new
	// accounts, and JournalService comes before TemplateService because a
	// submitted form becomes a journal entry.
	tagService := service.NewTagService(s.db, s.logger)
	authService := service.NewAuthService(s.db, tagService, tokens, auth.NewPasswordService(), s.logger)
	userService := service.NewUserService(s.db, s.logger)
	journalService := service.NewJournalService(s.db, s.db, s.db, s.logger, o.clock)
	templateService := service.NewTemplateService(s.db, journalService, s.logger, o.clock)
	exportService := service.NewExportService(s.db, s.db, s.logger, o.clock)
	helper := assistant.New(o.generator, s.config.Assistant.APIKey, s.logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, github, s.config.Server.SecureCookies, s.logger)
	entryHandler := handler.NewEntryHandler(journalService, s.logger)
	pageHandler, err := handler.NewPageHandler(journalService, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	tagHandler := handler.NewTagHandler(tagService, s.logger)
	templateHandler := handler.NewTemplateHandler(templateService, s.logger)
	settingsHandler := handler.NewSettingsHandler(userService, s.logger)
	exportHandler := handler.NewExportHandler(exportService, s.logger)
	widgetHandler := handler.NewWidgetHandler(weather.NewClient(s.config.Weather.BaseURL, s.logger), journalService, o.clock, s.logger)
	assistantHandler := handler.NewAssistantHandler(helper, journalService, userService, s.logger)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	s.router.Get("/auth/github/login", authHandler.HandleGitHubLogin)
	s.router.Get("/auth/github/callback", authHandler.HandleGitHubCallback)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)

		// Widgets work anonymously; a logged-in caller also gets a streak.
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth(tokens))
			r.Get("/weather", widgetHandler.HandleWeather)
			r.Get("/prayer", widgetHandler.HandlePrayer)
			r.Get("/today", widgetHandler.HandleToday)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/me", authHandler.HandleMe)

			r.Get("/entries", entryHandler.HandleList)
			r.Post("/entries", entryHandler.HandleCreate)
			r.Post("/entries/delete", entryHandler.HandleDeleteMany)
			r.Get("/entries/{id}", entryHandler.HandleGet)
			r.Put("/entries/{id}", entryHandler.HandleUpdate)
			r.Delete("/entries/{id}", entryHandler.HandleDelete)
			r.Post("/entries/{id}/favorite", entryHandler.HandleToggleFavorite)
			r.Get("/entries/{id}/page", pageHandler.HandleEntryPage)

			r.Post("/entries/{id}/blocks", entryHandler.HandleAddBlock)
			r.Patch("/entries/{id}/blocks/{blockID}", entryHandler.HandleUpdateBlock)
			r.Delete("/entries/{id}/blocks/{blockID}", entryHandler.HandleDeleteBlock)
			r.Post("/entries/{id}/blocks/{blockID}/style", entryHandler.HandleStyleBlock)
			r.Post("/entries/{id}/blocks/{blockID}/duplicate", entryHandler.HandleDuplicateBlock)

			r.Get("/stats", entryHandler.HandleStats)
			r.Get("/calendar", entryHandler.HandleCalendar)

			r.Get("/tags", tagHandler.HandleList)
			r.Post("/tags", tagHandler.HandleCreate)
			r.Delete("/tags/{id}", tagHandler.HandleDelete)

			r.Get("/templates", templateHandler.HandleList)
			r.Post("/templates", templateHandler.HandleCreate)
			r.Get("/templates/{id}", templateHandler.HandleGet)
			r.Put("/templates/{id}", templateHandler.HandleUpdate)
			r.Delete("/templates/{id}", templateHandler.HandleDelete)
			r.Post("/templates/{id}/completion", templateHandler.HandleCompletion)
			r.Post("/templates/{id}/submit", templateHandler.HandleSubmit)

			r.Get("/settings", settingsHandler.HandleGet)
			r.Put("/settings", settingsHandler.HandleUpdate)
			r.Delete("/settings", settingsHandler.HandleReset)

			r.Get("/export", exportHandler.HandleExport)
			r.Post("/import", exportHandler.HandleImport)

			r.Post("/assistant", assistantHandler.HandleAsk)
		})
	})

	return nil
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests for
// up to 30 seconds and closes the database.
//
// TIMEOUTS:
// WriteTimeout is longer than ReadTimeout because /api/assistant waits on
// the model and /api/export writes the whole journal in one response.
//
// SHUTDOWN SEQUENCE:
// 1. A signal arrives on quit
// 2. srv.Shutdown stops accepting connections and waits for active ones
// 3. The deferred db.Close runs after the last handler has returned
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Server.Port)),
			slog.String("database", s.config.Database.Path),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
