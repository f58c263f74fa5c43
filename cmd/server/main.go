package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/royaldevs/backend/internal/config"
	"github.com/royaldevs/backend/internal/content"
	"github.com/royaldevs/backend/internal/handler"
	"github.com/royaldevs/backend/internal/logging"
	"github.com/royaldevs/backend/internal/metrics"
	"github.com/royaldevs/backend/internal/repository"
	"github.com/royaldevs/backend/internal/service"
	"github.com/royaldevs/backend/pkg/auth"
	"github.com/royaldevs/backend/pkg/firecrawl"
	"github.com/royaldevs/backend/pkg/mailer"
	"github.com/royaldevs/backend/pkg/relay"
)

const sessionPurgeInterval = time.Hour

func main() {
	cfg := config.Load()
	logCloser := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	catalog, err := content.Load()
	if err != nil {
		logging.Fatal("failed to load content", "error", err)
	}

	m := metrics.New()
	adminEmails := auth.ParseAdminEmails(cfg.AdminEmails)

	userRepo := repository.NewPgUserRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	contactRepo := repository.NewPgContactRepository(pool)
	reviewRepo := repository.NewPgReviewRepository(pool)
	showcaseRepo := repository.NewPgShowcaseRepository(pool)
	pageViewRepo := repository.NewPgPageViewRepository(pool)

	resend := mailer.NewResendClient(cfg.ResendAPIKey)

	// The in-process relay emails the team directly. When RELAY_URL points at
	// a separately deployed relay, submissions go through it instead.
	notificationService := service.NewNotificationService(
		contactRepo, resend, cfg.NotifyFrom, cfg.NotifyTo)
	var notifier relay.Notifier = notificationService
	if cfg.RelayURL != "" {
		if cfg.RelaySecret == "" {
			slog.Warn("RELAY_URL is set without RELAY_SECRET; notifications will be rejected")
		}
		notifier = relay.NewClient(cfg.RelayURL, []byte(cfg.RelaySecret))
	}
	if cfg.ResendAPIKey == "" || len(cfg.NotifyTo) == 0 {
		slog.Warn("contact notifications disabled: RESEND_API_KEY or NOTIFY_TO not set")
	}

	authService := service.NewAuthService(userRepo,
		service.NewVerificationMailer(resend, cfg.NotifyFrom, cfg.BackendURL))
	sessionService := service.NewSessionService(sessionRepo)
	contactService := service.NewContactService(contactRepo, m.CountNotifier(notifier), slog.Default())
	reviewService := service.NewReviewService(reviewRepo)
	showcaseService := service.NewShowcaseService(showcaseRepo)
	pageViewService := service.NewPageViewService(pageViewRepo)
	scrapeService := service.NewScrapeService(firecrawl.NewClient(cfg.FirecrawlAPIKey), cfg.SiteURL)

	h := handler.New(pool, cfg.FrontendURL)
	authHandler := handler.NewAuthHandler(authService, sessionService, handler.AuthConfig{
		GoogleClientID:     cfg.GoogleClientID,
		GoogleClientSecret: cfg.GoogleClientSecret,
		GitHubClientID:     cfg.GitHubClientID,
		GitHubClientSecret: cfg.GitHubClientSecret,
		BackendURL:         cfg.BackendURL,
		FrontendURL:        cfg.FrontendURL,
		Secure:             cfg.IsProduction(),
		EnableEmail:        cfg.EnableEmailLogin,
	})
	providersHandler := handler.NewProvidersHandler(handler.ProvidersConfig{
		GoogleClientID: cfg.GoogleClientID,
		GitHubClientID: cfg.GitHubClientID,
		EnableEmail:    cfg.EnableEmailLogin,
	})
	meHandler := handler.NewMeHandler(userRepo, sessionService, adminEmails)
	contactHandler := handler.NewContactHandler(contactService, m)
	relayHandler := handler.NewRelayHandler(notificationService, cfg.RelaySecret)
	scrapeHandler := handler.NewScrapeHandler(scrapeService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	showcaseHandler := handler.NewShowcaseHandler(showcaseService)
	contentHandler := handler.NewContentHandler(catalog)
	pageViewHandler := handler.NewPageViewHandler(pageViewService, m, cfg.IsProduction())

	writeLimiter := handler.NewRateLimiter(ctx, cfg.RateLimitPerMinute)
	pageViewLimiter := handler.NewRateLimiter(ctx, 60)
	limited := func(fn http.HandlerFunc) http.Handler {
		return writeLimiter.Middleware(fn)
	}

	requireAuth := auth.RequireAuth(sessionService)
	withAdmin := auth.AdminMiddleware(adminEmails, func(ctx context.Context, userID string) (string, bool, error) {
		u, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return "", false, err
		}
		return u.Email, u.IsVerified(), nil
	})
	// Admin handlers check the admin flag themselves and answer 403.
	admin := func(fn http.HandlerFunc) http.Handler {
		return requireAuth(withAdmin(fn))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("GET /metrics", m.Handler())

	// Auth
	mux.HandleFunc("GET /api/auth/providers", providersHandler.Providers)
	mux.HandleFunc("GET /api/auth/google/login", authHandler.GoogleLoginURL)
	mux.HandleFunc("GET /api/auth/google/callback", authHandler.GoogleCallback)
	mux.HandleFunc("GET /api/auth/github/login", authHandler.GitHubLoginURL)
	mux.HandleFunc("GET /api/auth/github/callback", authHandler.GitHubCallback)
	if cfg.EnableEmailLogin {
		mux.Handle("POST /api/auth/signup", limited(authHandler.SignUp))
		mux.Handle("POST /api/auth/signin", limited(authHandler.SignIn))
		mux.HandleFunc("GET /api/auth/verify", authHandler.VerifyEmail)
		mux.Handle("POST /api/auth/verify/resend", limited(authHandler.ResendVerification))
	}
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/me", meHandler.Me)

	// Public site
	mux.Handle("POST /api/contact", limited(contactHandler.Submit))
	mux.HandleFunc("GET /api/reviews", reviewHandler.List)
	mux.Handle("POST /api/reviews", writeLimiter.Middleware(requireAuth(http.HandlerFunc(reviewHandler.Submit))))
	mux.HandleFunc("GET /api/projects", showcaseHandler.Projects)
	mux.HandleFunc("GET /api/team", showcaseHandler.Team)
	mux.HandleFunc("GET /api/blog", contentHandler.Blog)
	mux.HandleFunc("GET /api/blog/{slug}", contentHandler.BlogPost)
	mux.HandleFunc("GET /api/services", contentHandler.Services)
	mux.Handle("POST /api/page-views", pageViewLimiter.Middleware(http.HandlerFunc(pageViewHandler.Record)))

	// Functions
	mux.HandleFunc("POST /api/functions/notify-contact", relayHandler.NotifyContact)
	mux.Handle("POST /api/functions/firecrawl", admin(scrapeHandler.Firecrawl))

	// Admin
	mux.Handle("GET /api/admin/contacts", admin(contactHandler.AdminList))
	mux.Handle("GET /api/admin/contacts/{id}", admin(contactHandler.AdminGet))
	mux.Handle("PATCH /api/admin/contacts/{id}/status", admin(contactHandler.UpdateStatus))
	mux.Handle("DELETE /api/admin/contacts/{id}", admin(contactHandler.Delete))
	mux.Handle("GET /api/admin/reviews", admin(reviewHandler.AdminList))
	mux.Handle("PATCH /api/admin/reviews/{id}/approval", admin(reviewHandler.SetApproval))
	mux.Handle("DELETE /api/admin/reviews/{id}", admin(reviewHandler.Delete))
	mux.Handle("POST /api/admin/index-site", admin(scrapeHandler.IndexSite))

	root := handler.Recovery(handler.RequestID(handler.RequestLogger(
		h.CORS(handler.SecurityHeaders(m.Instrument(mux))))))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go purgeSessions(ctx, sessionService)

	go func() {
		slog.Info("server listening", "addr", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

// purgeSessions deletes expired sessions until ctx is done.
func purgeSessions(ctx context.Context, sessions *service.SessionService) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.PurgeExpired(ctx)
			if err != nil {
				slog.Warn("session purge failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired sessions purged", "count", n)
			}
		}
	}
}
