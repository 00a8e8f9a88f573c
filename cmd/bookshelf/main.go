package main

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
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hustwenchao/bookshelf/modules/bookshelf"
	"github.com/hustwenchao/bookshelf/pkg/clientip"
	"github.com/hustwenchao/bookshelf/pkg/cookie"
	"github.com/hustwenchao/bookshelf/pkg/environment"
	"github.com/hustwenchao/bookshelf/pkg/httpserver"
	"github.com/hustwenchao/bookshelf/pkg/logger"
	"github.com/hustwenchao/bookshelf/pkg/metrics"
	"github.com/hustwenchao/bookshelf/pkg/mongo"
	"github.com/hustwenchao/bookshelf/pkg/ratelimiter"
	"github.com/hustwenchao/bookshelf/pkg/requestid"
	"github.com/hustwenchao/bookshelf/svc/auth"
	"github.com/hustwenchao/bookshelf/svc/books"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("bookshelf stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfigs()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	env := environment.Parse(cfg.app.Env)
	log := logger.New(
		logger.WithEnvironment(env, cfg.app.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
	)
	slog.SetDefault(log)

	allow, err := auth.ParseAllowList(cfg.app.AdminAllowList)
	if err != nil {
		return err
	}

	client, db, err := mongo.ConnectDatabase(ctx, cfg.mongo)
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Error("mongodb disconnect failed", logger.Error(err))
		}
	}()

	cookies, err := cookie.NewFromConfig(cfg.cookie, cookie.WithSecure(cfg.cookie.Secure || !env.IsDevelopment()))
	if err != nil {
		return fmt.Errorf("cookie manager: %w", err)
	}
	sessions, err := auth.NewSessionManager(cfg.session, cookies, auth.WithSecureCookie(!env.IsDevelopment()))
	if err != nil {
		return fmt.Errorf("session manager: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	var adapters []auth.ProviderAdapter
	if cfg.github.Enabled() {
		adapters = append(adapters, auth.NewGitHubAdapter(cfg.github))
	}
	if cfg.google.Enabled() {
		adapters = append(adapters, auth.NewGoogleAdapter(cfg.google))
	}
	if len(adapters) == 0 {
		log.Warn("no identity provider configured, sign-in is unavailable")
	}

	users := auth.NewMongoUserStorage(db)
	authSvc := auth.NewService(
		auth.NewRoleResolver(allow, users,
			auth.WithVerifiedOnly(cfg.app.VerifiedOnly),
			auth.WithResolverLogger(log),
		),
		sessions,
		users,
		auth.WithProviders(adapters...),
		auth.WithServiceLogger(log),
		auth.WithServiceMetrics(collector),
	)
	guard := auth.NewGuard(sessions, auth.WithGuardMetrics(collector), auth.WithGuardLogger(log))
	authHandler := auth.NewHandler(authSvc, sessions, guard, cookies,
		auth.WithSuccessPage(cfg.app.SuccessPage),
		auth.WithErrorPage(cfg.app.ErrorPage),
		auth.WithHandlerLogger(log),
	)

	booksHandler := books.NewHandler(
		books.NewService(books.NewMongoStorage(db), books.WithLogger(log), books.WithMetrics(collector)),
		books.WithMiddleware(guard.RequireSession),
		books.WithHandlerLogger(log),
	)

	limiter := ratelimiter.New(cfg.rateLimiter)
	go limiter.Run(ctx)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(env),
		collector.Middleware,
	)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, httpserver.Check{
		Name: "mongodb",
		Fn:   mongo.Healthcheck(client),
	}))
	r.Handle("/metrics", metrics.Handler(reg))

	r.Mount("/", bookshelf.Router(bookshelf.RouterOptions{
		Auth:            authHandler,
		AuthMiddlewares: []func(http.Handler) http.Handler{ratelimiter.Middleware(limiter, ratelimiter.ByIP)},
		Admin:           bookshelf.MountFunc(authHandler.AdminHandle),
		Books:           booksHandler,
	}))

	log.Info("starting bookshelf",
		slog.String("env", env.String()),
		slog.Any("providers", authSvc.Providers()),
		slog.Int("admin_allow_list", len(allow)),
	)

	return httpserver.NewFromConfig(cfg.http, httpserver.WithLogger(log)).Run(ctx, r)
}
