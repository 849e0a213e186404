package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"com.martdev.newsroom/config"
	"com.martdev.newsroom/docs"
	authmiddleware "com.martdev.newsroom/internal/api/middleware"
	newshandler "com.martdev.newsroom/internal/api/news"
	"com.martdev.newsroom/internal/auth"
	"com.martdev.newsroom/internal/auth/jwt"
	"com.martdev.newsroom/internal/database"
	"com.martdev.newsroom/internal/events"
	"com.martdev.newsroom/internal/metrics"
	newsservice "com.martdev.newsroom/internal/service/news"
	"com.martdev.newsroom/internal/tracing"
	"com.martdev.newsroom/internal/util"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// @title						Newsroom API
// @description				API for Newsroom. Admins publish news articles and every authenticated user reads them.
// @termsOfService				http://swagger.io/terms/
//
// @contact.name				API Support
// @contact.url				http://www.swagger.io/support
// @contact.email				support@swagger.io
//
// @host						localhost
// @BasePath					/v1
//
// @securityDefinitions.apikey	ApiKeyAuth
// @in							header
// @name						Authorization
// @description
func main() {
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	db, err := database.NewPostgreInstance(
		config.Config.DB.Addr,
		config.Config.DB.MaxOpenConns,
		config.Config.DB.MaxIdleConns,
		config.Config.DB.MaxIdleTime,
	)
	if err != nil {
		logger.Fatalf("db error - %s", err)
	}
	defer db.Close()
	logger.Info("data connection pool established")

	storage := database.NewStorage(db)

	tp, err := tracing.InitTracer(context.Background(), config.Config.Tracing.Endpoint, logger)
	if err != nil {
		logger.Fatalf("tracing error - %s", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warnw("failed to flush traces", "error", err)
		}
	}()

	jwtAuthenticator, err := jwt.NewJWTAuthenticator(
		config.Config.AuthConfig.Secret,
		config.Config.AuthConfig.Aud,
		config.Config.AuthConfig.Iss,
	)
	if err != nil {
		logger.Fatalf("auth error - %s", err)
	}

	var publisher events.NewsPublisher = events.NoopPublisher{}
	if config.Config.NATS.URL != "" {
		natsPublisher, err := events.NewNATSPublisher(config.Config.NATS.URL, config.Config.NATS.ConnectTimeout, logger)
		if err != nil {
			logger.Fatalf("nats error - %s", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	} else {
		logger.Info("NATS_URL not set, news events are disabled")
	}

	m := metrics.New()
	service := newsservice.NewNewsService(
		storage.News,
		auth.DefaultAuthorizer(),
		logger,
		newsservice.WithPublisher(publisher),
		newsservice.WithRecorder(m),
	)
	identity := auth.NewTokenIdentityProvider(jwtAuthenticator, storage.User)

	mux := newRouter(newshandler.NewHandler(service, logger), identity, m, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runServer(ctx, mux, logger); err != nil {
		logger.Errorw("server stopped with error", "error", err)
	}
}

func newRouter(news *newshandler.Handler, identity authmiddleware.CallerResolver, m *metrics.Metrics, logger *zap.SugaredLogger) *chi.Mux {
	mux := getChiMux(m)

	mux.Handle("/metrics", m.Handler())
	mux.Route("/v1", func(r chi.Router) {
		r.Get("/health", healthCheckHandler(logger))
		docsURL := "/v1/swagger/doc.json"
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.Group(func(r chi.Router) {
			r.Use(authmiddleware.Authenticate(identity, logger))
			news.RegisterRoutes(r)
		})
	})
	return mux
}

func getChiMux(m *metrics.Metrics) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(tracing.Middleware)
	r.Use(m.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.Config.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Timeout(60 * time.Second))

	return r
}

func runServer(ctx context.Context, mux http.Handler, logger *zap.SugaredLogger) error {
	docs.SwaggerInfo.Host = config.Config.Addr
	docs.SwaggerInfo.BasePath = "/v1"
	srv := &http.Server{
		Addr:         config.Config.Addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infow("server has started", "addr", config.Config.Addr)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// healthcheckHandler godoc
//
//	@Summary		Healthcheck
//	@Description	Healthcheck endpoint
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	string	"ok"
//	@Router			/health [get]
func healthCheckHandler(logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status": "ok",
		}

		if err := util.JSONResponse(w, http.StatusOK, data); err != nil {
			util.InternalServerErrorResponse(w, r, err, logger)
		}
	}
}
