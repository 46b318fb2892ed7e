package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/vivero/internal/admin"
	"github.com/Skotchmaster/vivero/internal/auth"
	"github.com/Skotchmaster/vivero/internal/cart"
	"github.com/Skotchmaster/vivero/internal/catalog"
	"github.com/Skotchmaster/vivero/internal/checkout"
	"github.com/Skotchmaster/vivero/internal/events"
	"github.com/Skotchmaster/vivero/internal/httpserver"
	"github.com/Skotchmaster/vivero/internal/media"
	"github.com/Skotchmaster/vivero/internal/mykafka"
	"github.com/Skotchmaster/vivero/internal/search"
	"github.com/Skotchmaster/vivero/internal/storage"
	"github.com/Skotchmaster/vivero/pkg/config"
	pkgdb "github.com/Skotchmaster/vivero/pkg/db"
	"github.com/Skotchmaster/vivero/pkg/logging"
	"github.com/Skotchmaster/vivero/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/vivero/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("notice: .env not loaded: %v", err)
	}

	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustPort(cfg.ServerPort, "SERVER_PORT")
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	store, ready, closeStore, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer closeStore()

	catalogBus := events.NewBus[catalog.Change]()
	cartBus := events.NewBus[cart.Event]()
	authBus := events.NewBus[auth.Event]()
	checkoutBus := events.NewBus[checkout.Completed]()

	catalogStore, err := catalog.NewStore(ctx, store, catalogBus)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	authStore, err := auth.NewStore(ctx, store, auth.Options{Delay: cfg.LoginDelay, Events: authBus})
	if err != nil {
		log.Fatalf("auth: %v", err)
	}
	cartStore := cart.NewStore(cartBus)
	flow := checkout.NewFlow(cartStore, cfg.CheckoutDelay, checkoutBus)

	var searcher search.Searcher = &search.Memory{Catalog: catalogStore}
	if cfg.ESURL != "" {
		es, err := search.NewElastic(ctx, cfg.ESURL, cfg.ESUser, cfg.ESPassword, cfg.ESIndex)
		if err != nil {
			logger.Warn("elasticsearch_unavailable", "url", cfg.ESURL, "error", err)
		} else {
			if err := es.Sync(ctx, catalogStore.All()); err != nil {
				logger.Warn("elasticsearch_sync_failed", "error", err)
			}
			defer es.Watch(catalogBus)()
			searcher = es
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		prod, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		defer func() {
			if err := prod.Close(); err != nil {
				logger.Warn("kafka_close_failed", "error", err)
			}
		}()
		defer mykafka.Forward(prod, mykafka.Buses{
			Catalog:  catalogBus,
			Cart:     cartBus,
			Auth:     authBus,
			Checkout: checkoutBus,
		})()
	}

	dashboard := &admin.Dashboard{Catalog: catalogStore}
	if cfg.CloudinaryURL != "" {
		up, err := media.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("cloudinary: %v", err)
		}
		dashboard.Uploader = up
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: true,
			ExposeHeaders:    []string{"X-CSRF-Token"},
		}))
	} else {
		e.Use(echomw.CORS())
	}
	if cfg.CSRF {
		e.Use(csrf.Middleware(csrf.Config{SkipPrefixes: []string{"/health"}}))
	}

	httpserver.Register(e, &httpserver.Deps{
		SessionHandler:  &httpserver.SessionHTTP{Auth: authStore, JWTSecret: cfg.JWTSecret, TTL: cfg.SessionTTL},
		CatalogHandler:  &httpserver.CatalogHTTP{Catalog: catalogStore, Search: searcher},
		CartHandler:     &httpserver.CartHTTP{Cart: cartStore, Catalog: catalogStore, Checkout: flow},
		CheckoutHandler: &httpserver.CheckoutHTTP{Flow: flow},
		AdminHandler:    &httpserver.AdminHTTP{Dashboard: dashboard},
		JWTSecret:       cfg.JWTSecret,
		Sessions:        authStore,
		Ready:           ready,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_failed", "error", err)
	}

	logger.Info("server_stopped")
}

// openStorage returns the state mirror selected by DATABASE_URL, a readiness
// probe for it and a func releasing it.
func openStorage(ctx context.Context, cfg config.Config) (storage.Storage, func(context.Context) error, func(), error) {
	if cfg.DatabaseURL == pkgdb.Memory {
		return storage.NewMemoryStore(), nil, func() {}, nil
	}

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := pkgdb.Open(openCtx, cfg.DatabaseURL, cfg.DBDriver)
	if err != nil {
		return nil, nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := storage.NewGormStore(db)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}

	return store, sqlDB.PingContext, func() { _ = sqlDB.Close() }, nil
}
