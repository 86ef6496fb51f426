package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mkotelnikov/inventory_service/internal/events"
	"github.com/mkotelnikov/inventory_service/internal/httpserver"
	"github.com/mkotelnikov/inventory_service/internal/models"
	"github.com/mkotelnikov/inventory_service/internal/repo"
	"github.com/mkotelnikov/inventory_service/internal/repo/memory"
	"github.com/mkotelnikov/inventory_service/internal/search"
	"github.com/mkotelnikov/inventory_service/internal/service"
	pkgcfg "github.com/mkotelnikov/inventory_service/pkg/config"
	pkgdb "github.com/mkotelnikov/inventory_service/pkg/db"
	"github.com/mkotelnikov/inventory_service/pkg/logging"
	loggingmw "github.com/mkotelnikov/inventory_service/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := pkgcfg.Load()
	pkgcfg.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	store, closeDB := openStore(cfg)
	defer closeDB()

	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
	}

	var searchClient *search.Client
	if cfg.ESURL != "" {
		sc, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword, cfg.ESIndex)
		if err != nil {
			log.Printf("warning: search disabled: %v", err)
		} else {
			searchClient = sc
		}
	}

	orderSvc := &service.OrderService{Catalog: store, Orders: store, Events: publisher}
	catalogSvc := &service.CatalogService{Repo: store, Categories: store, Search: searchClient}
	accountSvc := &service.AccountService{Repo: store}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		OrderHandler:    &httpserver.OrderHTTP{Svc: orderSvc},
		ItemHandler:     &httpserver.ItemHTTP{Svc: catalogSvc},
		CategoryHandler: &httpserver.CategoryHTTP{Svc: catalogSvc},
		AccountHandler:  &httpserver.AccountHTTP{Svc: accountSvc},
		JWTSecret:       cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("inventory listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	log.Println("inventory stopped")
}

func openStore(cfg pkgcfg.Config) (repo.Store, func()) {
	if cfg.DBDriver == "memory" {
		return memory.New(), func() {}
	}

	pkgcfg.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{}, &models.Admin{}, &models.Category{},
		&models.Item{}, &models.Order{}, &models.OrderItem{},
	); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return &repo.GormRepo{DB: db}, closeDB
}
