package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"label-printer/internal/core/cache"
	"label-printer/internal/core/config"
	"label-printer/internal/core/httpclient"
	"label-printer/internal/core/logger"
	"label-printer/internal/core/proxy"
	"label-printer/internal/core/server"
	labeladapter "label-printer/internal/features/labels/adapters"
	"label-printer/internal/features/labels/document"
	labelhandler "label-printer/internal/features/labels/handler"
	labelports "label-printer/internal/features/labels/ports"
	labelservice "label-printer/internal/features/labels/service"
	"label-printer/internal/features/labels/symbol"
	"label-printer/internal/features/labels/templates"
	orderadapter "label-printer/internal/features/orders/adapters"
	orderhandler "label-printer/internal/features/orders/handler"
	orderservice "label-printer/internal/features/orders/service"

	"go.uber.org/zap"
)

// @title Label Printer API
// @version 1.0
// @description Generates shipping labels for orders and returns print-ready HTML or PDF documents.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	proxySettings := proxy.Settings(cfg.Proxy)
	client := httpclient.NewClient(cfg.OrderAPI.Timeout(),
		httpclient.WithRateLimit(cfg.OrderAPI.RequestsPerSecond),
		httpclient.WithProxy(proxySettings.FullURL()),
	)

	store := newCache(cfg.Redis)
	defer store.Close()

	// Order backend
	backend := orderadapter.NewBackendAdapter(cfg.OrderAPI, client)
	healthCtx, cancel := context.WithTimeout(context.Background(), cfg.OrderAPI.Timeout())
	if err := backend.HealthCheck(healthCtx); err != nil {
		l.Warn("Order backend health check failed", zap.Error(err))
	} else {
		l.Info("Order backend connection verified")
	}
	cancel()
	source := orderadapter.NewCachedSource(backend, store, cfg.Redis.OrderCacheTTL())
	orderHdl := orderhandler.NewOrderHandler(orderservice.NewOrderService(source))

	// Label pipeline
	qr := newQREncoder(cfg.Labels, proxySettings.FullURL())

	presenters := map[labelports.Output]labelports.Presenter{
		labelports.OutputHTML: labeladapter.NewHTMLPresenter(true),
		labelports.OutputPDF:  labeladapter.NewPDFPresenter(cfg.Printer, proxySettings),
	}

	labelSvc := labelservice.NewPrintService(
		labelservice.NewAssembler(source, labelservice.WithConcurrency(cfg.Labels.BatchConcurrency)),
		templates.NewCatalog(),
		symbol.NewEncoder(qr),
		presenters,
		labeladapter.NewRedisJobRepository(store, cfg.Redis.JobTTL()),
		labelservice.Config{
			DefaultCarrier: cfg.Labels.DefaultCarrier,
			DefaultFormat:  cfg.Labels.DefaultPageFormat,
			Document: document.Options{
				Sender: document.Sender{
					Name:    cfg.Sender.Name,
					Phone:   cfg.Sender.Phone,
					Address: cfg.Sender.Address,
				},
				Location: cfg.Location(),
				FontURL:  cfg.Printer.FontURL,
			},
		},
	)
	labelHdl := labelhandler.NewLabelHandler(labelSvc, cfg.Printer.Timeout())

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/orders/:id", orderHdl.GetOrder)
	labelHdl.RegisterRoutes(srv.App)

	go func() {
		if err := srv.Run(); err != nil {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down")
	if err := srv.Shutdown(); err != nil {
		l.Error("Shutdown failed", zap.Error(err))
	}
}

// newQREncoder returns the remote QR service encoder, or nil to render locally. The service gets
// its own client so QR fetches neither spend the order backend's rate budget nor inherit its timeout.
func newQREncoder(cfg config.LabelsConfig, proxyURL string) symbol.QREncoder {
	if cfg.QRServiceURL == "" {
		return nil
	}
	logger.Get().Info("Using remote QR service")
	client := httpclient.NewClient(cfg.QRServiceTimeout(), httpclient.WithProxy(proxyURL))
	return symbol.NewRemoteQR(client, cfg.QRServiceURL)
}

// newCache connects to Redis when configured. Without Redis the service runs with caching disabled.
func newCache(cfg config.RedisConfig) cache.Cache {
	l := logger.Get()
	if cfg.URL == "" {
		l.Info("Redis not configured, caching disabled")
		return cache.Nop{}
	}

	adapter, err := cache.NewRedisAdapter(cfg.URL, "label-printer:")
	if err != nil {
		l.Warn("Invalid Redis URL, caching disabled", zap.Error(err))
		return cache.Nop{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := adapter.Ping(ctx); err != nil {
		l.Warn("Redis unreachable, caching disabled", zap.Error(err))
		adapter.Close()
		return cache.Nop{}
	}
	l.Info("Redis connection verified")
	return adapter
}
