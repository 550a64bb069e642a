package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"paybyrd-bridge/internal/config"
	"paybyrd-bridge/internal/db"
	"paybyrd-bridge/internal/locale"
	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/metrics"
	"paybyrd-bridge/internal/middleware"
	"paybyrd-bridge/internal/notify"
	"paybyrd-bridge/internal/order"
	"paybyrd-bridge/internal/paybyrd"
	"paybyrd-bridge/internal/payment"
	"paybyrd-bridge/internal/payment/handler"
	"paybyrd-bridge/internal/payment/webhook"
	"paybyrd-bridge/internal/settings"
	"paybyrd-bridge/internal/transport"
	"paybyrd-bridge/internal/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(addr string, h http.Handler) error {
		srv := &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return srv.ListenAndServe()
	}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	addr := ":" + cfg.AppPort
	logger.L().Info("paybyrd bridge listening",
		zap.String("addr", addr),
		zap.String("store_url", cfg.StoreURL),
		zap.Int("store_scope", cfg.StoreScope),
	)
	return startServerFunc(addr, router)
}

// routes are the endpoint handlers setupRouter mounts.
type routes struct {
	Webhook       http.HandlerFunc
	PaymentReturn http.HandlerFunc
	Checkout      http.HandlerFunc
	Refund        http.HandlerFunc
	GetSettings   http.HandlerFunc
	SaveSettings  http.HandlerFunc
}

func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	m := metrics.NewRegistry()

	orders := order.NewRepository(database)
	settingsRepo := settings.NewRepository(database)
	client := paybyrd.NewClient(paybyrd.Options{
		APIURL:        cfg.PaybyrdAPIURL,
		WebhookAPIURL: cfg.PaybyrdWebhookAPIURL,
		Timeout:       cfg.PaybyrdTimeout,
		Metrics:       m,
	})
	reconciler := payment.NewReconciler(orders, m)

	h := &handler.Handler{
		Settings:     settingsRepo,
		Scope:        cfg.StoreScope,
		Orders:       orders,
		Client:       client,
		Reconciler:   reconciler,
		Checkout:     payment.NewCheckoutInitiator(client, cfg.ReturnURL(), cfg.PaybyrdHostedFormURL),
		Refunder:     payment.NewRefunder(client, orders),
		Configurator: payment.NewConfigurator(client, settingsRepo, cfg.WebhookURL()),
		Localizer:    locale.NewCatalog(),
		Notifier:     notify.NewFlashNotifier(),
	}
	wh := webhook.NewWebhookHandler(settingsRepo, cfg.StoreScope, reconciler, payment.NewWebhookRepository(database), m)

	limiter := middleware.NewRateLimiter()
	go limiter.Run(nil)

	return setupRouter(cfg.AdminJWTSecret, limiter, m, routes{
		Webhook:       wh.PaymentWebhookHandler,
		PaymentReturn: h.PaymentReturnHandler,
		Checkout:      h.CheckoutHandler,
		Refund:        h.RefundHandler,
		GetSettings:   h.GetSettingsHandler,
		SaveSettings:  h.SaveSettingsHandler,
	})
}

func setupRouter(adminSecret string, limiter *middleware.RateLimiter, m *metrics.Registry, rt routes) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(limiter.Middleware)
	r.Use(transport.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Post("/webhook", rt.Webhook)
	r.Get("/payment/return", rt.PaymentReturn)
	r.Get("/checkout/{orderId}", rt.Checkout)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(adminSecret))

		r.Post("/orders/{orderId}/refund", rt.Refund)
		r.Get("/settings", rt.GetSettings)
		r.Post("/settings", rt.SaveSettings)
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			utils.WriteJSON(w, http.StatusOK, m.Snapshot())
		})
	})

	return r
}
