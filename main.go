package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	invapp "playcafe-cloud/internal/inventory/application"
	invrepo "playcafe-cloud/internal/inventory/infrastructure/postgres"
	invhttp "playcafe-cloud/internal/inventory/interfaces/http"
	"playcafe-cloud/internal/observability/metrics"
	"playcafe-cloud/internal/pricing"
	reportapp "playcafe-cloud/internal/reporting/application"
	reportinterfaces "playcafe-cloud/internal/reporting/interfaces"
	sessionapp "playcafe-cloud/internal/session/application"
	sessionrepo "playcafe-cloud/internal/session/infrastructure/postgres"
	sessionhttp "playcafe-cloud/internal/session/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)

	location, err := time.LoadLocation(cfg.ReportTZ)
	if err != nil {
		logger.Fatalf("report timezone error: %v", err)
	}

	tariff, err := pricing.LoadTariffTable()
	if err != nil {
		logger.Fatalf("tariff config error: %v", err)
	}
	if cfg.Currency != "" {
		tariff.Currency = cfg.Currency
	}
	logger.Printf("tariff loaded: currency=%s tiers=%d grace=%dm", tariff.Currency, len(tariff.Tiers), tariff.GraceMinutes)

	clock := sessionapp.SystemClock{}

	sessionsRepo := sessionrepo.NewSessionRepository(db)
	sessionService, err := sessionapp.NewSessionService(sessionsRepo, tariff, clock)
	if err != nil {
		logger.Fatalf("session service error: %v", err)
	}
	sessionHandler, err := sessionhttp.NewHandler(sessionService, clock, location)
	if err != nil {
		logger.Fatalf("session handler error: %v", err)
	}

	reportService, err := reportapp.NewReportService(sessionsRepo, sessionService, clock, location)
	if err != nil {
		logger.Fatalf("report service error: %v", err)
	}
	reportHandler, err := reportinterfaces.NewReportHandler(reportService, tariff.Currency)
	if err != nil {
		logger.Fatalf("report handler error: %v", err)
	}

	inventoryRepo := invrepo.NewInventoryRepository(db)
	inventoryService, err := invapp.NewInventoryService(inventoryRepo, invapp.SystemClock{}, cfg.ControllersTotal)
	if err != nil {
		logger.Fatalf("inventory service error: %v", err)
	}
	inventoryHandler, err := invhttp.NewHandler(inventoryService)
	if err != nil {
		logger.Fatalf("inventory handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/sessions", sessionHandler)
	mux.Handle("/api/v1/sessions/", sessionHandler)
	mux.Handle("/api/v1/reports", reportHandler)
	mux.Handle("/api/v1/reports/", reportHandler)
	mux.Handle("/api/v1/shift-end", reportHandler)
	mux.Handle("/api/v1/inventory/controllers", inventoryHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(mux, logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL      string
	HTTPAddr         string
	Currency         string
	ReportTZ         string
	ControllersTotal int
}

func loadConfig() config {
	cfg := config{
		DatabaseURL:      getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:         getenvDefault("HTTP_ADDR", ":8080"),
		Currency:         getenvDefault("CURRENCY", ""),
		ReportTZ:         getenvDefault("REPORT_TZ", "Local"),
		ControllersTotal: getenvIntDefault("CONTROLLERS_TOTAL", 8),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
