package main

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/chetan-code/planner/internal/auth"
	"github.com/chetan-code/planner/internal/config"
	"github.com/chetan-code/planner/internal/handler"
	"github.com/chetan-code/planner/internal/repository"
	"github.com/chetan-code/planner/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

func setupSlog() {
	//Json handler that writes to standard out
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(h))
}

func loadConfig() config.Config {
	//.env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		slog.Info("env_file_loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initDB(dsn string) *gorm.DB {
	db, err := repository.NewDB(dsn)
	if err != nil {
		slog.Error("database_initialization_failed", "error", err)
		os.Exit(1)
	}
	slog.Info("database_initialization_success", "dsn", dsn)
	return db
}

func loggerMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		//logging completion of a request
		slog.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"ip", r.RemoteAddr,
			"duration", time.Since(start).String(),
		)
	})
}

func startServer(addr string, mux http.Handler) {
	slog.Info("server_start", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("server_start_failed", "error", err)
		os.Exit(1)
	}
}

func main() {
	//structured logging
	setupSlog()

	cfg := loadConfig()

	db := initDB(cfg.DatabaseURL)

	tokens, err := auth.NewTokenService(cfg.TokenSecret, cfg.TokenAlgorithm, cfg.TokenTTL)
	if err != nil {
		slog.Error("token_service_creation_failed", "error", err)
		os.Exit(1)
	}

	svc := service.New(db, tokens, cfg.Location)
	resolver := auth.NewResolver(tokens, svc.Users())

	templates, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		slog.Error("templates_load_failed", "error", err)
		os.Exit(1)
	}

	api := handler.NewAPIHandler(svc)
	web := handler.NewWebHandler(svc, templates)

	mux := handler.Routes(api, web, resolver)

	startServer(cfg.Addr, loggerMW(mux))
}
