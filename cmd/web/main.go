// cmd/web/main.go
//
// BrainPlay platform – HTTP entry point.
//
// Request life-cycle
// ------------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load config (koanf: yaml + BP_ env overlay).
//
//  4. Open the Postgres store pool and the Redis cache client; Redis
//     being down only degrades the cache to always-miss.
//
//  5. Build the tenant resolver (cache → store, singleflight) and the
//     request gate.
//
//  6. Assemble the apex router: provisioning API, health, metrics.
//     Every request first passes the gate: apex traffic flows through,
//     live-tenant traffic is rewritten to /<subdomain>/…, everything
//     else is redirected to the apex root.
//
//  7. Serve with hardened timeouts; SIGINT/SIGTERM drains in-flight
//     requests, then closes Redis and the DB pool.
//
// Large comment blocks are framed by blank “//” lines; inline comments
// use a single “//”.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brainplaykids/platform/internal/admin"
	"github.com/brainplaykids/platform/internal/cache"
	"github.com/brainplaykids/platform/internal/config"
	"github.com/brainplaykids/platform/internal/database"
	"github.com/brainplaykids/platform/internal/gate"
	"github.com/brainplaykids/platform/internal/logger"
	"github.com/brainplaykids/platform/internal/server"
	"github.com/brainplaykids/platform/internal/tenant"
)

const serverEnvPath = "/usr/local/etc/brainplay/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	//
	// ── 1.  Store and cache connections ─────────────────────────────────
	//
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		logOut.Fatalf("connect store: %v", err)
	}
	logOut.Infow("store online")

	rdb := cache.Connect(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	//
	// ── 2.  Resolver and gate ───────────────────────────────────────────
	//
	store := tenant.NewSQLStore(db)
	resolver := tenant.NewResolver(
		store,
		tenant.NewRedisCache(rdb),
		time.Duration(cfg.Redis.TenantTTLSeconds)*time.Second,
	)
	g := gate.New(resolver, cfg.Platform.RootDomain)

	//
	// ── 3.  Apex router ─────────────────────────────────────────────────
	//
	r := chi.NewRouter()

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/health/db", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	adminAPI := admin.NewHandler(store, resolver)
	r.Route("/api/tenants", func(r chi.Router) {
		r.Use(admin.RequireAdmin([]byte(cfg.Platform.AdminJWTSecret)))
		r.Mount("/", adminAPI.Routes())
	})

	// Rewritten tenant traffic lands here with the tenant in context;
	// the page-routing layer owns the real rendering and is out of this
	// binary's scope.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if t, ok := tenant.FromContext(req.Context()); ok {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("workspace: " + t.Name + "\n"))
			return
		}
		http.NotFound(w, req)
	})

	//
	// ── 4.  Gate (and optional HTTPS enforcement) in front ──────────────
	//
	var handler http.Handler = g.Middleware(r)
	if cfg.HTTP.ForceHTTPS {
		handler = gate.ForceHTTPS(handler)
	}

	//
	// ── 5.  Serve until signalled ───────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, handler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr, "root_domain", cfg.Platform.RootDomain)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logOut.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logOut.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logOut.Errorw("shutdown", "err", err)
	}

	cache.Close(rdb)
	if err := db.Close(); err != nil {
		logOut.Errorw("close store", "err", err)
	}
	logOut.Infow("bye")
}
