package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/game-sales-sheets/auth"
	"github.com/diewo77/game-sales-sheets/gate"
	"github.com/diewo77/game-sales-sheets/httpx"
	"github.com/diewo77/game-sales-sheets/internal/config"
	"github.com/diewo77/game-sales-sheets/internal/handlers"
	"github.com/diewo77/game-sales-sheets/internal/metrics"
	"github.com/diewo77/game-sales-sheets/internal/middleware"
	"github.com/diewo77/game-sales-sheets/internal/models"
	"github.com/diewo77/game-sales-sheets/internal/policy"
	"github.com/diewo77/game-sales-sheets/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	auth.Configure(cfg.SessionSecret, time.Duration(cfg.SessionTTL)*time.Hour)

	// Configure a user verifier so RequireAuth drops sessions of deleted accounts.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	g := policy.New()
	accounts := services.NewAccountService(db)
	sheetSvc := services.NewSheetService(db)

	authHandler := handlers.NewAuthHandler(accounts)
	gameHandler := handlers.NewGameHandler(db)
	sheetHandler := handlers.NewSheetHandler(sheetSvc)
	gerantHandler := handlers.NewGerantHandler(accounts)
	dashHandler := handlers.NewDashboardHandler(sheetSvc)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("/metrics", metrics.Handler())

	// Auth endpoints
	mux.HandleFunc("/login", authHandler.Login)
	mux.HandleFunc("/logout", authHandler.Logout)
	mux.Handle("/me", auth.RequireAuth(http.HandlerFunc(authHandler.Me)))
	mux.HandleFunc("/sections", authHandler.Sections)

	// Catalog: reads for both roles, writes owner-only.
	mux.Handle("/games", auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			gameHandler.List(w, r)
		case http.MethodPost:
			policy.Require(g, gate.ActionCreate, policy.ResourceGame, http.HandlerFunc(gameHandler.Create)).ServeHTTP(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})))
	mux.Handle("/games/update", auth.RequireAuth(policy.Require(g, gate.ActionUpdate, policy.ResourceGame, http.HandlerFunc(gameHandler.Update))))
	mux.Handle("/games/delete", auth.RequireAuth(policy.Require(g, gate.ActionDelete, policy.ResourceGame, http.HandlerFunc(gameHandler.Delete))))

	// Daily sheets
	mux.Handle("/sheets", auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		sheetHandler.List(w, r)
	})))
	mux.Handle("/sheets/today", auth.RequireAuth(http.HandlerFunc(sheetHandler.Today)))
	mux.Handle("/sheets/today/sales", auth.RequireAuth(http.HandlerFunc(sheetHandler.AddSale)))
	mux.Handle("/sheets/delete-all", auth.RequireAuth(policy.Require(g, gate.ActionDelete, policy.ResourceSheet, http.HandlerFunc(sheetHandler.DeleteAll))))
	mux.Handle("/sheets/export", auth.RequireAuth(http.HandlerFunc(sheetHandler.Export)))

	// Dashboard metrics
	mux.Handle("/dashboard", auth.RequireAuth(http.HandlerFunc(dashHandler.Metrics)))

	// Gérant accounts (owner-only)
	mux.Handle("/gerants", auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			policy.Require(g, gate.ActionList, policy.ResourceGerant, http.HandlerFunc(gerantHandler.List)).ServeHTTP(w, r)
		case http.MethodPost:
			policy.Require(g, gate.ActionCreate, policy.ResourceGerant, http.HandlerFunc(gerantHandler.Create)).ServeHTTP(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})))
	mux.Handle("/gerants/delete", auth.RequireAuth(policy.Require(g, gate.ActionDelete, policy.ResourceGerant, http.HandlerFunc(gerantHandler.Delete))))

	// Root placeholder
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, werr := w.Write([]byte("Game Sales Sheets API")); werr != nil {
			_ = werr
		}
	})

	var handler http.Handler = metrics.InstrumentHandler(mux)
	handler = auth.Middleware(handler)
	handler = middleware.Recover(log)(handler)
	handler = middleware.Logging(log)(handler)
	handler = middleware.CORS(cfg.CORSOrigin)(handler)
	return handler
}
