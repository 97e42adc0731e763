package server

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/printdesk/printdesk/internal/auth"
	"github.com/printdesk/printdesk/internal/config"
	"github.com/printdesk/printdesk/internal/handlers"
	"github.com/printdesk/printdesk/internal/httpx"
	"github.com/printdesk/printdesk/internal/invoice/raster"
	"github.com/printdesk/printdesk/internal/middleware"
	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	// Configure a user verifier so RequireAuth can ensure the user still exists.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	ah := handlers.NewAuthHandler(db)
	mux.HandleFunc("POST /auth/signup", ah.Signup)
	mux.HandleFunc("POST /auth/login", ah.Login)
	mux.HandleFunc("POST /auth/logout", ah.Logout)
	mux.Handle("GET /auth/me", protect(http.HandlerFunc(ah.Me)))

	// Order endpoints
	oh := handlers.NewOrderHandler(db)
	mux.Handle("GET /orders", protect(http.HandlerFunc(oh.List)))
	mux.Handle("POST /orders", protect(http.HandlerFunc(oh.Create)))
	mux.Handle("GET /orders/{id}", protect(http.HandlerFunc(oh.Get)))
	mux.Handle("DELETE /orders/{id}", protect(http.HandlerFunc(oh.Delete)))

	// Invoice settings endpoints
	sh := handlers.NewSettingsHandler(db)
	mux.Handle("GET /settings/default", protect(http.HandlerFunc(sh.GetDefault)))
	mux.Handle("GET /settings", protect(http.HandlerFunc(sh.List)))
	mux.Handle("POST /settings", protect(http.HandlerFunc(sh.Save)))
	mux.Handle("DELETE /settings/{id}", protect(http.HandlerFunc(sh.Delete)))
	mux.Handle("POST /settings/{id}/default", protect(http.HandlerFunc(sh.SetDefault)))

	// PDF download
	export := services.NewExportService(raster.NewImageRasterizer(raster.HTTPLogoLoader()))
	eh := handlers.NewExportHandler(db, sh.Store(), export, cfg.PrintDPI)
	mux.Handle("GET /orders/{id}/pdf", protect(http.HandlerFunc(eh.Download)))

	return middleware.Prefs(withRecover(withLogging(mux)))
}

func protect(h http.Handler) http.Handler {
	return auth.Middleware(auth.RequireAuth(h))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeInternalError, nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
