package server

import (
	"context"
	"net/http"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/auth"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/catalog"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/handlers"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/httpx"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"github.com/arunvijay5372/KVM-Invoicing-System/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

// New constructs the root handler with all routes and middleware applied.
func New(db *gorm.DB, gen *catalog.Generator) http.Handler {
	// RequireAuth checks that the session's user still exists.
	auth.SetUserVerifier(func(_ context.Context, userID string) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", userID).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	handlers.NewAuthHandler(db).Routes(r)

	r.Route("/api", func(api chi.Router) {
		api.Use(auth.Middleware)
		api.Use(auth.RequireAuth)

		handlers.NewBrandHandler(db, gen).Routes(api)
		handlers.NewProductHandler(db).Routes(api)
		handlers.NewInventoryHandler(db).Routes(api)
		handlers.NewCustomerHandler(db).Routes(api)
		handlers.NewInvoiceHandler(db, services.NewInvoiceService(db)).Routes(api)
		handlers.NewDashboardHandler(db).Routes(api)
	})

	return r
}
