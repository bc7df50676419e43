package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the shop API.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/flowers", handler.AddFlower)
	r.Get("/flowers", handler.ListFlowers)
	r.Get("/flowers/{name}/stock", handler.CheckStock)
	r.Post("/orders", handler.CreateOrder)
	r.Get("/transactions", handler.ListTransactions)
	r.Get("/report", handler.DailyReport)
	return r
}
