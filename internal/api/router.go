package api

import (
	_ "etbinflation/docs"
	"etbinflation/internal/inflation/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(inflationHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Post("/api/inflate", inflationHandler.Convert)
	router.Get("/api/inflate/range", inflationHandler.GetDataRange)
	return router
}
