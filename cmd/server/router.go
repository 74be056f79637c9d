package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/memoro-app/memoro-api/internal/api"
	apiMiddleware "github.com/memoro-app/memoro-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	itemHandler := api.NewItemHandler(app.itemStore, app.scheduler, app.logger)
	sessionHandler := api.NewSessionHandler(app.quizService, app.config.Review.FuzzyMatching, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Item management endpoints
		r.Route("/items", func(r chi.Router) {
			r.Post("/", itemHandler.CreateItem)
			r.Get("/", itemHandler.ListItems)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", itemHandler.GetItem)
				r.Delete("/", itemHandler.DeleteItem)
				r.Post("/postpone", itemHandler.PostponeItem)
			})
		})

		// Quiz session endpoints
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.StartSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/next", sessionHandler.NextQuestion)
				r.Post("/answers", sessionHandler.SubmitAnswer)
				r.Post("/skip", sessionHandler.SkipQuestion)
				r.Post("/cancel", sessionHandler.CancelSession)
				r.Get("/stats", sessionHandler.SessionStats)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
