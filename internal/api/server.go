// ABOUTME: HTTP server exposing the hydration, favorites, and workout stores as JSON.
// ABOUTME: Builds the chi router and runs it until the context is cancelled.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/harperreed/aurofit/internal/app"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	router *chi.Mux
	app    *app.App
	logger *log.Logger
}

func New(a *app.App) *Server {
	server := &Server{
		app:    a,
		logger: a.Logger.WithPrefix("api"),
	}

	water := &waterHandler{app: a}
	favorites := &favoritesHandler{app: a}
	workouts := &workoutsHandler{app: a}

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(server.requestLogger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/water", water.Status)
		r.Post("/water/intakes", water.AddIntake)
		r.Delete("/water/intakes/last", water.RemoveLast)
		r.Get("/water/history", water.History)
		r.Get("/water/goal", water.GetGoal)
		r.Put("/water/goal", water.UpdateGoal)

		r.Get("/favorites", favorites.List)
		r.Post("/favorites/toggle", favorites.Toggle)
		r.Delete("/favorites/{key}", favorites.Remove)

		r.Get("/workouts", workouts.List)
		r.Post("/workouts", workouts.Create)
		r.Get("/workouts/stats", workouts.Stats)
		r.Delete("/workouts/{id}", workouts.Delete)
	})

	server.router = router
	return server
}

// Handler returns the router for use with httptest or a custom server.
func (server *Server) Handler() http.Handler {
	return server.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (server *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		server.logger.Info("starting server", "address", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	server.logger.Info("shutting down server")
	return httpServer.Shutdown(shutdownCtx)
}

func (server *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		server.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}
