package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/ironlog/internal/catalog"
	"github.com/claude/ironlog/internal/session"
	"github.com/claude/ironlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db        *storage.DB
	catalog   *catalog.Catalog
	sessions  *sessionRegistry
	log       *slog.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
	router    chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, cat *catalog.Catalog, jwtSecret string, tokenTTL time.Duration, log *slog.Logger) *Server {
	s := &Server{
		db:        db,
		catalog:   cat,
		log:       log,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		router:    chi.NewRouter(),
	}
	s.sessions = newSessionRegistry(db, log)
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Post("/api/v1/auth/register", s.handleRegister)
	s.router.Post("/api/v1/auth/login", s.handleLogin)

	// Everything below requires a bearer token.
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(JWTAuth(s.jwtSecret))

		r.Get("/auth/me", s.handleMe)
		r.Patch("/auth/me", s.handleUpdateMe)

		r.Get("/plans", s.handleListPlans)
		r.Post("/plans", s.handleCreatePlan)
		r.Delete("/plans/{id}", s.handleDeletePlan)

		r.Get("/workouts", s.handleListWorkouts)
		r.Post("/workouts", s.handleSaveWorkout)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)

		r.Get("/measurements", s.handleListMeasurements)
		r.Post("/measurements", s.handleAddMeasurement)

		r.Get("/exercises", s.handleListExercises)
		r.Post("/exercises", s.handleCreateExercise)
		r.Put("/exercises/{id}", s.handleUpdateExercise)
		r.Delete("/exercises/{id}", s.handleDeleteExercise)

		r.Get("/gadgets", s.handleListGadgets)
		r.Post("/gadgets", s.handleCreateGadget)
		r.Put("/gadgets/{id}", s.handleUpdateGadget)
		r.Delete("/gadgets/{id}", s.handleDeleteGadget)

		r.Get("/stats/streak", s.handleStreak)
		r.Get("/stats/day", s.handleDay)
		r.Get("/stats/energy", s.handleEnergy)
		r.Get("/stats/progress", s.handleProgress)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleCancelSession)
			r.Post("/start", s.handleStartSession)
			r.Post("/finish", s.handleFinishSession)
			r.Post("/exercises", s.handleSessionAddExercise)
			r.Patch("/exercises/{id}", s.handleSessionUpdateExercise)
			r.Delete("/exercises/{id}", s.handleSessionRemoveExercise)
			r.Post("/exercises/{id}/sets", s.handleSessionAddSet)
			r.Patch("/exercises/{id}/sets/{setId}", s.handleSessionUpdateSet)
			r.Delete("/exercises/{id}/sets/{setId}", s.handleSessionRemoveSet)
		})
	})
}

var _ session.Gateway = (*storage.DB)(nil)
