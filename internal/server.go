package prayerlog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

// Server exposes a State over HTTP and websocket.
type Server struct {
	State    *State
	Guide    *GuideStore
	upgrader websocket.Upgrader
}

func NewServer(state *State, guide *GuideStore) *Server {
	if guide == nil {
		guide = &GuideStore{}
	}
	return &Server{
		State:    state,
		Guide:    guide,
		upgrader: newUpgrader(),
	}
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SetupRoutes configures all HTTP routes for the server
func (s *Server) SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(corsMiddleware)

	r.Get("/health", HealthHandler)
	r.Get("/connect", s.WebsocketHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.ListSessionsHandler)
			r.Post("/", s.AddSessionHandler)
			r.Get("/dates", s.SessionDatesHandler)
		})
		r.Route("/prayers", func(r chi.Router) {
			r.Get("/", s.ListPrayersHandler)
			r.Post("/", s.CreatePrayerHandler)
			r.Get("/{id}", s.GetPrayerHandler)
			r.Post("/{id}/answer", s.AnswerPrayerHandler)
			r.Delete("/{id}", s.DeletePrayerHandler)
		})
		r.Route("/stats", func(r chi.Router) {
			r.Get("/", s.StatsHandler)
			r.Get("/month", s.MonthHandler)
			r.Get("/daily", s.DailyHandler)
		})
		r.Route("/guest", func(r chi.Router) {
			r.Get("/prayers", s.ListGuestPrayersHandler)
			r.Post("/prayers", s.CreateGuestPrayerHandler)
			r.Post("/drain", s.DrainGuestHandler)
			r.Post("/merge", s.MergeGuestHandler)
		})
		r.Get("/guide", s.GuideHandler)
		r.Get("/guide/{id}", s.GuideStageHandler)
	})

	return r
}
