package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/ghinaaj20-lang/luna-project/internal/auth"
	"github.com/ghinaaj20-lang/luna-project/internal/blob"
	"github.com/ghinaaj20-lang/luna-project/internal/database"
	"github.com/ghinaaj20-lang/luna-project/internal/verify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/gorilla/sessions"
)

// Server bundles the collaborators every handler needs. Handlers read
// the requesting user from the request context, never from globals.
type Server struct {
	DB       *database.DB
	Sessions *sessions.CookieStore
	Blobs    blob.Store
	Verifier verify.Verifier

	AllowedOrigins []string
}

func NewServer(db *database.DB, store *sessions.CookieStore, blobs blob.Store, verifier verify.Verifier) *Server {
	return &Server{
		DB:             db,
		Sessions:       store,
		Blobs:          blobs,
		Verifier:       verifier,
		AllowedOrigins: []string{"*"},
	}
}

// Routes builds the full API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(s.AllowedOrigins))

	r.Post("/register", s.Register)
	r.Post("/login", s.Login)
	r.Post("/logout", s.Logout)

	// Public reads; identity is optional but personalizes is_liked.
	r.Group(func(r chi.Router) {
		r.Use(auth.OptionalUser(s.Sessions))
		r.Get("/content", s.ListContent)
		r.Get("/content/feed", s.Feed)
		r.Get("/content/{id}", s.GetContent)
		r.Get("/events", s.ListEvents)
		r.Get("/events/upcoming", s.UpcomingEvents)
		r.Get("/events/today", s.TodayEvents)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(s.Sessions))
		r.Use(httprate.Limit(
			20,
			1*time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		))
		r.Get("/current-user", s.CurrentUser)
		r.Post("/content", s.CreateContent)
		r.Put("/content/{id}", s.UpdateContent)
		r.Delete("/content/{id}", s.DeleteContent)
		r.Post("/content/{id}/like", s.LikeContent)
		r.Post("/content/{id}/unlike", s.UnlikeContent)
		r.Post("/content/{id}/comment", s.AddComment)
		r.Delete("/comments/{id}", s.DeleteComment)
		r.Get("/profile", s.GetProfile)
		r.Put("/profile/update", s.UpdateProfile)
		r.Post("/profile/avatar", s.UploadAvatar)
		r.Post("/profile/change-password", s.ChangePassword)
	})

	return r
}

// corsMiddleware lets the SPA frontend call the API with credentials.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := false
			for _, o := range allowedOrigins {
				if o == "*" || o == origin {
					allowed = true
					break
				}
			}
			if allowed && origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", strings.Join([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}, ", "))
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, X-Requested-With")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusOK)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
