package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/koinonia-dev/koinonia/internal/logger"
	"github.com/koinonia-dev/koinonia/internal/middleware"
	"github.com/koinonia-dev/koinonia/internal/middleware/metrics"
	"github.com/koinonia-dev/koinonia/internal/setup"
)

func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger.Log))
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.SecurityHeadersWithCSP(deps.Public.SecureCookies,
		"default-src 'self'; style-src 'self' 'unsafe-inline'"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST"},
		AllowCredentials: true,
	}))

	h := deps.Handler

	// Public routes
	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/",
		http.FileServer(http.Dir(deps.Public.StaticPath))))

	r.Group(func(r chi.Router) {
		r.Use(middleware.GenerateCSRFToken(deps.Public.SecureCookies))
		r.Use(middleware.ValidateCSRFToken())

		r.Get("/signin", h.SigninGet)
		r.Post("/signin", h.SigninPost)
		r.Post("/signout", h.Signout)

		// Everything below needs a signed-in user.
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireAuth)

			r.Get("/", h.Root)
			r.Get("/churches/page/{page}", h.ChurchesGet)
			r.Get("/churches/{church}/series/page/{page}", h.SeriesGet)
			r.Get("/churches/{church}/series/{series}/sermons/page/{page}", h.SermonsGet)

			r.Route("/churches/{church}/series/{series}/sermons/{sermon}/threads", func(r chi.Router) {
				r.Get("/page/{page}", h.ThreadsGet)
				r.Post("/", h.ThreadCreate)

				r.Route("/{thread}", func(r chi.Router) {
					r.Get("/page/{page}", h.ThreadGet)
					r.Get("/edit", h.ThreadEditGet)
					r.Post("/edit", h.ThreadEditPost)
					r.Post("/delete", h.ThreadDelete)

					r.Post("/posts", h.PostCreate)
					r.Get("/posts/{post}/edit", h.PostEditGet)
					r.Post("/posts/{post}/edit", h.PostEditPost)
					r.Post("/posts/{post}/delete", h.PostDelete)
				})
			})
		})
	})

	return r
}
