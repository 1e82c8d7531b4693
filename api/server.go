/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

  Route-scoped:
  - httprate:    Per-IP rate limit on the public lookup endpoint
  - RequireAuth: Session check on admin routes
  - RequireCSRF: Double-submit check on admin routes

STATIC FILE SERVING:
  Serves the public frontend from web/dist/ when it exists, with an
  index.html fallback for client-side routing.

SEE ALSO:
  - handlers.go: Handler implementations
  - auth.go: Session and CSRF middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// NewRouter creates a new router with all routes configured.
// lookupLimit is the allowed number of lookups per IP per minute.
func NewRouter(h *Handler, lookupLimit int) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)

		// Public lookup, rate limited per IP
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(lookupLimit, time.Minute))
			r.Post("/lookup", h.HandleLookup)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.HandleLogin)

			r.Group(func(r chi.Router) {
				r.Use(h.Auth.RequireAuth)
				r.Use(h.Auth.RequireCSRF)
				r.Post("/logout", h.HandleLogout)
				r.Get("/status", h.HandleStatus)
				r.Get("/template", h.HandleTemplate)
				r.Post("/import", h.HandleImport)
			})
		})
	})

	// Serve static files (public frontend)
	staticDir := "./web/dist"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		// Try relative to executable
		exe, _ := os.Executable()
		staticDir = filepath.Join(filepath.Dir(exe), "web", "dist")
	}

	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			fullPath := filepath.Join(staticDir, r.URL.Path)
			if _, err := os.Stat(fullPath); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Exam Results Portal</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Exam Results Portal API</h1>
<p>The frontend is not built yet. Run <code>cd web && npm install && npm run build</code></p>
<h2>API Endpoints</h2>
<ul>
<li>POST /api/lookup - Look up a result by national ID</li>
<li>POST /api/admin/login - Admin login</li>
<li>GET /api/health - Health check</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
