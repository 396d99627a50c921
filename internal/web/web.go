// Package web serves the embedded static pages.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"academic-service/internal/httputil"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var static embed.FS

type Handler struct {
	files          fs.FS
	googleClientID string
}

func NewHandler(googleClientID string) *Handler {
	files, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return &Handler{files: files, googleClientID: googleClientID}
}

// RegisterRoutes mounts the public pages and assets. Pages that need a
// session are wrapped with requireSession.
func (h *Handler) RegisterRoutes(router chi.Router, requireSession func(http.Handler) http.Handler) {
	router.Get("/", h.page("home.html"))
	router.Get("/home.html", h.page("home.html"))
	router.Get("/login.html", h.page("login.html"))
	router.Get("/login-form.html", h.page("login-form.html"))
	router.Get("/auth/config", h.authConfig)

	assets := http.FileServer(http.FS(h.files))
	router.Get("/css/*", assets.ServeHTTP)
	router.Get("/js/*", assets.ServeHTTP)
	router.Get("/assets/*", assets.ServeHTTP)

	router.Group(func(r chi.Router) {
		r.Use(requireSession)
		r.Get("/index", h.page("index.html"))
		r.Get("/index.html", h.page("index.html"))
	})
}

func (h *Handler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(h.files, name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(data)
	}
}

func (h *Handler) authConfig(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"googleClientId": h.googleClientID,
	})
}
