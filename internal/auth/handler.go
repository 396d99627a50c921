package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"academic-service/internal/httputil"
	"academic-service/internal/metrics"

	"github.com/go-chi/chi/v5"
)

const (
	loginSuccessURL = "/index"
	loginFailureURL = "/login-form.html?error=true"
	logoutURL       = "/"
)

type Handler struct {
	users   *Users
	google  IDTokenVerifier
	session *Session
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(users *Users, google IDTokenVerifier, session *Session, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		users:   users,
		google:  google,
		session: session,
		logger:  logger,
		metrics: metrics,
	}
}

// RegisterRoutes mounts the public sign-in endpoints.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/login", h.FormLogin)
	router.Post("/login/google", h.GoogleLogin)
	router.Get("/logout", h.Logout)
	router.Post("/logout", h.Logout)
}

// FormLogin checks the username and password form fields and redirects to
// the dashboard, or back to the form on failure.
func (h *Handler) FormLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, loginFailureURL, http.StatusFound)
		return
	}
	username := r.PostFormValue("username")

	p, err := h.users.Authenticate(username, r.PostFormValue("password"))
	if err != nil {
		h.logger.InfoContext(r.Context(), "form login failed", "username", username)
		h.metrics.RecordLogin(r.Context(), "form", false)
		http.Redirect(w, r, loginFailureURL, http.StatusFound)
		return
	}

	if err := h.session.Set(w, p); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to issue session", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(r.Context(), "user logged in", "username", username, "method", "form")
	h.metrics.RecordLogin(r.Context(), "form", true)
	http.Redirect(w, r, loginSuccessURL, http.StatusFound)
}

type googleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// GoogleLogin exchanges a Google ID token for a session.
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.google.Verify(req.IDToken)
	if err != nil {
		h.metrics.RecordLogin(r.Context(), "google", false)
		if errors.Is(err, ErrGoogleDisabled) {
			httputil.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.InfoContext(r.Context(), "google login failed", "error", err)
		httputil.RespondWithError(w, http.StatusUnauthorized, "Invalid Google ID Token")
		return
	}

	if err := h.session.Set(w, p); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to issue session", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(r.Context(), "user logged in", "email", p.Email, "method", "google")
	h.metrics.RecordLogin(r.Context(), "google", true)
	httputil.RespondWithJSON(w, http.StatusOK, p.Info())
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Clear(w)
	http.Redirect(w, r, logoutURL, http.StatusFound)
}

// CurrentUser serves GET /api/user.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	p, ok := PrincipalFrom(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, p.Info())
}
