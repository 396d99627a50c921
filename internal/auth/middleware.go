package auth

import (
	"log/slog"
	"net/http"
	"time"

	"academic-service/internal/httputil"
)

const cookieName = "token"

// Session stores the signed token in an HttpOnly cookie.
type Session struct {
	tokens *Tokens
	secure bool
	logger *slog.Logger
}

// NewSession builds the cookie session. secure marks the cookie HTTPS only.
func NewSession(tokens *Tokens, secure bool, logger *slog.Logger) *Session {
	return &Session{tokens: tokens, secure: secure, logger: logger}
}

// Set issues a token for p and writes the session cookie.
func (s *Session) Set(w http.ResponseWriter, p *Principal) error {
	token, err := s.tokens.Issue(p)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(s.tokens.TTL() / time.Second),
	})
	return nil
}

// Clear removes the session cookie
func (s *Session) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// Load puts the principal of a valid session cookie into the request
// context. Requests without one pass through unchanged.
func (s *Session) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(cookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		p, err := s.tokens.Parse(cookie.Value)
		if err != nil {
			s.logger.DebugContext(r.Context(), "ignoring invalid session", "error", err, "path", r.URL.Path)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireAuth rejects API requests without a session with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFrom(r.Context()); !ok {
			httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePage sends visitors without a session to the login page.
func RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFrom(r.Context()); !ok {
			http.Redirect(w, r, "/login.html", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole lets through principals holding any of roles. Requests without
// a session get 401, signed-in users lacking the role get 403.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !p.HasAnyRole(roles...) {
				httputil.RespondWithError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
