package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"academic-service/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestHandler(t *testing.T) {
	deny := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/login.html", http.StatusFound)
		})
	}

	router := chi.NewRouter()
	web.NewHandler("client-id.apps.googleusercontent.com").RegisterRoutes(router, deny)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	t.Run("PublicPages", func(t *testing.T) {
		for _, path := range []string{"/", "/home.html", "/login.html", "/login-form.html"} {
			w := get(path)
			assert.Equal(t, http.StatusOK, w.Code, path)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html", path)
		}
		assert.Contains(t, get("/").Body.String(), "Academic Records")
	})

	t.Run("Assets", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get("/css/style.css").Code)
		assert.Equal(t, http.StatusOK, get("/js/app.js").Code)
		assert.Equal(t, http.StatusOK, get("/assets/logo.svg").Code)
		assert.Equal(t, http.StatusNotFound, get("/js/missing.js").Code)
	})

	t.Run("DashboardNeedsSession", func(t *testing.T) {
		w := get("/index")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login.html", w.Header().Get("Location"))
	})

	t.Run("AuthConfig", func(t *testing.T) {
		w := get("/auth/config")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"googleClientId":"client-id.apps.googleusercontent.com"}`, w.Body.String())
	})
}
