package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(svc jwt.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", "1h", "24h")
	router := protectedRouter(svc)

	access, _, err := svc.GenerateAccessToken("user-1", "guru@example.com")
	require.NoError(t, err)
	refresh, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"access token", "Bearer " + access, http.StatusNoContent},
		{"no token", "", http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"tampered token", "Bearer " + access + "x", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
