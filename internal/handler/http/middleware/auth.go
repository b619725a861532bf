package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/auth"
	"github.com/lckh-guru/lckh-backend-go/internal/handler/http/response"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified access token. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrUnauthenticated)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if userID, ok := claims["user_id"].(string); !ok || userID == "" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
