package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-calendar-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts only verified access tokens that carry a user_id.
// It runs after jwtauth.Verifier.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.Unauthorized(w, "Invalid token type")
				return
			}

			if userID, _ := claims["user_id"].(string); userID == "" {
				response.HandleError(w, user.ErrUserIDRequired)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// UserID returns the user_id claim of the verified token.
func UserID(ctx context.Context) string {
	_, claims, _ := jwtauth.FromContext(ctx)
	userID, _ := claims["user_id"].(string)
	return userID
}

// Role returns the role claim of the verified token.
func Role(ctx context.Context) user.Role {
	_, claims, _ := jwtauth.FromContext(ctx)
	role, _ := claims["role"].(string)
	return user.Role(role)
}
