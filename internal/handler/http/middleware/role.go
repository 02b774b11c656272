package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/wellmind-hq/wellness-backend-go/internal/domain/directory"
	"github.com/wellmind-hq/wellness-backend-go/internal/handler/http/response"
)

// RequireCompanyWide restricts a route to HR, admin and employer roles.
func RequireCompanyWide(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok {
			response.Forbidden(w, "Elevated role required")
			return
		}

		u := directory.User{Role: role}
		if !u.IsCompanyWideViewer() {
			response.Forbidden(w, "Elevated role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManagerial restricts a route to any managerial role.
func RequireManagerial(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok {
			response.Forbidden(w, "Managerial role required")
			return
		}

		u := directory.User{Role: role}
		if !u.HasManagerialRole() {
			response.Forbidden(w, "Managerial role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func roleFromClaims(r *http.Request) (directory.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return directory.Role(roleStr), true
}
