package utils

import (
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"

	"github.com/andrewpaige1/coursemap-api/auth"
)

// GetUserEmail returns the email of the validated auth token, if any.
func GetUserEmail(r *http.Request) (string, bool) {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*auth.Claims)
	if !ok || claims == nil || claims.Email == "" {
		return "", false
	}
	return claims.Email, true
}
