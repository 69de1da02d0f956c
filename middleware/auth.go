package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"go.uber.org/zap"

	"github.com/andrewpaige1/coursemap-api/auth"
	"github.com/andrewpaige1/coursemap-api/utils"
)

// EnsureValidToken validates the auth cookie when present and stores the
// claims under jwtmiddleware.ContextKey{}. Requests without a cookie pass
// through anonymously; RequireUser guards the routes that need a user.
func EnsureValidToken(secret []byte, logger *zap.Logger) func(http.Handler) http.Handler {
	validate := func(_ context.Context, token string) (interface{}, error) {
		return auth.VerifyToken(secret, token)
	}

	m := jwtmiddleware.New(validate,
		jwtmiddleware.WithTokenExtractor(cookieTokenExtractor(auth.CookieName)),
		jwtmiddleware.WithCredentialsOptional(true),
		jwtmiddleware.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Info("Rejected auth token", zap.String("path", r.URL.Path), zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid token"})
		}),
	)
	return m.CheckJWT
}

// A missing cookie is not an error; the middleware treats it as anonymous.
func cookieTokenExtractor(name string) jwtmiddleware.TokenExtractor {
	return func(r *http.Request) (string, error) {
		cookie, err := r.Cookie(name)
		if err != nil {
			return "", nil
		}
		return cookie.Value, nil
	}
}

// RequireUser rejects requests that carry no validated user.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserEmail(r); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	}
}
