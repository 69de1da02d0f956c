package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/andrewpaige1/coursemap-api/wizard"
)

const SessionCookieName = "wizard_sid"

type contextKey string

const bindingKey contextKey = "wizard"

var errNoSession = errors.New("middleware: no wizard session on request")

// binding ties one request to its browser's wizard session.
type binding struct {
	sessions   *wizard.Sessions
	w          http.ResponseWriter
	secure     bool
	controller *wizard.Controller
	live       bool
}

// WizardSession attaches the wizard controller of the requesting browser.
// Browsers without a live session get an unregistered landing controller;
// a session is only registered, and its cookie issued, by StartSession.
func WizardSession(sessions *wizard.Sessions, secure bool, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := &binding{sessions: sessions, w: w, secure: secure}
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				b.controller, b.live = sessions.Lookup(cookie.Value)
				if !b.live {
					logger.Debug("Unknown wizard session", zap.String("path", r.URL.Path))
				}
			}
			if !b.live {
				b.controller = sessions.Anonymous()
			}

			ctx := context.WithValue(r.Context(), bindingKey, b)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Controller returns the wizard controller attached by WizardSession.
func Controller(ctx context.Context) (*wizard.Controller, bool) {
	b, ok := ctx.Value(bindingKey).(*binding)
	if !ok {
		return nil, false
	}
	return b.controller, true
}

// StartSession registers the request's controller as a live session and
// issues its cookie. It must run before the response is written.
func StartSession(ctx context.Context) (*wizard.Controller, error) {
	b, ok := ctx.Value(bindingKey).(*binding)
	if !ok {
		return nil, errNoSession
	}
	if b.live {
		return b.controller, nil
	}

	id, c, err := b.sessions.Create()
	if err != nil {
		return nil, err
	}
	http.SetCookie(b.w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   b.secure,
		SameSite: http.SameSiteLaxMode,
	})
	b.controller, b.live = c, true
	return c, nil
}
