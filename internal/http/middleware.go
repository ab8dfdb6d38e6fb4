package http

import (
	"context"
	"net/http"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/session"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionMiddleware resolves the visitor's session from the cookie,
// creating one (and setting the cookie) on first contact, and mirrors the
// session to the snapshot store once the handler is done.
func SessionMiddleware(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(session.CookieName); err == nil {
				sessionID = cookie.Value
			}

			s, isNew := manager.Resolve(r.Context(), sessionID)
			if isNew {
				http.SetCookie(w, &http.Cookie{
					Name:     session.CookieName,
					Value:    s.ID,
					Path:     "/",
					MaxAge:   24 * 60 * 60,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))

			manager.Persist(r.Context(), s)
		})
	}
}

func getSession(ctx context.Context) *session.Session {
	if s, ok := ctx.Value(sessionContextKey).(*session.Session); ok {
		return s
	}
	return nil
}
