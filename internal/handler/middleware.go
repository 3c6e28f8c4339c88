package handler

import (
	"context"
	"net/http"

	"github.com/chetan-code/planner/internal/auth"
	"github.com/chetan-code/planner/internal/models"
)

// we are doing this to avoid collision with libraries
type contextKey string

const userKey contextKey = "currentUser"

// Authenticated resolves the caller through the header-or-cookie bearer
// lookup and stores the user on the request context. reject handles the
// failure response, which differs between the JSON and HTML surfaces.
func Authenticated(resolver *auth.Resolver, reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.CurrentUser(r)
			if err != nil {
				reject(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the user placed on the context by Authenticated.
func UserFrom(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userKey).(*models.User)
	return user, ok
}
