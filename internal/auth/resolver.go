package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/chetan-code/planner/internal/models"
	"github.com/chetan-code/planner/internal/repository"
)

// CookieName carries the session token for the HTML surface. The value
// is "Bearer <token>", the same shape as the Authorization header, so
// both front-ends share one resolution path.
const CookieName = "Authorization"

// Resolver turns an inbound request into the authenticated user.
type Resolver struct {
	tokens *TokenService
	users  *repository.UserRepository
}

func NewResolver(tokens *TokenService, users *repository.UserRepository) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// CurrentUser extracts a bearer token from the Authorization header or,
// failing that, the Authorization cookie, and resolves it to a user.
// Every failure mode comes back as ErrUnauthenticated.
func (r *Resolver) CurrentUser(req *http.Request) (*models.User, error) {
	raw, ok := bearerFromRequest(req)
	if !ok {
		return nil, ErrUnauthenticated
	}

	userID, err := r.tokens.Parse(raw)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := r.users.FindByID(req.Context(), userID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func bearerFromRequest(req *http.Request) (string, bool) {
	if header := req.Header.Get("Authorization"); header != "" {
		return splitBearer(header)
	}

	cookie, err := req.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	value := cookie.Value
	// The browser cookie stores the value url-encoded; tolerate both.
	if decoded, err := url.QueryUnescape(value); err == nil {
		value = decoded
	}
	return splitBearer(value)
}

func splitBearer(value string) (string, bool) {
	scheme, token, found := strings.Cut(value, " ")
	if !found || token == "" || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return token, true
}
