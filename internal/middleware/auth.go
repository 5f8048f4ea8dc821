package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/koinonia-dev/koinonia/internal/domain"
	"github.com/koinonia-dev/koinonia/internal/jwt"
)

const AccessTokenCookie = "accessToken"

// Key to store the signed-in user in the request context
type key int

const userContextKey key = 0

type Auth struct {
	jwt *jwt.Jwt
}

func NewAuth(jwtService *jwt.Jwt) *Auth {
	return &Auth{jwtService}
}

// RequireAuth redirects anonymous requests to the signin page, carrying the
// original URL so signin can send the user back where they were headed.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.userFromCookie(r)
		if !ok {
			http.Redirect(w, r, "/signin?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) userFromCookie(r *http.Request) (*domain.User, bool) {
	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	user, err := a.jwt.DecodeToken(cookie.Value)
	if err != nil {
		return nil, false
	}
	return &user, true
}

// GetUserFromContext returns the authenticated user or nil.
func GetUserFromContext(r *http.Request) *domain.User {
	user, _ := r.Context().Value(userContextKey).(*domain.User)
	return user
}
