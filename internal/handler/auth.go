package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/koinonia-dev/koinonia/internal/domain"
	"github.com/koinonia-dev/koinonia/internal/middleware"
)

type signinPage struct {
	Username string
	Next     string
}

func (h *Handler) SigninGet(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")

	var flashes []Flash
	if next != "" {
		flashes = append(flashes, Flash{Level: "info", Message: "Please sign in."})
	}
	h.renderTemplate(w, r, "signin.html", signinPage{Next: next}, flashes...)
}

func (h *Handler) SigninPost(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	next := r.PostFormValue("next")

	authenticated, err := h.auth.Authenticate(username, password)
	if err != nil {
		writeError(w, err)
		return
	}
	if !authenticated {
		w.WriteHeader(http.StatusUnauthorized)
		h.renderTemplate(w, r, "signin.html", signinPage{Username: username, Next: next},
			Flash{Level: "danger", Message: "Invalid credentials."})
		return
	}

	token, err := h.jwt.NewToken(domain.User{Username: username})
	if err != nil {
		writeError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.SessionTTL()),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	redirectWithFlash(w, r, safeNext(next), "success", "Welcome back, "+username+"!")
}

// safeNext confines the post-signin redirect to this site. Anything that is
// not a local path goes to the root instead.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}

func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	redirectWithFlash(w, r, "/signin", "info", "You have been signed out.")
}
