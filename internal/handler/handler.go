package handler

import (
	"html/template"

	"github.com/koinonia-dev/koinonia/internal/config"
	"github.com/koinonia-dev/koinonia/internal/jwt"
	"github.com/koinonia-dev/koinonia/internal/markdown"
	"github.com/koinonia-dev/koinonia/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping() error
}

type Handler struct {
	Templates map[string]*template.Template
	resolver  *service.Resolver
	threads   *service.Thread
	posts     *service.Post
	auth      *service.Auth
	jwt       *jwt.Jwt
	markdown  *markdown.Renderer
	pinger    Pinger
	cfg       config.Public
}

func New(
	templates map[string]*template.Template,
	resolver *service.Resolver,
	threads *service.Thread,
	posts *service.Post,
	auth *service.Auth,
	jwtService *jwt.Jwt,
	md *markdown.Renderer,
	pinger Pinger,
	cfg config.Public,
) *Handler {
	return &Handler{
		Templates: templates,
		resolver:  resolver,
		threads:   threads,
		posts:     posts,
		auth:      auth,
		jwt:       jwtService,
		markdown:  md,
		pinger:    pinger,
		cfg:       cfg,
	}
}
