package setup

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/koinonia-dev/koinonia/internal/config"
	"github.com/koinonia-dev/koinonia/internal/handler"
	"github.com/koinonia-dev/koinonia/internal/jwt"
	"github.com/koinonia-dev/koinonia/internal/markdown"
	"github.com/koinonia-dev/koinonia/internal/middleware"
	"github.com/koinonia-dev/koinonia/internal/service"
	"github.com/koinonia-dev/koinonia/internal/storage/pg"
)

const (
	baseTemplate           = "base.html"
	partialsTemplate       = "partials.html"
	templateReloadInterval = 5 * time.Second
)

type Dependencies struct {
	Handler *handler.Handler
	Auth    *middleware.Auth
	Public  config.Public
	Storage *pg.Storage
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	store, err := pg.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	resolver := service.NewResolver(store)
	threads := service.NewThread(store)
	posts := service.NewPost(store)
	auth := service.NewAuth(store)

	jwtSvc := jwt.New(cfg.Private.JwtKey, cfg.Public.SessionTTL())
	templates := mustLoadTemplates(cfg.Public.TemplatePath)
	md := markdown.New()

	h := handler.New(templates, resolver, threads, posts, auth, jwtSvc, md, store, cfg.Public)
	startTemplateReloader(h, cfg.Public.TemplatePath)

	return &Dependencies{
		Handler: h,
		Auth:    middleware.NewAuth(jwtSvc),
		Public:  cfg.Public,
		Storage: store,
	}, nil
}

func sub(a, b int) int { return a - b }
func add(a, b int) int { return a + b }

func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("invalid dict call: number of arguments must be even")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings")
		}
		m[key] = values[i+1]
	}
	return m, nil
}

func mustLoadTemplates(tmplPath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) != ".html" || f.Name() == baseTemplate || f.Name() == partialsTemplate {
			continue
		}
		templates[f.Name()] = template.Must(template.New(baseTemplate).Funcs(
			template.FuncMap{
				"sub":  sub,
				"add":  add,
				"dict": dict,
			},
		).ParseFiles(
			path.Join(tmplPath, baseTemplate),
			path.Join(tmplPath, f.Name()),
			path.Join(tmplPath, partialsTemplate),
		))
	}
	return templates
}

func startTemplateReloader(h *handler.Handler, tmplPath string) {
	if os.Getenv("ENV") == "development" {
		ticker := time.NewTicker(templateReloadInterval)
		go func() {
			for range ticker.C {
				h.Templates = mustLoadTemplates(tmplPath)
			}
		}()
	}
}
