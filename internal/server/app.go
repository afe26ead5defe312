package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hnrobert/signalist/internal/auth"
	"github.com/hnrobert/signalist/internal/authform"
	"github.com/hnrobert/signalist/internal/config"
	"github.com/hnrobert/signalist/internal/form"
	"github.com/hnrobert/signalist/internal/logger"
	"github.com/hnrobert/signalist/internal/metrics"
	"github.com/hnrobert/signalist/internal/options"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

type App struct {
	cfg       config.Config
	secret    []byte
	pages     map[string]*template.Template
	lists     options.Set
	forms     *authform.Registry
	submitter authform.Submitter
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer

	testimonial template.HTML
}

// Deps are the collaborators an App is built from. Zero values get defaults:
// log-only submitter, built-in option lists, a fresh Prometheus registry.
type Deps struct {
	Submitter authform.Submitter
	Lists     options.Set
	Registry  *prometheus.Registry
}

func newApp(cfg config.Config, deps Deps) (*App, error) {
	secretText := cfg.Secret
	if secretText == "" {
		s, err := auth.NewRandomSecretB64(32)
		if err != nil {
			return nil, err
		}
		logger.Warn("no secret configured, form tokens will not survive a restart")
		secretText = s
	}

	lists := deps.Lists
	if lists == nil {
		var err error
		lists, err = options.Load(cfg.OptionsFile)
		if err != nil {
			return nil, err
		}
	}
	val, err := form.NewValidator(lists)
	if err != nil {
		return nil, err
	}

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	submitter := deps.Submitter
	if submitter == nil {
		submitter = authform.LogSubmitter{}
	}

	base := template.New("layout.html")
	pages := map[string]*template.Template{}
	for _, page := range []string{"sign_in", "sign_up"} {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		// Each page file defines the same block names (title/content).
		if _, err := t.ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html"); err != nil {
			return nil, err
		}
		pages[page] = t
	}

	return &App{
		cfg:         cfg,
		secret:      auth.DecodeSecret(secretText),
		pages:       pages,
		lists:       lists,
		forms:       authform.NewRegistry(val, cfg.FormTTL),
		submitter:   submitter,
		metrics:     metrics.New(reg),
		gatherer:    reg,
		testimonial: RenderMarkdown(cfg.Brand.Testimonial),
	}, nil
}

func (a *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
	})

	r.Get("/sign-in", a.handleSignInPage)
	r.Post("/sign-in", a.handleSignInSubmit)
	r.Get("/sign-up", a.handleSignUpPage)
	r.Post("/sign-up", a.handleSignUpSubmit)
	r.Post("/forms/{token}/fields/{field}", a.handleBlur)

	r.Route("/api", func(r chi.Router) {
		if len(a.cfg.CORSOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: a.cfg.CORSOrigins,
				AllowedMethods: []string{"GET", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
		}
		r.Get("/options/{list}", a.handleOptions)
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("{\"ok\":true}\n"))
		})
	})
	r.Handle("/metrics", promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{}))

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/assets/forms.js", http.StripPrefix("/assets/", http.FileServer(http.FS(static))))
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(a.cfg.AssetsDir))))

	return r
}

func (a *App) viewData() *ViewData {
	b := a.cfg.Brand
	stars := make([]int, b.Stars)
	for i := range stars {
		stars[i] = i + 1
	}
	return &ViewData{
		BrandName:    b.Name,
		Logo:         b.Logo,
		Testimonial:  a.testimonial,
		Author:       b.Author,
		AuthorRole:   b.AuthorRole,
		Stars:        stars,
		PreviewImage: b.PreviewImage,
	}
}

func (a *App) issueToken(inst authform.Instance) (string, error) {
	return auth.SignFormToken(a.secret, inst.ID(), inst.Kind(), a.forms.TTL()+time.Minute)
}
