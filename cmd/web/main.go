package main

import (
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"verdantgoods.org/shop-web/internal/cart"
	"verdantgoods.org/shop-web/internal/catalog"
	"verdantgoods.org/shop-web/internal/checkout"
	"verdantgoods.org/shop-web/internal/config"
	mw "verdantgoods.org/shop-web/internal/middleware"
	"verdantgoods.org/shop-web/internal/observability"
)

// server bundles the page controllers' dependencies.
type server struct {
	cfg      config.Config
	logger   *zap.Logger
	catalog  *catalog.Loader
	cart     *cart.Store
	checkout *checkout.Service
	content  fs.FS

	templatesDir string
	dev          bool
	tmplCache    *template.Template
}

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	var addr string
	flag.StringVar(&addr, "addr", ":"+cfg.Server.Port, "HTTP listen address")
	flag.StringVar(&cfg.Content.TemplatesDir, "templates", cfg.Content.TemplatesDir, "templates directory")
	flag.StringVar(&cfg.Content.PublicDir, "public", cfg.Content.PublicDir, "public assets directory")
	flag.Parse()

	storage, err := cart.NewFileStorage(cfg.Cart.Dir)
	if err != nil {
		logger.Fatal("cart storage", zap.Error(err))
	}

	srv, err := newServer(cfg, logger, storage, os.DirFS("."))
	if err != nil {
		logger.Fatal("server init", zap.Error(err))
	}

	if !srv.dev {
		// Parse templates once in production.
		tc, err := srv.parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		srv.tmplCache = tc
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	logger.Info("web listening", zap.String("addr", addr), zap.Bool("dev", srv.dev))
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}
}

// newServer wires the storefront against the provided storage backend and
// source filesystem (catalog document and content pages are read from it).
func newServer(cfg config.Config, logger *zap.Logger, storage cart.Storage, source fs.FS) (*server, error) {
	loader, err := catalog.NewLoader(catalog.LoaderDeps{
		FS:       source,
		Path:     cfg.Catalog.Path,
		CacheTTL: cfg.Catalog.CacheTTL,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	store, err := cart.NewStore(cart.StoreDeps{
		Storage:     storage,
		ShippingFee: cfg.Cart.ShippingFee,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	checkoutSvc, err := checkout.NewService(checkout.ServiceDeps{
		Cart:   store,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	content, err := fs.Sub(source, cfg.Content.Dir)
	if err != nil {
		return nil, err
	}

	return &server{
		cfg:          cfg,
		logger:       logger,
		catalog:      loader,
		cart:         store,
		checkout:     checkoutSvc,
		content:      content,
		templatesDir: cfg.Content.TemplatesDir,
		dev:          cfg.Dev,
	}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(mw.Session)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assets := http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(s.cfg.Content.PublicDir, "assets"))))
	r.Handle("/assets/*", assets)

	r.Get("/", s.HomeHandler)
	r.Get("/shop", s.ShopHandler)
	r.Get("/product", s.ProductHandler)

	r.Get("/cart", s.CartHandler)
	r.Post("/cart/{action}", s.CartActionHandler)

	r.Get("/checkout", s.CheckoutHandler)
	r.Post("/checkout", s.PlaceOrderHandler)
	r.Get("/order/success", s.OrderSuccessHandler)

	r.Post("/newsletter", s.NewsletterHandler)
	r.Post("/contact", s.ContactHandler)
	r.Get("/pages/{slug}", s.ContentPageHandler)

	return r
}

func (s *server) parseTemplates() (*template.Template, error) {
	var files []string
	if err := filepath.WalkDir(s.templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", s.templatesDir)
	}
	return template.ParseFiles(files...)
}

// render executes the named page template. In dev mode, templates are
// reparsed on each request.
func (s *server) render(w http.ResponseWriter, status int, name string, data any) {
	t := s.tmplCache
	if s.dev || t == nil {
		tc, err := s.parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return
		}
		t = tc
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template exec", zap.String("template", name), zap.Error(err))
	}
}
