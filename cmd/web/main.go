package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"radient/internal/catalog"
	"radient/internal/config"
	"radient/internal/handlers"
	"radient/internal/showcase"
)

func main() {
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	log.Printf("[catalog] %d tabs, %d examples, %d faq entries", len(cat.Tabs), len(cat.Examples), len(cat.FAQ))

	store := showcase.NewStore(cat, showcase.Settings{
		CopyReset:      cfg.Feedback.CopyReset,
		SubscribeReset: cfg.Feedback.SubscribeReset,
		Particles:      cfg.Scatter.Particles,
		Sparkles:       cfg.Scatter.Sparkles,
	}, cfg.Session.IdleTTL)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		log.Fatal(err)
	}

	homeHandler := handlers.NewHomeHandler(store, cfg.Session)
	sessionHandler := handlers.NewSessionHandler(store, cfg.Session)
	apiHandler := handlers.NewAPIHandler(store, cfg.Scatter.Particles)

	// Streams stay open for the life of the page and sit outside the timeout.
	sessionHandler.RegisterStreamRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
		r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))
		homeHandler.RegisterRoutes(r)
		sessionHandler.RegisterRoutes(r)
		apiHandler.RegisterHealth(r)
		r.Route("/api", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: cfg.Server.CorsOrigins,
				AllowedMethods: []string{"GET", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
			apiHandler.RegisterRoutes(r)
		})
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	// Closing the store ends every open stream so Shutdown can drain.
	server.RegisterOnShutdown(store.Close)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("listening on http://localhost%s (%s)", cfg.Server.Addr(), cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-shutdown
	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func loadCatalog(c config.CatalogConfig) (*catalog.Catalog, error) {
	if c.Path == "" {
		return catalog.Default()
	}
	return catalog.Load(c.Path)
}

//go:embed static/*
var embeddedStatic embed.FS
