package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/aushadx/profile-directory/internal/http/health"
	"github.com/aushadx/profile-directory/internal/http/v1/routes"
	"github.com/aushadx/profile-directory/internal/platform/config"
	"github.com/aushadx/profile-directory/internal/platform/firebase"
	applog "github.com/aushadx/profile-directory/internal/platform/logging"
	appmiddleware "github.com/aushadx/profile-directory/internal/platform/middleware"
	"github.com/aushadx/profile-directory/internal/platform/respond"
	"github.com/aushadx/profile-directory/internal/service/asset"
	"github.com/aushadx/profile-directory/internal/service/directory"
	"github.com/aushadx/profile-directory/internal/service/document"
	"github.com/aushadx/profile-directory/internal/service/recognition"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

// maxRequestBytes bounds request bodies: a 5 MiB photo plus multipart
// boundaries and text fields.
const maxRequestBytes = 6 << 20

func main() {
	ctx := context.Background()

	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg := config.Load()

	assets, err := asset.NewDiskStore(cfg.UploadDir)
	if err != nil {
		applog.LogFatal(ctx, "asset store init failed", err, zap.String("dir", cfg.UploadDir))
	}

	var docs document.Store
	storeKind := "memory"
	if cfg.ProjectID != "" {
		clients, err := firebase.InitializeClients(ctx, firebase.Config{
			ProjectID:                    cfg.ProjectID,
			GoogleApplicationCredentials: cfg.CredentialsFile,
		})
		if err != nil {
			applog.LogFatal(ctx, "firestore init failed", err, zap.String("project", cfg.ProjectID))
		}
		defer func() {
			if err := clients.Close(); err != nil {
				applog.LogError(ctx, "firestore close error", err)
			}
		}()
		docs = document.NewFirestoreStore(clients.Firestore)
		storeKind = "firestore"
	} else {
		applog.LogWarn(ctx, "no Firestore project configured, using in-memory document store")
		docs = document.NewMemoryStore()
	}

	directoryService := directory.New(docs, assets)
	recognitionService := recognition.NewClient(
		&http.Client{Timeout: 30 * time.Second},
		recognition.WithBaseURL(cfg.RecognizerURL),
	)

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api-docs", asset.PublicPrefix),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// Only safe behind a trusted reverse proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(maxRequestBytes),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(storeKind))
	router.Handle(asset.PublicPrefix+"/*", http.StripPrefix(asset.PublicPrefix+"/",
		http.FileServer(http.Dir(assets.Dir()))))

	respond.Install()

	humaCfg := huma.DefaultConfig("Profile Directory API", Version)
	humaCfg.DocsPath = "/api-docs"
	api := humachi.New(router, humaCfg)

	routes.Register(api, directoryService, recognitionService)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		applog.LogInfo(ctx, "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(ctx, "server exited")
}
