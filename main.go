package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"

	"sheetr/api"
	"sheetr/config"
	"sheetr/handlers"
	"sheetr/internal/sheets"
	"sheetr/services/access"
	"sheetr/services/downlist"
	"sheetr/services/export"
	"sheetr/services/queue"
	"sheetr/services/reviews"
	"sheetr/services/sessions"
	"sheetr/services/speweek"
)

// Sheet tabs the dashboard lives on, with their column layouts. The export
// endpoint reuses the column map to know which fields to dump.
var sheetColumns = map[string][]string{
	"Downlist": {"id", "title", "release_year", "is_downloaded", "is_watched"},
	"Speweek":  {"id", "title", "release_year", "added_month", "added_year", "theme", "is_watched"},
	"Queue":    {"ref_id", "origin", "title", "added_at"},
	"Reviews":  {"id", "title", "rating", "date"},
}

var sheetTitles = []string{"Downlist", "Speweek", "Queue", "Reviews"}

func main() {

	demoMode := flag.Bool("demo", false, "serve a seeded in-memory spreadsheet without Google credentials")
	portOverride := flag.Int("port", 0, "override server port from config")
	flag.Parse()

	fmt.Println("🚀 sheetr Backend Starting...")
	if *demoMode {
		fmt.Println("🧪 Demo mode enabled: in-memory spreadsheet, auth disabled.")
	}

	// Load .env if present; real deployments pass env directly
	_ = godotenv.Load()

	// Determine config path (env or default)
	configPath := os.Getenv("SHEETR_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("cache", "settings.json")
	}

	// Init config manager and load settings (creates defaults if missing)
	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Set up file logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			multiWriter := io.MultiWriter(os.Stdout, fileWriter)
			log.SetOutput(multiWriter)
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("Logging to file: %s", settings.Log.File)
		}
	}

	// Apply port override if specified
	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}

	ctx := context.Background()

	var store sheets.Store
	var guard *handlers.AuthGuard
	var authRoutes, avatarRoutes http.Handler

	if *demoMode {
		store = demoStore()
		guard = handlers.NewOpenGuard()
	} else {
		client, err := sheets.NewGoogleClient(ctx, settings.Google.ServiceAccountEmail, settings.Google.PrivateKey)
		if err != nil {
			log.Fatalf("failed to build google client: %v", err)
		}
		googleStore, err := sheets.NewGoogleStore(ctx, client, settings.Google.SheetID)
		if err != nil {
			log.Fatalf("failed to build sheet store: %v", err)
		}
		store = googleStore

		lister, err := access.NewDriveLister(ctx, client, settings.Google.SheetID)
		if err != nil {
			log.Fatalf("failed to build drive lister: %v", err)
		}
		accessService := access.NewService(lister, settings.Auth.AdminEmail,
			time.Duration(settings.Access.CacheTTLMinutes)*time.Minute)

		sessionService, err := sessions.NewService(sessions.Config{
			Secret:       settings.Auth.Secret,
			URL:          settings.Auth.URL,
			ClientID:     settings.Auth.ClientID,
			ClientSecret: settings.Auth.ClientSecret,
			AvatarDir:    settings.Auth.AvatarDir,
		})
		if err != nil {
			log.Fatalf("failed to initialise sessions: %v", err)
		}
		authRoutes, avatarRoutes = sessionService.Handlers()
		guard = handlers.NewAuthGuard(sessionService, accessService)
	}

	downlistService, err := downlist.NewService(store)
	if err != nil {
		log.Fatalf("failed to initialise downlist: %v", err)
	}
	queueService, err := queue.NewService(store)
	if err != nil {
		log.Fatalf("failed to initialise queue: %v", err)
	}
	reviewsService, err := reviews.NewService(store)
	if err != nil {
		log.Fatalf("failed to initialise reviews: %v", err)
	}
	speweekService, err := speweek.NewService(store)
	if err != nil {
		log.Fatalf("failed to initialise speweek: %v", err)
	}
	exportService, err := export.NewService(afero.NewOsFs(), store, settings.Export.Directory, sheetColumns)
	if err != nil {
		log.Fatalf("failed to initialise export: %v", err)
	}

	downlistHandler := handlers.NewDownlistHandler(downlistService)
	queueHandler := handlers.NewQueueHandler(queueService)
	reviewsHandler := handlers.NewReviewsHandler(reviewsService)
	speweekHandler := handlers.NewSpeweekHandler(speweekService)
	dashboardHandler := handlers.NewDashboardHandler(reviewsService, downlistService)
	exportHandler := handlers.NewExportHandler(exportService, sheetTitles)

	r := mux.NewRouter()
	api.Register(
		r,
		downlistHandler,
		queueHandler,
		reviewsHandler,
		speweekHandler,
		dashboardHandler,
		exportHandler,
		guard,
		authRoutes,
		avatarRoutes,
	)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	fmt.Printf("Server starting on %s\n", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Setup graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("🛑 Shutdown signal received, cleaning up...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}

// demoStore seeds an in-memory spreadsheet so the dashboard has something to
// show without Google credentials.
func demoStore() *sheets.MemStore {
	store := sheets.NewMemStore()
	for _, title := range sheetTitles {
		store.AddSheet(title, sheetColumns[title])
	}

	ctx := context.Background()

	seed := func(title string, rows []map[string]string) {
		sheet, err := store.Sheet(ctx, title)
		if err != nil {
			log.Fatalf("demo seed: %v", err)
		}
		if err := sheet.Append(ctx, rows); err != nil {
			log.Fatalf("demo seed: %v", err)
		}
	}

	seed("Downlist", []map[string]string{
		{"id": "demo-downlist-1", "title": "Metropolis", "release_year": "1927", "is_downloaded": "TRUE", "is_watched": "FALSE"},
		{"id": "demo-downlist-2", "title": "Nosferatu", "release_year": "1922", "is_downloaded": "FALSE", "is_watched": "FALSE"},
		{"id": "demo-downlist-3", "title": "The General", "release_year": "1926", "is_downloaded": "TRUE", "is_watched": "TRUE"},
	})
	seed("Speweek", []map[string]string{
		{"id": "demo-speweek-1", "title": "Häxan", "release_year": "1922", "added_month": "10", "added_year": "1999", "theme": "Silent Horror", "is_watched": "TRUE"},
		{"id": "demo-speweek-2", "title": "The Cabinet of Dr. Caligari", "release_year": "1920", "added_month": "10", "added_year": "1999", "theme": "Silent Horror", "is_watched": "FALSE"},
	})
	seed("Queue", []map[string]string{
		{"ref_id": "demo-downlist-1", "origin": "downlist", "title": "Metropolis", "added_at": "1999-10-01T12:00:00Z"},
	})
	seed("Reviews", []map[string]string{
		{"id": "demo-review-1", "title": "The General", "rating": "9", "date": "1999-10-05"},
	})

	return store
}
