package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"sheetr/handlers"
)

// corsMiddleware handles CORS for API routes
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Register mounts API endpoints onto the provided router. Reads are open;
// every mutation goes through the guard.
func Register(
	r *mux.Router,
	downlistHandler *handlers.DownlistHandler,
	queueHandler *handlers.QueueHandler,
	reviewsHandler *handlers.ReviewsHandler,
	speweekHandler *handlers.SpeweekHandler,
	dashboardHandler *handlers.DashboardHandler,
	exportHandler *handlers.ExportHandler,
	guard *handlers.AuthGuard,
	authRoutes http.Handler,
	avatarRoutes http.Handler,
) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(corsMiddleware)

	// Downlist (backlog)
	api.HandleFunc("/downlist", downlistHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/downlist", guard.RequireEditor(downlistHandler.Add)).Methods(http.MethodPost)
	api.HandleFunc("/downlist", downlistHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/downlist/{id}", guard.RequireEditor(downlistHandler.Update)).Methods(http.MethodPut)
	api.HandleFunc("/downlist/{id}", guard.RequireEditor(downlistHandler.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/downlist/{id}", downlistHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/downlist/{id}/downloaded", guard.RequireEditor(downlistHandler.SetDownloaded)).Methods(http.MethodPatch)
	api.HandleFunc("/downlist/{id}/toggle", guard.RequireEditor(downlistHandler.Toggle)).Methods(http.MethodPost)

	// Queue (ordered watch queue)
	api.HandleFunc("/queue", queueHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/queue", guard.RequireEditor(queueHandler.Add)).Methods(http.MethodPost)
	api.HandleFunc("/queue", queueHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/queue/order", guard.RequireEditor(queueHandler.Reorder)).Methods(http.MethodPut)
	api.HandleFunc("/queue/{refID}", guard.RequireEditor(queueHandler.Remove)).Methods(http.MethodDelete)

	// Reviews (archive)
	api.HandleFunc("/reviews", reviewsHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/reviews", guard.RequireEditor(reviewsHandler.Add)).Methods(http.MethodPost)
	api.HandleFunc("/reviews", reviewsHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/reviews/{id}", guard.RequireEditor(reviewsHandler.Update)).Methods(http.MethodPut)
	api.HandleFunc("/reviews/{id}", guard.RequireEditor(reviewsHandler.Delete)).Methods(http.MethodDelete)

	// Speweek (themed events)
	api.HandleFunc("/speweek", speweekHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/speweek", speweekHandler.Options).Methods(http.MethodOptions)
	api.HandleFunc("/speweek/events", guard.RequireEditor(speweekHandler.AddEvent)).Methods(http.MethodPost)
	api.HandleFunc("/speweek/movies", guard.RequireEditor(speweekHandler.AddMovie)).Methods(http.MethodPost)
	api.HandleFunc("/speweek/{id}", guard.RequireEditor(speweekHandler.Delete)).Methods(http.MethodDelete)

	// Dashboard counters
	api.HandleFunc("/dashboard/summary", dashboardHandler.Summary).Methods(http.MethodGet)

	// Local snapshots
	if exportHandler != nil {
		api.HandleFunc("/admin/export", guard.RequireEditor(exportHandler.Run)).Methods(http.MethodPost)
	}

	// Social login + avatar proxy
	if authRoutes != nil {
		r.PathPrefix("/auth").Handler(authRoutes)
	}
	if avatarRoutes != nil {
		r.PathPrefix("/avatar").Handler(avatarRoutes)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	// Home route: the redirect target for authorization failures. The error
	// code arrives as a query parameter and is echoed for the frontend.
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := map[string]string{"service": "sheetr"}
		if code := r.URL.Query().Get("error"); code != "" {
			body["error"] = code
		}
		json.NewEncoder(w).Encode(body)
	}).Methods(http.MethodGet)
}
