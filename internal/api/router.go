package api

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"jamesfarrell.me/youtube-captions/internal/api/handlers"
	"jamesfarrell.me/youtube-captions/internal/api/middleware"
	"jamesfarrell.me/youtube-captions/internal/captions"
	"jamesfarrell.me/youtube-captions/internal/config"
	"jamesfarrell.me/youtube-captions/internal/embeddings"
	"jamesfarrell.me/youtube-captions/internal/storage/postgres"
	"jamesfarrell.me/youtube-captions/internal/transcription"
	"jamesfarrell.me/youtube-captions/internal/youtube"
)

func NewRouter(cfg *config.Config, database *sql.DB) http.Handler {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	// Protected routes
	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.APIKey(cfg.APIKey))

	ytClient := youtube.NewClient()
	fetcher := captions.NewFetcher()
	embedder := embeddings.NewClient(cfg.OpenAIKey)

	videoRepo := postgres.NewVideoRepository(database)
	transcriptionRepo := postgres.NewTranscriptionRepository(database)
	processor := transcription.NewService(transcriptionRepo, ytClient, fetcher, embedder, cfg.Languages)

	captionsHandler := handlers.NewCaptionsHandler(ytClient, fetcher)
	videoHandler := handlers.NewVideoHandler(videoRepo, processor)
	searchHandler := handlers.NewSearchHandler(database, embedder)

	protected.HandleFunc("/", handlers.Home).Methods(http.MethodGet)
	protected.HandleFunc("/captions", captionsHandler.GetCaptions).Methods(http.MethodGet)

	// Video routes
	videos := protected.PathPrefix("/videos").Subrouter()
	videos.HandleFunc("", videoHandler.ListVideos).Methods(http.MethodGet)
	videos.HandleFunc("", videoHandler.AddVideo).Methods(http.MethodPost)
	videos.HandleFunc("/{id}", videoHandler.GetVideo).Methods(http.MethodGet)

	// Search routes
	protected.HandleFunc("/search", searchHandler.SearchVideos).Methods(http.MethodPost)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
