package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"jamesfarrell.me/youtube-captions/internal/storage/models"
)

type VideoRepository interface {
	Create(ctx context.Context, video *models.VideoRequest, slug string) (string, error)
	Get(ctx context.Context, id string) (*models.Video, error)
	List(ctx context.Context) ([]models.Video, error)
}

type TranscriptProcessor interface {
	Process(ctx context.Context, id, videoURL string, searchable bool) error
}

type VideoHandler struct {
	repo      VideoRepository
	processor TranscriptProcessor
}

func NewVideoHandler(repo VideoRepository, processor TranscriptProcessor) *VideoHandler {
	return &VideoHandler{repo: repo, processor: processor}
}

// AddVideo stores a video and synchronously fetches its transcript from the
// best available caption track.
func (h *VideoHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	var video models.VideoRequest
	if err := json.NewDecoder(r.Body).Decode(&video); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slug, err := models.ExtractVideoID(video.URL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.repo.Create(r.Context(), &video, slug)
	if err != nil {
		log.Printf("Error inserting video: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := "completed"
	if err := h.processor.Process(r.Context(), id, video.URL, video.IsSearchable); err != nil {
		log.Printf("Error processing video %s: %v", id, err)
		status = "failed"
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": status})
}

func (h *VideoHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	videoID := vars["id"]

	video, err := h.repo.Get(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Video not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, video)
}

func (h *VideoHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, videos)
}
