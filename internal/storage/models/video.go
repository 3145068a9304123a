package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Video struct {
	ID            string    `json:"id"`
	VideoURL      string    `json:"videoUrl"`
	Slug          string    `json:"slug"`
	LanguageCode  *string   `json:"languageCode,omitempty"`
	Transcription *string   `json:"transcription,omitempty"`
	Status        string    `json:"status"`
	IsSearchable  bool      `json:"isSearchable"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type VideoRequest struct {
	URL          string `json:"url"`
	IsSearchable bool   `json:"isSearchable"`
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

type SearchResult struct {
	VideoID       string  `json:"videoId"`
	ChunkText     string  `json:"chunkText"`
	StartPosition int     `json:"startPosition"`
	EndPosition   int     `json:"endPosition"`
	Similarity    float64 `json:"similarity"`
}

// Chunk is a transcript slice prepared for semantic search. Positions are
// character offsets into the full transcript.
type Chunk struct {
	Text          string
	StartPosition int
	EndPosition   int
	Embedding     []float32
}

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
// Supports watch?v= and youtu.be forms, and accepts a bare video ID.
func ExtractVideoID(videoURL string) (string, error) {
	if !strings.Contains(videoURL, "/") && !strings.Contains(videoURL, "?") {
		return videoURL, nil
	}

	u, err := url.Parse(videoURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	if strings.HasSuffix(u.Host, "youtu.be") {
		if id := strings.Trim(u.Path, "/"); id != "" {
			return id, nil
		}
	}

	if id := u.Query().Get("v"); id != "" {
		return id, nil
	}

	// Embed and shorts URLs carry the ID as the last path segment.
	if strings.HasPrefix(u.Path, "/embed/") || strings.HasPrefix(u.Path, "/shorts/") {
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		return parts[len(parts)-1], nil
	}

	return "", fmt.Errorf("could not extract video ID from URL: %s", videoURL)
}
