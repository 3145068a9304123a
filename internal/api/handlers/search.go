package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/pgvector/pgvector-go"
	"jamesfarrell.me/youtube-captions/internal/storage/models"
)

const defaultSearchLimit = 5

// normalizeLimit clamps missing or non-positive limits to the default so
// they never reach the SQL LIMIT clause.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	return limit
}

type QueryEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type SearchHandler struct {
	db       *sql.DB
	embedder QueryEmbedder
}

func NewSearchHandler(db *sql.DB, embedder QueryEmbedder) *SearchHandler {
	return &SearchHandler{db: db, embedder: embedder}
}

// SearchVideos embeds the query and ranks stored transcript chunks by cosine
// similarity over completed videos.
func (h *SearchHandler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	var searchReq models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&searchReq); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	searchReq.Limit = normalizeLimit(searchReq.Limit)

	embedding, err := h.embedder.Embed(r.Context(), searchReq.Query)
	if err != nil {
		log.Printf("Error getting embedding: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	vector := pgvector.NewVector(embedding)

	rows, err := h.db.QueryContext(r.Context(), `
		WITH query_embedding AS (
			SELECT $1::vector AS vec
		)
		SELECT
			v.id AS video_id,
			vc.chunk_text,
			vc.chunk_start,
			vc.chunk_end,
			1 - (vc.chunk_embedding <=> (SELECT vec FROM query_embedding)) AS similarity
		FROM "VideoChunk" vc
		JOIN "Video" v ON v.id = vc.video_id
		WHERE v.status = 'completed'
		ORDER BY vc.chunk_embedding <=> (SELECT vec FROM query_embedding)
		LIMIT $2
	`, vector, searchReq.Limit)
	if err != nil {
		log.Printf("Error querying database: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	results := []models.SearchResult{}
	for rows.Next() {
		var result models.SearchResult
		err := rows.Scan(
			&result.VideoID,
			&result.ChunkText,
			&result.StartPosition,
			&result.EndPosition,
			&result.Similarity,
		)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.SearchResponse{Results: results})
}
