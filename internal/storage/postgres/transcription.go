package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"jamesfarrell.me/youtube-captions/internal/storage/models"
)

type TranscriptionRepository struct {
	db *sql.DB
}

func NewTranscriptionRepository(db *sql.DB) *TranscriptionRepository {
	return &TranscriptionRepository{db: db}
}

func (r *TranscriptionRepository) SaveChunks(ctx context.Context, videoID string, chunks []models.Chunk) error {
	stmt, err := r.db.PrepareContext(ctx, `
        INSERT INTO "VideoChunk" (video_id, chunk_text, chunk_embedding, chunk_start, chunk_end)
        VALUES ($1, $2, $3::float8[], $4, $5)
    `)
	if err != nil {
		return fmt.Errorf("prepare statement failed: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		// Convert []float32 to []float64 for PostgreSQL compatibility
		embedding64 := make([]float64, len(chunk.Embedding))
		for i, v := range chunk.Embedding {
			embedding64[i] = float64(v)
		}

		_, err = stmt.ExecContext(ctx,
			videoID,
			chunk.Text,
			pq.Array(embedding64),
			chunk.StartPosition,
			chunk.EndPosition,
		)
		if err != nil {
			return fmt.Errorf("chunk insert failed: %w", err)
		}
	}
	return nil
}

func (r *TranscriptionRepository) SaveTranscription(ctx context.Context, videoID, languageCode, transcription string) error {
	const query = `
		UPDATE "Video"
		SET transcription = $1, "languageCode" = $2, "updatedAt" = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, transcription, languageCode, videoID)
	if err != nil {
		return fmt.Errorf("failed to execute update: %w", err)
	}
	return requireRow(result, videoID)
}

func (r *TranscriptionRepository) UpdateVideoStatus(ctx context.Context, videoID string, status string) error {
	const query = `
		UPDATE "Video"
		SET status = $1, "updatedAt" = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, status, videoID)
	if err != nil {
		return fmt.Errorf("failed to execute update: %w", err)
	}
	return requireRow(result, videoID)
}

func requireRow(result sql.Result, videoID string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("no video found with ID: %s", videoID)
	}
	return nil
}
