package postgres

import (
	"context"
	"database/sql"

	"jamesfarrell.me/youtube-captions/internal/storage/models"
)

type VideoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, video *models.VideoRequest, slug string) (string, error) {
	const query = `
		INSERT INTO "Video" (id, "videoUrl", slug, status, "isSearchable", "createdAt", "updatedAt")
		VALUES (gen_random_uuid(), $1, $2, 'pending', $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id
	`

	var id string
	err := r.db.QueryRowContext(ctx, query,
		video.URL,
		slug,
		video.IsSearchable,
	).Scan(&id)
	return id, err
}

func (r *VideoRepository) Get(ctx context.Context, id string) (*models.Video, error) {
	const query = `
		SELECT id, "videoUrl", slug, "languageCode", transcription, status, "isSearchable",
			   "createdAt", "updatedAt"
		FROM "Video"
		WHERE id = $1
	`

	var video models.Video
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&video.ID,
		&video.VideoURL,
		&video.Slug,
		&video.LanguageCode,
		&video.Transcription,
		&video.Status,
		&video.IsSearchable,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) List(ctx context.Context) ([]models.Video, error) {
	const query = `
		SELECT id, "videoUrl", slug, "languageCode", transcription, status, "isSearchable",
			   "createdAt", "updatedAt"
		FROM "Video"
		ORDER BY "createdAt" DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var video models.Video
		err := rows.Scan(
			&video.ID,
			&video.VideoURL,
			&video.Slug,
			&video.LanguageCode,
			&video.Transcription,
			&video.Status,
			&video.IsSearchable,
			&video.CreatedAt,
			&video.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}
