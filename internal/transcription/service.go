package transcription

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"jamesfarrell.me/youtube-captions/internal/captions"
	"jamesfarrell.me/youtube-captions/internal/storage/models"
	"jamesfarrell.me/youtube-captions/internal/youtube"
)

// maxChunkChars is the approximate size of a semantic search chunk.
const maxChunkChars = 500

type PlayerClient interface {
	Player(ctx context.Context, videoID string) (*youtube.PlayerResponse, error)
}

type CaptionFetcher interface {
	Fetch(ctx context.Context, baseURL string) ([]captions.Entry, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type TranscriptionStore interface {
	SaveTranscription(ctx context.Context, videoID, languageCode, transcription string) error
	UpdateVideoStatus(ctx context.Context, videoID string, status string) error
	SaveChunks(ctx context.Context, videoID string, chunks []models.Chunk) error
}

// Service fetches a video's transcript from its best caption track,
// persists it, and indexes searchable videos as embedded chunks.
type Service struct {
	repo      TranscriptionStore
	yt        PlayerClient
	fetcher   CaptionFetcher
	embedder  Embedder
	languages []string
}

func NewService(repo TranscriptionStore, yt PlayerClient, fetcher CaptionFetcher, embedder Embedder, languages []string) *Service {
	return &Service{
		repo:      repo,
		yt:        yt,
		fetcher:   fetcher,
		embedder:  embedder,
		languages: languages,
	}
}

// Process resolves the transcript for a stored video and marks it completed,
// or failed when no usable caption track exists.
func (s *Service) Process(ctx context.Context, id, videoURL string, searchable bool) error {
	if err := s.process(ctx, id, videoURL, searchable); err != nil {
		if statusErr := s.repo.UpdateVideoStatus(ctx, id, "failed"); statusErr != nil {
			log.Printf("Failed to mark video %s as failed: %v", id, statusErr)
		}
		return err
	}
	return s.repo.UpdateVideoStatus(ctx, id, "completed")
}

func (s *Service) process(ctx context.Context, id, videoURL string, searchable bool) error {
	videoID, err := models.ExtractVideoID(videoURL)
	if err != nil {
		return err
	}

	player, err := s.yt.Player(ctx, videoID)
	if err != nil {
		return fmt.Errorf("player lookup: %w", err)
	}

	tracks := player.CaptionTracks()
	if len(tracks) == 0 {
		if ps := player.PlayabilityStatus; ps != nil && ps.Reason != "" {
			return fmt.Errorf("no captions available: %s", ps.Reason)
		}
		return errors.New("no captions available for this video")
	}

	track, ok := youtube.BestTrack(tracks, s.languages)
	if !ok {
		return errors.New("no usable caption track")
	}

	entries, err := s.fetcher.Fetch(ctx, track.BaseURL)
	if err != nil {
		return fmt.Errorf("fetch captions: %w", err)
	}

	transcript := captions.Concatenate(entries)
	if err := s.repo.SaveTranscription(ctx, id, track.LanguageCode, transcript); err != nil {
		return fmt.Errorf("save transcription: %w", err)
	}

	if !searchable {
		return nil
	}
	return s.index(ctx, id, transcript)
}

// index chunks the transcript, embeds each chunk and stores the result.
func (s *Service) index(ctx context.Context, id, transcript string) error {
	chunks := chunkTranscript(transcript)
	for i := range chunks {
		embedding, err := s.embedder.Embed(ctx, chunks[i].Text)
		if err != nil {
			return fmt.Errorf("failed to generate embedding: %w", err)
		}
		chunks[i].Embedding = embedding
	}
	if err := s.repo.SaveChunks(ctx, id, chunks); err != nil {
		return fmt.Errorf("failed to save chunks: %w", err)
	}
	return nil
}

// chunkTranscript splits a transcript into sentence-aligned chunks of roughly
// maxChunkChars characters with a one-sentence overlap between neighbors.
// Positions are character offsets into the original transcript.
func chunkTranscript(text string) []models.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sentences := strings.Split(text, ". ")
	offsets := make([]int, len(sentences))
	pos := 0
	for i, sentence := range sentences {
		offsets[i] = pos
		pos += len(sentence) + 2
	}

	var chunks []models.Chunk
	var current strings.Builder
	startIdx := 0

	for i, sentence := range sentences {
		current.WriteString(sentence)
		current.WriteString(". ")

		if i < len(sentences)-1 && current.Len() <= maxChunkChars {
			continue
		}

		chunkText := strings.TrimSpace(current.String())
		if chunkText == "" || chunkText == "." {
			continue
		}

		end := offsets[i] + len(sentence)
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, models.Chunk{
			Text:          chunkText,
			StartPosition: offsets[startIdx],
			EndPosition:   end,
		})

		if i < len(sentences)-1 {
			current.Reset()
			overlapStart := max(0, i-1)
			for j := overlapStart; j <= i; j++ {
				current.WriteString(sentences[j])
				current.WriteString(". ")
			}
			startIdx = overlapStart
		}
	}

	return chunks
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
