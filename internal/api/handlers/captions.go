package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"jamesfarrell.me/youtube-captions/internal/captions"
	"jamesfarrell.me/youtube-captions/internal/youtube"
)

type PlayerClient interface {
	Player(ctx context.Context, videoID string) (*youtube.PlayerResponse, error)
}

type CaptionFetcher interface {
	Fetch(ctx context.Context, baseURL string) ([]captions.Entry, error)
}

type CaptionsHandler struct {
	yt      PlayerClient
	fetcher CaptionFetcher
}

func NewCaptionsHandler(yt PlayerClient, fetcher CaptionFetcher) *CaptionsHandler {
	return &CaptionsHandler{yt: yt, fetcher: fetcher}
}

// videoMeta is attached to every captions response, including error payloads
// for videos that exist but have no usable captions.
type videoMeta struct {
	VideoTitle  string `json:"video_title"`
	Thumbnail   string `json:"thumbnail"`
	ChannelName string `json:"channel_name"`
	ChannelLogo string `json:"channel_logo"`
}

type languageOption struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
}

type captionsErrorResponse struct {
	Error string `json:"error"`
	videoMeta
}

type languagesResponse struct {
	VideoID string `json:"video_id"`
	videoMeta
	AvailableLanguages []languageOption `json:"available_languages"`
}

type timestampedResponse struct {
	VideoID string `json:"video_id"`
	videoMeta
	LanguageCode        string           `json:"languageCode"`
	TimestampedCaptions []captions.Entry `json:"timestamped_captions"`
}

type transcriptResponse struct {
	VideoID string `json:"video_id"`
	videoMeta
	LanguageCode string `json:"languageCode"`
	Captions     string `json:"captions"`
}

func metaFrom(player *youtube.PlayerResponse) videoMeta {
	m := player.Metadata()
	return videoMeta{
		VideoTitle:  m.Title,
		Thumbnail:   m.Thumbnail,
		ChannelName: m.ChannelName,
		ChannelLogo: m.ChannelLogo,
	}
}

// GetCaptions fetches and parses captions for a YouTube video by video ID.
// Without a language parameter it lists the languages available; with one it
// returns the transcript, timestamped or concatenated.
func (h *CaptionsHandler) GetCaptions(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")
	language := r.URL.Query().Get("language")
	timestamps := strings.EqualFold(r.URL.Query().Get("timestamps"), "true")

	if videoID == "" {
		writeError(w, http.StatusBadRequest, "Missing video_id parameter")
		return
	}

	player, err := h.yt.Player(r.Context(), videoID)
	if err != nil {
		log.Printf("Error while fetching captions for video_id %s: %v", videoID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	meta := metaFrom(player)
	tracks := player.CaptionTracks()
	if len(tracks) == 0 {
		writeJSON(w, http.StatusNotFound, captionsErrorResponse{
			Error:     "No captions available for this video.",
			videoMeta: meta,
		})
		return
	}

	if language == "" {
		languages := make([]languageOption, 0, len(tracks))
		for _, track := range tracks {
			languages = append(languages, languageOption{
				LanguageCode: track.LanguageCode,
				Name:         track.Name.SimpleText,
			})
		}
		writeJSON(w, http.StatusOK, languagesResponse{
			VideoID:            videoID,
			videoMeta:          meta,
			AvailableLanguages: languages,
		})
		return
	}

	track, ok := youtube.FindTrack(tracks, language)
	if !ok {
		writeJSON(w, http.StatusNotFound, captionsErrorResponse{
			Error:     fmt.Sprintf("No captions available for the selected language: %s", language),
			videoMeta: meta,
		})
		return
	}

	entries, err := h.fetcher.Fetch(r.Context(), track.BaseURL)
	if err != nil {
		log.Printf("Error while fetching captions for video_id %s: %v", videoID, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if timestamps {
		writeJSON(w, http.StatusOK, timestampedResponse{
			VideoID:             videoID,
			videoMeta:           meta,
			LanguageCode:        language,
			TimestampedCaptions: entries,
		})
		return
	}

	writeJSON(w, http.StatusOK, transcriptResponse{
		VideoID:      videoID,
		videoMeta:    meta,
		LanguageCode: language,
		Captions:     captions.Concatenate(entries),
	})
}
