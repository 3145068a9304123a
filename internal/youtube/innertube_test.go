package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFindTrack(t *testing.T) {
	tracks := []CaptionTrack{
		{BaseURL: "https://yt/a", LanguageCode: "en", Name: TrackName{SimpleText: "English"}},
		{BaseURL: "https://yt/b", LanguageCode: "de", Name: TrackName{SimpleText: "German"}},
	}

	track, ok := FindTrack(tracks, "de")
	if !ok {
		t.Fatal("FindTrack() did not find de track")
	}
	if track.BaseURL != "https://yt/b" {
		t.Errorf("FindTrack() BaseURL = %q", track.BaseURL)
	}

	if _, ok := FindTrack(tracks, "fr"); ok {
		t.Error("FindTrack() found nonexistent fr track")
	}
}

func TestBestTrack(t *testing.T) {
	tests := []struct {
		name    string
		tracks  []CaptionTrack
		langs   []string
		wantURL string
		wantOK  bool
	}{
		{
			name: "manual preferred over asr",
			tracks: []CaptionTrack{
				{BaseURL: "asr", LanguageCode: "en", Kind: "asr"},
				{BaseURL: "manual", LanguageCode: "en"},
			},
			langs:   []string{"en"},
			wantURL: "manual",
			wantOK:  true,
		},
		{
			name: "asr accepted when no manual track",
			tracks: []CaptionTrack{
				{BaseURL: "asr", LanguageCode: "en", Kind: "asr"},
			},
			langs:   []string{"en"},
			wantURL: "asr",
			wantOK:  true,
		},
		{
			name: "language preference order",
			tracks: []CaptionTrack{
				{BaseURL: "english", LanguageCode: "en"},
				{BaseURL: "german", LanguageCode: "de"},
			},
			langs:   []string{"de", "en"},
			wantURL: "german",
			wantOK:  true,
		},
		{
			name: "english fallback",
			tracks: []CaptionTrack{
				{BaseURL: "french", LanguageCode: "fr"},
				{BaseURL: "english", LanguageCode: "en-GB"},
			},
			langs:   []string{"ja"},
			wantURL: "english",
			wantOK:  true,
		},
		{
			name: "potoken tracks skipped",
			tracks: []CaptionTrack{
				{BaseURL: "https://yt/a&exp=xpe", LanguageCode: "en"},
				{BaseURL: "plain", LanguageCode: "fr"},
			},
			langs:   []string{"en"},
			wantURL: "plain",
			wantOK:  true,
		},
		{
			name: "all tracks need potoken",
			tracks: []CaptionTrack{
				{BaseURL: "https://yt/a&exp=xpe", LanguageCode: "en"},
			},
			langs:  []string{"en"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, ok := BestTrack(tt.tracks, tt.langs)
			if ok != tt.wantOK {
				t.Fatalf("BestTrack() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && track.BaseURL != tt.wantURL {
				t.Errorf("BestTrack() BaseURL = %q, want %q", track.BaseURL, tt.wantURL)
			}
		})
	}
}

func TestMetadataFallbacks(t *testing.T) {
	var empty PlayerResponse
	m := empty.Metadata()
	if m.Title != "Unknown Title" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Thumbnail != "No Thumbnail Available" {
		t.Errorf("Thumbnail = %q", m.Thumbnail)
	}
	if m.ChannelName != "Unknown Channel" {
		t.Errorf("ChannelName = %q", m.ChannelName)
	}
	if m.ChannelLogo != "No Channel Logo Available" {
		t.Errorf("ChannelLogo = %q", m.ChannelLogo)
	}
}

func TestMetadataPicksLastThumbnail(t *testing.T) {
	raw := `{
		"videoDetails": {
			"videoId": "abc123",
			"title": "A Video",
			"author": "A Channel",
			"thumbnail": {"thumbnails": [
				{"url": "small.jpg", "width": 120, "height": 90},
				{"url": "large.jpg", "width": 1280, "height": 720}
			]},
			"channelThumbnailSupportedRenderers": {
				"channelThumbnailWithLinkRenderer": {
					"thumbnail": {"thumbnails": [{"url": "logo.jpg"}]}
				}
			}
		}
	}`

	var player PlayerResponse
	if err := json.Unmarshal([]byte(raw), &player); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	m := player.Metadata()
	if m.Title != "A Video" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Thumbnail != "large.jpg" {
		t.Errorf("Thumbnail = %q, want last entry", m.Thumbnail)
	}
	if m.ChannelLogo != "logo.jpg" {
		t.Errorf("ChannelLogo = %q", m.ChannelLogo)
	}
}

func TestPlayer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var req playerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.VideoID != "abc123" {
			t.Errorf("videoId = %q", req.VideoID)
		}
		if req.Context.Client.ClientName != "WEB" {
			t.Errorf("clientName = %q", req.Context.Client.ClientName)
		}
		w.Write([]byte(`{
			"videoDetails": {"videoId": "abc123", "title": "A Video", "author": "A Channel"},
			"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
				{"baseUrl": "https://yt/tt", "languageCode": "en", "name": {"simpleText": "English"}}
			]}}
		}`))
	}))
	defer srv.Close()

	client := NewClient()
	client.playerURL = srv.URL

	player, err := client.Player(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Player() error = %v", err)
	}
	tracks := player.CaptionTracks()
	if len(tracks) != 1 {
		t.Fatalf("got %d caption tracks, want 1", len(tracks))
	}
	if tracks[0].Name.SimpleText != "English" {
		t.Errorf("track name = %q", tracks[0].Name.SimpleText)
	}
}

func TestPlayerHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient()
	client.playerURL = srv.URL

	if _, err := client.Player(context.Background(), "abc123"); err == nil {
		t.Fatal("Player() expected error on HTTP 403")
	}
}

func TestGenerateVisitorData(t *testing.T) {
	v := generateVisitorData()
	if len(v) != 11 {
		t.Errorf("visitor data length = %d, want 11", len(v))
	}
}
