package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	playerURL     = "https://www.youtube.com/youtubei/v1/player"
	webVersion    = "2.20250222.10.00"
	webUserAgent  = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxPlayerBody = 3 * 1024 * 1024
)

// Client talks to YouTube's private InnerTube API using the WEB client
// identity, the same endpoint the official web player uses.
type Client struct {
	httpClient *http.Client
	playerURL  string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		playerURL:  playerURL,
	}
}

type playerRequest struct {
	VideoID        string        `json:"videoId"`
	Context        clientContext `json:"context"`
	RacyCheckOk    bool          `json:"racyCheckOk"`
	ContentCheckOk bool          `json:"contentCheckOk"`
}

type clientContext struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	VisitorData   string `json:"visitorData,omitempty"`
	Hl            string `json:"hl,omitempty"`
	Gl            string `json:"gl,omitempty"`
}

// PlayerResponse is the subset of the /player response this service reads.
type PlayerResponse struct {
	VideoDetails      VideoDetails       `json:"videoDetails"`
	Captions          *Captions          `json:"captions"`
	PlayabilityStatus *PlayabilityStatus `json:"playabilityStatus"`
}

type Captions struct {
	PlayerCaptionsTracklistRenderer CaptionTracklistRenderer `json:"playerCaptionsTracklistRenderer"`
}

type CaptionTracklistRenderer struct {
	CaptionTracks []CaptionTrack `json:"captionTracks"`
}

type PlayabilityStatus struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type VideoDetails struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Thumbnail struct {
		Thumbnails []Thumbnail `json:"thumbnails"`
	} `json:"thumbnail"`
	ChannelThumbnailSupportedRenderers struct {
		ChannelThumbnailWithLinkRenderer struct {
			Thumbnail struct {
				Thumbnails []Thumbnail `json:"thumbnails"`
			} `json:"thumbnail"`
		} `json:"channelThumbnailWithLinkRenderer"`
	} `json:"channelThumbnailSupportedRenderers"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// CaptionTrack is one entry of captionTracks in the player response.
type CaptionTrack struct {
	BaseURL      string    `json:"baseUrl"`
	LanguageCode string    `json:"languageCode"`
	Name         TrackName `json:"name"`
	Kind         string    `json:"kind"` // "asr" = auto-generated
}

type TrackName struct {
	SimpleText string `json:"simpleText"`
}

// Metadata is the presentation-ready video metadata attached to every
// captions response, with fallbacks for fields the player may omit.
type Metadata struct {
	Title       string
	Thumbnail   string
	ChannelName string
	ChannelLogo string
}

func (p *PlayerResponse) Metadata() Metadata {
	m := Metadata{
		Title:       p.VideoDetails.Title,
		ChannelName: p.VideoDetails.Author,
		Thumbnail:   "No Thumbnail Available",
		ChannelLogo: "No Channel Logo Available",
	}
	if m.Title == "" {
		m.Title = "Unknown Title"
	}
	if m.ChannelName == "" {
		m.ChannelName = "Unknown Channel"
	}
	if thumbs := p.VideoDetails.Thumbnail.Thumbnails; len(thumbs) > 0 {
		m.Thumbnail = thumbs[len(thumbs)-1].URL
	}
	logos := p.VideoDetails.ChannelThumbnailSupportedRenderers.
		ChannelThumbnailWithLinkRenderer.Thumbnail.Thumbnails
	if len(logos) > 0 {
		m.ChannelLogo = logos[len(logos)-1].URL
	}
	return m
}

// CaptionTracks returns the caption track list, empty when the video has none.
func (p *PlayerResponse) CaptionTracks() []CaptionTrack {
	if p.Captions == nil {
		return nil
	}
	return p.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
}

// Player fetches video metadata and the caption track list for a video ID.
func (c *Client) Player(ctx context.Context, videoID string) (*PlayerResponse, error) {
	body, err := json.Marshal(playerRequest{
		VideoID: videoID,
		Context: clientContext{
			Client: innertubeClient{
				ClientName:    "WEB",
				ClientVersion: webVersion,
				VisitorData:   generateVisitorData(),
				Hl:            "en",
				Gl:            "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal player request: %w", err)
	}

	data, err := c.post(ctx, c.playerURL+"?prettyPrint=false", body)
	if err != nil {
		return nil, fmt.Errorf("innertube player [%s]: %w", videoID, err)
	}

	var player PlayerResponse
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return &player, nil
}

// post sends an InnerTube request with WEB client headers, retrying on
// transport errors, 5xx and 429 with exponential backoff.
func (c *Client) post(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	var data []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "*/*")
		req.Header.Set("User-Agent", webUserAgent)
		req.Header.Set("X-Youtube-Client-Name", "1")
		req.Header.Set("X-Youtube-Client-Version", webVersion)
		req.Header.Set("Origin", "https://www.youtube.com")
		req.Header.Set("Referer", "https://www.youtube.com/")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
			return backoff.Permanent(fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet))
		}

		data, err = io.ReadAll(io.LimitReader(resp.Body, maxPlayerBody))
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}
	return data, nil
}

// FindTrack returns the track whose languageCode matches lang exactly.
func FindTrack(tracks []CaptionTrack, lang string) (CaptionTrack, bool) {
	for _, t := range tracks {
		if t.LanguageCode == lang {
			return t, true
		}
	}
	return CaptionTrack{}, false
}

// needsPoToken reports whether a caption track URL requires a PoToken
// (browser-only). Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// BestTrack selects the most suitable caption track for the given language
// preference order: manual track in a preferred language, then auto-generated
// in a preferred language, then any English track, then the first usable one.
func BestTrack(tracks []CaptionTrack, langs []string) (CaptionTrack, bool) {
	usable := make([]CaptionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return CaptionTrack{}, false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// generateVisitorData creates a random 11-char visitor ID for InnerTube requests.
func generateVisitorData() string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	b := make([]byte, 11)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))]
	}
	return string(b)
}
