package captions

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const maxDocumentSize = 512 * 1024

// Entry is one timed caption line from a timedtext document.
type Entry struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

type timedTextDocument struct {
	Texts []textElement `xml:"text"`
}

type textElement struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Body  string `xml:",chardata"`
}

// Parse decodes a timedtext XML document into caption entries. Missing
// start/dur attributes default to zero, missing element bodies to "".
func Parse(data []byte) ([]Entry, error) {
	var doc timedTextDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Texts))
	for _, text := range doc.Texts {
		start, err := parseSeconds(text.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid start attribute %q: %w", text.Start, err)
		}
		dur, err := parseSeconds(text.Dur)
		if err != nil {
			return nil, fmt.Errorf("invalid dur attribute %q: %w", text.Dur, err)
		}
		entries = append(entries, Entry{Start: start, Duration: dur, Text: text.Body})
	}
	return entries, nil
}

func parseSeconds(attr string) (float64, error) {
	if attr == "" {
		return 0, nil
	}
	return strconv.ParseFloat(attr, 64)
}

// Concatenate joins the non-empty caption texts into one transcript string.
// YouTube double-escapes entities, so &#39; survives XML decoding; consumers
// of this service rely on the historical replacement rules.
func Concatenate(entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Text != "" {
			parts = append(parts, e.Text)
		}
	}
	text := strings.Join(parts, " ")
	text = strings.ReplaceAll(text, "&#39;", " ; ")
	text = strings.ReplaceAll(text, "\n", "  ")
	return text
}

// Fetcher downloads caption track documents.
type Fetcher struct {
	httpClient *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{httpClient: &http.Client{Timeout: 30 * time.Second}}
}

// Fetch downloads the timedtext document at a caption track's baseUrl and
// parses it. Transport errors, 5xx and 429 are retried with backoff.
func (f *Fetcher) Fetch(ctx context.Context, baseURL string) ([]Entry, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := f.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status))
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	return Parse(body)
}
