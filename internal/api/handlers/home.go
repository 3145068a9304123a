package handlers

import "net/http"

// Home describes the service and its captions endpoint.
func Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the YouTube Caption API Service.",
		"endpoints": map[string]any{
			"/captions": map[string]any{
				"description": "Fetch and parse captions for a YouTube video.",
				"parameters": map[string]string{
					"video_id":   "Required. The YouTube video ID.",
					"language":   "Optional. The language code to fetch captions in a specific language.",
					"timestamps": "Optional. Set to 'true' to include timestamps in the response.",
				},
				"notes": "If the 'language' parameter is not provided, the API returns available languages for the video.",
			},
		},
		"status": "API is operational.",
	})
}
