package models

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "watch URL",
			url:  "https://www.youtube.com/watch?v=Y9QfOPxmxVI",
			want: "Y9QfOPxmxVI",
		},
		{
			name: "watch URL with extra params",
			url:  "https://www.youtube.com/watch?v=Y9QfOPxmxVI&t=42s",
			want: "Y9QfOPxmxVI",
		},
		{
			name: "short URL",
			url:  "https://youtu.be/Y9QfOPxmxVI",
			want: "Y9QfOPxmxVI",
		},
		{
			name: "embed URL",
			url:  "https://www.youtube.com/embed/Y9QfOPxmxVI",
			want: "Y9QfOPxmxVI",
		},
		{
			name: "shorts URL",
			url:  "https://www.youtube.com/shorts/Y9QfOPxmxVI",
			want: "Y9QfOPxmxVI",
		},
		{
			name: "bare video ID",
			url:  "Y9QfOPxmxVI",
			want: "Y9QfOPxmxVI",
		},
		{
			name:    "no video ID",
			url:     "https://www.youtube.com/feed/subscriptions",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractVideoID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want && !tt.wantErr {
				t.Errorf("ExtractVideoID() = %q, want %q", got, tt.want)
			}
		})
	}
}
