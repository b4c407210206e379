package service

import (
	"testing"

	"certapi/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDetectMediaKind(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		want        model.MediaKind
	}{
		{"audio mpeg", "audio/mpeg", "recording.mp3", model.MediaAudio},
		{"audio wav", "audio/wav", "interview.wav", model.MediaAudio},
		{"image png", "image/png", "photo.png", model.MediaImage},
		{"video mp4", "video/mp4", "session.mp4", model.MediaVideo},
		{"pdf content type", "application/pdf", "report.pdf", model.MediaDocument},
		{"pdf by extension only", "application/octet-stream", "portfolio.PDF", model.MediaDocument},
		{"plain text", "text/plain", "notes.txt", model.MediaText},
		{"unrecognized type defaults to text", "weird/type", "blob.bin", model.MediaText},
		{"empty type defaults to text", "", "", model.MediaText},
		{"case insensitive prefix", "AUDIO/MPEG", "a.mp3", model.MediaAudio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMediaKind(tt.contentType, tt.filename))
		})
	}
}
