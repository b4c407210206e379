package service

import (
	"path/filepath"
	"strings"

	"certapi/internal/model"
)

// DetectMediaKind assigns a media kind from the declared content type and the
// filename. Pure function, no error path: unrecognized types fall through to
// text so an unknown upload never blocks ingestion; it is treated as textual
// evidence backed by the description field.
func DetectMediaKind(declaredContentType, filename string) model.MediaKind {
	ct := strings.ToLower(strings.TrimSpace(declaredContentType))
	switch {
	case strings.HasPrefix(ct, "audio"):
		return model.MediaAudio
	case strings.HasPrefix(ct, "image"):
		return model.MediaImage
	case strings.HasPrefix(ct, "video"):
		return model.MediaVideo
	case strings.Contains(ct, "pdf"):
		return model.MediaDocument
	}
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return model.MediaDocument
	}
	return model.MediaText
}
