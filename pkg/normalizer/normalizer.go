package normalizer

import (
	"encoding/base64"
	"strings"

	"intellinote-be/internal/apperror"
)

// Kind categorizes an input and selects how it is encoded and prompted.
const (
	KindText      = "text"
	KindImage     = "image"
	KindAudio     = "audio"
	KindPDF       = "pdf"
	KindSlideshow = "slideshow"
)

// TextInputName labels generations that came from pasted text rather than a file.
const TextInputName = "Text Input"

// InputPayload is user-supplied content normalized for transmission to the
// generation model. Content holds raw text for KindText and base64-encoded
// bytes otherwise. MediaType is set iff Kind != KindText.
type InputPayload struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Content   string `json:"content"`
	MediaType string `json:"media_type,omitempty"`
}

var allowedMediaTypes = map[string]struct{}{
	"text/plain":                    {},
	"text/markdown":                 {},
	"image/png":                     {},
	"image/jpeg":                    {},
	"audio/mpeg":                    {},
	"audio/wav":                     {},
	"audio/mp3":                     {},
	"application/pdf":               {},
	"application/vnd.ms-powerpoint": {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
}

// NormalizeText trims the given text and wraps it as a text payload.
func NormalizeText(text string) (*InputPayload, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperror.EmptyInput()
	}
	return &InputPayload{
		Name:    TextInputName,
		Kind:    KindText,
		Content: trimmed,
	}, nil
}

// NormalizeFile validates a file's media type against the accepted set and
// wraps its bytes as a base64 payload.
func NormalizeFile(name, mediaType string, data []byte) (*InputPayload, error) {
	if _, ok := allowedMediaTypes[mediaType]; !ok {
		return nil, apperror.UnsupportedMedia(mediaType)
	}
	if len(data) == 0 {
		return nil, apperror.EmptyInput()
	}

	kind := resolveKind(mediaType)
	payload := &InputPayload{
		Name:    name,
		Kind:    kind,
		Content: base64.StdEncoding.EncodeToString(data),
	}
	if kind != KindText {
		payload.MediaType = mediaType
	}
	return payload, nil
}

func resolveKind(mediaType string) string {
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return KindImage
	case strings.HasPrefix(mediaType, "audio/"):
		return KindAudio
	case mediaType == "application/pdf":
		return KindPDF
	case strings.Contains(mediaType, "powerpoint") || strings.Contains(mediaType, "presentation"):
		return KindSlideshow
	default:
		return KindText
	}
}
