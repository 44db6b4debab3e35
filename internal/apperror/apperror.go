package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors for the generation pipeline. Wrap with fmt.Errorf("%w: ...")
// to attach context; match with errors.Is.
var (
	ErrUnsupportedMedia  = errors.New("unsupported media type")
	ErrEmptyInput        = errors.New("empty input")
	ErrConfiguration     = errors.New("configuration error")
	ErrEmptyResponse     = errors.New("empty response")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrUpstream          = errors.New("upstream error")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
)

// StatusCode maps a pipeline error to the HTTP status the error middleware responds with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedMedia):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, ErrEmptyInput):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrConfiguration):
		return fiber.StatusInternalServerError
	case errors.Is(err, ErrEmptyResponse):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrInvalidCredential):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrUpstream):
		return fiber.StatusBadGateway
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func UnsupportedMedia(mediaType string) error {
	return fmt.Errorf("%w: %s. Please use text, png, jpg, audio, pdf, or ppt", ErrUnsupportedMedia, mediaType)
}

func EmptyInput() error {
	return fmt.Errorf("%w: please provide text or upload a file", ErrEmptyInput)
}

func MissingAPIKey() error {
	return fmt.Errorf("%w: GOOGLE_GEMINI_API_KEY is not set. FIX: add it to your .env file or the process environment and restart the service", ErrConfiguration)
}

func EmptyResponse() error {
	return fmt.Errorf("%w: Failed to generate content. The API returned an empty result", ErrEmptyResponse)
}

func InvalidCredential() error {
	return fmt.Errorf("%w: the provided API key is not valid. Please check GOOGLE_GEMINI_API_KEY", ErrInvalidCredential)
}

func Upstream(cause error) error {
	return fmt.Errorf("%w: %v", ErrUpstream, cause)
}

func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}
