package dto

import (
	"time"

	"intellinote-be/internal/entity"
)

type CreateSessionResponse struct {
	Id string `json:"id"`
}

// GenerateTextRequest is the JSON body of a text submission. File submissions
// go through multipart instead.
type GenerateTextRequest struct {
	Text string `json:"text" validate:"required"`
}

type HistoryEntryResponse struct {
	Id        string                  `json:"id"`
	Label     string                  `json:"label"`
	Content   entity.GeneratedContent `json:"content"`
	CreatedAt time.Time               `json:"created_at"`
}

type SessionStateResponse struct {
	Id         string                   `json:"id"`
	Status     string                   `json:"status"`
	Output     *entity.GeneratedContent `json:"output,omitempty"`
	SelectedId string                   `json:"selected_id,omitempty"`
	Error      string                   `json:"error,omitempty"`
}
