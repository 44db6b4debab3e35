package store

import "intellinote-be/internal/entity"

// Session is the active client session state in memory. One state variable
// rules out impossible combinations (e.g. generating with an error showing).
type Session struct {
	ID     string `json:"id"`
	Status string `json:"status"` // "IDLE" | "GENERATING" | "DISPLAYING" | "FAILED"

	// THE STAGE (what the client is currently showing)
	Output     *entity.GeneratedContent `json:"output"`
	SelectedId string                   `json:"selected_id"`

	// Only meaningful while Status == StatusFailed
	Error string `json:"error"`
}

const (
	StatusIdle       = "IDLE"
	StatusGenerating = "GENERATING"
	StatusDisplaying = "DISPLAYING"
	StatusFailed     = "FAILED"
)
