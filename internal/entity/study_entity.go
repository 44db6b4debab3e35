package entity

import "time"

// GeneratedNotes is the markdown summary section of a generation.
type GeneratedNotes struct {
	Summary string `json:"summary"`
}

// GeneratedQuestion is a multiple-choice comprehension question. The model is
// asked for exactly 4 options and an answer drawn from them, but neither is
// re-validated on our side; consumers must tolerate shorter option lists and
// answers outside the options.
type GeneratedQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// GeneratedFlashcard is a front/back study card.
type GeneratedFlashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// GeneratedContent is one full generation result. The schema requests 3-5
// questions and flashcards, but every collection may arrive empty.
type GeneratedContent struct {
	Notes      GeneratedNotes       `json:"notes"`
	Questions  []GeneratedQuestion  `json:"questions"`
	Flashcards []GeneratedFlashcard `json:"flashcards"`
}

// HistoryEntry pairs an input's label with its generated content. Id is the
// creation time in unix milliseconds, rendered as a decimal string; collisions
// are an accepted risk at the expected usage rate.
type HistoryEntry struct {
	Id        string           `json:"id"`
	Label     string           `json:"label"`
	Content   GeneratedContent `json:"content"`
	CreatedAt time.Time        `json:"created_at"`
}
