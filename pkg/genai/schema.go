package genai

// Schema mirrors the subset of the Gemini structured-output schema language
// this service uses.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// studyResponseSchema is the fixed three-section output contract: markdown
// notes, 3-5 multiple-choice questions with 4 options each, 3-5 flashcards.
var studyResponseSchema = &Schema{
	Type: "OBJECT",
	Properties: map[string]*Schema{
		"notes": {
			Type: "OBJECT",
			Properties: map[string]*Schema{
				"summary": {
					Type:        "STRING",
					Description: "A concise, well-structured summary of the content in markdown format. Should be easy to read and capture the key points.",
				},
			},
			Required: []string{"summary"},
		},
		"questions": {
			Type:        "ARRAY",
			Description: "A list of 3-5 multiple-choice questions to test comprehension of the content.",
			Items: &Schema{
				Type: "OBJECT",
				Properties: map[string]*Schema{
					"question": {Type: "STRING", Description: "The question text."},
					"options": {
						Type:        "ARRAY",
						Description: "An array of 4 potential answers (strings).",
						Items:       &Schema{Type: "STRING"},
					},
					"answer": {Type: "STRING", Description: "The correct answer from the options list."},
				},
				Required: []string{"question", "options", "answer"},
			},
		},
		"flashcards": {
			Type:        "ARRAY",
			Description: "A list of 3-5 flashcards based on key concepts from the content.",
			Items: &Schema{
				Type: "OBJECT",
				Properties: map[string]*Schema{
					"front": {Type: "STRING", Description: "The front of the flashcard (a question or term)."},
					"back":  {Type: "STRING", Description: "The back of the flashcard (the answer or definition)."},
				},
				Required: []string{"front", "back"},
			},
		},
	},
	Required: []string{"notes", "questions", "flashcards"},
}
