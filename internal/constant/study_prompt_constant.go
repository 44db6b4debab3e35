package constant

// Per-kind descriptions interpolated into StudyPromptTemplateV1. Each names
// what "the content" refers to for the model.
const (
	StudyContentDescriptionText      = "the provided text"
	StudyContentDescriptionImage     = "the content of the provided image (perform OCR if necessary)"
	StudyContentDescriptionAudio     = "the content of the provided audio file"
	StudyContentDescriptionPDF       = "the content of the provided PDF document"
	StudyContentDescriptionSlideshow = "the content of the provided presentation (PPT) file"
)

const StudyPromptTemplateV1 = `Analyze %s. Your task is to generate a structured JSON output containing three distinct sections:
1.  **Notes**: A concise summary of the key information.
2.  **Questions**: 3-5 multiple-choice questions to test understanding. Each question must have exactly 4 options.
3.  **Flashcards**: 3-5 flashcards with a 'front' (term/question) and a 'back' (definition/answer).

Please adhere strictly to the provided JSON schema.`
