package genai

import (
	"fmt"

	"intellinote-be/internal/constant"
	"intellinote-be/pkg/normalizer"
)

// promptFor returns the fixed instruction prompt for a payload kind. The five
// variants differ only in what "the content" refers to.
func promptFor(kind string) string {
	description := constant.StudyContentDescriptionText
	switch kind {
	case normalizer.KindImage:
		description = constant.StudyContentDescriptionImage
	case normalizer.KindAudio:
		description = constant.StudyContentDescriptionAudio
	case normalizer.KindPDF:
		description = constant.StudyContentDescriptionPDF
	case normalizer.KindSlideshow:
		description = constant.StudyContentDescriptionSlideshow
	}
	return fmt.Sprintf(constant.StudyPromptTemplateV1, description)
}
