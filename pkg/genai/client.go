package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"intellinote-be/internal/apperror"
	"intellinote-be/internal/entity"
	"intellinote-be/pkg/normalizer"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inline_data,omitempty"`
}

type GeminiContent struct {
	Parts []*GeminiPart `json:"parts"`
}

type GeminiGenerationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *Schema `json:"responseSchema"`
}

type GeminiRequest struct {
	Contents         []*GeminiContent        `json:"contents"`
	GenerationConfig *GeminiGenerationConfig `json:"generationConfig"`
}

type GeminiCandidate struct {
	Content *GeminiContent `json:"content"`
}

type GeminiResponse struct {
	Candidates []*GeminiCandidate `json:"candidates"`
}

// Client performs one-shot structured generation calls against the Gemini
// generateContent endpoint. No retries, no streaming; one request, one response.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
}

// Generate sends the payload plus the fixed instruction prompt and response
// schema, and returns the parsed content. A successful call with no textual
// body returns (nil, nil) so callers can distinguish "no result" from hard
// failures. The parsed JSON is passed through without structural re-validation.
func (c *Client) Generate(ctx context.Context, payload *normalizer.InputPayload) (*entity.GeneratedContent, error) {
	if c.apiKey == "" {
		return nil, apperror.MissingAPIKey()
	}

	parts := make([]*GeminiPart, 0, 2)
	if payload.Kind == normalizer.KindText {
		parts = append(parts, &GeminiPart{Text: payload.Content})
	} else {
		if payload.MediaType == "" {
			return nil, fmt.Errorf("invalid payload: missing media type for kind %s", payload.Kind)
		}
		parts = append(parts, &GeminiPart{
			InlineData: &GeminiInlineData{
				MimeType: payload.MediaType,
				Data:     payload.Content,
			},
		})
	}
	parts = append(parts, &GeminiPart{Text: promptFor(payload.Kind)})

	request := GeminiRequest{
		Contents: []*GeminiContent{{Parts: parts}},
		GenerationConfig: &GeminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   studyResponseSchema,
		},
	}
	requestJson, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Upstream(err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperror.Upstream(err)
	}

	if res.StatusCode != http.StatusOK {
		if isInvalidKeyResponse(res.StatusCode, resBody) {
			return nil, apperror.InvalidCredential()
		}
		return nil, apperror.Upstream(fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		))
	}

	var geminiRes GeminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return nil, apperror.Upstream(err)
	}

	text := extractText(&geminiRes)
	if text == "" {
		// Non-exceptional "no result" signal.
		return nil, nil
	}

	var content entity.GeneratedContent
	if err := json.Unmarshal(stripJsonFence(text), &content); err != nil {
		return nil, apperror.Upstream(fmt.Errorf("parse error: %w | raw: %s", err, text))
	}

	return &content, nil
}

func extractText(res *GeminiResponse) string {
	if len(res.Candidates) == 0 {
		return ""
	}
	candidate := res.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}
	return string(bytes.TrimSpace([]byte(candidate.Content.Parts[0].Text)))
}

// stripJsonFence cleans a markdown ```json wrapper the model occasionally adds
// despite the declared JSON response type.
func stripJsonFence(text string) []byte {
	b := []byte(text)
	b = bytes.TrimSpace(b)
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}

func isInvalidKeyResponse(status int, body []byte) bool {
	if status != http.StatusBadRequest && status != http.StatusUnauthorized && status != http.StatusForbidden {
		return false
	}
	return bytes.Contains(body, []byte("API key not valid")) ||
		bytes.Contains(body, []byte("API_KEY_INVALID"))
}
