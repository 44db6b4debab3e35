package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"intellinote-be/internal/apperror"
	"intellinote-be/pkg/normalizer"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", "gemini-2.5-flash")
	client.baseURL = server.URL
	return client, server
}

func modelResponse(text string) string {
	res := GeminiResponse{
		Candidates: []*GeminiCandidate{
			{Content: &GeminiContent{Parts: []*GeminiPart{{Text: text}}}},
		},
	}
	b, _ := json.Marshal(res)
	return string(b)
}

const sampleContent = `{"notes":{"summary":"Greeting"},"questions":[],"flashcards":[]}`

func TestGenerateTextPayload(t *testing.T) {
	var captured GeminiRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Contains(t, r.URL.Path, "gemini-2.5-flash:generateContent")
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(modelResponse(sampleContent)))
	})

	payload, err := normalizer.NormalizeText("Hello world")
	assert.NoError(t, err)

	content, err := client.Generate(context.Background(), payload)
	assert.NoError(t, err)
	assert.NotNil(t, content)
	assert.Equal(t, "Greeting", content.Notes.Summary)

	// One content, two parts: user text then instruction prompt
	if assert.Len(t, captured.Contents, 1) && assert.Len(t, captured.Contents[0].Parts, 2) {
		assert.Equal(t, "Hello world", captured.Contents[0].Parts[0].Text)
		assert.Contains(t, captured.Contents[0].Parts[1].Text, "the provided text")
		assert.Nil(t, captured.Contents[0].Parts[0].InlineData)
	}
	if assert.NotNil(t, captured.GenerationConfig) {
		assert.Equal(t, "application/json", captured.GenerationConfig.ResponseMimeType)
		assert.NotNil(t, captured.GenerationConfig.ResponseSchema)
	}
}

func TestGenerateFilePayload(t *testing.T) {
	var captured GeminiRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(modelResponse(sampleContent)))
	})

	payload, err := normalizer.NormalizeFile("paper.pdf", "application/pdf", []byte("%PDF-1.4"))
	assert.NoError(t, err)

	_, err = client.Generate(context.Background(), payload)
	assert.NoError(t, err)

	if assert.Len(t, captured.Contents, 1) && assert.Len(t, captured.Contents[0].Parts, 2) {
		blob := captured.Contents[0].Parts[0].InlineData
		if assert.NotNil(t, blob) {
			assert.Equal(t, "application/pdf", blob.MimeType)
			assert.Equal(t, payload.Content, blob.Data)
		}
		assert.Contains(t, captured.Contents[0].Parts[1].Text, "PDF document")
	}
}

func TestGenerateMissingAPIKey(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient("", "gemini-2.5-flash")
	client.baseURL = server.URL

	payload, _ := normalizer.NormalizeText("Hello")
	_, err := client.Generate(context.Background(), payload)

	assert.ErrorIs(t, err, apperror.ErrConfiguration)
	assert.Contains(t, err.Error(), "GOOGLE_GEMINI_API_KEY")
	assert.Equal(t, 0, requests, "the credential check must run before any network attempt")
}

func TestGenerateEmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no candidates", body: `{"candidates":[]}`},
		{name: "empty text part", body: modelResponse("")},
		{name: "whitespace text part", body: modelResponse("   \n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			payload, _ := normalizer.NormalizeText("Hello")
			content, err := client.Generate(context.Background(), payload)

			assert.NoError(t, err, "empty response is a no-result signal, not an error")
			assert.Nil(t, content)
		})
	}
}

func TestGenerateInvalidCredential(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`))
	})

	payload, _ := normalizer.NormalizeText("Hello")
	_, err := client.Generate(context.Background(), payload)

	assert.ErrorIs(t, err, apperror.ErrInvalidCredential)
}

func TestGenerateUpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded"}}`))
	})

	payload, _ := normalizer.NormalizeText("Hello")
	_, err := client.Generate(context.Background(), payload)

	assert.ErrorIs(t, err, apperror.ErrUpstream)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateFencedJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(modelResponse("```json\n" + sampleContent + "\n```")))
	})

	payload, _ := normalizer.NormalizeText("Hello")
	content, err := client.Generate(context.Background(), payload)

	assert.NoError(t, err)
	if assert.NotNil(t, content) {
		assert.Equal(t, "Greeting", content.Notes.Summary)
	}
}

func TestGenerateMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(modelResponse("not json at all")))
	})

	payload, _ := normalizer.NormalizeText("Hello")
	_, err := client.Generate(context.Background(), payload)

	assert.ErrorIs(t, err, apperror.ErrUpstream)
}

func TestGeneratePermissivePassthrough(t *testing.T) {
	// Missing answer fields and short option lists parse fine and flow
	// through untouched; downstream has to tolerate them.
	loose := `{"notes":{"summary":"S"},"questions":[{"question":"Q1","options":["a","b"]}],"flashcards":[{"front":"F"}]}`
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(modelResponse(loose)))
	})

	payload, _ := normalizer.NormalizeText("Hello")
	content, err := client.Generate(context.Background(), payload)

	assert.NoError(t, err)
	if assert.NotNil(t, content) {
		assert.Len(t, content.Questions, 1)
		assert.Empty(t, content.Questions[0].Answer)
		assert.Len(t, content.Questions[0].Options, 2)
		assert.Empty(t, content.Flashcards[0].Back)
	}
}

func TestPromptFor(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{kind: normalizer.KindText, want: "the provided text"},
		{kind: normalizer.KindImage, want: "perform OCR"},
		{kind: normalizer.KindAudio, want: "audio file"},
		{kind: normalizer.KindPDF, want: "PDF document"},
		{kind: normalizer.KindSlideshow, want: "presentation (PPT) file"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got := promptFor(tt.kind)
			if !strings.Contains(got, tt.want) {
				t.Errorf("promptFor(%s) does not mention %q", tt.kind, tt.want)
			}
			if !strings.Contains(got, "JSON schema") {
				t.Errorf("promptFor(%s) lost the schema instruction", tt.kind)
			}
		})
	}
}

func TestResponseSchemaShape(t *testing.T) {
	b, err := json.Marshal(studyResponseSchema)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(b, &decoded))
	assert.ElementsMatch(t, []interface{}{"notes", "questions", "flashcards"}, decoded["required"])

	props := decoded["properties"].(map[string]interface{})
	assert.Contains(t, props, "notes")
	assert.Contains(t, props, "questions")
	assert.Contains(t, props, "flashcards")
}
