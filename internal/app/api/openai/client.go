package openai

import (
	openai "github.com/sashabaranov/go-openai"
)

// NewClient builds the shared OpenAI API client. Transcription and
// summarization both ride on it.
func NewClient(apiKey string) *openai.Client {
	return openai.NewClient(apiKey)
}
