package openai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	summarySystemPrompt = "You are a helpful assistant that creates concise summaries of interview transcripts."

	summaryUserPrompt = `Please summarize the following interview transcript in 2-3 clear paragraphs. Focus on the main topics discussed, key points made by the speakers, and any important conclusions or insights.

Transcript:
%s`

	keywordsSystemPrompt = "You are a helpful assistant that extracts key topics and keywords from transcripts."

	keywordsUserPrompt = `Extract 5-10 important keywords or key phrases from this interview transcript. Return them as a comma-separated list.

Transcript:
%s`
)

// ChatSummarizer implements api.Summarizer with two independent chat
// completions: one for the narrative summary, one for keywords.
type ChatSummarizer struct {
	client      *openai.Client
	charBudget  int
	maxKeywords int
	logger      *zap.Logger
}

func NewChatSummarizer(client *openai.Client, charBudget, maxKeywords int, logger *zap.Logger) *ChatSummarizer {
	return &ChatSummarizer{
		client:      client,
		charBudget:  charBudget,
		maxKeywords: maxKeywords,
		logger:      logger,
	}
}

func (s *ChatSummarizer) Summarize(ctx context.Context, transcript string) (string, []string, error) {
	truncated := Truncate(transcript, s.charBudget)

	s.logger.Info("generating summary", zap.Int("chars", len(truncated)))
	summary, err := s.complete(ctx, summarySystemPrompt, fmt.Sprintf(summaryUserPrompt, truncated), 0.7, 500)
	if err != nil {
		return "", nil, fmt.Errorf("summary generation: %w", err)
	}

	s.logger.Info("extracting keywords")
	keywordsText, err := s.complete(ctx, keywordsSystemPrompt, fmt.Sprintf(keywordsUserPrompt, truncated), 0.5, 100)
	if err != nil {
		return "", nil, fmt.Errorf("keyword extraction: %w", err)
	}

	keywords := ParseKeywords(keywordsText, s.maxKeywords)
	s.logger.Info("summarization complete", zap.Int("keywords", len(keywords)))
	return strings.TrimSpace(summary), keywords, nil
}

func (s *ChatSummarizer) complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openai.GPT4oMini,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Truncate cuts text to the byte budget without splitting a rune, appending
// a marker when anything was discarded.
func Truncate(text string, budget int) string {
	if len(text) <= budget {
		return text
	}
	// The input is valid UTF-8, so only a trailing partial rune can be
	// invalid after the cut.
	return strings.ToValidUTF8(text[:budget], "") + "..."
}

// ParseKeywords splits a comma-separated model response into at most max
// trimmed keywords, with a possible "Keywords:" prefix stripped.
func ParseKeywords(text string, max int) []string {
	if idx := strings.LastIndex(text, "Keywords:"); idx != -1 {
		text = text[idx+len("Keywords:"):]
	}

	var keywords []string
	for _, k := range strings.Split(text, ",") {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
		if len(keywords) >= max {
			break
		}
	}
	return keywords
}
