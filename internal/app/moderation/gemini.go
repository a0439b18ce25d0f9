package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.0-flash"

const detectPrompt = `You are a strict content-safety classifier for video frames.
Inspect the attached image and report any explicit nudity you find.
Respond with a JSON array only, one object per finding, using exactly this
shape: [{"class": "<CLASS>", "score": <0.0-1.0>}]. Allowed classes:
EXPOSED_GENITALIA, EXPOSED_BREAST, EXPOSED_BUTTOCKS. Return [] when the
image contains none of these.`

// GeminiClassifier detects explicit content in frames with a Gemini vision
// model.
type GeminiClassifier struct {
	client *genai.Client
}

func NewGeminiClassifier(ctx context.Context, apiKey string) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiClassifier{client: client}, nil
}

func (c *GeminiClassifier) Detect(ctx context.Context, framePath string) ([]Detection, error) {
	data, err := os.ReadFile(framePath)
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(data, "image/jpeg"),
		genai.NewPartFromText(detectPrompt),
	}, genai.RoleUser)

	resp, err := c.client.Models.GenerateContent(ctx, geminiModel, []*genai.Content{content}, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("classify frame: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, nil
	}

	var detections []Detection
	if err := json.Unmarshal([]byte(text), &detections); err != nil {
		return nil, fmt.Errorf("parse classifier response %q: %w", text, err)
	}
	return detections, nil
}
