package hfspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"interview-pipeline/internal/app/api"
)

// Diarizer implements api.Diarizer against an HTTP inference endpoint that
// wraps a speaker-diarization model, authenticated with a Hugging Face
// token.
type Diarizer struct {
	endpoint string
	token    string
	client   *http.Client
}

func NewDiarizer(endpoint, token string) *Diarizer {
	return &Diarizer{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: 10 * time.Minute},
	}
}

func (d *Diarizer) Diarize(ctx context.Context, audioPath string) ([]api.Turn, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+d.token)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diarization request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("diarization service returned %d: %s", resp.StatusCode, payload)
	}

	var turns []api.Turn
	if err := json.NewDecoder(resp.Body).Decode(&turns); err != nil {
		return nil, fmt.Errorf("decode diarization response: %w", err)
	}
	return turns, nil
}
