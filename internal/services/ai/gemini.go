// Package ai calls the Gemini API to summarize a user's recent journal
// entries. The core never parses or caches the returned feedback text.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/logging"
	"github.com/daybook-app/daybook/internal/models"
)

const geminiModel = "gemini-2.0-flash"

var geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

type Service struct {
	apiKey string
	client *http.Client
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		apiKey: cfg.AI.GeminiAPIKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Gemini API request/response structs

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
	SafetySettings   []geminiSafetySetting  `json:"safetySettings"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Usage      geminiUsage       `json:"usageMetadata"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiUsage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// Summarize sends the user's recent entries to Gemini and returns its
// feedback as opaque text.
func (s *Service) Summarize(ctx context.Context, userID uuid.UUID, entries []*models.Entry) (string, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		logging.Warn("Gemini API key missing; AI summary unavailable", map[string]interface{}{
			"user_id": userID.String(),
		})
		return "", ErrAINotConfigured
	}

	prompt := buildSummaryPrompt(entries)

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature: 0.7,
		},
		SafetySettings: []geminiSafetySetting{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request", ErrAIProviderUnavailable)
	}

	// Log request metadata only; entry text stays out of the logs.
	logging.Info("Sending summary request to Gemini", map[string]interface{}{
		"user_id":       userID.String(),
		"entry_count":   len(entries),
		"prompt_length": len(prompt),
	})

	url := fmt.Sprintf("%s/%s:generateContent", geminiBaseURL, geminiModel)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAIProviderUnavailable, err)
	}
	defer func() {
		// Drain and close the body to ensure connection reuse
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: status %d", ErrRateLimitExceeded, resp.StatusCode)
		}

		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		logging.Error("Gemini non-200 response", map[string]interface{}{
			"user_id": userID.String(),
			"status":  resp.StatusCode,
			"body":    string(bodyBytes),
		})
		return "", fmt.Errorf("%w: status %d", ErrAIProviderUnavailable, resp.StatusCode)
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response", ErrAIProviderUnavailable)
	}

	if len(geminiResp.Candidates) == 0 {
		return "", ErrSafetyViolation
	}

	candidate := geminiResp.Candidates[0]
	if candidate.FinishReason == "SAFETY" {
		return "", ErrSafetyViolation
	}
	if len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty content parts", ErrAIProviderUnavailable)
	}

	feedback := strings.TrimSpace(candidate.Content.Parts[0].Text)
	if feedback == "" {
		return "", fmt.Errorf("%w: empty summary text", ErrAIProviderUnavailable)
	}

	logging.Info("Received summary from Gemini", map[string]interface{}{
		"user_id":         userID.String(),
		"response_length": len(feedback),
		"tokens_input":    geminiResp.Usage.PromptTokenCount,
		"tokens_output":   geminiResp.Usage.CandidatesTokenCount,
	})

	return feedback, nil
}

func buildSummaryPrompt(entries []*models.Entry) string {
	var sb strings.Builder
	sb.WriteString(`You are a reflective and positive journaling coach.
Analyze the following diary entries and give personalized feedback:
- recurring emotions or themes
- possible insights or advice
- end with a short encouraging note.

`)
	for i, entry := range entries {
		fmt.Fprintf(&sb, "Entry %d (%s): %s\n%s\n\n", i+1, entry.Mood, entry.Title, entry.Content)
	}
	return sb.String()
}
