package bluff

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	requestTimeout = 10 * time.Second
	maxAnswerLen   = 100
)

const systemPrompt = "You generate a single bluff answer for a party trivia game. " +
	"The answer must be plausible, human-sounding, and not the correct one. " +
	"Constraints: 3-8 words, no quotes, minimal punctuation, avoid any words from " +
	"the correct answer, avoid repeating existing answers, and keep it natural. " +
	"Return ONLY the answer text."

// Generator produces plausible wrong answers for the voting phase,
// either through an OpenAI-compatible completion endpoint or, whenever
// that is unconfigured or failing, through templated fallbacks derived
// from the question itself. Generate never returns an error: every
// failure mode resolves to the fallback.
type Generator struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewGenerator() *Generator {
	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Generator{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		model:   defaultModel,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate returns one bluff answer that does not duplicate any entry
// of existingAnswers.
func (g *Generator) Generate(ctx context.Context, question, correctAnswer string, existingAnswers []string) string {
	if g.apiKey != "" {
		text, err := g.generateRemote(ctx, question, correctAnswer, existingAnswers)
		if err == nil && acceptable(text, existingAnswers) {
			return text
		}
		if err != nil {
			log.Printf("[BLUFF] generation service failed, using fallback: %v", err)
		}
	}
	return FallbackAnswer(question, existingAnswers)
}

func (g *Generator) generateRemote(ctx context.Context, question, correctAnswer string, existingAnswers []string) (string, error) {
	userPrompt := fmt.Sprintf(
		"Question: %s\nCorrect answer: %s\nExisting fake answers: %s\nOutput one human-like bluff answer that could trick players:",
		question, correctAnswer, strings.Join(existingAnswers, ", "))

	payload, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.9,
		MaxTokens:   30,
	})
	if err != nil {
		return "", err
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost,
		g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion request failed (%d)", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return "", errors.New(parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return CleanAnswer(parsed.Choices[0].Message.Content), nil
}

// CleanAnswer strips quote wrapping and truncates to the maximum
// answer length.
func CleanAnswer(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"'`)
	text = strings.TrimSpace(text)
	if len(text) > maxAnswerLen {
		text = text[:maxAnswerLen]
	}
	return text
}

func acceptable(text string, existing []string) bool {
	if len(strings.TrimSpace(text)) < 3 {
		return false
	}
	for _, e := range existing {
		if strings.EqualFold(e, text) {
			return false
		}
	}
	return true
}
