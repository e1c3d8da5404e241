package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const systemPrompt = `You are 'SumaqBot', a friendly and helpful virtual assistant for the Sumak Mikuy restaurant.
Your goal is to help customers with their questions about the restaurant.
You can answer about:
- The menu (dishes, general ingredients, whether they are spicy/vegetarian).
- Opening hours (Saturday and Sunday from 7am to 7pm).
- How to make a reservation (directing the user to the reservations page).
- The location (Calle Miraflores Mz 39, San Luis, Canete).
- General information about the restaurant (Andean cuisine, atmosphere).
Be concise, kind and keep the restaurant's tone.
If you do not know the answer or are asked something off topic, kindly say you can only help with information about Sumak Mikuy.`

// ChatbotService proxies a single user message to the Gemini generateContent
// endpoint. Every call is independent; no conversation history is kept.
type ChatbotService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewChatbotService() *ChatbotService {
	baseURL := os.Getenv("GEMINI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &ChatbotService{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// NewChatbotServiceWithBase is used by tests to point the service at a mock
// server.
func NewChatbotServiceWithBase(baseURL, apiKey, model string) *ChatbotService {
	return &ChatbotService{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Ask sends the user message plus the fixed system instruction and returns
// the first candidate's text.
func (s *ChatbotService) Ask(ctx context.Context, message string) (string, error) {
	if s.apiKey == "" {
		return "", errors.New("missing GEMINI_API_KEY")
	}
	if message == "" {
		return "", errors.New("empty message")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		s.baseURL, s.model, s.apiKey)

	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": message}}},
		},
		"systemInstruction": map[string]any{
			"parts": []map[string]string{{"text": systemPrompt}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chatbot api returned status %d", resp.StatusCode)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty chatbot response")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
