package llm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/vfg2006/saas-metrics-api/internal/config"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenRouterClient usa a API de chat completions no formato da OpenAI
type OpenRouterClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	appURL     string
	appTitle   string
}

func NewOpenRouterClient(cfg config.LLM) *OpenRouterClient {
	return &OpenRouterClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:  strings.TrimRight(cfg.OpenRouterURL, "/"),
		apiKey:   cfg.OpenRouterAPIKey,
		model:    cfg.OpenRouterModel,
		appURL:   cfg.OpenRouterAppURL,
		appTitle: cfg.OpenRouterAppTitle,
	}
}

func (c *OpenRouterClient) Provider() string { return ProviderOpenRouter }

func (c *OpenRouterClient) Model() string { return c.model }

func (c *OpenRouterClient) Generate(ctx context.Context, req Request) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if system := strings.TrimSpace(req.System); system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: strings.TrimSpace(req.Prompt)})

	payload := chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", backendError(ProviderOpenRouter, "serializar a requisição", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", backendError(ProviderOpenRouter, "criar a requisição", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if c.appURL != "" {
		httpReq.Header.Set("HTTP-Referer", c.appURL)
	}
	if c.appTitle != "" {
		httpReq.Header.Set("X-Title", c.appTitle)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", backendError(ProviderOpenRouter, "executar a requisição", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", &HTTPError{Provider: ProviderOpenRouter, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var response chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", backendError(ProviderOpenRouter, "decodificar a resposta", err)
	}

	if len(response.Choices) == 0 {
		return "", backendError(ProviderOpenRouter, "ler a resposta", errors.New("resposta sem choices"))
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
