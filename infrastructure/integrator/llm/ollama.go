package llm

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/vfg2006/saas-metrics-api/internal/config"
)

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// OllamaClient chama o endpoint /api/generate sem streaming
type OllamaClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

func NewOllamaClient(cfg config.LLM) *OllamaClient {
	return &OllamaClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.OllamaURL, "/"),
		model:   cfg.OllamaModel,
	}
}

func (c *OllamaClient) Provider() string { return ProviderOllama }

func (c *OllamaClient) Model() string { return c.model }

func (c *OllamaClient) Generate(ctx context.Context, req Request) (string, error) {
	prompt := req.Prompt
	// O /api/generate não tem papel de sistema, então ele vai no início do prompt
	if system := strings.TrimSpace(req.System); system != "" {
		prompt = system + "\n\n" + prompt
	}

	payload := ollamaGenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": req.Temperature,
		},
	}
	if req.MaxTokens > 0 {
		payload.Options["num_predict"] = req.MaxTokens
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", backendError(ProviderOllama, "serializar a requisição", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", backendError(ProviderOllama, "criar a requisição", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", backendError(ProviderOllama, "executar a requisição", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", &HTTPError{Provider: ProviderOllama, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var response ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", backendError(ProviderOllama, "decodificar a resposta", err)
	}

	return strings.TrimSpace(response.Response), nil
}
