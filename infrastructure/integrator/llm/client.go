package llm

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	ProviderOllama     = "ollama"
	ProviderOpenRouter = "openrouter"

	DefaultTemperature = 0.2
)

// Request é o pedido enviado ao modelo
type Request struct {
	Prompt      string
	System      string
	Temperature float64
	MaxTokens   int // 0 = padrão do provedor
}

// NewRequest cria um pedido com a temperatura padrão
func NewRequest(prompt string) Request {
	return Request{Prompt: prompt, Temperature: DefaultTemperature}
}

// Client gera texto a partir de um prompt
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
	Provider() string
	Model() string
}

// HTTPError é a resposta de erro do provedor, com o status e o corpo recebidos
type HTTPError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s HTTP %d: %s", e.Provider, e.StatusCode, strings.TrimSpace(e.Body))
}

func (e *HTTPError) Unwrap() error {
	return domain.ErrNarrativeBackend
}

func backendError(provider, action string, err error) error {
	return fmt.Errorf("%w: %s: erro ao %s: %v", domain.ErrNarrativeBackend, provider, action, err)
}
