package llm

import (
	"fmt"
	"strings"

	"github.com/vfg2006/saas-metrics-api/internal/config"
)

// NewClient escolhe a implementação pelo provedor configurado em LLM_PROVIDER
func NewClient(cfg config.LLM) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderOllama:
		return NewOllamaClient(cfg), nil
	case ProviderOpenRouter:
		if cfg.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY é obrigatória para o provedor %s", ProviderOpenRouter)
		}
		return NewOpenRouterClient(cfg), nil
	}

	return nil, fmt.Errorf("LLM_PROVIDER desconhecido: %q", cfg.Provider)
}
