// Package narrating gera explicações em linguagem natural das métricas da carteira.
package narrating

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/infrastructure/cache"
	"github.com/vfg2006/saas-metrics-api/infrastructure/integrator/llm"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/telemetry"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/reporting"
)

const (
	KindExplain = "explain"
	KindSummary = "summary"

	// NoResponseText substitui respostas vazias do modelo
	NoResponseText = "No response returned by the model."

	summaryMinTokens = 800
)

// Narrator define a geração das narrativas
type Narrator interface {
	// ExplainMetric explica uma única métrica na janela pedida
	ExplainMetric(ctx context.Context, req domain.NarrativeRequest) (*domain.Narrative, error)
	// Summarize gera o resumo executivo de todas as métricas na janela pedida
	Summarize(ctx context.Context, req domain.NarrativeRequest) (*domain.Narrative, error)
}

type Service struct {
	reporter    reporting.Reporter
	client      llm.Client
	cache       cache.Cache
	collector   *telemetry.Collector
	temperature float64
	maxTokens   int
}

// NewService cria o serviço de narrativas. narrativeCache e collector são opcionais.
func NewService(
	reporter reporting.Reporter,
	client llm.Client,
	narrativeCache cache.Cache,
	collector *telemetry.Collector,
	cfg config.LLM,
) *Service {
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = llm.DefaultTemperature
	}

	return &Service{
		reporter:    reporter,
		client:      client,
		cache:       narrativeCache,
		collector:   collector,
		temperature: temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func (s *Service) ExplainMetric(ctx context.Context, req domain.NarrativeRequest) (*domain.Narrative, error) {
	column := strings.TrimSpace(req.Column)
	label, ok := LabelFor(column)
	if !ok {
		return nil, domain.NewDataValidationError(domain.ErrUnknownMetric, "column", 0, "", column)
	}

	window, err := s.window(ctx, req.WindowMonths)
	if err != nil {
		return nil, err
	}

	prompt, err := BuildMetricPrompt(window, label, column, req.Question)
	if err != nil {
		return nil, err
	}

	narrative, err := s.generate(ctx, KindExplain, prompt, s.maxTokens)
	if err != nil {
		return nil, err
	}

	narrative.Label = label
	narrative.Column = column
	narrative.Start = window[0].Month.String()
	narrative.End = window[len(window)-1].Month.String()

	return narrative, nil
}

func (s *Service) Summarize(ctx context.Context, req domain.NarrativeRequest) (*domain.Narrative, error) {
	window, err := s.window(ctx, req.WindowMonths)
	if err != nil {
		return nil, err
	}

	prompt, err := BuildExecutiveSummaryPrompt(window, req.Question)
	if err != nil {
		return nil, err
	}

	maxTokens := s.maxTokens
	if maxTokens > 0 && maxTokens < summaryMinTokens {
		maxTokens = summaryMinTokens
	}

	narrative, err := s.generate(ctx, KindSummary, prompt, maxTokens)
	if err != nil {
		return nil, err
	}

	narrative.Start = window[0].Month.String()
	narrative.End = window[len(window)-1].Month.String()

	return narrative, nil
}

func (s *Service) window(ctx context.Context, months int) ([]domain.MonthlyPortfolioMetrics, error) {
	if months < 0 {
		return nil, domain.NewDataValidationError(domain.ErrDataValidation, "window_months", 0, "", fmt.Sprintf("%d", months))
	}

	window, err := s.reporter.GetPortfolioMetrics(ctx, months)
	if err != nil {
		return nil, err
	}
	if len(window) == 0 {
		return nil, domain.NewEmptyDatasetError("narrative window")
	}

	return window, nil
}

func (s *Service) generate(ctx context.Context, kind, prompt string, maxTokens int) (*domain.Narrative, error) {
	key := s.cacheKey(kind, prompt)
	logger := logrus.WithFields(logrus.Fields{
		"kind":     kind,
		"provider": s.client.Provider(),
		"model":    s.client.Model(),
	})

	if s.cache != nil {
		text, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			logger.Debug("Narrativa encontrada no cache")
			s.collector.ObserveNarrative(kind, s.client.Provider(), telemetry.StatusSkipped, 0)
			return &domain.Narrative{Text: text, Prompt: prompt, Cached: true}, nil
		case !errors.Is(err, cache.ErrCacheMiss):
			logger.WithError(err).Warn("Erro ao consultar o cache de narrativas")
		}
	}

	req := llm.NewRequest(prompt)
	req.Temperature = s.temperature
	req.MaxTokens = maxTokens

	startTime := time.Now()
	text, err := s.client.Generate(ctx, req)
	if err != nil {
		s.collector.ObserveNarrative(kind, s.client.Provider(), telemetry.StatusFailure, time.Since(startTime))
		logger.WithError(err).Error("Erro ao gerar narrativa")
		return nil, err
	}
	s.collector.ObserveNarrative(kind, s.client.Provider(), telemetry.StatusSuccess, time.Since(startTime))

	text = strings.TrimSpace(text)
	if text == "" {
		logger.Warn("Modelo retornou resposta vazia")
		return &domain.Narrative{Text: NoResponseText, Prompt: prompt}, nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, text, 0); err != nil {
			logger.WithError(err).Warn("Erro ao gravar narrativa no cache")
		}
	}

	logger.WithField("duration", time.Since(startTime).String()).Info("Narrativa gerada")

	return &domain.Narrative{Text: text, Prompt: prompt}, nil
}

// cacheKey identifica a resposta pelo provedor, modelo e prompt
func (s *Service) cacheKey(kind, prompt string) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{s.client.Provider(), s.client.Model(), kind, prompt}, "\x00")))
	return hex.EncodeToString(sum[:])
}
