// Package deriving contém o motor que deriva linha do tempo de MRR, eventos de receita
// e métricas mensais da carteira a partir das assinaturas.
package deriving

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

// Deriver define o pipeline completo de derivação
type Deriver interface {
	// Run recalcula todos os dados derivados a partir das assinaturas e clientes informados
	Run(subscriptions []domain.Subscription, customers []domain.Customer) (*Result, error)
}

// Result agrupa as saídas de uma execução do pipeline
type Result struct {
	Horizon   time.Time
	Timeline  []domain.CustomerMonthMRR
	Events    []domain.RevenueEvent
	Metrics   []domain.MonthlyPortfolioMetrics
	Customers []domain.Customer
}

// Months retorna a quantidade de meses no eixo global
func (r *Result) Months() int {
	return len(r.Metrics)
}

// Engine executa Timeline Builder -> Event Classifier -> Portfolio Aggregator,
// com a atualização de status dos clientes derivada da linha do tempo.
type Engine struct {
	classifier *EventClassifier
}

// NewEngine cria o motor de derivação com o limite de workers da classificação de eventos
func NewEngine(maxConcurrentJobs int) *Engine {
	return &Engine{
		classifier: NewEventClassifier(maxConcurrentJobs),
	}
}

func (e *Engine) Run(subscriptions []domain.Subscription, customers []domain.Customer) (*Result, error) {
	startTime := time.Now()

	timeline, err := BuildCustomerMonthMRR(subscriptions)
	if err != nil {
		return nil, err
	}

	events := e.classifier.Classify(timeline)
	metrics := BuildPortfolioMetrics(timeline, events)

	updatedCustomers, err := UpdateCustomersIsActive(customers, timeline)
	if err != nil {
		if !errors.Is(err, domain.ErrEmptyDataset) {
			return nil, err
		}

		// Sem linha do tempo não há mês mais recente: todos os clientes ficam inativos
		updatedCustomers = make([]domain.Customer, len(customers))
		for i, customer := range customers {
			customer.IsActive = false
			updatedCustomers[i] = customer
		}
	}

	result := &Result{
		Horizon:   DatasetHorizon(subscriptions),
		Timeline:  timeline,
		Events:    events,
		Metrics:   metrics,
		Customers: updatedCustomers,
	}

	logrus.WithFields(logrus.Fields{
		"subscriptions": len(subscriptions),
		"customers":     len(customers),
		"timeline_rows": len(timeline),
		"events":        len(events),
		"months":        result.Months(),
		"duration":      time.Since(startTime).String(),
	}).Info("Derivação das métricas de receita concluída")

	return result, nil
}
