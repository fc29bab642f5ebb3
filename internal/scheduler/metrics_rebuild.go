package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/infrastructure/repository"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/telemetry"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/deriving"
	"github.com/vfg2006/saas-metrics-api/pkg/utils"
)

const (
	TriggerCron   = "cron"
	TriggerManual = "manual"
	TriggerStart  = "start"
)

// ErrRebuildRunning indica que já existe um recálculo em andamento
var ErrRebuildRunning = errors.New("metrics rebuild already running")

// MetricsRebuildConfig representa a configuração do agendador do recálculo das métricas
type MetricsRebuildConfig struct {
	CronSchedule string
	Enabled      bool
	RunOnStart   bool
}

// MetricsRebuildService recalcula linha do tempo, eventos e métricas a partir das assinaturas persistidas
type MetricsRebuildService struct {
	scheduler            *gocron.Scheduler
	config               MetricsRebuildConfig
	subscriptionRepo     repository.SubscriptionRepository
	customerRepo         repository.CustomerRepository
	customerMonthMRRRepo repository.CustomerMonthMRRRepository
	revenueEventRepo     repository.RevenueEventRepository
	portfolioMetricsRepo repository.PortfolioMetricsRepository
	deriver              deriving.Deriver
	collector            *telemetry.Collector
	baseCtx              context.Context
	syncRunning          bool
	syncMutex            sync.Mutex
	lastRun              *domain.RebuildRun
}

func NewMetricsRebuildService(
	subscriptionRepo repository.SubscriptionRepository,
	customerRepo repository.CustomerRepository,
	customerMonthMRRRepo repository.CustomerMonthMRRRepository,
	revenueEventRepo repository.RevenueEventRepository,
	portfolioMetricsRepo repository.PortfolioMetricsRepository,
	deriver deriving.Deriver,
	collector *telemetry.Collector,
	appConfig *config.Config,
) *MetricsRebuildService {
	rebuildConfig := MetricsRebuildConfig{
		CronSchedule: appConfig.MetricsRebuild.CronSchedule,
		Enabled:      appConfig.MetricsRebuild.Enabled,
		RunOnStart:   appConfig.MetricsRebuild.RunOnStart,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       rebuildConfig.CronSchedule,
		"max_concurrent_jobs": appConfig.MetricsRebuild.MaxConcurrentJobs,
		"enabled":             rebuildConfig.Enabled,
		"run_on_start":        rebuildConfig.RunOnStart,
	}).Info("Configuração do agendador de recálculo das métricas carregada")

	return &MetricsRebuildService{
		scheduler:            gocron.NewScheduler(time.UTC),
		config:               rebuildConfig,
		subscriptionRepo:     subscriptionRepo,
		customerRepo:         customerRepo,
		customerMonthMRRRepo: customerMonthMRRRepo,
		revenueEventRepo:     revenueEventRepo,
		portfolioMetricsRepo: portfolioMetricsRepo,
		deriver:              deriver,
		collector:            collector,
		baseCtx:              context.Background(),
	}
}

// Start agenda o recálculo periódico e, se configurado, dispara uma execução imediata
func (s *MetricsRebuildService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if s.config.RunOnStart {
		s.trigger(TriggerStart)
	}

	if !s.config.Enabled {
		logrus.Info("Recálculo agendado das métricas desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de recálculo das métricas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.Rebuild(s.baseCtx, TriggerCron); err != nil && !errors.Is(err, ErrRebuildRunning) {
			logrus.WithError(err).Error("Erro no recálculo agendado das métricas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recálculo das métricas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recálculo das métricas")
		s.scheduler.Stop()
	}()

	return nil
}

// Rebuild executa o pipeline completo e substitui as tabelas derivadas.
// Um conjunto vazio de assinaturas encerra a execução sem tocar nas tabelas.
func (s *MetricsRebuildService) Rebuild(ctx context.Context, trigger string) (*domain.RebuildRun, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo das métricas já em andamento, ignorando")
		return nil, ErrRebuildRunning
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	run := &domain.RebuildRun{
		RunID:     newRunID(),
		StartedAt: time.Now(),
		Status:    domain.RebuildRunStatusRunning,
	}
	logger := logrus.WithFields(logrus.Fields{
		"run_id":  run.RunID,
		"trigger": trigger,
	})
	logger.Info("Iniciando recálculo das métricas")

	err := s.rebuild(ctx, run, logger)

	run.FinishedAt = time.Now()
	duration := run.FinishedAt.Sub(run.StartedAt)

	status := telemetry.StatusSuccess
	switch {
	case err != nil:
		run.Status = domain.RebuildRunStatusFailed
		run.Error = err.Error()
		status = telemetry.StatusFailure
		logger.WithError(err).Error("Erro no recálculo das métricas")
	case run.Status == domain.RebuildRunStatusSkipped:
		status = telemetry.StatusSkipped
	default:
		run.Status = domain.RebuildRunStatusSucceeded
		logger.WithFields(logrus.Fields{
			"duration":      duration.String(),
			"subscriptions": run.Subscriptions,
			"timeline_rows": run.TimelineRows,
			"events":        run.Events,
			"months":        run.Months,
		}).Info("Recálculo das métricas concluído")
	}

	s.collector.ObserveRebuild(trigger, status, duration)

	s.syncMutex.Lock()
	s.lastRun = run
	s.syncMutex.Unlock()

	return run, err
}

func (s *MetricsRebuildService) rebuild(ctx context.Context, run *domain.RebuildRun, logger *logrus.Entry) error {
	subscriptions, err := s.subscriptionRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("erro ao buscar assinaturas: %w", err)
	}
	run.Subscriptions = len(subscriptions)

	if len(subscriptions) == 0 {
		logger.Warn("Nenhuma assinatura encontrada, tabelas derivadas mantidas")
		run.Status = domain.RebuildRunStatusSkipped
		return nil
	}

	customers, err := s.customerRepo.List(ctx, false)
	if err != nil {
		return fmt.Errorf("erro ao buscar clientes: %w", err)
	}

	result, err := s.deriver.Run(subscriptions, customers)
	if err != nil {
		return fmt.Errorf("erro ao derivar métricas: %w", err)
	}

	run.TimelineRows = len(result.Timeline)
	run.Events = len(result.Events)
	run.Months = result.Months()

	if err := s.customerMonthMRRRepo.ReplaceAll(ctx, result.Timeline); err != nil {
		return fmt.Errorf("erro ao salvar linha do tempo de MRR: %w", err)
	}
	s.collector.SetDerivedRows("customer_month_mrr", len(result.Timeline))

	if err := s.revenueEventRepo.ReplaceAll(ctx, result.Events); err != nil {
		return fmt.Errorf("erro ao salvar eventos de receita: %w", err)
	}
	s.collector.SetDerivedRows("revenue_events", len(result.Events))

	if err := s.portfolioMetricsRepo.ReplaceAll(ctx, result.Metrics); err != nil {
		return fmt.Errorf("erro ao salvar métricas da carteira: %w", err)
	}
	s.collector.SetDerivedRows("monthly_portfolio_metrics", len(result.Metrics))

	if err := s.customerRepo.UpdateActiveFlags(ctx, result.Customers); err != nil {
		return fmt.Errorf("erro ao atualizar status dos clientes: %w", err)
	}

	return nil
}

// TriggerManualSync inicia manualmente um recálculo; retorna falso se já houver um em andamento
func (s *MetricsRebuildService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recálculo das métricas já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recálculo manual das métricas")
	s.trigger(TriggerManual)
	return true
}

func (s *MetricsRebuildService) trigger(trigger string) {
	go func() {
		if _, err := s.Rebuild(s.baseCtx, trigger); err != nil && !errors.Is(err, ErrRebuildRunning) {
			logrus.WithError(err).WithField("trigger", trigger).Error("Erro no recálculo das métricas")
		}
	}()
}

// GetStatus retorna o status atual do agendador e a última execução
func (s *MetricsRebuildService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running": s.syncRunning,
		"sync_cron":    s.config.CronSchedule,
		"sync_enabled": s.config.Enabled,
		"last_run":     s.lastRun,
	}
}

// LastRun retorna a última execução concluída, ou nil se nenhuma ocorreu
func (s *MetricsRebuildService) LastRun() *domain.RebuildRun {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.lastRun
}

func newRunID() string {
	id, err := utils.GenerateID()
	if err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return id
}
