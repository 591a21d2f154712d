package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"gopharma/internal/domain"
	"gopharma/internal/pkg/logger"
)

// ReportRefresher recalcula o relatório de reposição e atualiza o cache.
type ReportRefresher interface {
	RefreshReport(ctx context.Context) (domain.ReplenishmentReport, error)
}

// Scheduler mantém o relatório em cache aquecido entre as consultas.
type Scheduler struct {
	cron      *cron.Cron
	refresher ReportRefresher
	timeout   time.Duration
	logger    logger.Logger
}

// NewScheduler cria o agendador. Execuções sobrepostas são descartadas.
func NewScheduler(refresher ReportRefresher, timeout time.Duration, log logger.Logger) *Scheduler {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DiscardLogger),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	return &Scheduler{
		cron:      c,
		refresher: refresher,
		timeout:   timeout,
		logger:    log,
	}
}

// Start agenda a atualização com a expressão cron (5 campos) e inicia o agendador.
// Uma expressão vazia desativa o agendamento.
func (s *Scheduler) Start(expr string) error {
	if expr == "" {
		s.logger.Info("Atualização agendada do relatório desativada.", nil)
		return nil
	}

	if _, err := s.cron.AddFunc(expr, s.refreshReport); err != nil {
		return fmt.Errorf("expressão cron inválida %q: %w", expr, err)
	}

	s.logger.Info("Agendador iniciado.", map[string]interface{}{"cron": expr})
	s.cron.Start()
	return nil
}

// Stop interrompe o agendador e aguarda a execução em andamento.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Agendador encerrado.", nil)
}

func (s *Scheduler) refreshReport() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	report, err := s.refresher.RefreshReport(ctx)
	if err != nil {
		s.logger.Error("Falha na atualização agendada do relatório.", err)
		return
	}

	s.logger.Debug("Relatório atualizado pelo agendador.", map[string]interface{}{
		"records": len(report.Records),
		"skipped": len(report.Skipped),
	})
}
