package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
)

const jobLedgerReport = "ledger-report"

// ErrSyncAlreadyRunning indica que uma geração de relatório já está em andamento
var ErrSyncAlreadyRunning = errors.New("ledger report sync already running")

// LedgerReportSyncConfig representa a configuração do agendador de relatórios
type LedgerReportSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// SyncStatus é o retrato do agendador exposto em /v1/cron/status
type SyncStatus struct {
	Job                 string    `json:"job"`
	SyncEnabled         bool      `json:"sync_enabled"`
	SyncCron            string    `json:"sync_cron"`
	Running             bool      `json:"running"`
	LastSyncStartedAt   time.Time `json:"last_sync_started_at"`
	LastSyncCompletedAt time.Time `json:"last_sync_completed_at"`
	LastReportID        string    `json:"last_report_id,omitempty"`
	LastError           string    `json:"last_error,omitempty"`
}

// LedgerReportSyncService regenera periodicamente o relatório a partir do livro configurado
type LedgerReportSyncService struct {
	scheduler *gocron.Scheduler
	config    LedgerReportSyncConfig
	reporter  reporting.Reporter

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReportID        string
	lastError           string
}

// NewLedgerReportSyncService cria uma nova instância do serviço de sincronização
func NewLedgerReportSyncService(reporter reporting.Reporter, appConfig *config.Config) *LedgerReportSyncService {
	syncConfig := LedgerReportSyncConfig{
		CronSchedule: appConfig.LedgerReportSync.CronSchedule,
		SyncEnabled:  appConfig.LedgerReportSync.Enabled,
	}

	log.L.WithFields(log.Fields{
		log.FieldJob:   jobLedgerReport,
		"sync_cron":    syncConfig.CronSchedule,
		"sync_enabled": syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de relatórios carregada")

	return &LedgerReportSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		reporter:  reporter,
	}
}

// Start agenda a geração periódica e para o agendador quando o contexto for cancelado
func (s *LedgerReportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.WithField(log.FieldJob, jobLedgerReport).Info("Geração agendada de relatórios desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunSync(ctx); err != nil && !errors.Is(err, ErrSyncAlreadyRunning) {
			log.L.WithField(log.FieldJob, jobLedgerReport).WithError(err).Error("Falha na geração agendada do relatório")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar geração de relatórios: %w", err)
	}

	s.scheduler.StartAsync()
	log.L.WithField(log.FieldJob, jobLedgerReport).Infof("Agendador iniciado (%s)", s.config.CronSchedule)

	go func() {
		<-ctx.Done()
		log.L.WithField(log.FieldJob, jobLedgerReport).Info("Parando agendador de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// RunSync gera o relatório de forma síncrona; recusa execuções simultâneas
func (s *LedgerReportSyncService) RunSync(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.WithField(log.FieldJob, jobLedgerReport).Info("Geração de relatório já em andamento, ignorando")
		return ErrSyncAlreadyRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	report, err := s.reporter.GenerateFromSource(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		s.lastError = err.Error()
		return errors.Wrap(err, "erro ao gerar relatório agendado")
	}

	s.lastError = ""
	s.lastReportID = report.ID

	log.L.WithFields(log.Fields{
		log.FieldJob:      jobLedgerReport,
		log.FieldReportID: report.ID,
		log.FieldDuration: s.lastSyncCompletedAt.Sub(s.lastSyncStartedAt).Milliseconds(),
	}).Info("Relatório agendado gerado")

	return nil
}

// TriggerManualSync dispara uma geração em background; retorna falso se já houver uma em andamento
func (s *LedgerReportSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		log.L.WithField(log.FieldJob, jobLedgerReport).Info("Geração de relatório já em andamento, ignorando solicitação manual")
		return false
	}

	log.L.WithField(log.FieldJob, jobLedgerReport).Info("Iniciando geração manual de relatório")
	go func() {
		if err := s.RunSync(context.Background()); err != nil && !errors.Is(err, ErrSyncAlreadyRunning) {
			log.L.WithField(log.FieldJob, jobLedgerReport).WithError(err).Error("Falha na geração manual do relatório")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *LedgerReportSyncService) GetStatus() SyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return SyncStatus{
		Job:                 jobLedgerReport,
		SyncEnabled:         s.config.SyncEnabled,
		SyncCron:            s.config.CronSchedule,
		Running:             s.syncRunning,
		LastSyncStartedAt:   s.lastSyncStartedAt,
		LastSyncCompletedAt: s.lastSyncCompletedAt,
		LastReportID:        s.lastReportID,
		LastError:           s.lastError,
	}
}
