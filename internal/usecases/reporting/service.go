// Package reporting orquestra leitura, agregação e persistência dos relatórios de vendas
package reporting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-ledger-api/infrastructure/repository"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/parsing"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/summarizing"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
	"github.com/vfg2006/sales-ledger-api/pkg/utils"
)

type Service struct {
	parser           *parsing.Parser
	summarizer       summarizing.Summarizer
	source           LedgerSource
	reportRepository repository.SalesReportRepository
	generateID       func() (string, error)
	now              func() time.Time

	mu         sync.RWMutex
	lastReport *domain.SalesReport
}

var _ Reporter = (*Service)(nil)

func NewService(
	parser *parsing.Parser,
	summarizer summarizing.Summarizer,
	source LedgerSource,
) *Service {
	return &Service{
		parser:     parser,
		summarizer: summarizer,
		source:     source,
		generateID: utils.GenerateID,
		now:        time.Now,
	}
}

// WithStore habilita a persistência dos relatórios gerados
func (s *Service) WithStore(reportRepository repository.SalesReportRepository) *Service {
	s.reportRepository = reportRepository
	return s
}

func (s *Service) useStore() bool {
	return s.reportRepository != nil
}

// GenerateFromSource lê o livro da origem configurada e gera o relatório
func (s *Service) GenerateFromSource(ctx context.Context) (*domain.SalesReport, error) {
	if s.source == nil {
		return nil, NewReportError(ErrLedgerLoad, apiErrors.ErrLedgerUnavailable, "Nenhuma origem de livro de vendas configurada")
	}

	raw, err := s.source.Load(ctx)
	if err != nil {
		log.ForContext(ctx).WithField(log.FieldSource, s.source.Name()).WithError(err).Error("Falha ao ler o livro de vendas")
		return nil, NewReportErrorWithCause(ErrLedgerLoad, apiErrors.ErrLedgerUnavailable, err, "Falha ao ler o livro de vendas")
	}

	return s.GenerateFromLedger(ctx, s.source.Name(), raw)
}

// GenerateFromLedger executa leitura e agregação sobre o texto informado
func (s *Service) GenerateFromLedger(ctx context.Context, source string, raw string) (*domain.SalesReport, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		log.FieldSource:    source,
		log.FieldParseMode: string(s.parser.Mode()),
	})

	result, err := s.parser.Parse(raw)
	if err != nil {
		var rowErr *parsing.RowParseError
		if errors.As(err, &rowErr) {
			logger.WithField(log.FieldLine, rowErr.Line).WithError(err).Warn("Linha inválida no livro de vendas")
		}
		return nil, NewReportErrorWithCause(ErrLedgerParse, apiErrors.ErrInvalidFormat, err, err.Error())
	}

	id, err := s.generateID()
	if err != nil {
		logger.WithError(err).Error("Falha ao gerar ID do relatório")
		return nil, NewReportErrorWithCause(ErrGenerateID, apiErrors.ErrInternalServer, err, "Falha ao gerar ID do relatório")
	}

	report := &domain.SalesReport{
		ID:           id,
		Source:       source,
		ParseMode:    string(s.parser.Mode()),
		RowCount:     len(result.Records),
		Months:       summarizing.Months(result.Records),
		PoisonedRows: result.Poisoned,
		RejectedRows: result.Rejected,
		Summary:      s.summarizer.Summarize(result.Records),
		CreatedAt:    s.now().UTC(),
	}

	logger = logger.WithFields(log.Fields{
		log.FieldReportID: report.ID,
		log.FieldRowCount: report.RowCount,
	})

	if len(report.PoisonedRows) > 0 {
		logger.Warnf("%d linha(s) com colunas numéricas inválidas", len(report.PoisonedRows))
	}
	if len(report.RejectedRows) > 0 {
		logger.Warnf("%d linha(s) descartada(s)", len(report.RejectedRows))
	}

	if s.useStore() {
		if err := s.reportRepository.Save(ctx, report); err != nil {
			logger.WithError(err).Error("Falha ao salvar relatório")
			return nil, NewReportErrorWithCause(ErrSaveReport, apiErrors.ErrDatabaseOperation, err, "Falha ao salvar relatório no banco de dados")
		}
	}

	s.mu.Lock()
	s.lastReport = report
	s.mu.Unlock()

	logger.Info("Relatório de vendas gerado")

	return report, nil
}

func (s *Service) GetReport(ctx context.Context, id string) (*domain.SalesReport, error) {
	if s.useStore() {
		report, err := s.reportRepository.GetByID(ctx, id)
		if err != nil {
			return nil, s.fetchError(err, id)
		}
		return report, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastReport != nil && s.lastReport.ID == id {
		return s.lastReport, nil
	}

	return nil, NewReportErrorWithID(ErrReportNotFound, apiErrors.ErrReportNotFound, id, "Relatório não encontrado")
}

// GetLatestReport busca o relatório mais recente no banco ou, sem banco, o último gerado pelo processo
func (s *Service) GetLatestReport(ctx context.Context) (*domain.SalesReport, error) {
	if s.useStore() {
		report, err := s.reportRepository.GetLatest(ctx)
		if err != nil {
			return nil, s.fetchError(err, "")
		}
		return report, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastReport == nil {
		return nil, NewReportError(ErrReportNotFound, apiErrors.ErrReportNotFound, "Nenhum relatório gerado")
	}

	return s.lastReport, nil
}

func (s *Service) ListReports(ctx context.Context, limit int) ([]*domain.SalesReport, error) {
	if !s.useStore() {
		return nil, NewReportError(ErrReportStoreDisabled, apiErrors.ErrStoreDisabled, "Listagem requer o banco de dados habilitado")
	}

	if limit <= 0 {
		limit = repository.DefaultListLimit
	}

	reports, err := s.reportRepository.List(ctx, limit)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Falha ao listar relatórios")
		return nil, NewReportErrorWithCause(ErrFetchReports, apiErrors.ErrDatabaseOperation, err, "Falha ao listar relatórios no banco de dados")
	}

	return reports, nil
}

func (s *Service) fetchError(err error, id string) error {
	if errors.Is(err, repository.ErrReportNotFound) {
		reportErr := NewReportErrorWithID(ErrReportNotFound, apiErrors.ErrReportNotFound, id, "Relatório não encontrado")
		reportErr.Cause = err
		return reportErr
	}

	log.L.WithField(log.FieldReportID, id).WithError(err).Error("Falha ao buscar relatório")
	return NewReportErrorWithCause(ErrFetchReports, apiErrors.ErrDatabaseOperation, err, fmt.Sprintf("Falha ao buscar relatório %q", id))
}
