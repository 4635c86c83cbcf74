package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-ledger-api/infrastructure/ledger"
	"github.com/vfg2006/sales-ledger-api/infrastructure/repository"
	repomocks "github.com/vfg2006/sales-ledger-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/parsing"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/summarizing"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

const sampleLedger = "Date,SKU,Unit Price,Quantity,Total Price\n" +
	"2023-01-01,A1,10,2,20\n" +
	"2023-01-02,A2,5,4,20\n" +
	"2023-02-01,A2,5,2,10\n"

var fixedNow = time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(mode parsing.Mode, source LedgerSource) *Service {
	s := NewService(parsing.NewParser(mode), summarizing.NewService(), source)
	s.generateID = func() (string, error) { return "rep0000001", nil }
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestService_GenerateFromLedger(t *testing.T) {
	s := newTestService(parsing.ModePermissive, nil)

	report, err := s.GenerateFromLedger(context.Background(), "upload", sampleLedger)
	require.NoError(t, err)

	assert.Equal(t, "rep0000001", report.ID)
	assert.Equal(t, "upload", report.Source)
	assert.Equal(t, "permissive", report.ParseMode)
	assert.Equal(t, 3, report.RowCount)
	assert.Equal(t, []domain.MonthKey{"2023-01", "2023-02"}, report.Months)
	assert.Empty(t, report.PoisonedRows)
	assert.Equal(t, fixedNow, report.CreatedAt)

	summary := report.Summary
	require.NotNil(t, summary)
	assert.Equal(t, domain.Amount(50), summary.TotalStoreSales)
	assert.Equal(t, map[domain.MonthKey]domain.Amount{"2023-01": 40, "2023-02": 10}, summary.MonthWiseSales)
	assert.Equal(t, domain.PopularItem{SKU: "A2", Qty: 4}, summary.MostPopularByMonth["2023-01"])
	assert.Equal(t, domain.RevenueItem{SKU: "A1", Revenue: 20}, summary.MostRevenueByMonth["2023-01"])
	assert.Equal(t, domain.ItemStats{SKU: "A2", Min: 4, Max: 4, Avg: 4}, summary.StatsForMostPopular["2023-01"])

	latest, err := s.GetLatestReport(context.Background())
	require.NoError(t, err)
	assert.Same(t, report, latest)
}

func TestService_GenerateFromLedger_ParseModes(t *testing.T) {
	ledgerWithBadRow := sampleLedger + "2023-02-03,A3,abc,1,5\n"

	tests := []struct {
		name     string
		mode     parsing.Mode
		validate func(t *testing.T, report *domain.SalesReport, err error)
	}{
		{
			name: "permissive mantém a linha e marca como contaminada",
			mode: parsing.ModePermissive,
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, 4, report.RowCount)
				assert.Equal(t, []int{5}, report.PoisonedRows)
				assert.Equal(t, domain.Amount(55), report.Summary.TotalStoreSales)
			},
		},
		{
			name: "skip descarta a linha",
			mode: parsing.ModeSkip,
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				require.NoError(t, err)
				assert.Equal(t, 3, report.RowCount)
				assert.Equal(t, []int{5}, report.RejectedRows)
				assert.Equal(t, domain.Amount(50), report.Summary.TotalStoreSales)
			},
		},
		{
			name: "strict retorna erro com a linha e o campo",
			mode: parsing.ModeStrict,
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				assert.Nil(t, report)
				require.Error(t, err)

				var reportErr *ReportError
				require.True(t, errors.As(err, &reportErr))
				assert.Equal(t, apiErrors.ErrInvalidFormat, reportErr.Code)
				assert.ErrorIs(t, err, ErrLedgerParse)
				assert.ErrorIs(t, err, parsing.ErrInvalidNumber)

				var rowErr *parsing.RowParseError
				require.True(t, errors.As(err, &rowErr))
				assert.Equal(t, 5, rowErr.Line)
				assert.Equal(t, "unitPrice", rowErr.Field)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(tt.mode, nil)
			report, err := s.GenerateFromLedger(context.Background(), "upload", ledgerWithBadRow)
			tt.validate(t, report, err)
		})
	}
}

func TestService_GenerateFromLedger_GenerateIDFailure(t *testing.T) {
	s := newTestService(parsing.ModePermissive, nil)
	s.generateID = func() (string, error) { return "", errors.New("entropia esgotada") }

	_, err := s.GenerateFromLedger(context.Background(), "upload", sampleLedger)
	assert.ErrorIs(t, err, ErrGenerateID)

	_, err = s.GetLatestReport(context.Background())
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestService_GenerateFromSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/sales-data.txt", []byte(sampleLedger), 0o644))

	s := newTestService(parsing.ModePermissive, ledger.NewFileSourceWithFs(fs, "/data/sales-data.txt"))

	report, err := s.GenerateFromSource(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/data/sales-data.txt", report.Source)
	assert.Equal(t, domain.Amount(50), report.Summary.TotalStoreSales)
}

func TestService_GenerateFromSource_Errors(t *testing.T) {
	t.Run("sem origem configurada", func(t *testing.T) {
		_, err := newTestService(parsing.ModePermissive, nil).GenerateFromSource(context.Background())

		var reportErr *ReportError
		require.True(t, errors.As(err, &reportErr))
		assert.Equal(t, apiErrors.ErrLedgerUnavailable, reportErr.Code)
		assert.ErrorIs(t, err, ErrLedgerLoad)
	})

	t.Run("arquivo inexistente", func(t *testing.T) {
		source := ledger.NewFileSourceWithFs(afero.NewMemMapFs(), "/missing.txt")
		_, err := newTestService(parsing.ModePermissive, source).GenerateFromSource(context.Background())

		assert.ErrorIs(t, err, ErrLedgerLoad)
		assert.ErrorIs(t, err, afero.ErrFileNotFound)
	})
}

func TestService_WithStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repomocks.NewMockSalesReportRepository(ctrl)
	ctx := context.Background()

	tests := []struct {
		name     string
		setup    func()
		run      func(s *Service) (any, error)
		validate func(t *testing.T, result any, err error)
	}{
		{
			name: "salva o relatório gerado",
			setup: func() {
				mockRepo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, report *domain.SalesReport) error {
						assert.Equal(t, "rep0000001", report.ID)
						return nil
					})
			},
			run: func(s *Service) (any, error) {
				return s.GenerateFromLedger(ctx, "upload", sampleLedger)
			},
			validate: func(t *testing.T, result any, err error) {
				require.NoError(t, err)
				assert.NotNil(t, result)
			},
		},
		{
			name: "falha ao salvar não atualiza o último relatório",
			setup: func() {
				mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("conexão recusada"))
			},
			run: func(s *Service) (any, error) {
				return s.GenerateFromLedger(ctx, "upload", sampleLedger)
			},
			validate: func(t *testing.T, result any, err error) {
				var reportErr *ReportError
				require.True(t, errors.As(err, &reportErr))
				assert.Equal(t, apiErrors.ErrDatabaseOperation, reportErr.Code)
				assert.ErrorIs(t, err, ErrSaveReport)
			},
		},
		{
			name: "relatório inexistente vira REP_001",
			setup: func() {
				mockRepo.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, repository.ErrReportNotFound)
			},
			run: func(s *Service) (any, error) {
				return s.GetReport(ctx, "nope")
			},
			validate: func(t *testing.T, result any, err error) {
				var reportErr *ReportError
				require.True(t, errors.As(err, &reportErr))
				assert.Equal(t, apiErrors.ErrReportNotFound, reportErr.Code)
				assert.Equal(t, "nope", reportErr.ReportID)
			},
		},
		{
			name: "último relatório vem do banco",
			setup: func() {
				mockRepo.EXPECT().GetLatest(gomock.Any()).Return(&domain.SalesReport{ID: "db-latest"}, nil)
			},
			run: func(s *Service) (any, error) {
				return s.GetLatestReport(ctx)
			},
			validate: func(t *testing.T, result any, err error) {
				require.NoError(t, err)
				assert.Equal(t, "db-latest", result.(*domain.SalesReport).ID)
			},
		},
		{
			name: "limite inválido usa o padrão",
			setup: func() {
				mockRepo.EXPECT().
					List(gomock.Any(), repository.DefaultListLimit).
					Return([]*domain.SalesReport{{ID: "a"}, {ID: "b"}}, nil)
			},
			run: func(s *Service) (any, error) {
				return s.ListReports(ctx, 0)
			},
			validate: func(t *testing.T, result any, err error) {
				require.NoError(t, err)
				assert.Len(t, result, 2)
			},
		},
		{
			name: "erro de banco na listagem",
			setup: func() {
				mockRepo.EXPECT().List(gomock.Any(), 5).Return(nil, errors.New("timeout"))
			},
			run: func(s *Service) (any, error) {
				return s.ListReports(ctx, 5)
			},
			validate: func(t *testing.T, result any, err error) {
				assert.ErrorIs(t, err, ErrFetchReports)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			s := newTestService(parsing.ModePermissive, nil).WithStore(mockRepo)
			result, err := tt.run(s)
			tt.validate(t, result, err)
		})
	}
}

func TestService_WithoutStore(t *testing.T) {
	s := newTestService(parsing.ModePermissive, nil)
	ctx := context.Background()

	_, err := s.GetLatestReport(ctx)
	assert.ErrorIs(t, err, ErrReportNotFound)

	_, err = s.ListReports(ctx, 10)
	var reportErr *ReportError
	require.True(t, errors.As(err, &reportErr))
	assert.Equal(t, apiErrors.ErrStoreDisabled, reportErr.Code)

	report, err := s.GenerateFromLedger(ctx, "upload", sampleLedger)
	require.NoError(t, err)

	found, err := s.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Same(t, report, found)

	_, err = s.GetReport(ctx, "other")
	assert.ErrorIs(t, err, ErrReportNotFound)
}
