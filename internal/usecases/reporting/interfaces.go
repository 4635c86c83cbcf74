package reporting

import (
	"context"

	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_reporter.go -package=mocks

// LedgerSource fornece o texto bruto de um livro de vendas
type LedgerSource interface {
	Name() string
	Load(ctx context.Context) (string, error)
}

type Reporter interface {
	GenerateFromLedger(ctx context.Context, source string, raw string) (*domain.SalesReport, error)
	GenerateFromSource(ctx context.Context) (*domain.SalesReport, error)
	GetReport(ctx context.Context, id string) (*domain.SalesReport, error)
	GetLatestReport(ctx context.Context) (*domain.SalesReport, error)
	ListReports(ctx context.Context, limit int) ([]*domain.SalesReport, error)
}
