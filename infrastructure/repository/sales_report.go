// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

//go:generate mockgen -source=sales_report.go -destination=mocks/mock_sales_report.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	salesReportTable = "sales_report sr"

	// DefaultListLimit é usado quando nenhum limite válido é informado
	DefaultListLimit = 20
)

// SalesReportSchema cria a tabela de relatórios
const SalesReportSchema = `
CREATE TABLE IF NOT EXISTS sales_report (
	id                TEXT PRIMARY KEY,
	source            TEXT NOT NULL,
	parse_mode        TEXT NOT NULL,
	row_count         INTEGER NOT NULL,
	total_store_sales DOUBLE PRECISION,
	months            JSONB NOT NULL DEFAULT '[]',
	poisoned_rows     JSONB NOT NULL DEFAULT '[]',
	rejected_rows     JSONB NOT NULL DEFAULT '[]',
	summary           JSONB NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sales_report_created_at ON sales_report (created_at DESC);
`

var salesReportColumns = []string{
	"sr.id",
	"sr.source",
	"sr.parse_mode",
	"sr.row_count",
	"sr.months",
	"sr.poisoned_rows",
	"sr.rejected_rows",
	"sr.summary",
	"sr.created_at",
}

// ErrReportNotFound indica que não existe relatório com o ID informado
var ErrReportNotFound = errors.New("sales report not found")

type SalesReportRepository interface {
	Save(ctx context.Context, report *domain.SalesReport) error
	GetByID(ctx context.Context, id string) (*domain.SalesReport, error)
	GetLatest(ctx context.Context) (*domain.SalesReport, error)
	List(ctx context.Context, limit int) ([]*domain.SalesReport, error)
}

type salesReportRepository struct {
	conn postgres.Queryer
}

func NewSalesReportRepository(conn postgres.Queryer) SalesReportRepository {
	return &salesReportRepository{
		conn: conn,
	}
}

func (r *salesReportRepository) Save(ctx context.Context, report *domain.SalesReport) error {
	sqlQuery, args, err := buildInsertReportQuery(report)
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de inserção")
	}

	if _, err := r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return errors.Wrap(err, "erro ao executar query de inserção")
	}

	return nil
}

func (r *salesReportRepository) GetByID(ctx context.Context, id string) (*domain.SalesReport, error) {
	query, args, err := selectReports().
		Where(squirrel.Eq{"sr.id": id}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	report, err := scanReport(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, errors.Wrap(err, "erro ao escanear relatório")
	}

	return report, nil
}

func (r *salesReportRepository) GetLatest(ctx context.Context) (*domain.SalesReport, error) {
	query, args, err := selectReports().
		OrderBy("sr.created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	report, err := scanReport(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, errors.Wrap(err, "erro ao escanear relatório")
	}

	return report, nil
}

func (r *salesReportRepository) List(ctx context.Context, limit int) ([]*domain.SalesReport, error) {
	query, args, err := buildListReportsQuery(limit)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	reports := make([]*domain.SalesReport, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear relatório")
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return reports, nil
}

func selectReports() squirrel.SelectBuilder {
	return squirrel.
		Select(salesReportColumns...).
		From(salesReportTable).
		PlaceholderFormat(squirrel.Dollar)
}

func buildListReportsQuery(limit int) (string, []interface{}, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	return selectReports().
		OrderBy("sr.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
}

func buildInsertReportQuery(report *domain.SalesReport) (string, []interface{}, error) {
	if report == nil || report.Summary == nil {
		return "", nil, fmt.Errorf("relatório sem resumo")
	}

	months, err := json.Marshal(report.Months)
	if err != nil {
		return "", nil, err
	}
	poisoned, err := json.Marshal(nonNilRows(report.PoisonedRows))
	if err != nil {
		return "", nil, err
	}
	rejected, err := json.Marshal(nonNilRows(report.RejectedRows))
	if err != nil {
		return "", nil, err
	}
	summary, err := json.Marshal(report.Summary)
	if err != nil {
		return "", nil, err
	}

	// NaN é gravado como NULL na coluna numérica; o resumo completo fica no JSON
	var totalStoreSales interface{}
	if !report.Summary.TotalStoreSales.IsNaN() {
		totalStoreSales = report.Summary.TotalStoreSales.Float64()
	}

	return squirrel.StatementBuilder.
		Insert("sales_report").
		Columns(
			"id",
			"source",
			"parse_mode",
			"row_count",
			"total_store_sales",
			"months",
			"poisoned_rows",
			"rejected_rows",
			"summary",
			"created_at",
		).
		Values(
			report.ID,
			report.Source,
			report.ParseMode,
			report.RowCount,
			totalStoreSales,
			string(months),
			string(poisoned),
			string(rejected),
			string(summary),
			report.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row rowScanner) (*domain.SalesReport, error) {
	report := &domain.SalesReport{}
	var months, poisoned, rejected, summary []byte

	err := row.Scan(
		&report.ID,
		&report.Source,
		&report.ParseMode,
		&report.RowCount,
		&months,
		&poisoned,
		&rejected,
		&summary,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeReportColumns(report, months, poisoned, rejected, summary); err != nil {
		return nil, err
	}

	return report, nil
}

func decodeReportColumns(report *domain.SalesReport, months, poisoned, rejected, summary []byte) error {
	if err := json.Unmarshal(months, &report.Months); err != nil {
		return errors.Wrap(err, "months")
	}
	if err := json.Unmarshal(poisoned, &report.PoisonedRows); err != nil {
		return errors.Wrap(err, "poisoned_rows")
	}
	if err := json.Unmarshal(rejected, &report.RejectedRows); err != nil {
		return errors.Wrap(err, "rejected_rows")
	}

	report.Summary = &domain.SalesSummary{}
	if err := json.Unmarshal(summary, report.Summary); err != nil {
		return errors.Wrap(err, "summary")
	}

	return nil
}

func nonNilRows(rows []int) []int {
	if rows == nil {
		return []int{}
	}
	return rows
}
