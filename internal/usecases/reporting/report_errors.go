package reporting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de relatórios de vendas
var (
	// Erros de leitura do livro
	ErrLedgerLoad  = errors.New("error loading sales ledger")
	ErrLedgerParse = errors.New("error parsing sales ledger")

	// Erros de persistência
	ErrReportNotFound      = errors.New("sales report not found")
	ErrReportStoreDisabled = errors.New("sales report store is disabled")
	ErrSaveReport          = errors.New("error saving sales report")
	ErrFetchReports        = errors.New("error fetching sales reports from database")

	ErrGenerateID = errors.New("error generating report ID")
)

// ReportError é um erro com contexto adicional para relatórios
type ReportError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	ReportID string // ID do relatório envolvido (quando aplicável)
	Details  string // Detalhes adicionais
	Cause    error  // Erro de origem (parser, banco, arquivo)
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap expõe o erro base e a causa para errors.Is e errors.As
func (e *ReportError) Unwrap() []error {
	errs := make([]error, 0, 2)
	for _, err := range []error{e.Err, e.Cause} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// NewReportError cria um novo ReportError
func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewReportErrorWithCause cria um novo ReportError preservando o erro de origem
func NewReportErrorWithCause(err error, code string, cause error, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
		Cause:   cause,
	}
}

// NewReportErrorWithID cria um novo ReportError com ID do relatório
func NewReportErrorWithID(err error, code string, reportID string, details string) *ReportError {
	return &ReportError{
		Err:      err,
		Code:     code,
		ReportID: reportID,
		Details:  details,
	}
}
