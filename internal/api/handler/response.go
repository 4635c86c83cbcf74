package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/parsing"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// rowErrorDetails é o corpo de details para linhas rejeitadas no modo strict
type rowErrorDetails struct {
	Line  int    `json:"line"`
	Field string `json:"field,omitempty"`
	Value string `json:"value"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeReportError traduz erros do caso de uso de relatórios para o formato da API
func writeReportError(w http.ResponseWriter, err error) {
	var reportErr *reporting.ReportError
	if !errors.As(err, &reportErr) {
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
		return
	}

	var details any
	var rowErr *parsing.RowParseError
	if errors.As(err, &rowErr) {
		details = rowErrorDetails{
			Line:  rowErr.Line,
			Field: rowErr.Field,
			Value: rowErr.Value,
		}
	} else if reportErr.ReportID != "" {
		details = map[string]string{"id": reportErr.ReportID}
	}

	apiErrors.WriteError(w, reportErr.Code, reportErr.Error(), details)
}
