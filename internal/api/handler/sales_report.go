package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
)

const (
	defaultUploadSource = "upload"
	latestReportID      = "latest"
)

// CreateSalesReport recebe o livro de vendas no corpo da requisição e devolve o relatório gerado
func CreateSalesReport(service reporting.Reporter, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxUploadBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, "Livro de vendas maior que o permitido", map[string]int64{"limit": maxBytesErr.Limit})
				return
			}
			log.ForContext(r.Context()).WithError(err).Warn("Erro ao ler corpo da requisição")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Não foi possível ler o corpo da requisição", nil)
			return
		}

		source := strings.TrimSpace(r.URL.Query().Get("source"))
		if source == "" {
			source = defaultUploadSource
		}

		report, err := service.GenerateFromLedger(r.Context(), source, string(body))
		if err != nil {
			writeReportError(w, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, report)
	}
}

// ListSalesReports lista os relatórios salvos, do mais recente para o mais antigo
func ListSalesReports(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro limit deve ser um inteiro positivo", map[string]string{"limit": raw})
				return
			}
			limit = parsed
		}

		reports, err := service.ListReports(r.Context(), limit)
		if err != nil {
			writeReportError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, reports)
	}
}

// GetSalesReport busca um relatório pelo ID; "latest" devolve o mais recente
func GetSalesReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do relatório não especificado", nil)
			return
		}

		var report *domain.SalesReport
		var err error
		if id == latestReportID {
			report, err = service.GetLatestReport(r.Context())
		} else {
			report, err = service.GetReport(r.Context(), id)
		}
		if err != nil {
			writeReportError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}
