package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-ledger-api/internal/scheduler"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeLedgerReport = "ledger-report"
	CronJobTypeAll          = "all"
)

// LedgerReportSyncer é a parte do agendador usada pelas rotas de cron
type LedgerReportSyncer interface {
	TriggerManualSync() bool
	GetStatus() scheduler.SyncStatus
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	LedgerReportSyncService LedgerReportSyncer
}

// RunCronJob dispara manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeLedgerReport, CronJobTypeAll:
			if services.LedgerReportSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de geração de relatórios não disponível", nil)
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: ledger-report, all", nil)
			return
		}

		started := services.LedgerReportSyncService.TriggerManualSync()
		message := "Cron job iniciada com sucesso"
		if !started {
			message = "Cron job já em andamento"
		}

		log.ForContext(r.Context()).WithField(log.FieldJob, cronType).Info(message)

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": message,
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.LedgerReportSyncService != nil {
			status[CronJobTypeLedgerReport] = services.LedgerReportSyncService.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
