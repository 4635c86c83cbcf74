package handler

import (
	"net/http"

	"github.com/vfg2006/sales-ledger-api/internal/api/handler/router"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-ledger-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func SalesReports(service reporting.Reporter, cfg *config.Config) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports",
			Method:      http.MethodPost,
			Handler:     CreateSalesReport(service, cfg.Ledger.MaxUploadBytes),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly(cfg.Auth.Enabled)},
		},
		{
			Path:    "/v1/reports",
			Method:  http.MethodGet,
			Handler: ListSalesReports(service),
		},
		{
			Path:    "/v1/reports/:id",
			Method:  http.MethodGet,
			Handler: GetSalesReport(service),
		},
	}
}

func CronJobs(services CronJobServices, cfg *config.Config) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly(cfg.Auth.Enabled)},
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
