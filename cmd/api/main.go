package main

import (
	"context"

	"github.com/vfg2006/sales-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ledger-api/infrastructure/ledger"
	"github.com/vfg2006/sales-ledger-api/infrastructure/repository"
	"github.com/vfg2006/sales-ledger-api/internal/api"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/internal/scheduler"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/parsing"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/summarizing"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	level := log.Configure(cfg.App.LogLevel)
	log.L.Infof("Nível de log configurado para: %s", level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	parseMode, err := parsing.ParseMode(cfg.Ledger.ParseMode)
	if err != nil {
		log.L.WithError(err).Fatal("LEDGER_PARSE_MODE inválido")
	}

	reporter := reporting.NewService(
		parsing.NewParser(parseMode),
		summarizing.NewService(),
		ledger.NewFileSource(cfg.Ledger.FilePath),
	)

	if cfg.Database.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		reporter.WithStore(repository.NewSalesReportRepository(pgConn))
	} else {
		log.L.Warn("Banco de dados desabilitado: relatórios mantidos apenas em memória")
	}

	authenticator := authenticating.NewService(cfg)

	ledgerReportSyncService := scheduler.NewLedgerReportSyncService(reporter, cfg)
	if err := ledgerReportSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de relatórios")
	}

	server, err := api.New(cfg, reporter, authenticator, ledgerReportSyncService)
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
