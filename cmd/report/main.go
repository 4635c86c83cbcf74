// Comando report: executa a agregação uma vez sobre um livro de vendas e imprime os resumos.
//
// Uso:
//
//	report [--file sales-data.txt] [--mode permissive|strict|skip] [--save] [--json]
//	report token --name ana --role 1
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/vfg2006/sales-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ledger-api/infrastructure/ledger"
	"github.com/vfg2006/sales-ledger-api/infrastructure/repository"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/parsing"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/summarizing"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
	"github.com/vfg2006/sales-ledger-api/pkg/middleware"
	"github.com/vfg2006/sales-ledger-api/pkg/utils"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := newApp(cfg).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config) *cli.App {
	return &cli.App{
		Name:  "report",
		Usage: "Resumo de vendas a partir de um livro de vendas",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Value:   cfg.Ledger.FilePath,
				Usage:   "Caminho do livro de vendas",
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Value:   cfg.Ledger.ParseMode,
				Usage:   "Tratamento de linhas inválidas (permissive, strict, skip)",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Salva o relatório no PostgreSQL",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Imprime o relatório completo em JSON",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "Nível de log (debug, info, warn, error)",
			},
		},
		Before: func(c *cli.Context) error {
			log.Configure(c.String("log-level"))
			return nil
		},
		Action: func(c *cli.Context) error {
			return runReport(c, cfg)
		},
		Commands: []*cli.Command{
			tokenCommand(cfg),
		},
	}
}

func runReport(c *cli.Context, cfg *config.Config) error {
	ctx := context.Background()

	mode, err := parsing.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}

	reporter := reporting.NewService(
		parsing.NewParser(mode),
		summarizing.NewService(),
		ledger.NewFileSource(c.String("file")),
	)

	if c.Bool("save") {
		dbConfig := cfg.Database
		conn, err := postgres.NewConnection(ctx, dbConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer conn.Close()

		reporter.WithStore(repository.NewSalesReportRepository(conn))
	}

	report, err := reporter.GenerateFromSource(ctx)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		fmt.Fprintln(c.App.Writer, utils.PrettyJson(report))
		return nil
	}

	printSummary(c.App.Writer, report.Summary)
	printDiagnostics(c.App.ErrWriter, report)

	return nil
}

func tokenCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Emite um token de operador para as rotas de escrita da API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Usage:    "Nome do operador",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "role",
				Value: middleware.RoleAdmin,
				Usage: "Perfil do operador (1 = administrador, 2 = visualizador)",
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Value: 24 * time.Hour,
				Usage: "Validade do token",
			},
		},
		Action: func(c *cli.Context) error {
			token, err := authenticating.NewService(cfg).IssueToken(c.String("name"), c.Int("role"), c.Duration("ttl"))
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, token)
			return nil
		},
	}
}
