package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	"github.com/vfg2006/sales-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ledger-api/infrastructure/repository"
	"github.com/vfg2006/sales-ledger-api/internal/config"
)

const migrationTimeout = 30 * time.Second

func setupLogger() {
	// Configura o logger para incluir data, hora e arquivo
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

// schemaStatements separa o DDL em comandos individuais
func schemaStatements(schema string) []string {
	parts := strings.Split(schema, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if stmt := strings.TrimSpace(part); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

func tableExists(ctx context.Context, conn postgres.Queryer, table string) (bool, error) {
	var exists bool
	err := conn.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_name = $1
		)
	`, table).Scan(&exists)
	return exists, err
}

func applySchema(ctx context.Context, conn postgres.Conn) error {
	statements := schemaStatements(repository.SalesReportSchema)
	log.Printf("Aplicando %d comando(s) do schema de relatórios...", len(statements))

	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				log.Printf("ERRO no comando [%d/%d]: %v", i+1, len(statements), err)
				return err
			}
		}
		return nil
	})
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	log.Println("Conectando ao banco de dados...")
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer conn.Close()
	log.Println("Conexão com o banco de dados estabelecida com sucesso")

	exists, err := tableExists(ctx, conn, "sales_report")
	if err != nil {
		log.Printf("AVISO: não foi possível verificar a tabela sales_report: %v", err)
	} else if exists {
		log.Println("Tabela sales_report já existe; garantindo índices")
	}

	startTime := time.Now()
	if err := applySchema(ctx, conn); err != nil {
		log.Printf("ERRO ao aplicar schema: %v", err)
		os.Exit(1)
	}

	log.Printf("Migração concluída em %v!", time.Since(startTime))
}
