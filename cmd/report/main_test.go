package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/authenticating"
)

const ledgerContent = "Date,SKU,Unit Price,Quantity,Total Price\n" +
	"2023-01-01,A1,10,2,20\n" +
	"2023-01-02,A2,5,4,20\n" +
	"2023-02-01,A2,5,2,10\n"

func writeLedger(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales-data.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runApp(t *testing.T, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	app := newApp(cfg)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"report"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestReport_PrintsSummaries(t *testing.T) {
	path := writeLedger(t, ledgerContent)

	stdout, _, err := runApp(t, &config.Config{}, "--file", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Total Sales of the Store: 50\n")
	assert.Contains(t, stdout, "Month-wise Sales Totals:")
	assert.Contains(t, stdout, `"2023-01": 40`)
	assert.Contains(t, stdout, "Most Popular Item by Month:")
	assert.Contains(t, stdout, "Most Revenue-Generating Item by Month:")
	assert.Contains(t, stdout, "Stats for Most Popular Item:")
}

func TestReport_JSONOutput(t *testing.T) {
	path := writeLedger(t, ledgerContent)

	stdout, _, err := runApp(t, &config.Config{}, "--file", path, "--json")
	require.NoError(t, err)

	assert.Contains(t, stdout, `"totalStoreSales": 50`)
	assert.Contains(t, stdout, `"parse_mode": "permissive"`)
}

func TestReport_ModeHandling(t *testing.T) {
	path := writeLedger(t, ledgerContent+"2023-02-02,A3,x,1,5\n")

	t.Run("permissive avisa sobre a linha contaminada", func(t *testing.T) {
		stdout, stderr, err := runApp(t, &config.Config{}, "--file", path)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Total Sales of the Store: 55\n")
		assert.Contains(t, stderr, "[5]")
	})

	t.Run("strict falha na linha inválida", func(t *testing.T) {
		_, _, err := runApp(t, &config.Config{}, "--file", path, "--mode", "strict")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 5")
	})

	t.Run("modo desconhecido", func(t *testing.T) {
		_, _, err := runApp(t, &config.Config{}, "--file", path, "--mode", "lenient")
		assert.Error(t, err)
	})
}

func TestTokenCommand(t *testing.T) {
	cfg := &config.Config{Auth: config.Auth{Secret: "segredo-de-teste"}}

	stdout, _, err := runApp(t, cfg, "token", "--name", "ana")
	require.NoError(t, err)

	claims, err := authenticating.NewService(cfg).ValidateToken(string(bytes.TrimSpace([]byte(stdout))))
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.OperatorName)
	assert.Equal(t, 1, claims.RoleID)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "NaN", formatAmount(domain.NaN()))
	assert.Equal(t, "12.5", formatAmount(12.5))
}
