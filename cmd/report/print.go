package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/utils"
)

// printSummary imprime os cinco resumos com os mesmos rótulos do relatório de console original
func printSummary(w io.Writer, summary *domain.SalesSummary) {
	fmt.Fprintln(w, "Total Sales of the Store:", formatAmount(summary.TotalStoreSales))
	fmt.Fprintln(w, "Month-wise Sales Totals:", utils.PrettyJson(summary.MonthWiseSales))
	fmt.Fprintln(w, "Most Popular Item by Month:", utils.PrettyJson(summary.MostPopularByMonth))
	fmt.Fprintln(w, "Most Revenue-Generating Item by Month:", utils.PrettyJson(summary.MostRevenueByMonth))
	fmt.Fprintln(w, "Stats for Most Popular Item:", utils.PrettyJson(summary.StatsForMostPopular))
}

// printDiagnostics lista as linhas contaminadas ou descartadas, quando houver
func printDiagnostics(w io.Writer, report *domain.SalesReport) {
	if len(report.PoisonedRows) > 0 {
		fmt.Fprintf(w, "Aviso: linhas com valores numéricos inválidos: %v\n", report.PoisonedRows)
	}
	if len(report.RejectedRows) > 0 {
		fmt.Fprintf(w, "Aviso: linhas descartadas: %v\n", report.RejectedRows)
	}
}

// formatAmount escreve NaN como NaN, diferente do JSON que usa null
func formatAmount(a domain.Amount) string {
	if a.IsNaN() {
		return "NaN"
	}
	return strconv.FormatFloat(a.Float64(), 'f', -1, 64)
}
