package domain

import "time"

// SalesReport é o resultado de uma execução do pipeline sobre um livro de vendas.
// Months segue a ordem em que os meses aparecem no arquivo; PoisonedRows lista as linhas
// mantidas com colunas NaN e RejectedRows as linhas descartadas no modo skip.
type SalesReport struct {
	ID           string        `json:"id"`
	Source       string        `json:"source"`
	ParseMode    string        `json:"parse_mode"`
	RowCount     int           `json:"row_count"`
	Months       []MonthKey    `json:"months"`
	PoisonedRows []int         `json:"poisoned_rows"`
	RejectedRows []int         `json:"rejected_rows"`
	Summary      *SalesSummary `json:"summary"`
	CreatedAt    time.Time     `json:"created_at"`
}
