package domain

// MonthKey é o mês no formato yyyy-mm, usado como chave de agrupamento
type MonthKey string

const monthKeyLength = 7

// SaleRecord representa uma linha do livro de vendas
type SaleRecord struct {
	Date       string   `json:"date"`
	Month      MonthKey `json:"month"`
	SKU        string   `json:"sku"`
	UnitPrice  Amount   `json:"unitPrice"`
	Quantity   Amount   `json:"quantity"`
	TotalPrice Amount   `json:"totalPrice"`
}

// MonthOf extrai o mês (yyyy-mm) de uma data yyyy-mm-dd.
// Datas mais curtas que o prefixo são usadas inteiras.
func MonthOf(date string) MonthKey {
	if len(date) < monthKeyLength {
		return MonthKey(date)
	}

	return MonthKey(date[:monthKeyLength])
}

// IsPoisoned indica se alguma coluna numérica do registro ficou NaN
func (r SaleRecord) IsPoisoned() bool {
	return r.UnitPrice.IsNaN() || r.Quantity.IsNaN() || r.TotalPrice.IsNaN()
}
