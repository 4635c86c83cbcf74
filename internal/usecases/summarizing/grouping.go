package summarizing

import (
	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

// skuTotals acumula um valor por SKU lembrando a ordem em que cada SKU apareceu
type skuTotals struct {
	order  []string
	totals map[string]domain.Amount
}

func newSkuTotals() *skuTotals {
	return &skuTotals{
		order:  make([]string, 0),
		totals: make(map[string]domain.Amount),
	}
}

func (t *skuTotals) add(sku string, value domain.Amount) {
	if _, exists := t.totals[sku]; !exists {
		t.order = append(t.order, sku)
	}
	t.totals[sku] += value
}

// best retorna o SKU de maior total. Em caso de empate vence o que apareceu primeiro.
// Totais NaN só vencem quando nenhum SKU do mês tem total válido.
func (t *skuTotals) best() (string, domain.Amount) {
	var (
		bestSKU   string
		bestTotal domain.Amount
		found     bool
	)

	for _, sku := range t.order {
		total := t.totals[sku]
		switch {
		case !found:
			bestSKU, bestTotal, found = sku, total, true
		case bestTotal.IsNaN() && !total.IsNaN():
			bestSKU, bestTotal = sku, total
		case total > bestTotal:
			bestSKU, bestTotal = sku, total
		}
	}

	return bestSKU, bestTotal
}

// monthGroups agrupa os totais por SKU dentro de cada mês, na ordem de aparição dos meses
type monthGroups struct {
	order  []domain.MonthKey
	groups map[domain.MonthKey]*skuTotals
}

func groupByMonthAndSku(records []domain.SaleRecord, measure func(domain.SaleRecord) domain.Amount) *monthGroups {
	grouped := &monthGroups{
		order:  make([]domain.MonthKey, 0),
		groups: make(map[domain.MonthKey]*skuTotals),
	}

	for _, record := range records {
		totals, exists := grouped.groups[record.Month]
		if !exists {
			totals = newSkuTotals()
			grouped.groups[record.Month] = totals
			grouped.order = append(grouped.order, record.Month)
		}
		totals.add(record.SKU, measure(record))
	}

	return grouped
}

func quantityOf(record domain.SaleRecord) domain.Amount {
	return record.Quantity
}

func totalPriceOf(record domain.SaleRecord) domain.Amount {
	return record.TotalPrice
}
