// Package summarizing calcula os resumos de vendas a partir dos registros do livro
package summarizing

import (
	"math"

	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

// Summarizer calcula os cinco resumos sobre uma sequência de registros
type Summarizer interface {
	Summarize(records []domain.SaleRecord) *domain.SalesSummary
}

type Service struct{}

func NewService() Summarizer {
	return &Service{}
}

// Summarize calcula todos os resumos sobre a mesma sequência de registros, sem alterá-la
func (s *Service) Summarize(records []domain.SaleRecord) *domain.SalesSummary {
	mostPopular := MostPopularByMonth(records)

	return &domain.SalesSummary{
		TotalStoreSales:     TotalStoreSales(records),
		MonthWiseSales:      MonthWiseSales(records),
		MostPopularByMonth:  mostPopular,
		MostRevenueByMonth:  MostRevenueByMonth(records),
		StatsForMostPopular: StatsForMostPopular(records, mostPopular),
	}
}

// TotalStoreSales soma o preço total de todos os registros
func TotalStoreSales(records []domain.SaleRecord) domain.Amount {
	var total domain.Amount
	for _, record := range records {
		total += record.TotalPrice
	}
	return total
}

// MonthWiseSales soma o preço total por mês
func MonthWiseSales(records []domain.SaleRecord) map[domain.MonthKey]domain.Amount {
	sales := make(map[domain.MonthKey]domain.Amount)
	for _, record := range records {
		sales[record.Month] += record.TotalPrice
	}
	return sales
}

// Months retorna os meses distintos na ordem em que aparecem
func Months(records []domain.SaleRecord) []domain.MonthKey {
	seen := make(map[domain.MonthKey]struct{})
	months := make([]domain.MonthKey, 0)

	for _, record := range records {
		if _, exists := seen[record.Month]; exists {
			continue
		}
		seen[record.Month] = struct{}{}
		months = append(months, record.Month)
	}

	return months
}

// MostPopularByMonth retorna, para cada mês, o SKU com maior quantidade somada
func MostPopularByMonth(records []domain.SaleRecord) map[domain.MonthKey]domain.PopularItem {
	grouped := groupByMonthAndSku(records, quantityOf)

	popular := make(map[domain.MonthKey]domain.PopularItem, len(grouped.order))
	for _, month := range grouped.order {
		sku, qty := grouped.groups[month].best()
		popular[month] = domain.PopularItem{SKU: sku, Qty: qty}
	}

	return popular
}

// MostRevenueByMonth retorna, para cada mês, o SKU com maior receita somada
func MostRevenueByMonth(records []domain.SaleRecord) map[domain.MonthKey]domain.RevenueItem {
	grouped := groupByMonthAndSku(records, totalPriceOf)

	revenue := make(map[domain.MonthKey]domain.RevenueItem, len(grouped.order))
	for _, month := range grouped.order {
		sku, total := grouped.groups[month].best()
		revenue[month] = domain.RevenueItem{SKU: sku, Revenue: total}
	}

	return revenue
}

// StatsForMostPopular calcula mínimo, máximo e média das quantidades por pedido do item
// mais vendido de cada mês
func StatsForMostPopular(
	records []domain.SaleRecord,
	popular map[domain.MonthKey]domain.PopularItem,
) map[domain.MonthKey]domain.ItemStats {
	quantities := make(map[domain.MonthKey][]domain.Amount, len(popular))
	for _, record := range records {
		item, exists := popular[record.Month]
		if !exists || item.SKU != record.SKU {
			continue
		}
		quantities[record.Month] = append(quantities[record.Month], record.Quantity)
	}

	stats := make(map[domain.MonthKey]domain.ItemStats, len(popular))
	for month, item := range popular {
		stats[month] = orderStats(item.SKU, quantities[month])
	}

	return stats
}

// orderStats segue math.Min e math.Max, então um NaN contamina mínimo, máximo e média
func orderStats(sku string, quantities []domain.Amount) domain.ItemStats {
	if len(quantities) == 0 {
		return domain.ItemStats{SKU: sku, Min: domain.NaN(), Max: domain.NaN(), Avg: domain.NaN()}
	}

	minQty := math.Inf(1)
	maxQty := math.Inf(-1)
	var sum float64

	for _, qty := range quantities {
		minQty = math.Min(minQty, qty.Float64())
		maxQty = math.Max(maxQty, qty.Float64())
		sum += qty.Float64()
	}

	return domain.ItemStats{
		SKU: sku,
		Min: domain.Amount(minQty),
		Max: domain.Amount(maxQty),
		Avg: domain.Amount(sum / float64(len(quantities))),
	}
}
