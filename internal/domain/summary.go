package domain

// PopularItem é o item mais vendido (em quantidade) de um mês
type PopularItem struct {
	SKU string `json:"sku"`
	Qty Amount `json:"qty"`
}

// RevenueItem é o item com maior receita de um mês
type RevenueItem struct {
	SKU     string `json:"sku"`
	Revenue Amount `json:"revenue"`
}

// ItemStats resume as quantidades por pedido do item mais vendido de um mês
type ItemStats struct {
	SKU string `json:"sku"`
	Min Amount `json:"min"`
	Max Amount `json:"max"`
	Avg Amount `json:"avg"`
}

// SalesSummary reúne os cinco resumos calculados sobre o livro de vendas
type SalesSummary struct {
	TotalStoreSales     Amount                   `json:"totalStoreSales"`
	MonthWiseSales      map[MonthKey]Amount      `json:"monthWiseSales"`
	MostPopularByMonth  map[MonthKey]PopularItem `json:"mostPopularByMonth"`
	MostRevenueByMonth  map[MonthKey]RevenueItem `json:"mostRevenueByMonth"`
	StatsForMostPopular map[MonthKey]ItemStats   `json:"statsForMostPopular"`
}
