package calculator

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/producttracker/internal/models"
)

// TopProductsLimit is how many product groups ProductionStats keeps.
const TopProductsLimit = 5

// ProductSummary aggregates the records that share a product name.
type ProductSummary struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
}

// ProductionStats summarizes a set of records.
type ProductionStats struct {
	TotalProduction decimal.Decimal  `json:"totalProduction"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	RecordsCount    int              `json:"recordsCount"`
	AvgPerRecord    decimal.Decimal  `json:"avgPerRecord"`
	TopProducts     []ProductSummary `json:"topProducts"`
}

// CalculateProductionStats aggregates records by product name.
//
// Grouping uses the name captured on each record, not the product id, so a
// renamed product shows up under both names and two products sharing a name
// are merged. TopProducts is ordered by amount descending; groups with equal
// amounts keep the order in which they first appear in records.
func CalculateProductionStats(records []models.Record) *ProductionStats {
	stats := &ProductionStats{
		TotalProduction: decimal.Zero,
		TotalAmount:     decimal.Zero,
		AvgPerRecord:    decimal.Zero,
		RecordsCount:    len(records),
		TopProducts:     []ProductSummary{},
	}

	index := make(map[string]int)
	var groups []ProductSummary
	for _, r := range records {
		stats.TotalProduction = stats.TotalProduction.Add(r.Quantity)
		stats.TotalAmount = stats.TotalAmount.Add(r.Amount)

		i, ok := index[r.ProductName]
		if !ok {
			i = len(groups)
			index[r.ProductName] = i
			groups = append(groups, ProductSummary{
				Name:     r.ProductName,
				Quantity: decimal.Zero,
				Amount:   decimal.Zero,
			})
		}
		g := &groups[i]
		g.Quantity = g.Quantity.Add(r.Quantity)
		g.Amount = g.Amount.Add(r.Amount)
		g.Count++
	}

	if len(records) == 0 {
		return stats
	}

	stats.AvgPerRecord = stats.TotalAmount.Div(decimal.NewFromInt(int64(len(records))))

	slices.SortStableFunc(groups, func(a, b ProductSummary) int {
		return b.Amount.Cmp(a.Amount)
	})
	if len(groups) > TopProductsLimit {
		groups = groups[:TopProductsLimit]
	}
	stats.TopProducts = groups
	return stats
}

// BestProduct returns the name of the highest-earning product group, or ""
// when there are no records.
func BestProduct(stats *ProductionStats) string {
	if stats == nil || len(stats.TopProducts) == 0 {
		return ""
	}
	return stats.TopProducts[0].Name
}
