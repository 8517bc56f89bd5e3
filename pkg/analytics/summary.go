package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

// StoreSummary is one row of the store performance table.
type StoreSummary struct {
	Location   string
	Revenue    decimal.Decimal
	Bills      int
	Customers  int
	Units      int64
	Discount   decimal.Decimal
	AvgPerBill decimal.Decimal
}

// StorePerformance aggregates per-location totals, ordered by revenue
// descending with ties broken by location. AvgPerBill is the mean of the
// per-bill revenue sums within the location.
func StorePerformance(records []sales.Record) []StoreSummary {
	type acc struct {
		revenue   decimal.Decimal
		discount  decimal.Decimal
		units     int64
		bills     map[string]struct{}
		customers map[string]struct{}
	}

	byStore := make(map[string]*acc)
	for _, r := range records {
		a := byStore[r.StoreLocation]
		if a == nil {
			a = &acc{
				bills:     make(map[string]struct{}),
				customers: make(map[string]struct{}),
			}
			byStore[r.StoreLocation] = a
		}
		a.revenue = a.revenue.Add(r.LineRevenue)
		a.discount = a.discount.Add(r.DiscountApplied)
		a.units += int64(r.Quantity)
		a.bills[r.BillID] = struct{}{}
		a.customers[r.CustomerID] = struct{}{}
	}

	out := make([]StoreSummary, 0, len(byStore))
	for loc, a := range byStore {
		out = append(out, StoreSummary{
			Location:   loc,
			Revenue:    a.revenue,
			Bills:      len(a.bills),
			Customers:  len(a.customers),
			Units:      a.units,
			Discount:   a.discount,
			AvgPerBill: DivOrZero(a.revenue, int64(len(a.bills))),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		c := out[i].Revenue.Cmp(out[j].Revenue)
		if c == 0 {
			return out[i].Location < out[j].Location
		}
		return c > 0
	})
	return out
}
