package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

// Revenue extracts line revenue, the default measure.
func Revenue(r sales.Record) decimal.Decimal { return r.LineRevenue }

// Discount extracts the discount amount.
func Discount(r sales.Record) decimal.Decimal { return r.DiscountApplied }

// SumRevenue totals line revenue across records.
func SumRevenue(records []sales.Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.LineRevenue)
	}
	return total
}

// SumDiscount totals the discount amounts across records.
func SumDiscount(records []sales.Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.DiscountApplied)
	}
	return total
}

// SumQuantity totals units sold across records.
func SumQuantity(records []sales.Record) int64 {
	var total int64
	for _, r := range records {
		total += int64(r.Quantity)
	}
	return total
}

// CountDistinct counts the distinct values of key across records.
func CountDistinct(records []sales.Record, key func(sales.Record) string) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[key(r)] = struct{}{}
	}
	return len(seen)
}

// KPISet is the headline metric block computed over one filtered view.
// Every field is zero on empty input.
type KPISet struct {
	TotalRevenue       decimal.Decimal
	TotalBills         int
	AvgRevenuePerBill  decimal.Decimal
	UniqueCustomers    int
	UnitsSold          int64
	TotalDiscount      decimal.Decimal
	LineItems          int
	AvgDiscountPerItem decimal.Decimal
}

// ComputeKPIs reduces records to the headline block in one pass.
//
// Average revenue per bill groups line revenue by bill first and takes the
// mean of the per-bill sums. Ratios with a zero denominator come back as
// zero, never as a panic or NaN.
func ComputeKPIs(records []sales.Record) KPISet {
	k := KPISet{LineItems: len(records)}

	perBill := make(map[string]decimal.Decimal)
	customers := make(map[string]struct{})
	for _, r := range records {
		k.TotalRevenue = k.TotalRevenue.Add(r.LineRevenue)
		k.TotalDiscount = k.TotalDiscount.Add(r.DiscountApplied)
		k.UnitsSold += int64(r.Quantity)
		perBill[r.BillID] = perBill[r.BillID].Add(r.LineRevenue)
		customers[r.CustomerID] = struct{}{}
	}
	k.TotalBills = len(perBill)
	k.UniqueCustomers = len(customers)

	billTotal := decimal.Zero
	for _, v := range perBill {
		billTotal = billTotal.Add(v)
	}
	k.AvgRevenuePerBill = DivOrZero(billTotal, int64(len(perBill)))
	k.AvgDiscountPerItem = DivOrZero(k.TotalDiscount, int64(k.LineItems))
	return k
}

// DivOrZero divides total by n, returning zero when n is zero.
func DivOrZero(total decimal.Decimal, n int64) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(n))
}
