package analytics

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

func TestSumHelpers(t *testing.T) {
	recs := fixtureRecords(t)

	assert.True(t, d("123.50").Equal(SumRevenue(recs)))
	assert.True(t, d("8.75").Equal(SumDiscount(recs)))
	assert.Equal(t, int64(12), SumQuantity(recs))
	assert.Equal(t, 3, CountDistinct(recs, func(r sales.Record) string { return r.CustomerID }))
	assert.Equal(t, 4, CountDistinct(recs, func(r sales.Record) string { return r.BillID }))
}

func TestComputeKPIs(t *testing.T) {
	k := ComputeKPIs(fixtureRecords(t))

	assert.Equal(t, "123.50", k.TotalRevenue.StringFixed(2))
	assert.Equal(t, 4, k.TotalBills)
	assert.True(t, d("30.875").Equal(k.AvgRevenuePerBill), "got %s", k.AvgRevenuePerBill)
	assert.Equal(t, 3, k.UniqueCustomers)
	assert.Equal(t, int64(12), k.UnitsSold)
	assert.Equal(t, "8.75", k.TotalDiscount.StringFixed(2))
	assert.Equal(t, 5, k.LineItems)
	assert.True(t, d("1.75").Equal(k.AvgDiscountPerItem), "got %s", k.AvgDiscountPerItem)
}

func TestComputeKPIsEmptyInput(t *testing.T) {
	k := ComputeKPIs(nil)

	assert.True(t, k.TotalRevenue.IsZero())
	assert.Zero(t, k.TotalBills)
	assert.True(t, k.AvgRevenuePerBill.IsZero())
	assert.Zero(t, k.UniqueCustomers)
	assert.Zero(t, k.UnitsSold)
	assert.True(t, k.TotalDiscount.IsZero())
	assert.Zero(t, k.LineItems)
	assert.True(t, k.AvgDiscountPerItem.IsZero())
}

func TestComputeKPIsAveragesPerBill(t *testing.T) {
	// Two line items on one bill: the average is the bill total, not the
	// mean line revenue.
	csv := `transaction_id,bill_id,date,store_id,store_location,customer_id,customer_segment,product_id,product_name,product_category,quantity,unit_price,discount_applied,channel,payment_method
R1,BX,2025-03-05,S01,Downtown,C001,Regular,P01,Espresso Beans,Groceries,2,5.00,0.00,In-store,Cash
R2,BX,2025-03-05,S01,Downtown,C001,Regular,P02,Olive Oil,Groceries,1,20.00,6.00,In-store,Cash
`
	ds, err := sales.Load(context.Background(), sales.ReaderSource("one-bill", strings.NewReader(csv)), nil)
	require.NoError(t, err)

	k := ComputeKPIs(ds.Records())
	assert.Equal(t, "24.00", k.TotalRevenue.StringFixed(2))
	assert.Equal(t, 1, k.TotalBills)
	assert.Equal(t, "24.00", k.AvgRevenuePerBill.StringFixed(2))
}

func TestDivOrZero(t *testing.T) {
	assert.True(t, DivOrZero(d("10"), 0).IsZero())
	assert.True(t, d("2.5").Equal(DivOrZero(d("10"), 4)))
	assert.True(t, decimal.Zero.Equal(DivOrZero(decimal.Zero, 3)))
}
