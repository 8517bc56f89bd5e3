package analytics

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

func TestStorePerformance(t *testing.T) {
	recs := fixtureRecords(t)
	got := StorePerformance(recs)

	require.Len(t, got, 2)

	downtown := got[0]
	assert.Equal(t, "Downtown", downtown.Location)
	assert.Equal(t, "67.50", downtown.Revenue.StringFixed(2))
	assert.Equal(t, 2, downtown.Bills)
	assert.Equal(t, 2, downtown.Customers)
	assert.Equal(t, int64(6), downtown.Units)
	assert.Equal(t, "3.75", downtown.Discount.StringFixed(2))
	assert.Equal(t, "33.75", downtown.AvgPerBill.StringFixed(2))

	riverside := got[1]
	assert.Equal(t, "Riverside", riverside.Location)
	assert.Equal(t, "56.00", riverside.Revenue.StringFixed(2))
	assert.Equal(t, 2, riverside.Bills)
	assert.Equal(t, 1, riverside.Customers)
	assert.Equal(t, int64(6), riverside.Units)
	assert.Equal(t, "28.00", riverside.AvgPerBill.StringFixed(2))
}

func TestStorePerformanceTiesOrderByLocation(t *testing.T) {
	csv := `transaction_id,bill_id,date,store_id,store_location,customer_id,customer_segment,product_id,product_name,product_category,quantity,unit_price,discount_applied,channel,payment_method
Y1,BA,2025-01-03,S02,Beta,C001,Regular,P01,Espresso Beans,Groceries,1,10.00,0.00,In-store,Cash
Y2,BB,2025-01-04,S01,Alpha,C002,Regular,P01,Espresso Beans,Groceries,1,10.00,0.00,In-store,Cash
`
	ds, err := sales.Load(context.Background(), sales.ReaderSource("tied", strings.NewReader(csv)), nil)
	require.NoError(t, err)

	got := StorePerformance(ds.Records())
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Location)
	assert.Equal(t, "Beta", got[1].Location)
}

func TestStorePerformanceEmptyInput(t *testing.T) {
	assert.Empty(t, StorePerformance(nil))
}
