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

func TestTopNOrdersAndBreaksTiesByKey(t *testing.T) {
	m := map[string]decimal.Decimal{
		"B": d("5"),
		"A": d("5"),
		"C": d("9"),
	}

	got := TopN(m, 2, Descending)
	require.Len(t, got, 2)
	assert.Equal(t, Entry{Key: "C", Value: d("9")}, got[0])
	assert.Equal(t, "A", got[1].Key)

	// Same input, same ranking, every time.
	for i := 0; i < 10; i++ {
		again := TopN(m, 3, Descending)
		assert.Equal(t, []string{"C", "A", "B"}, []string{again[0].Key, again[1].Key, again[2].Key})
	}
}

func TestTopNAscending(t *testing.T) {
	m := map[string]decimal.Decimal{
		"B": d("5"),
		"A": d("5"),
		"C": d("9"),
	}
	got := TopN(m, 2, Ascending)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Key)
	assert.Equal(t, "B", got[1].Key)
}

func TestTopNTruncation(t *testing.T) {
	m := map[string]decimal.Decimal{"A": d("1"), "B": d("2")}

	assert.Nil(t, TopN(m, 0, Descending))
	assert.Nil(t, TopN(m, -3, Descending))
	assert.Len(t, TopN(m, 2, Descending), 2)
	assert.Len(t, TopN(m, 50, Descending), 2)
	assert.Empty(t, TopN(nil, 5, Descending))
}

func TestTopProducts(t *testing.T) {
	recs := fixtureRecords(t)
	got := TopProducts(recs, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "Espresso Beans", got[0].Key)
	assert.True(t, d("60.00").Equal(got[0].Value))
	assert.Equal(t, "Desk Lamp", got[1].Key)
	assert.Equal(t, "Notebook", got[2].Key)
}

func TestTopCustomersRanksBySpend(t *testing.T) {
	recs := fixtureRecords(t)
	got := TopCustomers(recs, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "C002", got[0].CustomerID)
	assert.Equal(t, "Premium", got[0].Segment)
	assert.True(t, d("56.00").Equal(got[0].Revenue))

	assert.Equal(t, "C003", got[1].CustomerID)
	assert.Equal(t, "New", got[1].Segment)
}

func TestTopCustomersKeepFirstObservedSegment(t *testing.T) {
	csv := `transaction_id,bill_id,date,store_id,store_location,customer_id,customer_segment,product_id,product_name,product_category,quantity,unit_price,discount_applied,channel,payment_method
X1,BA,2025-01-03,S01,Downtown,C009,Regular,P01,Espresso Beans,Groceries,1,10.00,0.00,In-store,Cash
X2,BB,2025-01-09,S01,Downtown,C009,Premium,P01,Espresso Beans,Groceries,1,10.00,0.00,In-store,Cash
`
	ds, err := sales.Load(context.Background(), sales.ReaderSource("segments", strings.NewReader(csv)), nil)
	require.NoError(t, err)

	got := TopCustomers(ds.Records(), 1)
	require.Len(t, got, 1)
	assert.Equal(t, "C009", got[0].CustomerID)
	assert.Equal(t, "Regular", got[0].Segment)
	assert.True(t, d("20.00").Equal(got[0].Revenue))
}
