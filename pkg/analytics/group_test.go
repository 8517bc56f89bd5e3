package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

func TestGroupSumByStore(t *testing.T) {
	recs := fixtureRecords(t)
	got := GroupSum(recs, DimStoreLocation, Revenue)

	require.Len(t, got, 2)
	assert.True(t, d("67.50").Equal(got["Downtown"]))
	assert.True(t, d("56.00").Equal(got["Riverside"]))
}

func TestGroupSumConservesScalarTotal(t *testing.T) {
	recs := fixtureRecords(t)

	for _, dim := range []Dimension{DimStoreLocation, DimCategory, DimChannel, DimMonth, DimWeekday} {
		grouped := GroupSum(recs, dim, Revenue)
		total := decimal.Zero
		for _, v := range grouped {
			total = total.Add(v)
		}
		assert.True(t, SumRevenue(recs).Equal(total), "dimension %s leaks revenue", dim.Name)
	}
}

func TestGroupDistinctBillsPerMonth(t *testing.T) {
	recs := fixtureRecords(t)
	got := GroupDistinct(recs, DimMonth, func(r sales.Record) string { return r.BillID })

	assert.Equal(t, map[string]int{"2025-01": 2, "2025-02": 2}, got)
}

func TestSortedByKeyChronologicalForSortableKeys(t *testing.T) {
	recs := fixtureRecords(t)
	entries := SortedByKey(GroupSum(recs, DimDate, Revenue))

	require.Len(t, entries, 4)
	assert.Equal(t, "2025-01-15", entries[0].Key)
	assert.Equal(t, "2025-01-20", entries[1].Key)
	assert.Equal(t, "2025-02-03", entries[2].Key)
	assert.Equal(t, "2025-02-10", entries[3].Key)
	assert.True(t, d("32.50").Equal(entries[0].Value))
}

func TestWeekdayTotalsDenseOrderAndZeros(t *testing.T) {
	recs := fixtureRecords(t)
	entries := WeekdayTotals(GroupSum(recs, DimWeekday, Revenue))

	require.Len(t, entries, 7)
	for i, day := range sales.WeekdayOrder {
		assert.Equal(t, day, entries[i].Key)
	}

	byDay := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		byDay[e.Key] = e.Value
	}
	assert.True(t, d("91.00").Equal(byDay["Monday"]))
	assert.True(t, d("32.50").Equal(byDay["Wednesday"]))
	for _, day := range []string{"Tuesday", "Thursday", "Friday", "Saturday", "Sunday"} {
		assert.True(t, byDay[day].IsZero(), "%s should be an explicit zero", day)
	}
}

func TestMonthlyTotalsChronologicalByKeyNotLabel(t *testing.T) {
	recs := fixtureRecords(t)
	rows := MonthlyTotals(recs)

	// "February 2025" sorts before "January 2025" alphabetically; the
	// sortable key keeps the months in calendar order.
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-01", rows[0].Key)
	assert.Equal(t, "January 2025", rows[0].Label)
	assert.True(t, d("72.50").Equal(rows[0].Revenue))
	assert.Equal(t, 2, rows[0].Bills)

	assert.Equal(t, "2025-02", rows[1].Key)
	assert.Equal(t, "February 2025", rows[1].Label)
	assert.True(t, d("51.00").Equal(rows[1].Revenue))
	assert.Equal(t, 2, rows[1].Bills)
}

func TestGroupSumEmptyInput(t *testing.T) {
	assert.Empty(t, GroupSum(nil, DimStoreLocation, Revenue))
	assert.Empty(t, GroupDistinct(nil, DimMonth, func(r sales.Record) string { return r.BillID }))
	assert.Len(t, WeekdayTotals(nil), 7)
	assert.Empty(t, MonthlyTotals(nil))
}
