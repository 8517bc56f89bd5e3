package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPivotSumSparseCells(t *testing.T) {
	recs := fixtureRecords(t)
	p := PivotSum(recs, DimCategory, DimMonth, Revenue)

	assert.Equal(t, "product_category", p.RowDim)
	assert.Equal(t, "month", p.ColDim)

	// Only observed combinations are materialized.
	require.Len(t, p.Cells, 4)
	assert.True(t, d("32.50").Equal(p.Cells[PivotKey{Row: "Groceries", Col: "2025-01"}]))
	assert.True(t, d("35.00").Equal(p.Cells[PivotKey{Row: "Groceries", Col: "2025-02"}]))
	assert.True(t, d("40.00").Equal(p.Cells[PivotKey{Row: "Home", Col: "2025-01"}]))
	assert.True(t, d("16.00").Equal(p.Cells[PivotKey{Row: "Stationery", Col: "2025-02"}]))
}

func TestPivotValueZeroFillsMissingCombinations(t *testing.T) {
	recs := fixtureRecords(t)
	p := PivotSum(recs, DimCategory, DimMonth, Revenue)

	assert.True(t, p.Value("Home", "2025-02").IsZero())
	assert.True(t, p.Value("Stationery", "2025-01").IsZero())
	assert.True(t, p.Value("Toys", "2025-01").IsZero())
	assert.True(t, d("40.00").Equal(p.Value("Home", "2025-01")))
}

func TestPivotDenseGrid(t *testing.T) {
	recs := fixtureRecords(t)
	p := PivotSum(recs, DimCategory, DimMonth, Revenue)

	rows, cols, grid := p.Dense()
	assert.Equal(t, []string{"Groceries", "Home", "Stationery"}, rows)
	assert.Equal(t, []string{"2025-01", "2025-02"}, cols)

	require.Len(t, grid, 3)
	want := [][]string{
		{"32.50", "35.00"},
		{"40.00", "0.00"},
		{"0.00", "16.00"},
	}
	for i := range want {
		require.Len(t, grid[i], 2)
		for j := range want[i] {
			assert.Equal(t, want[i][j], grid[i][j].StringFixed(2), "cell %s x %s", rows[i], cols[j])
		}
	}
}

func TestPivotEmptyInput(t *testing.T) {
	p := PivotSum(nil, DimStoreLocation, DimMonth, Revenue)
	rows, cols, grid := p.Dense()
	assert.Empty(t, rows)
	assert.Empty(t, cols)
	assert.Empty(t, grid)
}
