package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

// PivotKey addresses one cell of a two-dimensional grouping.
type PivotKey struct {
	Row string
	Col string
}

// Pivot is a two-dimensional grouped total, for example category by month.
// Cells are sparse: combinations that never occurred are absent and read
// as zero.
type Pivot struct {
	RowDim string
	ColDim string
	Cells  map[PivotKey]decimal.Decimal
}

// PivotSum buckets records by the row and column dimensions, totalling
// value per cell.
func PivotSum(records []sales.Record, row, col Dimension, value func(sales.Record) decimal.Decimal) *Pivot {
	p := &Pivot{
		RowDim: row.Name,
		ColDim: col.Name,
		Cells:  make(map[PivotKey]decimal.Decimal),
	}
	for _, r := range records {
		k := PivotKey{Row: row.Key(r), Col: col.Key(r)}
		p.Cells[k] = p.Cells[k].Add(value(r))
	}
	return p
}

// Value returns the cell total, zero when the combination never occurred.
func (p *Pivot) Value(row, col string) decimal.Decimal {
	return p.Cells[PivotKey{Row: row, Col: col}]
}

// Rows returns the distinct row keys, sorted.
func (p *Pivot) Rows() []string {
	set := make(map[string]struct{})
	for k := range p.Cells {
		set[k.Row] = struct{}{}
	}
	return sortedSet(set)
}

// Cols returns the distinct column keys, sorted.
func (p *Pivot) Cols() []string {
	set := make(map[string]struct{})
	for k := range p.Cells {
		set[k.Col] = struct{}{}
	}
	return sortedSet(set)
}

// Dense materializes the zero-filled grid: grid[i][j] is the total for
// rows[i] crossed with cols[j].
func (p *Pivot) Dense() (rows, cols []string, grid [][]decimal.Decimal) {
	rows = p.Rows()
	cols = p.Cols()
	grid = make([][]decimal.Decimal, len(rows))
	for i, r := range rows {
		grid[i] = make([]decimal.Decimal, len(cols))
		for j, c := range cols {
			grid[i][j] = p.Value(r, c)
		}
	}
	return rows, cols, grid
}

func sortedSet(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
