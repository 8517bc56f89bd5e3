package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

// Entry is one row of a flattened grouping.
type Entry struct {
	Key   string
	Value decimal.Decimal
}

// GroupSum buckets records by dim and totals value within each bucket.
// The result is sparse: only observed keys appear.
func GroupSum(records []sales.Record, dim Dimension, value func(sales.Record) decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, r := range records {
		k := dim.Key(r)
		out[k] = out[k].Add(value(r))
	}
	return out
}

// GroupDistinct counts distinct key values within each dim bucket, for
// example bills per month.
func GroupDistinct(records []sales.Record, dim Dimension, key func(sales.Record) string) map[string]int {
	sets := make(map[string]map[string]struct{})
	for _, r := range records {
		k := dim.Key(r)
		if sets[k] == nil {
			sets[k] = make(map[string]struct{})
		}
		sets[k][key(r)] = struct{}{}
	}
	out := make(map[string]int, len(sets))
	for k, set := range sets {
		out[k] = len(set)
	}
	return out
}

// SortedByKey flattens a sparse grouping in ascending key order. Keys that
// sort lexically in chronological order (dates, month keys, quarters) come
// out chronological.
func SortedByKey(m map[string]decimal.Decimal) []Entry {
	out := make([]Entry, 0, len(m))
	for k, v := range m {
		out = append(out, Entry{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// WeekdayTotals reindexes a day-of-week grouping to the fixed Monday-first
// order, filling absent days with explicit zeros.
func WeekdayTotals(m map[string]decimal.Decimal) []Entry {
	out := make([]Entry, 0, len(sales.WeekdayOrder))
	for _, day := range sales.WeekdayOrder {
		out = append(out, Entry{Key: day, Value: m[day]})
	}
	return out
}

// MonthRow is one month of the monthly trend: the sortable key, its
// display label, revenue and distinct bill count.
type MonthRow struct {
	Key     string
	Label   string
	Revenue decimal.Decimal
	Bills   int
}

// MonthlyTotals computes revenue and distinct bills per month in
// chronological order. Sorting is by the sortable month key, not the
// display label.
func MonthlyTotals(records []sales.Record) []MonthRow {
	revenue := GroupSum(records, DimMonth, Revenue)
	bills := GroupDistinct(records, DimMonth, func(r sales.Record) string { return r.BillID })

	labels := make(map[string]string)
	for _, r := range records {
		labels[r.MonthKey] = r.MonthLabel
	}

	keys := make([]string, 0, len(revenue))
	for k := range revenue {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]MonthRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthRow{
			Key:     k,
			Label:   labels[k],
			Revenue: revenue[k],
			Bills:   bills[k],
		})
	}
	return out
}
