package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

// Direction orders ranked output.
type Direction int

const (
	Descending Direction = iota
	Ascending
)

// TopN orders a sparse grouping by value and truncates to n entries.
// Ordering is deterministic: equal values fall back to ascending key
// order, so repeated runs over the same data rank identically. n at or
// below zero yields no entries; n beyond the entry count yields them all.
func TopN(m map[string]decimal.Decimal, n int, dir Direction) []Entry {
	if n <= 0 {
		return nil
	}
	entries := make([]Entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		c := entries[i].Value.Cmp(entries[j].Value)
		if c == 0 {
			return entries[i].Key < entries[j].Key
		}
		if dir == Ascending {
			return c < 0
		}
		return c > 0
	})
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// TopProducts ranks product names by revenue, highest first.
func TopProducts(records []sales.Record, n int) []Entry {
	return TopN(GroupSum(records, DimProduct, Revenue), n, Descending)
}

// CustomerRank is one customer leaderboard row. Segment is the segment
// first observed for the customer in record order; a customer whose
// segment changes mid-extract keeps the first one.
type CustomerRank struct {
	CustomerID string
	Segment    string
	Revenue    decimal.Decimal
}

// TopCustomers ranks customers by total spend, highest first, carrying
// each customer's first-observed segment. Ties rank by customer ID.
func TopCustomers(records []sales.Record, n int) []CustomerRank {
	spend := make(map[string]decimal.Decimal)
	segment := make(map[string]string)
	for _, r := range records {
		if _, ok := segment[r.CustomerID]; !ok {
			segment[r.CustomerID] = r.CustomerSegment
		}
		spend[r.CustomerID] = spend[r.CustomerID].Add(r.LineRevenue)
	}

	ranked := TopN(spend, n, Descending)
	out := make([]CustomerRank, 0, len(ranked))
	for _, e := range ranked {
		out = append(out, CustomerRank{
			CustomerID: e.Key,
			Segment:    segment[e.Key],
			Revenue:    e.Value,
		})
	}
	return out
}
