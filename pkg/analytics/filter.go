// Package analytics answers filtered, grouped and ranked queries over
// sales records. Every query is a pure function: records go in, results
// come out, nothing is cached or mutated.
package analytics

import (
	"fmt"
	"time"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

// ChannelAll is the channel value that disables the channel predicate.
// An empty channel means the same thing.
const ChannelAll = "All"

// DateRange bounds transaction dates, inclusive on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// FilterSpec selects a subset of records. Every field is optional; the
// predicates of the populated fields are ANDed together. Empty slices
// mean "all values", matching the behavior of an unticked filter control.
type FilterSpec struct {
	DateRange        *DateRange
	StoreLocations   []string
	Channel          string
	Categories       []string
	CustomerSegments []string
	Quarters         []string
}

// InvalidFilterSpecError reports a FilterSpec that can never be satisfied
// or names values outside the schema. It is raised before any records are
// scanned.
type InvalidFilterSpecError struct {
	Reason string
}

func (e *InvalidFilterSpecError) Error() string {
	return "invalid filter spec: " + e.Reason
}

// Validate checks the spec without touching any records.
func (s FilterSpec) Validate() error {
	if s.DateRange != nil && s.DateRange.Start.After(s.DateRange.End) {
		return &InvalidFilterSpecError{Reason: fmt.Sprintf(
			"date range start %s is after end %s",
			s.DateRange.Start.Format(sales.DateLayout),
			s.DateRange.End.Format(sales.DateLayout),
		)}
	}
	switch s.Channel {
	case "", ChannelAll, string(sales.ChannelInStore), string(sales.ChannelOnline):
	default:
		return &InvalidFilterSpecError{Reason: fmt.Sprintf("unknown channel %q", s.Channel)}
	}
	return nil
}

// Filter returns the records matching every populated predicate of spec,
// in input order. The spec is validated first; scanning is a single pass
// with prebuilt membership sets. An empty result is a valid result.
func Filter(records []sales.Record, spec FilterSpec) ([]sales.Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	stores := toSet(spec.StoreLocations)
	categories := toSet(spec.Categories)
	segments := toSet(spec.CustomerSegments)
	quarters := toSet(spec.Quarters)
	channelActive := spec.Channel != "" && spec.Channel != ChannelAll

	out := make([]sales.Record, 0, len(records))
	for _, r := range records {
		if spec.DateRange != nil &&
			(r.Date.Before(spec.DateRange.Start) || r.Date.After(spec.DateRange.End)) {
			continue
		}
		if len(stores) > 0 && !stores[r.StoreLocation] {
			continue
		}
		if channelActive && string(r.Channel) != spec.Channel {
			continue
		}
		if len(categories) > 0 && !categories[r.ProductCategory] {
			continue
		}
		if len(segments) > 0 && !segments[r.CustomerSegment] {
			continue
		}
		if len(quarters) > 0 && !quarters[r.Quarter] {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
