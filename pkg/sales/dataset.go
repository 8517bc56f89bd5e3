package sales

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Dataset is one immutable snapshot of a loaded extract. All methods are
// read-only; queries share the backing slice without copying. Callers must
// not modify the slice returned by Records.
type Dataset struct {
	id       string
	source   string
	loadedAt time.Time
	records  []Record

	minDate time.Time
	maxDate time.Time

	stores     []string
	categories []string
	segments   []string
	channels   []string
	payments   []string
	quarters   []string

	bills     int
	customers int
	products  int
}

// NewDataset builds a snapshot from already-derived records. Duplicate
// transaction IDs are rejected. The record slice is owned by the dataset
// after the call.
func NewDataset(records []Record, source string) (*Dataset, error) {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.TransactionID]; dup {
			return nil, fmt.Errorf("duplicate transaction id %q", r.TransactionID)
		}
		seen[r.TransactionID] = struct{}{}
	}

	d := &Dataset{
		id:       uuid.NewString(),
		source:   source,
		loadedAt: time.Now().UTC(),
		records:  records,
	}
	d.index()
	return d, nil
}

// index precomputes the discovery views: date bounds, sorted unique values
// per dimension and distinct entity counts.
func (d *Dataset) index() {
	var (
		stores     = make(map[string]struct{})
		categories = make(map[string]struct{})
		segments   = make(map[string]struct{})
		channels   = make(map[string]struct{})
		payments   = make(map[string]struct{})
		quarters   = make(map[string]struct{})
		bills      = make(map[string]struct{})
		customers  = make(map[string]struct{})
		products   = make(map[string]struct{})
	)
	for i, r := range d.records {
		if i == 0 || r.Date.Before(d.minDate) {
			d.minDate = r.Date
		}
		if i == 0 || r.Date.After(d.maxDate) {
			d.maxDate = r.Date
		}
		stores[r.StoreLocation] = struct{}{}
		categories[r.ProductCategory] = struct{}{}
		segments[r.CustomerSegment] = struct{}{}
		channels[string(r.Channel)] = struct{}{}
		payments[r.PaymentMethod] = struct{}{}
		quarters[r.Quarter] = struct{}{}
		bills[r.BillID] = struct{}{}
		customers[r.CustomerID] = struct{}{}
		products[r.ProductID] = struct{}{}
	}
	d.stores = sortedKeys(stores)
	d.categories = sortedKeys(categories)
	d.segments = sortedKeys(segments)
	d.channels = sortedKeys(channels)
	d.payments = sortedKeys(payments)
	d.quarters = sortedKeys(quarters)
	d.bills = len(bills)
	d.customers = len(customers)
	d.products = len(products)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ID is the snapshot identifier, unique per load.
func (d *Dataset) ID() string { return d.id }

// Source names the extract the snapshot was loaded from.
func (d *Dataset) Source() string { return d.source }

// LoadedAt is the UTC time the snapshot was built.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Len is the number of line items in the snapshot.
func (d *Dataset) Len() int { return len(d.records) }

// Records exposes the backing record slice. Read-only by convention.
func (d *Dataset) Records() []Record { return d.records }

// DateRange returns the earliest and latest transaction dates. Both are
// zero for an empty snapshot.
func (d *Dataset) DateRange() (min, max time.Time) { return d.minDate, d.maxDate }

// StoreLocations lists the distinct store locations, sorted.
func (d *Dataset) StoreLocations() []string { return d.stores }

// Categories lists the distinct product categories, sorted.
func (d *Dataset) Categories() []string { return d.categories }

// CustomerSegments lists the distinct customer segments, sorted.
func (d *Dataset) CustomerSegments() []string { return d.segments }

// Channels lists the distinct sales channels present, sorted.
func (d *Dataset) Channels() []string { return d.channels }

// PaymentMethods lists the distinct payment methods, sorted.
func (d *Dataset) PaymentMethods() []string { return d.payments }

// Quarters lists the distinct quarters present, sorted.
func (d *Dataset) Quarters() []string { return d.quarters }

// DistinctBills is the number of distinct bill IDs in the snapshot.
func (d *Dataset) DistinctBills() int { return d.bills }

// DistinctCustomers is the number of distinct customer IDs in the snapshot.
func (d *Dataset) DistinctCustomers() int { return d.customers }

// DistinctProducts is the number of distinct product IDs in the snapshot.
func (d *Dataset) DistinctProducts() int { return d.products }
