package analytics

import "github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"

// Dimension is a named grouping key over records. The fixed set below is
// the engine's grouping vocabulary; consumers pick a Dimension value
// instead of passing column names around as strings.
type Dimension struct {
	Name string
	Key  func(sales.Record) string
}

var (
	DimStoreLocation = Dimension{Name: "store_location", Key: func(r sales.Record) string { return r.StoreLocation }}
	DimCategory      = Dimension{Name: "product_category", Key: func(r sales.Record) string { return r.ProductCategory }}
	DimChannel       = Dimension{Name: "channel", Key: func(r sales.Record) string { return string(r.Channel) }}
	DimPayment       = Dimension{Name: "payment_method", Key: func(r sales.Record) string { return r.PaymentMethod }}
	DimSegment       = Dimension{Name: "customer_segment", Key: func(r sales.Record) string { return r.CustomerSegment }}
	DimWeekday       = Dimension{Name: "day_of_week", Key: func(r sales.Record) string { return r.Weekday }}
	DimMonth         = Dimension{Name: "month", Key: func(r sales.Record) string { return r.MonthKey }}
	DimQuarter       = Dimension{Name: "quarter", Key: func(r sales.Record) string { return r.Quarter }}
	DimDate          = Dimension{Name: "date", Key: func(r sales.Record) string { return r.Date.Format(sales.DateLayout) }}
	DimProduct       = Dimension{Name: "product_name", Key: func(r sales.Record) string { return r.ProductName }}
	DimCustomer      = Dimension{Name: "customer_id", Key: func(r sales.Record) string { return r.CustomerID }}
)
