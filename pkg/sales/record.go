// Package sales defines the point-of-sale record model and the loading
// pipeline that turns a delimited extract into an immutable in-memory
// dataset. One record is one line item; a bill groups the line items
// purchased together.
package sales

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by the extract.
const DateLayout = "2006-01-02"

// Channel identifies how a line item was sold.
type Channel string

const (
	ChannelInStore Channel = "In-store"
	ChannelOnline  Channel = "Online"
)

// ParseChannel coerces a raw value onto one of the known channels.
func ParseChannel(s string) (Channel, error) {
	switch Channel(s) {
	case ChannelInStore:
		return ChannelInStore, nil
	case ChannelOnline:
		return ChannelOnline, nil
	}
	return "", fmt.Errorf("unknown channel %q", s)
}

// Source column names. Header matching is by name, not position; columns
// beyond this set are ignored.
const (
	ColTransactionID   = "transaction_id"
	ColBillID          = "bill_id"
	ColDate            = "date"
	ColStoreID         = "store_id"
	ColStoreLocation   = "store_location"
	ColCustomerID      = "customer_id"
	ColCustomerSegment = "customer_segment"
	ColProductID       = "product_id"
	ColProductName     = "product_name"
	ColProductCategory = "product_category"
	ColQuantity        = "quantity"
	ColUnitPrice       = "unit_price"
	ColDiscountApplied = "discount_applied"
	ColChannel         = "channel"
	ColPaymentMethod   = "payment_method"
)

// RequiredColumns lists every column the loader must find in the header,
// in canonical export order.
var RequiredColumns = []string{
	ColTransactionID,
	ColBillID,
	ColDate,
	ColStoreID,
	ColStoreLocation,
	ColCustomerID,
	ColCustomerSegment,
	ColProductID,
	ColProductName,
	ColProductCategory,
	ColQuantity,
	ColUnitPrice,
	ColDiscountApplied,
	ColChannel,
	ColPaymentMethod,
}

// WeekdayOrder is the canonical Monday-first ordering used by every
// day-of-week view.
var WeekdayOrder = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// RawRecord is one line item as it appears in the extract, with every field
// coerced to its semantic type.
type RawRecord struct {
	// TransactionID uniquely identifies the line item across the extract
	TransactionID string

	// BillID groups the line items of a single purchase
	BillID string

	// Date is the calendar day of the purchase, midnight UTC
	Date time.Time

	StoreID       string
	StoreLocation string

	CustomerID      string
	CustomerSegment string

	ProductID       string
	ProductName     string
	ProductCategory string

	// Quantity is the number of units sold, always at least one
	Quantity int

	// UnitPrice is the per-unit price before discount
	UnitPrice decimal.Decimal

	// DiscountApplied is the absolute currency amount taken off the line
	DiscountApplied decimal.Decimal

	Channel       Channel
	PaymentMethod string
}

// Record is a RawRecord extended with the derived analytical fields.
type Record struct {
	RawRecord

	// LineRevenue is quantity*unit_price - discount_applied. It goes
	// negative when the discount exceeds the gross amount; that is kept
	// as-is so revenue totals reconcile with the source.
	LineRevenue decimal.Decimal

	// Weekday is the English day name, one of WeekdayOrder
	Weekday string

	// MonthKey sorts chronologically, e.g. "2025-01"
	MonthKey string

	// MonthLabel is the display form of MonthKey, e.g. "January 2025"
	MonthLabel string

	// Quarter sorts chronologically, e.g. "2025-Q1"
	Quarter string

	ISOWeek int
	Year    int
}
