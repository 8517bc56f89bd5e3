package sales

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Derive computes the analytical fields for every raw record, preserving
// input order. The output slice is parallel to the input. Derivation is
// fail-fast: the first invalid record aborts with a *MalformedRecordError
// whose Row is the 1-based position of the record in the input.
func Derive(raw []RawRecord) ([]Record, error) {
	out := make([]Record, 0, len(raw))
	for i, r := range raw {
		rec, err := derive(r)
		if err != nil {
			var merr *MalformedRecordError
			if errors.As(err, &merr) {
				merr.Row = i + 1
			}
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// derive validates one raw record and fills in its derived fields. The
// returned MalformedRecordError has no row coordinate; callers that know
// the source row set it.
func derive(raw RawRecord) (Record, error) {
	if err := validate(raw); err != nil {
		return Record{}, err
	}

	qty := decimal.NewFromInt(int64(raw.Quantity))
	_, week := raw.Date.ISOWeek()

	return Record{
		RawRecord:   raw,
		LineRevenue: qty.Mul(raw.UnitPrice).Sub(raw.DiscountApplied),
		Weekday:     raw.Date.Weekday().String(),
		MonthKey:    raw.Date.Format("2006-01"),
		MonthLabel:  raw.Date.Format("January 2006"),
		Quarter:     fmt.Sprintf("%d-Q%d", raw.Date.Year(), (int(raw.Date.Month())-1)/3+1),
		ISOWeek:     week,
		Year:        raw.Date.Year(),
	}, nil
}

func validate(raw RawRecord) error {
	for _, f := range []struct {
		col string
		val string
	}{
		{ColTransactionID, raw.TransactionID},
		{ColBillID, raw.BillID},
		{ColStoreID, raw.StoreID},
		{ColStoreLocation, raw.StoreLocation},
		{ColCustomerID, raw.CustomerID},
		{ColCustomerSegment, raw.CustomerSegment},
		{ColProductID, raw.ProductID},
		{ColProductName, raw.ProductName},
		{ColProductCategory, raw.ProductCategory},
		{ColPaymentMethod, raw.PaymentMethod},
	} {
		if f.val == "" {
			return &MalformedRecordError{Column: f.col, Reason: "missing value"}
		}
	}

	if raw.Date.IsZero() {
		return &MalformedRecordError{Column: ColDate, Reason: "missing date"}
	}
	if raw.Quantity < 1 {
		return &MalformedRecordError{Column: ColQuantity, Reason: fmt.Sprintf("quantity %d is not positive", raw.Quantity)}
	}
	if raw.UnitPrice.IsNegative() {
		return &MalformedRecordError{Column: ColUnitPrice, Reason: fmt.Sprintf("negative unit price %s", raw.UnitPrice)}
	}
	if raw.DiscountApplied.IsNegative() {
		return &MalformedRecordError{Column: ColDiscountApplied, Reason: fmt.Sprintf("negative discount %s", raw.DiscountApplied)}
	}
	if _, err := ParseChannel(string(raw.Channel)); err != nil {
		return &MalformedRecordError{Column: ColChannel, Reason: err.Error(), Err: err}
	}
	return nil
}
