package sales

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/internal/logging"
)

// LoadOptions adjust how the source stream is parsed.
type LoadOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// ParseDelimiter coerces a delimiter flag value onto a rune. Anything but
// exactly one character is rejected.
func ParseDelimiter(s string) (rune, error) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return runes[0], nil
}

// Load reads, parses and derives a complete snapshot from src.
//
// The header row is matched by column name; a missing required column fails
// the load immediately. Row parsing is fail-fast: the first row that cannot
// be coerced aborts with a *MalformedRecordError carrying the row number
// and column. Duplicate transaction IDs are treated the same way.
func Load(ctx context.Context, src Source, opts *LoadOptions) (*Dataset, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.TrimLeadingSpace = true
	if opts != nil && opts.Comma != 0 {
		r.Comma = opts.Comma
	}

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("source %q is empty", src.Name())
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %q: %w", src.Name(), err)
	}
	cols, err := mapHeader(header)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", src.Name(), err)
	}

	var (
		records []Record
		seen    = make(map[string]int)
	)
	for row := 2; ; row++ {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &MalformedRecordError{Row: row, Reason: "unreadable row", Err: err}
		}

		raw, err := parseRow(fields, cols, row)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[raw.TransactionID]; dup {
			return nil, &MalformedRecordError{
				Row:    row,
				Column: ColTransactionID,
				Reason: fmt.Sprintf("duplicate transaction id %q, first seen at row %d", raw.TransactionID, prev),
			}
		}
		seen[raw.TransactionID] = row

		rec, err := derive(raw)
		if err != nil {
			var merr *MalformedRecordError
			if errors.As(err, &merr) {
				merr.Row = row
			}
			return nil, err
		}
		records = append(records, rec)
	}

	ds, err := NewDataset(records, src.Name())
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("source", src.Name()).
		Str("dataset_id", ds.ID()).
		Int("rows", ds.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("sales extract loaded")
	return ds, nil
}

// mapHeader resolves each required column to its index in the header.
// Unknown extra columns are ignored.
func mapHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	cols := make(map[string]int, len(RequiredColumns))
	for _, col := range RequiredColumns {
		i, ok := index[col]
		if !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
		cols[col] = i
	}
	return cols, nil
}

func parseRow(fields []string, cols map[string]int, row int) (RawRecord, error) {
	get := func(col string) string { return strings.TrimSpace(fields[cols[col]]) }

	date, err := time.Parse(DateLayout, get(ColDate))
	if err != nil {
		return RawRecord{}, &MalformedRecordError{Row: row, Column: ColDate,
			Reason: fmt.Sprintf("unparsable date %q", get(ColDate)), Err: err}
	}
	quantity, err := strconv.Atoi(get(ColQuantity))
	if err != nil {
		return RawRecord{}, &MalformedRecordError{Row: row, Column: ColQuantity,
			Reason: fmt.Sprintf("non-numeric quantity %q", get(ColQuantity)), Err: err}
	}
	unitPrice, err := decimal.NewFromString(get(ColUnitPrice))
	if err != nil {
		return RawRecord{}, &MalformedRecordError{Row: row, Column: ColUnitPrice,
			Reason: fmt.Sprintf("non-numeric unit price %q", get(ColUnitPrice)), Err: err}
	}
	discount, err := decimal.NewFromString(get(ColDiscountApplied))
	if err != nil {
		return RawRecord{}, &MalformedRecordError{Row: row, Column: ColDiscountApplied,
			Reason: fmt.Sprintf("non-numeric discount %q", get(ColDiscountApplied)), Err: err}
	}

	return RawRecord{
		TransactionID:   get(ColTransactionID),
		BillID:          get(ColBillID),
		Date:            date,
		StoreID:         get(ColStoreID),
		StoreLocation:   get(ColStoreLocation),
		CustomerID:      get(ColCustomerID),
		CustomerSegment: get(ColCustomerSegment),
		ProductID:       get(ColProductID),
		ProductName:     get(ColProductName),
		ProductCategory: get(ColProductCategory),
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountApplied: discount,
		Channel:         Channel(get(ColChannel)),
		PaymentMethod:   get(ColPaymentMethod),
	}, nil
}
