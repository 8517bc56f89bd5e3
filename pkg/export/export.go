// Package export serializes query results to CSV and formats values for
// display. Data files carry plain two-decimal numbers so spreadsheets can
// sum them; summary files and tables use the display formatting.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/analytics"
	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

// FormatMoney renders a currency amount for display: dollar sign, comma
// separators, two decimal places.
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, decPart, _ := strings.Cut(s, ".")
	out := "$" + groupThousands(intPart) + "." + decPart
	if neg {
		out = "-" + out
	}
	return out
}

// FormatCount renders an integer with comma separators.
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprintf("%s,%03d", FormatCount(n/1000), n%1000)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, ",")
}

// Records writes the full record rows with a header: the source columns in
// canonical order followed by line_revenue. Dates use the source layout;
// money is plain two-decimal.
func Records(w io.Writer, records []sales.Record) error {
	cw := csv.NewWriter(w)
	header := append(append([]string{}, sales.RequiredColumns...), "line_revenue")
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.TransactionID,
			r.BillID,
			r.Date.Format(sales.DateLayout),
			r.StoreID,
			r.StoreLocation,
			r.CustomerID,
			r.CustomerSegment,
			r.ProductID,
			r.ProductName,
			r.ProductCategory,
			strconv.Itoa(r.Quantity),
			r.UnitPrice.StringFixed(2),
			r.DiscountApplied.StringFixed(2),
			string(r.Channel),
			r.PaymentMethod,
			r.LineRevenue.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// KPIs writes the headline metric block as Metric,Value rows in display
// formatting, mirroring the downloadable summary report.
func KPIs(w io.Writer, k analytics.KPISet) error {
	return writeAll(w, [][]string{
		{"Metric", "Value"},
		{"Total Revenue", FormatMoney(k.TotalRevenue)},
		{"Total Bills", FormatCount(int64(k.TotalBills))},
		{"Avg Bill Value", FormatMoney(k.AvgRevenuePerBill)},
		{"Unique Customers", FormatCount(int64(k.UniqueCustomers))},
		{"Units Sold", FormatCount(k.UnitsSold)},
		{"Total Discounts", FormatMoney(k.TotalDiscount)},
		{"Transactions", FormatCount(int64(k.LineItems))},
		{"Avg Discount", FormatMoney(k.AvgDiscountPerItem)},
	})
}

// Grouped writes one grouped total per row under a keyName,revenue header.
func Grouped(w io.Writer, keyName string, entries []analytics.Entry) error {
	rows := [][]string{{keyName, "revenue"}}
	for _, e := range entries {
		rows = append(rows, []string{e.Key, e.Value.StringFixed(2)})
	}
	return writeAll(w, rows)
}

// Monthly writes the monthly trend rows: month key, label, revenue, bills.
func Monthly(w io.Writer, rows []analytics.MonthRow) error {
	out := [][]string{{"month", "month_name", "revenue", "bills"}}
	for _, m := range rows {
		out = append(out, []string{m.Key, m.Label, m.Revenue.StringFixed(2), strconv.Itoa(m.Bills)})
	}
	return writeAll(w, out)
}

// StoreSummaries writes the store performance table.
func StoreSummaries(w io.Writer, rows []analytics.StoreSummary) error {
	out := [][]string{{"store_location", "revenue", "bills", "customers", "units", "discounts", "avg_per_bill"}}
	for _, s := range rows {
		out = append(out, []string{
			s.Location,
			s.Revenue.StringFixed(2),
			strconv.Itoa(s.Bills),
			strconv.Itoa(s.Customers),
			strconv.FormatInt(s.Units, 10),
			s.Discount.StringFixed(2),
			s.AvgPerBill.StringFixed(2),
		})
	}
	return writeAll(w, out)
}

// Customers writes the customer leaderboard with the pass-through segment.
func Customers(w io.Writer, rows []analytics.CustomerRank) error {
	out := [][]string{{"customer_id", "customer_segment", "revenue"}}
	for _, c := range rows {
		out = append(out, []string{c.CustomerID, c.Segment, c.Revenue.StringFixed(2)})
	}
	return writeAll(w, out)
}

// PivotGrid writes the dense zero-filled grid: the first column holds row
// keys, the remaining columns one total per column key.
func PivotGrid(w io.Writer, p *analytics.Pivot) error {
	rows, cols, grid := p.Dense()
	header := append([]string{p.RowDim}, cols...)
	out := [][]string{header}
	for i, r := range rows {
		row := make([]string, 0, len(cols)+1)
		row = append(row, r)
		for j := range cols {
			row = append(row, grid[i][j].StringFixed(2))
		}
		out = append(out, row)
	}
	return writeAll(w, out)
}

// WriteFile creates path (and any missing parent directories) and runs fn
// against the file.
func WriteFile(path string, fn func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
