package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/analytics"
	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/export"
	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

// report holds every aggregate one run produces, so the summary, CSV and
// chart writers work off a single aggregation pass.
type report struct {
	id          string
	generatedAt time.Time
	dataset     *sales.Dataset
	spec        analytics.FilterSpec
	filtered    []sales.Record
	top         int

	kpis      analytics.KPISet
	store     []analytics.Entry // revenue descending
	category  []analytics.Entry // revenue descending
	channel   []analytics.Entry
	payment   []analytics.Entry
	segment   []analytics.Entry
	weekday   []analytics.Entry // dense Monday..Sunday
	daily     []analytics.Entry // chronological
	monthly   []analytics.MonthRow
	products  []analytics.Entry
	customers []analytics.CustomerRank
	storePerf []analytics.StoreSummary
	catMonth  *analytics.Pivot
	storeMon  *analytics.Pivot
}

func buildReport(ds *sales.Dataset, filtered []sales.Record, spec analytics.FilterSpec, top int, runID string) *report {
	all := len(filtered) // rank maps fully, then views truncate
	return &report{
		id:          runID,
		generatedAt: time.Now().UTC(),
		dataset:     ds,
		spec:        spec,
		filtered:    filtered,
		top:         top,

		kpis:      analytics.ComputeKPIs(filtered),
		store:     analytics.TopN(analytics.GroupSum(filtered, analytics.DimStoreLocation, analytics.Revenue), all, analytics.Descending),
		category:  analytics.TopN(analytics.GroupSum(filtered, analytics.DimCategory, analytics.Revenue), all, analytics.Descending),
		channel:   analytics.SortedByKey(analytics.GroupSum(filtered, analytics.DimChannel, analytics.Revenue)),
		payment:   analytics.SortedByKey(analytics.GroupSum(filtered, analytics.DimPayment, analytics.Revenue)),
		segment:   analytics.SortedByKey(analytics.GroupSum(filtered, analytics.DimSegment, analytics.Revenue)),
		weekday:   analytics.WeekdayTotals(analytics.GroupSum(filtered, analytics.DimWeekday, analytics.Revenue)),
		daily:     analytics.SortedByKey(analytics.GroupSum(filtered, analytics.DimDate, analytics.Revenue)),
		monthly:   analytics.MonthlyTotals(filtered),
		products:  analytics.TopProducts(filtered, top),
		customers: analytics.TopCustomers(filtered, top),
		storePerf: analytics.StorePerformance(filtered),
		catMonth:  analytics.PivotSum(filtered, analytics.DimCategory, analytics.DimMonth, analytics.Revenue),
		storeMon:  analytics.PivotSum(filtered, analytics.DimStoreLocation, analytics.DimMonth, analytics.Revenue),
	}
}

// describeSpec renders the active filter for the report header.
func describeSpec(spec analytics.FilterSpec) string {
	var parts []string
	if spec.DateRange != nil {
		parts = append(parts, fmt.Sprintf("dates %s to %s",
			spec.DateRange.Start.Format(sales.DateLayout),
			spec.DateRange.End.Format(sales.DateLayout)))
	}
	if len(spec.StoreLocations) > 0 {
		parts = append(parts, "stores "+strings.Join(spec.StoreLocations, "/"))
	}
	if spec.Channel != "" && spec.Channel != analytics.ChannelAll {
		parts = append(parts, "channel "+spec.Channel)
	}
	if len(spec.Categories) > 0 {
		parts = append(parts, "categories "+strings.Join(spec.Categories, "/"))
	}
	if len(spec.CustomerSegments) > 0 {
		parts = append(parts, "segments "+strings.Join(spec.CustomerSegments, "/"))
	}
	if len(spec.Quarters) > 0 {
		parts = append(parts, "quarters "+strings.Join(spec.Quarters, "/"))
	}
	if len(parts) == 0 {
		return "none (full dataset)"
	}
	return strings.Join(parts, "; ")
}

// writeSummary renders summary.md: report metadata, the KPI block and every
// summary table in markdown form.
func (r *report) writeSummary(outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(outDir, "summary.md"))
	if err != nil {
		return fmt.Errorf("creating summary: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "# UrbanMart Sales Report\n\n")
	fmt.Fprintf(f, "Report %s, generated %s\n\n", r.id, r.generatedAt.Format(time.RFC3339))
	fmt.Fprintf(f, "Source: %s (dataset %s, %d rows)\n\n", r.dataset.Source(), r.dataset.ID(), r.dataset.Len())
	fmt.Fprintf(f, "Filters: %s\n\n", describeSpec(r.spec))
	fmt.Fprintf(f, "Rows after filtering: %d\n\n", len(r.filtered))
	if len(r.filtered) == 0 {
		fmt.Fprintf(f, "No records matched the filters; every value below is zero.\n\n")
	}

	writeTable(f, "Key Metrics", []string{"Metric", "Value"}, [][]string{
		{"Total Revenue", export.FormatMoney(r.kpis.TotalRevenue)},
		{"Total Bills", export.FormatCount(int64(r.kpis.TotalBills))},
		{"Avg Bill Value", export.FormatMoney(r.kpis.AvgRevenuePerBill)},
		{"Unique Customers", export.FormatCount(int64(r.kpis.UniqueCustomers))},
		{"Units Sold", export.FormatCount(r.kpis.UnitsSold)},
		{"Total Discounts", export.FormatMoney(r.kpis.TotalDiscount)},
		{"Transactions", export.FormatCount(int64(r.kpis.LineItems))},
		{"Avg Discount / Item", export.FormatMoney(r.kpis.AvgDiscountPerItem)},
	})

	writeTable(f, "Revenue by Store", []string{"Store", "Revenue"}, entryRows(r.store))
	writeTable(f, "Revenue by Category", []string{"Category", "Revenue"}, entryRows(r.category))
	writeTable(f, "Revenue by Channel", []string{"Channel", "Revenue"}, entryRows(r.channel))
	writeTable(f, "Revenue by Payment Method", []string{"Payment Method", "Revenue"}, entryRows(r.payment))
	writeTable(f, "Revenue by Customer Segment", []string{"Segment", "Revenue"}, entryRows(r.segment))
	writeTable(f, "Revenue by Day of Week", []string{"Day", "Revenue"}, entryRows(r.weekday))

	monthRows := make([][]string, 0, len(r.monthly))
	for _, m := range r.monthly {
		monthRows = append(monthRows, []string{m.Label, export.FormatMoney(m.Revenue), strconv.Itoa(m.Bills)})
	}
	writeTable(f, "Monthly Trend", []string{"Month", "Revenue", "Bills"}, monthRows)

	writeTable(f, fmt.Sprintf("Top %d Products", r.top), []string{"Product", "Revenue"}, entryRows(r.products))

	custRows := make([][]string, 0, len(r.customers))
	for _, c := range r.customers {
		custRows = append(custRows, []string{c.CustomerID, c.Segment, export.FormatMoney(c.Revenue)})
	}
	writeTable(f, fmt.Sprintf("Top %d Customers", r.top), []string{"Customer", "Segment", "Revenue"}, custRows)

	perfRows := make([][]string, 0, len(r.storePerf))
	for _, s := range r.storePerf {
		perfRows = append(perfRows, []string{
			s.Location,
			export.FormatMoney(s.Revenue),
			strconv.Itoa(s.Bills),
			strconv.Itoa(s.Customers),
			strconv.FormatInt(s.Units, 10),
			export.FormatMoney(s.Discount),
			export.FormatMoney(s.AvgPerBill),
		})
	}
	writeTable(f, "Store Performance",
		[]string{"Store", "Revenue", "Bills", "Customers", "Units", "Discounts", "Avg/Bill"}, perfRows)

	return nil
}

// writeTable renders one titled markdown table via tablewriter.
func writeTable(w io.Writer, title string, header []string, rows [][]string) {
	fmt.Fprintf(w, "## %s\n\n", title)

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
	fmt.Fprintln(w)
}

func entryRows(entries []analytics.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Key, export.FormatMoney(e.Value)})
	}
	return rows
}

// writeCSVs exports the filtered rows and every summary table as CSV files
// in outDir.
func (r *report) writeCSVs(outDir string) error {
	files := []struct {
		name string
		fn   func(io.Writer) error
	}{
		{"records.csv", func(w io.Writer) error { return export.Records(w, r.filtered) }},
		{"kpis.csv", func(w io.Writer) error { return export.KPIs(w, r.kpis) }},
		{"revenue_by_store.csv", func(w io.Writer) error { return export.Grouped(w, "store_location", r.store) }},
		{"revenue_by_category.csv", func(w io.Writer) error { return export.Grouped(w, "product_category", r.category) }},
		{"revenue_by_channel.csv", func(w io.Writer) error { return export.Grouped(w, "channel", r.channel) }},
		{"revenue_by_payment.csv", func(w io.Writer) error { return export.Grouped(w, "payment_method", r.payment) }},
		{"revenue_by_segment.csv", func(w io.Writer) error { return export.Grouped(w, "customer_segment", r.segment) }},
		{"revenue_by_weekday.csv", func(w io.Writer) error { return export.Grouped(w, "day_of_week", r.weekday) }},
		{"daily_revenue.csv", func(w io.Writer) error { return export.Grouped(w, "date", r.daily) }},
		{"monthly.csv", func(w io.Writer) error { return export.Monthly(w, r.monthly) }},
		{"top_products.csv", func(w io.Writer) error { return export.Grouped(w, "product_name", r.products) }},
		{"top_customers.csv", func(w io.Writer) error { return export.Customers(w, r.customers) }},
		{"store_summary.csv", func(w io.Writer) error { return export.StoreSummaries(w, r.storePerf) }},
		{"category_month.csv", func(w io.Writer) error { return export.PivotGrid(w, r.catMonth) }},
	}
	for _, file := range files {
		if err := export.WriteFile(filepath.Join(outDir, file.name), file.fn); err != nil {
			return err
		}
	}
	return nil
}
