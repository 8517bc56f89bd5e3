package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/analytics"
	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/export"
	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// menu lists the canned queries in keypress order.
var menu = []string{
	"1. Total revenue",
	"2. Revenue by store",
	"3. Revenue by category",
	"4. Top 5 products by revenue",
	"5. Top 5 customers by spend",
	"6. KPI summary",
	"7. Dataset overview",
}

// reloadDoneMsg reports the outcome of an async reload.
type reloadDoneMsg struct {
	ds  *sales.Dataset
	err error
}

type model struct {
	ctx   context.Context
	store *sales.Store
	src   sales.Source
	opts  *sales.LoadOptions

	viewport viewport.Model
	width    int
	height   int
	status   string
	errText  string
}

func newModel(ctx context.Context, store *sales.Store, src sales.Source, opts *sales.LoadOptions) model {
	vp := viewport.New(80, 20)
	m := model{
		ctx:      ctx,
		store:    store,
		src:      src,
		opts:     opts,
		viewport: vp,
	}
	m.showWelcome()
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4 // header, status, footer

	case reloadDoneMsg:
		if msg.err != nil {
			m.errText = fmt.Sprintf("reload failed, keeping previous data: %v", msg.err)
		} else {
			m.errText = ""
			m.status = fmt.Sprintf("reloaded %d rows from %s", msg.ds.Len(), msg.ds.Source())
			m.showWelcome()
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.status = "reloading..."
			return m, m.reloadCmd()
		case "1":
			m.showQuery("Total Revenue", m.renderTotalRevenue)
		case "2":
			m.showQuery("Revenue by Store", m.renderByStore)
		case "3":
			m.showQuery("Revenue by Category", m.renderByCategory)
		case "4":
			m.showQuery("Top 5 Products", m.renderTopProducts)
		case "5":
			m.showQuery("Top 5 Customers", m.renderTopCustomers)
		case "6":
			m.showQuery("KPI Summary", m.renderKPIs)
		case "7":
			m.showQuery("Dataset Overview", m.renderOverview)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	ds := m.store.Current()
	header := headerStyle.Render(fmt.Sprintf("UrbanMart Analytics — %s (%d rows)", ds.Source(), ds.Len()))

	var status string
	if m.errText != "" {
		status = errStyle.Render(m.errText)
	} else {
		status = statusStyle.Render(m.status)
	}

	footer := statusStyle.Render("keys: 1-7 run query · r reload · up/down scroll · q quit")
	return strings.Join([]string{header, m.viewport.View(), status, footer}, "\n")
}

// reloadCmd reloads the extract off the UI loop; the snapshot swap is
// atomic, so a failure leaves the current data untouched.
func (m model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		ds, err := m.store.Reload(m.ctx, m.src, m.opts)
		return reloadDoneMsg{ds: ds, err: err}
	}
}

func (m *model) showWelcome() {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Pick a query"))
	sb.WriteString("\n\n")
	for _, item := range menu {
		sb.WriteString("  " + item + "\n")
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoTop()
}

func (m *model) showQuery(title string, render func([]sales.Record) string) {
	records := m.store.Current().Records()
	content := titleStyle.Render(title) + "\n\n" + render(records)
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m *model) renderTotalRevenue(records []sales.Record) string {
	return "Total revenue: " + export.FormatMoney(analytics.SumRevenue(records)) + "\n"
}

func (m *model) renderByStore(records []sales.Record) string {
	grouped := analytics.GroupSum(records, analytics.DimStoreLocation, analytics.Revenue)
	return entryTable("Store", analytics.TopN(grouped, len(grouped), analytics.Descending))
}

func (m *model) renderByCategory(records []sales.Record) string {
	grouped := analytics.GroupSum(records, analytics.DimCategory, analytics.Revenue)
	return entryTable("Category", analytics.TopN(grouped, len(grouped), analytics.Descending))
}

func (m *model) renderTopProducts(records []sales.Record) string {
	return entryTable("Product", analytics.TopProducts(records, 5))
}

func (m *model) renderTopCustomers(records []sales.Record) string {
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Customer", "Segment", "Revenue"})
	table.SetAutoFormatHeaders(false)
	for _, c := range analytics.TopCustomers(records, 5) {
		table.Append([]string{c.CustomerID, c.Segment, export.FormatMoney(c.Revenue)})
	}
	table.Render()
	return sb.String()
}

func (m *model) renderKPIs(records []sales.Record) string {
	k := analytics.ComputeKPIs(records)

	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAutoFormatHeaders(false)
	for _, row := range [][]string{
		{"Total Revenue", export.FormatMoney(k.TotalRevenue)},
		{"Total Bills", export.FormatCount(int64(k.TotalBills))},
		{"Avg Bill Value", export.FormatMoney(k.AvgRevenuePerBill)},
		{"Unique Customers", export.FormatCount(int64(k.UniqueCustomers))},
		{"Units Sold", export.FormatCount(k.UnitsSold)},
		{"Total Discounts", export.FormatMoney(k.TotalDiscount)},
		{"Transactions", export.FormatCount(int64(k.LineItems))},
		{"Avg Discount / Item", export.FormatMoney(k.AvgDiscountPerItem)},
	} {
		table.Append(row)
	}
	table.Render()
	return sb.String()
}

func (m *model) renderOverview([]sales.Record) string {
	ds := m.store.Current()
	minDate, maxDate := ds.DateRange()

	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Property", "Value"})
	table.SetAutoFormatHeaders(false)
	for _, row := range [][]string{
		{"Source", ds.Source()},
		{"Rows", strconv.Itoa(ds.Len())},
		{"Date range", minDate.Format(sales.DateLayout) + " to " + maxDate.Format(sales.DateLayout)},
		{"Stores", strings.Join(ds.StoreLocations(), ", ")},
		{"Categories", strings.Join(ds.Categories(), ", ")},
		{"Distinct bills", strconv.Itoa(ds.DistinctBills())},
		{"Distinct customers", strconv.Itoa(ds.DistinctCustomers())},
		{"Distinct products", strconv.Itoa(ds.DistinctProducts())},
	} {
		table.Append(row)
	}
	table.Render()
	return sb.String()
}

func entryTable(keyHeader string, entries []analytics.Entry) string {
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{keyHeader, "Revenue"})
	table.SetAutoFormatHeaders(false)
	for _, e := range entries {
		table.Append([]string{e.Key, export.FormatMoney(e.Value)})
	}
	table.Render()
	return sb.String()
}
