package sales

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `transaction_id,bill_id,date,store_id,store_location,customer_id,customer_segment,product_id,product_name,product_category,quantity,unit_price,discount_applied,channel,payment_method
T001,B001,2025-01-15,S01,Downtown,C001,Regular,P01,Espresso Beans,Groceries,2,12.50,0.00,In-store,Credit Card
T002,B001,2025-01-15,S01,Downtown,C001,Regular,P02,Olive Oil,Groceries,1,8.75,1.25,In-store,Credit Card
T003,B002,2025-01-20,S02,Riverside,C002,Premium,P03,Desk Lamp,Home,1,45.00,5.00,Online,UPI
T004,B003,2025-02-03,S01,Downtown,C003,New,P01,Espresso Beans,Groceries,3,12.50,2.50,Online,Debit Card
T005,B004,2025-02-10,S02,Riverside,C002,Premium,P04,Notebook,Stationery,5,3.20,0.00,In-store,Cash
`

func loadSample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Load(context.Background(), ReaderSource("sample", strings.NewReader(sampleCSV)), nil)
	require.NoError(t, err)
	return ds
}

func TestLoadParsesAndDerives(t *testing.T) {
	ds := loadSample(t)

	require.Equal(t, 5, ds.Len())
	assert.Equal(t, "sample", ds.Source())
	assert.NotEmpty(t, ds.ID())

	r := ds.Records()[0]
	assert.Equal(t, "T001", r.TransactionID)
	assert.Equal(t, "B001", r.BillID)
	assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), r.Date)
	assert.Equal(t, "Downtown", r.StoreLocation)
	assert.Equal(t, ChannelInStore, r.Channel)
	assert.Equal(t, "25.00", r.LineRevenue.StringFixed(2))
	assert.Equal(t, "Wednesday", r.Weekday)
	assert.Equal(t, "2025-01", r.MonthKey)
}

func TestLoadIndexesDiscoveryViews(t *testing.T) {
	ds := loadSample(t)

	minDate, maxDate := ds.DateRange()
	assert.Equal(t, "2025-01-15", minDate.Format(DateLayout))
	assert.Equal(t, "2025-02-10", maxDate.Format(DateLayout))

	assert.Equal(t, []string{"Downtown", "Riverside"}, ds.StoreLocations())
	assert.Equal(t, []string{"Groceries", "Home", "Stationery"}, ds.Categories())
	assert.Equal(t, []string{"New", "Premium", "Regular"}, ds.CustomerSegments())
	assert.Equal(t, []string{"In-store", "Online"}, ds.Channels())
	assert.Equal(t, []string{"Cash", "Credit Card", "Debit Card", "UPI"}, ds.PaymentMethods())
	assert.Equal(t, []string{"2025-Q1"}, ds.Quarters())

	assert.Equal(t, 4, ds.DistinctBills())
	assert.Equal(t, 3, ds.DistinctCustomers())
	assert.Equal(t, 4, ds.DistinctProducts())
}

func TestLoadMissingFile(t *testing.T) {
	src := FileSource(filepath.Join(t.TempDir(), "absent.csv"))
	_, err := Load(context.Background(), src, nil)
	require.Error(t, err)

	var nf *SourceNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadMissingColumn(t *testing.T) {
	csv := strings.Replace(sampleCSV, "unit_price", "price", 1)
	_, err := Load(context.Background(), ReaderSource("broken", strings.NewReader(csv)), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unit_price")
}

func TestLoadHeaderOrderIrrelevant(t *testing.T) {
	csv := `date,transaction_id,bill_id,store_id,store_location,customer_id,customer_segment,product_id,product_name,product_category,quantity,unit_price,discount_applied,channel,payment_method,extra_note
2025-03-01,T100,B100,S01,Downtown,C001,Regular,P01,Espresso Beans,Groceries,1,10.00,0.00,Online,Cash,ignored
`
	ds, err := Load(context.Background(), ReaderSource("reordered", strings.NewReader(csv)), nil)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "T100", ds.Records()[0].TransactionID)
	assert.Equal(t, "2025-03", ds.Records()[0].MonthKey)
}

func TestLoadHeaderOnly(t *testing.T) {
	header := strings.SplitN(sampleCSV, "\n", 2)[0] + "\n"
	ds, err := Load(context.Background(), ReaderSource("empty", strings.NewReader(header)), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())

	minDate, maxDate := ds.DateRange()
	assert.True(t, minDate.IsZero())
	assert.True(t, maxDate.IsZero())
}

func TestLoadEmptySource(t *testing.T) {
	_, err := Load(context.Background(), ReaderSource("blank", strings.NewReader("")), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLoadDelimiterOption(t *testing.T) {
	csv := strings.ReplaceAll(sampleCSV, ",", ";")
	ds, err := Load(context.Background(), ReaderSource("semi", strings.NewReader(csv)), &LoadOptions{Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Len())
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    rune
		wantErr bool
	}{
		{"comma", ",", ',', false},
		{"semicolon", ";", ';', false},
		{"tab", "\t", '\t', false},
		{"multi-byte rune", "§", '§', false},
		{"empty", "", 0, true},
		{"two characters", ";;", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDelimiter(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFailFastOnMalformedRow(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(string) string
		row    int
		column string
	}{
		{
			"bad date",
			func(s string) string { return strings.Replace(s, "2025-01-20", "20/01/2025", 1) },
			4, ColDate,
		},
		{
			"non-numeric quantity",
			func(s string) string { return strings.Replace(s, ",2,12.50,0.00,In-store", ",two,12.50,0.00,In-store", 1) },
			2, ColQuantity,
		},
		{
			"non-numeric price",
			func(s string) string { return strings.Replace(s, "45.00", "forty five", 1) },
			4, ColUnitPrice,
		},
		{
			"unknown channel",
			func(s string) string { return strings.Replace(s, "Online,UPI", "Phone,UPI", 1) },
			4, ColChannel,
		},
		{
			"duplicate transaction id",
			func(s string) string { return strings.Replace(s, "T005", "T004", 1) },
			6, ColTransactionID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := tt.mutate(sampleCSV)
			_, err := Load(context.Background(), ReaderSource("bad", strings.NewReader(csv)), nil)
			require.Error(t, err)

			var merr *MalformedRecordError
			require.True(t, errors.As(err, &merr), "got %v", err)
			assert.Equal(t, tt.row, merr.Row)
			assert.Equal(t, tt.column, merr.Column)
		})
	}
}

func TestNewDatasetRejectsDuplicateIDs(t *testing.T) {
	recs, err := Derive([]RawRecord{validRaw(), validRaw()})
	require.NoError(t, err)

	_, err = NewDataset(recs, "dup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate transaction id")
}
