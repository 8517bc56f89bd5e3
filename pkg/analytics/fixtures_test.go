package analytics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

// fixtureCSV covers two stores, three categories, both channels and two
// months; line revenues are 25.00, 7.50, 40.00, 35.00 and 16.00.
const fixtureCSV = `transaction_id,bill_id,date,store_id,store_location,customer_id,customer_segment,product_id,product_name,product_category,quantity,unit_price,discount_applied,channel,payment_method
T001,B001,2025-01-15,S01,Downtown,C001,Regular,P01,Espresso Beans,Groceries,2,12.50,0.00,In-store,Credit Card
T002,B001,2025-01-15,S01,Downtown,C001,Regular,P02,Olive Oil,Groceries,1,8.75,1.25,In-store,Credit Card
T003,B002,2025-01-20,S02,Riverside,C002,Premium,P03,Desk Lamp,Home,1,45.00,5.00,Online,UPI
T004,B003,2025-02-03,S01,Downtown,C003,New,P01,Espresso Beans,Groceries,3,12.50,2.50,Online,Debit Card
T005,B004,2025-02-10,S02,Riverside,C002,Premium,P04,Notebook,Stationery,5,3.20,0.00,In-store,Cash
`

func fixtureRecords(t *testing.T) []sales.Record {
	t.Helper()
	ds, err := sales.Load(context.Background(), sales.ReaderSource("fixture", strings.NewReader(fixtureCSV)), nil)
	require.NoError(t, err)
	return ds.Records()
}

func ids(records []sales.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.TransactionID)
	}
	return out
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(sales.DateLayout, s)
	require.NoError(t, err)
	return d
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }
