// Command datagen writes a synthetic UrbanMart sales extract for demos and
// load testing. Output is deterministic for a given seed, so fixtures can
// be regenerated byte-for-byte.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

var (
	rows    = flag.Int("rows", 5000, "Number of line items to generate")
	seed    = flag.Int64("seed", 42, "Random seed; same seed, same file")
	outPath = flag.String("out", "urbanmart_sales.csv", "Output CSV path")
	start   = flag.String("start", "2025-01-01", "First transaction date (YYYY-MM-DD)")
	end     = flag.String("end", "2025-12-31", "Last transaction date (YYYY-MM-DD)")
)

type storeInfo struct {
	id       string
	location string
}

type productInfo struct {
	id       string
	name     string
	category string
	price    float64
}

var storeCatalog = []storeInfo{
	{"ST-001", "Downtown"},
	{"ST-002", "Uptown"},
	{"ST-003", "Riverside"},
	{"ST-004", "Airport"},
	{"ST-005", "Mall"},
}

var productCatalog = []productInfo{
	{"P-0101", "Espresso Beans 1kg", "Grocery", 18.50},
	{"P-0102", "Organic Milk 1L", "Grocery", 2.40},
	{"P-0103", "Sourdough Loaf", "Grocery", 4.75},
	{"P-0201", "Wireless Earbuds", "Electronics", 59.99},
	{"P-0202", "USB-C Charger", "Electronics", 24.90},
	{"P-0203", "Bluetooth Speaker", "Electronics", 45.00},
	{"P-0301", "Cotton T-Shirt", "Apparel", 12.99},
	{"P-0302", "Denim Jeans", "Apparel", 39.95},
	{"P-0303", "Wool Scarf", "Apparel", 21.50},
	{"P-0401", "Scented Candle", "Home", 9.99},
	{"P-0402", "Ceramic Mug Set", "Home", 17.25},
	{"P-0501", "Vitamin C 500mg", "Health", 11.80},
	{"P-0502", "Hand Sanitizer", "Health", 3.20},
}

var segments = []string{"Regular", "Premium", "Student", "Senior"}
var payments = []string{"Credit Card", "Debit Card", "Cash", "Mobile Wallet"}
var channels = []string{string(sales.ChannelInStore), string(sales.ChannelOnline)}

func main() {
	flag.Parse()
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime)

	seedVal := envInt64("URBANMART_SEED", *seed)
	rowCount := int(envInt64("URBANMART_ROWS", int64(*rows)))

	startDate, err := time.Parse(sales.DateLayout, *start)
	if err != nil {
		log.Fatalf("Invalid start date %q: use YYYY-MM-DD", *start)
	}
	endDate, err := time.Parse(sales.DateLayout, *end)
	if err != nil {
		log.Fatalf("Invalid end date %q: use YYYY-MM-DD", *end)
	}
	if startDate.After(endDate) {
		log.Fatalf("Start date %s is after end date %s", *start, *end)
	}
	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(seedVal))
	written, err := generate(f, rng, rowCount, startDate, endDate)
	if err != nil {
		log.Fatalf("Failed to write extract: %v", err)
	}
	log.Printf("Wrote %d line items to %s (seed %d)", written, *outPath, seedVal)
}

// generate writes the header plus rowCount synthetic line items to w.
// Output is a pure function of rng, so a seeded source reproduces the file
// exactly; the loader accepts every row it emits.
func generate(w io.Writer, rng *rand.Rand, rowCount int, startDate, endDate time.Time) (int, error) {
	uuid.SetRand(rng) // deterministic IDs for a given seed
	days := int(endDate.Sub(startDate).Hours()/24) + 1

	cw := csv.NewWriter(w)
	if err := cw.Write(sales.RequiredColumns); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	// Customers repeat across bills so rankings have something to rank.
	customers := make([]string, 200)
	customerSegment := make([]string, len(customers))
	for i := range customers {
		customers[i] = fmt.Sprintf("C-%04d", i+1)
		customerSegment[i] = segments[rng.Intn(len(segments))]
	}

	written := 0
	for written < rowCount {
		// One bill: a customer buys 1-4 line items at one store on one day.
		billID := uuid.NewString()
		ci := rng.Intn(len(customers))
		store := storeCatalog[rng.Intn(len(storeCatalog))]
		date := startDate.AddDate(0, 0, rng.Intn(days))
		channel := channels[rng.Intn(len(channels))]
		payment := payments[rng.Intn(len(payments))]

		items := rng.Intn(4) + 1
		for i := 0; i < items && written < rowCount; i++ {
			p := productCatalog[rng.Intn(len(productCatalog))]
			qty := rng.Intn(5) + 1

			// Roughly a quarter of lines carry a discount of up to 30%
			// of gross.
			discount := 0.0
			if rng.Intn(4) == 0 {
				discount = float64(qty) * p.price * 0.3 * rng.Float64()
			}

			row := []string{
				uuid.NewString(),
				billID,
				date.Format(sales.DateLayout),
				store.id,
				store.location,
				customers[ci],
				customerSegment[ci],
				p.id,
				p.name,
				p.category,
				strconv.Itoa(qty),
				strconv.FormatFloat(p.price, 'f', 2, 64),
				strconv.FormatFloat(discount, 'f', 2, 64),
				channel,
				payment,
			}
			if err := cw.Write(row); err != nil {
				return written, fmt.Errorf("writing row: %w", err)
			}
			written++
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return written, fmt.Errorf("flushing output: %w", err)
	}
	return written, nil
}

// envInt64 reads an integer environment override, falling back to def when
// unset or unparsable.
func envInt64(key string, def int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		log.Printf("Ignoring %s=%q: not an integer", key, val)
		return def
	}
	return n
}
