// Command datacheck validates a sales extract with the same loader the
// analytics binaries use and prints either the exact failure or a pass
// summary. Exit code 1 means the extract would not load.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/internal/logging"
	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

var (
	dataPath  = flag.String("data", "urbanmart_sales.csv", "Path to the sales extract to check")
	delimiter = flag.String("delimiter", ",", "Field delimiter of the extract")
)

func main() {
	flag.Parse()

	log := logging.New("error")
	ctx := logging.WithContext(context.Background(), log)

	comma, err := sales.ParseDelimiter(*delimiter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		os.Exit(1)
	}

	src := sales.FileSource(*dataPath)
	opts := &sales.LoadOptions{Comma: comma}

	ds, err := sales.Load(ctx, src, opts)
	if err != nil {
		reportFailure(err)
		os.Exit(1)
	}

	minDate, maxDate := ds.DateRange()
	fmt.Printf("PASS: %s\n", *dataPath)
	fmt.Printf("  rows:               %d\n", ds.Len())
	if ds.Len() > 0 {
		fmt.Printf("  date range:         %s to %s\n",
			minDate.Format(sales.DateLayout), maxDate.Format(sales.DateLayout))
	}
	fmt.Printf("  store locations:    %d\n", len(ds.StoreLocations()))
	fmt.Printf("  product categories: %d\n", len(ds.Categories()))
	fmt.Printf("  distinct bills:     %d\n", ds.DistinctBills())
	fmt.Printf("  distinct customers: %d\n", ds.DistinctCustomers())
	fmt.Printf("  distinct products:  %d\n", ds.DistinctProducts())
	fmt.Printf("  quarters:           %v\n", ds.Quarters())
}

// reportFailure prints the most specific diagnosis the error allows.
func reportFailure(err error) {
	var notFound *sales.SourceNotFoundError
	if errors.As(err, &notFound) {
		fmt.Fprintf(os.Stderr, "FAIL: source %q does not exist\n", notFound.Name)
		return
	}

	var malformed *sales.MalformedRecordError
	if errors.As(err, &malformed) {
		fmt.Fprintf(os.Stderr, "FAIL: row %d", malformed.Row)
		if malformed.Column != "" {
			fmt.Fprintf(os.Stderr, ", column %s", malformed.Column)
		}
		fmt.Fprintf(os.Stderr, ": %s\n", malformed.Reason)
		fmt.Fprintln(os.Stderr, "loading is fail-fast; later rows were not checked")
		return
	}

	fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
}
