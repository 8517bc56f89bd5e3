// Command urbanmart is the interactive terminal front end of the analytics
// engine: a menu of canned queries answered from the currently loaded sales
// extract.
package main

import (
	"context"
	"flag"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/internal/logging"
	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

var (
	dataPath  = flag.String("data", "urbanmart_sales.csv", "Path to the sales extract")
	delimiter = flag.String("delimiter", ",", "Field delimiter of the extract")
	logLevel  = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	log := logging.New(*logLevel)
	ctx := logging.WithContext(context.Background(), log)

	comma, err := sales.ParseDelimiter(*delimiter)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid delimiter")
	}

	src := sales.FileSource(*dataPath)
	opts := &sales.LoadOptions{Comma: comma}

	store := &sales.Store{}
	if _, err := store.Reload(ctx, src, opts); err != nil {
		log.Fatal().Err(err).Str("path", *dataPath).Msg("loading sales extract failed")
	}

	p := tea.NewProgram(newModel(ctx, store, src, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal().Err(err).Msg("terminal UI failed")
	}
}
