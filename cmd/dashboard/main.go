// Command dashboard generates a static analytics report from a sales
// extract: markdown summary tables, CSV exports and PNG charts, all over
// one filtered view of the data. With -watch it keeps running and
// regenerates the report whenever the extract changes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/KartikJoshi23/UrbanMart-Dashboard/internal/logging"
	"github.com/KartikJoshi23/UrbanMart-Dashboard/internal/timings"
	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/analytics"
	"github.com/KartikJoshi23/UrbanMart-Dashboard/pkg/sales"
)

// Command line flags
var (
	dataPath   = flag.String("data", "urbanmart_sales.csv", "Path to the sales extract")
	outputPath = flag.String("out", "report", "Directory to store report outputs")
	format     = flag.String("format", "all", "Output format: text, csv, charts, all")
	configPath = flag.String("config", "", "Optional JSON report definition (filter + top-n)")
	delimiter  = flag.String("delimiter", ",", "Field delimiter of the extract")
	logLevel   = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	watch      = flag.Bool("watch", false, "Keep running and regenerate when the extract changes")

	startDate  = flag.String("start", "", "Start date filter (YYYY-MM-DD, inclusive)")
	endDate    = flag.String("end", "", "End date filter (YYYY-MM-DD, inclusive)")
	stores     = flag.String("stores", "", "Comma-separated store locations to include")
	channel    = flag.String("channel", analytics.ChannelAll, "Sales channel: In-store, Online or All")
	categories = flag.String("categories", "", "Comma-separated product categories to include")
	segments   = flag.String("segments", "", "Comma-separated customer segments to include")
	quarters   = flag.String("quarters", "", "Comma-separated quarters to include, e.g. 2025-Q1")
	topN       = flag.Int("top", 10, "Entries in the top-product and top-customer rankings")
)

// ReportConfig is the JSON report definition accepted via -config. Filter
// flags given explicitly on the command line win over config values.
type ReportConfig struct {
	Start      string   `json:"start,omitempty"`
	End        string   `json:"end,omitempty"`
	Stores     []string `json:"stores,omitempty"`
	Channel    string   `json:"channel,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Segments   []string `json:"segments,omitempty"`
	Quarters   []string `json:"quarters,omitempty"`
	Top        int      `json:"top,omitempty"`
}

func main() {
	flag.Parse()

	log := logging.New(*logLevel)
	ctx := logging.WithContext(context.Background(), log)

	spec, top, err := buildSpec()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid report definition")
	}
	if err := spec.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid filter")
	}

	comma, err := sales.ParseDelimiter(*delimiter)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid delimiter")
	}

	store := &sales.Store{}
	src := sales.FileSource(*dataPath)
	opts := &sales.LoadOptions{Comma: comma}

	gen := &generator{
		store:  store,
		src:    src,
		opts:   opts,
		spec:   spec,
		top:    top,
		outDir: *outputPath,
		format: *format,
	}

	if err := gen.run(ctx); err != nil {
		log.Fatal().Err(err).Msg("report generation failed")
	}

	if *watch {
		if err := watchLoop(ctx, gen, *dataPath); err != nil {
			log.Fatal().Err(err).Msg("watch loop failed")
		}
	}
}

// buildSpec merges the optional JSON config with the filter flags into a
// FilterSpec. Flags set explicitly on the command line override the config.
func buildSpec() (analytics.FilterSpec, int, error) {
	var cfg ReportConfig
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return analytics.FilterSpec{}, 0, fmt.Errorf("reading config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return analytics.FilterSpec{}, 0, fmt.Errorf("parsing config %q: %w", *configPath, err)
		}
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	pick := func(name, flagVal, cfgVal string) string {
		if set[name] || cfgVal == "" {
			return flagVal
		}
		return cfgVal
	}

	spec := analytics.FilterSpec{
		StoreLocations:   splitList(pick("stores", *stores, strings.Join(cfg.Stores, ","))),
		Channel:          pick("channel", *channel, cfg.Channel),
		Categories:       splitList(pick("categories", *categories, strings.Join(cfg.Categories, ","))),
		CustomerSegments: splitList(pick("segments", *segments, strings.Join(cfg.Segments, ","))),
		Quarters:         splitList(pick("quarters", *quarters, strings.Join(cfg.Quarters, ","))),
	}

	start := pick("start", *startDate, cfg.Start)
	end := pick("end", *endDate, cfg.End)
	if start != "" || end != "" {
		var dr analytics.DateRange
		var err error
		if start != "" {
			if dr.Start, err = time.Parse(sales.DateLayout, start); err != nil {
				return spec, 0, fmt.Errorf("invalid start date %q: use YYYY-MM-DD", start)
			}
		}
		if end != "" {
			if dr.End, err = time.Parse(sales.DateLayout, end); err != nil {
				return spec, 0, fmt.Errorf("invalid end date %q: use YYYY-MM-DD", end)
			}
		} else {
			// open-ended range: far future keeps the inclusive contract
			dr.End = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
		}
		spec.DateRange = &dr
	}

	top := *topN
	if !set["top"] && cfg.Top > 0 {
		top = cfg.Top
	}
	return spec, top, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// generator holds everything one report run needs, so the watch loop can
// rerun it on demand.
type generator struct {
	store  *sales.Store
	src    sales.Source
	opts   *sales.LoadOptions
	spec   analytics.FilterSpec
	top    int
	outDir string
	format string
}

// run loads (or reloads) the extract and writes the full report.
func (g *generator) run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	collector := timings.NewCollector()
	runID := uuid.NewString()

	err := collector.Measure(timings.StageLoad, func() error {
		_, err := g.store.Reload(ctx, g.src, g.opts)
		return err
	})
	if err != nil {
		return fmt.Errorf("loading extract: %w", err)
	}
	ds := g.store.Current()

	var filtered []sales.Record
	err = collector.Measure(timings.StageFilter, func() error {
		var ferr error
		filtered, ferr = analytics.Filter(ds.Records(), g.spec)
		return ferr
	})
	if err != nil {
		return err
	}
	if len(filtered) == 0 {
		log.Warn().Str("source", ds.Source()).Msg("filter matched no records; report will carry zero values")
	}

	var rep *report
	_ = collector.Measure(timings.StageAggregate, func() error {
		rep = buildReport(ds, filtered, g.spec, g.top, runID)
		return nil
	})

	if g.format == "text" || g.format == "all" {
		if err := collector.Measure(timings.StageRender, func() error {
			return rep.writeSummary(g.outDir)
		}); err != nil {
			return err
		}
	}
	if g.format == "csv" || g.format == "all" {
		if err := collector.Measure(timings.StageExport, func() error {
			return rep.writeCSVs(g.outDir)
		}); err != nil {
			return err
		}
	}
	if g.format == "charts" || g.format == "all" {
		if err := collector.Measure(timings.StageRender, func() error {
			return rep.writeCharts(ctx, g.outDir)
		}); err != nil {
			return err
		}
	}

	for _, s := range collector.Summary() {
		log.Debug().
			Str("stage", string(s.Stage)).
			Int("calls", s.Calls).
			Dur("total", s.Total).
			Msg("stage timing")
	}
	log.Info().
		Str("report_id", runID).
		Str("dataset_id", ds.ID()).
		Int("rows_total", ds.Len()).
		Int("rows_filtered", len(filtered)).
		Str("out", g.outDir).
		Dur("elapsed", collector.Elapsed()).
		Msg("report generated")
	return nil
}

// watchLoop regenerates the report whenever the extract file is rewritten.
// Each regeneration is a full reload with an atomic snapshot swap; a failed
// reload keeps the previous report on disk and the previous snapshot live.
func watchLoop(ctx context.Context, gen *generator, path string) error {
	log := logging.FromContext(ctx)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and exporters often replace the file,
	// which drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}
	target := filepath.Clean(path)
	log.Info().Str("path", target).Msg("watching extract for changes")

	// Writers emit bursts of events; the timer coalesces each burst into
	// one regeneration.
	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("watch stopped")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			debounce.Reset(250 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		case <-debounce.C:
			log.Info().Str("path", target).Msg("extract changed, regenerating report")
			if err := gen.run(ctx); err != nil {
				log.Error().Err(err).Msg("regeneration failed, keeping previous report")
			}
		}
	}
}
