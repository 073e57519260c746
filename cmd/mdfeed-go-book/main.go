// Copyright (c) 2024-2026 Neomantra Corp
//
// Drives a synthetic order stream for one symbol/source through the
// Indexed Transaction Model and the market-depth engine, printing the
// resulting price-level book to stdout.

package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/neomantra/ymdflag"
	"github.com/relvacode/iso8601"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/pflag"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
	"github.com/NimbleMarkets/mdfeed-go/model"
)

///////////////////////////////////////////////////////////////////////////////

type Config struct {
	Symbol     string
	SourceName string
	DepthLimit int
	AggMillis  int64
	FromTime   time.Time
	Date       time.Time
	OrderCount int
	AsJSON     bool
}

///////////////////////////////////////////////////////////////////////////////

func main() {
	var config Config
	var fromTimeArg string
	var dateArg string
	var showHelp bool

	pflag.StringVarP(&config.Symbol, "symbol", "s", "AAPL", "Symbol to build a synthetic book for")
	pflag.StringVarP(&config.SourceName, "source", "o", "NTV", "Order source name")
	pflag.IntVarP(&config.DepthLimit, "depth", "d", 10, "Number of price levels to keep per side")
	pflag.Int64VarP(&config.AggMillis, "agg-ms", "a", 0, "Aggregation window in milliseconds (0 = notify on every commit)")
	pflag.StringVarP(&fromTimeArg, "from-time", "t", "", "Time-Series from-time as ISO 8601 (unused by the book model, carried for parity with --from-time CLIs)")
	pflag.StringVarP(&dateArg, "date", "y", "", "Synthetic trading day, YYYYMMDD (default: today)")
	pflag.IntVarP(&config.OrderCount, "count", "n", 20, "Number of synthetic orders to generate")
	pflag.BoolVarP(&config.AsJSON, "json", "j", false, "Print each book snapshot as JSON instead of a table")
	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.Parse()

	if showHelp {
		fmt.Fprintf(os.Stdout, "usage: %s [opts]\n\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(0)
	}

	if fromTimeArg != "" {
		t, err := iso8601.ParseString(fromTimeArg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse --from-time as ISO 8601: %s\n", err.Error())
			os.Exit(1)
		}
		config.FromTime = t
	}

	config.Date = time.Now()
	if dateArg != "" {
		t, err := time.Parse("20060102", dateArg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse --date as YYYYMMDD: %s\n", err.Error())
			os.Exit(1)
		}
		config.Date = t
	}

	if err := run(config); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}

///////////////////////////////////////////////////////////////////////////////

type bookSnapshot struct {
	Symbol string             `json:"symbol"`
	Source string             `json:"source"`
	Buy    []model.PriceLevel `json:"buy"`
	Sell   []model.PriceLevel `json:"sell"`
	AsOf   time.Time          `json:"as_of"`
}

func run(config Config) error {
	source, err := mdfeed.SourceByName(config.SourceName)
	if err != nil {
		return fmt.Errorf("invalid --source: %w", err)
	}

	depth, err := model.NewMarketDepthModel(model.DepthConfig{
		Symbol:     config.Symbol,
		Source:     source,
		DepthLimit: config.DepthLimit,
		AggMillis:  config.AggMillis,
		Listener: func(buy, sell []model.PriceLevel) {
			printBook(config, buy, sell)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create MarketDepthModel: %w", err)
	}
	defer depth.Close()

	tx, err := model.NewIndexedTxModel(model.Config{
		Listener: func(src mdfeed.Source, events []mdfeed.IndexedEvent, isSnapshot bool) {
			orders := make([]model.OrderLike, 0, len(events))
			for _, e := range events {
				if o, ok := e.(model.OrderLike); ok {
					orders = append(orders, o)
				}
			}
			depth.ProcessCommit(src, orders, isSnapshot)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create IndexedTxModel: %w", err)
	}
	defer tx.Close()

	events := syntheticOrders(config, source)
	tx.ProcessEvents(events)
	return nil
}

// syntheticOrders builds a single snapshot-then-commit transaction of
// random buy/sell orders seeded off config.Date, for demo purposes in
// the absence of a live market-data connection.
func syntheticOrders(config Config, source mdfeed.Source) []mdfeed.IndexedEvent {
	rng := rand.New(rand.NewSource(int64(ymdflag.TimeToYMD(config.Date))))
	basePrice := 100.0

	events := make([]mdfeed.IndexedEvent, 0, config.OrderCount)
	for i := 0; i < config.OrderCount; i++ {
		o := mdfeed.Order{}
		o.EventSymbol = config.Symbol
		o.EventTime = config.Date
		o.Index = int64(i + 1)
		o.SetSource(source)

		side := mdfeed.Side_Buy
		offset := -rng.Float64() * 2
		if i%2 == 1 {
			side = mdfeed.Side_Sell
			offset = rng.Float64() * 2
		}
		o.Side = side
		o.Price = basePrice + offset
		o.Size = float64(1 + rng.Intn(10))

		switch {
		case i == 0:
			o.EventFlags = mdfeed.SnapshotBegin
		case i == config.OrderCount-1:
			o.EventFlags = mdfeed.SnapshotEnd
		}
		events = append(events, o)
	}
	return events
}

func printBook(config Config, buy, sell []model.PriceLevel) {
	if config.AsJSON {
		snap := bookSnapshot{
			Symbol: config.Symbol,
			Source: config.SourceName,
			Buy:    buy,
			Sell:   sell,
			AsOf:   time.Now(),
		}
		b, err := json.Marshal(snap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to marshal book: %s\n", err.Error())
			return
		}
		fmt.Fprintln(os.Stdout, string(b))
		return
	}

	fmt.Fprintf(os.Stdout, "%s@%s book:\n", config.Symbol, config.SourceName)
	n := len(buy)
	if len(sell) > n {
		n = len(sell)
	}
	for i := 0; i < n; i++ {
		var buyCell, sellCell string
		if i < len(buy) {
			buyCell = fmt.Sprintf("%8.2f x %-6.0f", buy[i].Price, buy[i].Size)
		}
		if i < len(sell) {
			sellCell = fmt.Sprintf("%8.2f x %-6.0f", sell[i].Price, sell[i].Size)
		}
		fmt.Fprintf(os.Stdout, "  %-20s | %-20s\n", buyCell, sellCell)
	}
}
