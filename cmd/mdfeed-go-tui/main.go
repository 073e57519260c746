// Copyright (c) 2024-2026 Neomantra Corp

package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/pflag"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
	"github.com/NimbleMarkets/mdfeed-go/internal/tui"
	"github.com/NimbleMarkets/mdfeed-go/model"
)

///////////////////////////////////////////////////////////////////////////////

func main() {
	var symbol, sourceName string
	var depthLimit int
	var aggMillis int64
	var showHelp bool

	pflag.StringVarP(&symbol, "symbol", "s", "AAPL", "Symbol to watch")
	pflag.StringVarP(&sourceName, "source", "o", "NTV", "Order source name")
	pflag.IntVarP(&depthLimit, "depth", "d", 10, "Number of price levels to keep per side")
	pflag.Int64VarP(&aggMillis, "agg-ms", "a", 250, "Aggregation window in milliseconds")
	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.Parse()

	if showHelp {
		fmt.Fprintf(os.Stdout, "usage: %s [options]\n\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(0)
	}

	source, err := mdfeed.SourceByName(sourceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --source: %s\n", err.Error())
		os.Exit(1)
	}

	ch := make(chan tui.BookMsg, 1)
	depth, err := model.NewMarketDepthModel(model.DepthConfig{
		Symbol:     symbol,
		Source:     source,
		DepthLimit: depthLimit,
		AggMillis:  aggMillis,
		Listener: func(buy, sell []model.PriceLevel) {
			ch <- tui.BookMsg{Buy: buy, Sell: sell}
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create MarketDepthModel: %s\n", err.Error())
		os.Exit(1)
	}
	defer depth.Close()

	go feedSyntheticOrders(symbol, source, depth)

	err = tui.Run(tui.Config{Symbol: symbol, Source: sourceName}, ch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
}

///////////////////////////////////////////////////////////////////////////////

// feedSyntheticOrders trickles random orders into depth, standing in
// for a live market-data feed in this sample viewer.
func feedSyntheticOrders(symbol string, source mdfeed.Source, depth *model.MarketDepthModel) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	basePrice := 100.0
	var index int64

	for {
		index++
		o := mdfeed.Order{}
		o.EventSymbol = symbol
		o.EventTime = time.Now()
		o.Index = index
		o.SetSource(source)

		if rng.Intn(2) == 0 {
			o.Side = mdfeed.Side_Buy
			o.Price = basePrice - rng.Float64()*2
		} else {
			o.Side = mdfeed.Side_Sell
			o.Price = basePrice + rng.Float64()*2
		}
		o.Size = float64(1 + rng.Intn(10))

		depth.ProcessCommit(source, []model.OrderLike{o}, false)
		time.Sleep(200 * time.Millisecond)
	}
}
