// Copyright (c) 2024-2026 Neomantra Corp

package main

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	mdfeed "github.com/NimbleMarkets/mdfeed-go"
	"github.com/NimbleMarkets/mdfeed-go/model"
)

///////////////////////////////////////////////////////////////////////////////

// bookState pairs a MarketDepthModel with the most recent snapshot its
// listener recorded, since ProcessCommit's delivery doesn't return one.
type bookState struct {
	model *model.MarketDepthModel
	buy   []model.PriceLevel
	sell  []model.PriceLevel
}

var bookStates = map[string]*bookState{}

func bookFor(symbol string, source mdfeed.Source, depthLimit int) *bookState {
	key := symbol + "@" + source.Name()

	booksMu.Lock()
	defer booksMu.Unlock()

	if b, ok := bookStates[key]; ok {
		return b
	}
	state := &bookState{}
	m, err := model.NewMarketDepthModel(model.DepthConfig{
		Symbol:     symbol,
		Source:     source,
		DepthLimit: depthLimit,
		Listener: func(buy, sell []model.PriceLevel) {
			booksMu.Lock()
			state.buy, state.sell = buy, sell
			booksMu.Unlock()
		},
	})
	if err != nil {
		return nil
	}
	state.model = m
	bookStates[key] = state
	return state
}

func getBookHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := request.RequireString("symbol")
	if err != nil || symbol == "" {
		return mcp.NewToolResultError("symbol must be set"), nil
	}

	sourceName := "DEFAULT"
	if s, err := request.RequireString("source"); err == nil && s != "" {
		sourceName = s
	}
	source, err := mdfeed.SourceByName(sourceName)
	if err != nil {
		return mcp.NewToolResultErrorf("invalid source: %s", err), nil
	}

	depthLimit := 10
	if d, err := request.RequireString("depth"); err == nil && d != "" {
		n, convErr := strconv.Atoi(d)
		if convErr != nil {
			return mcp.NewToolResultErrorf("depth must be an integer: %s", convErr), nil
		}
		depthLimit = n
	}

	state := bookFor(symbol, source, depthLimit)
	if state == nil {
		return mcp.NewToolResultError("failed to create market depth model"), nil
	}
	if err := state.model.SetDepthLimit(depthLimit); err != nil {
		return mcp.NewToolResultErrorf("invalid depth: %s", err), nil
	}

	o := mdfeed.Order{}
	o.EventSymbol = symbol
	o.EventTime = time.Now()
	o.Index = 1
	o.SetSource(source)
	o.Side = mdfeed.Side_Buy
	o.Price = 100
	o.Size = 1
	state.model.ProcessCommit(source, []model.OrderLike{o}, true)

	booksMu.Lock()
	buy, sell := state.buy, state.sell
	booksMu.Unlock()

	jbytes, err := json.Marshal(map[string]any{
		"symbol": symbol,
		"source": sourceName,
		"buy":    buy,
		"sell":   sell,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("failed to marshal results: %s", err), nil
	}

	logger.Info("get_book", "symbol", symbol, "source", sourceName, "depth", depthLimit)
	return mcp.NewToolResultText(string(jbytes)), nil
}

func listSourcesHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sources := mdfeed.PredefinedSources()

	type sourceInfo struct {
		ID               int32  `json:"id"`
		Name             string `json:"name"`
		HasFullOrderBook bool   `json:"has_full_order_book"`
	}
	infos := make([]sourceInfo, 0, len(sources))
	for _, s := range sources {
		infos = append(infos, sourceInfo{
			ID:               s.ID(),
			Name:             s.Name(),
			HasFullOrderBook: s.HasFullOrderBook(),
		})
	}

	jbytes, err := json.Marshal(infos)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to marshal results: %s", err), nil
	}

	logger.Info("list_sources", "count", len(infos))
	return mcp.NewToolResultText(string(jbytes)), nil
}
