// Copyright (c) 2024-2026 Neomantra Corp

package main

import (
	mcp_server "github.com/mark3labs/mcp-go/server"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools declares the get_book and list_sources tools, adapted
// from dbn-go-mcp's tool-registration shape.
func registerTools(mcpServer *mcp_server.MCPServer) error {
	getBookTool := mcp.NewTool("get_book",
		mcp.WithDescription("Returns the current buy/sell price-level book for a symbol/source"),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Symbol to query"),
		),
		mcp.WithString("source",
			mcp.Description("Order source name (default: DEFAULT)"),
		),
		mcp.WithString("depth",
			mcp.Description("Number of price levels to keep per side (default: 10)"),
		),
	)
	mcpServer.AddTool(getBookTool, getBookHandler)

	listSourcesTool := mcp.NewTool("list_sources",
		mcp.WithDescription("Lists every predefined order source and whether it supports a Full Order Book"),
	)
	mcpServer.AddTool(listSourcesTool, listSourcesHandler)

	return nil
}
