// Copyright (c) 2024-2026 Neomantra Corp
//
// Adapted from the live publisher-list page (former publishers.go): the
// same tea.Cmd-returns-Msg/bubbles.table idiom, now driven by a
// continuously-updating channel of price levels instead of a one-shot
// HTTP fetch.

package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/NimbleMarkets/mdfeed-go/model"
)

// BookMsg carries one depth-model update; the page's channel is re-read
// by waitForBook after every delivery so it keeps listening for the next one.
type BookMsg struct {
	Buy  []model.PriceLevel
	Sell []model.PriceLevel
}

func waitForBook(ch <-chan BookMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// BookPageModel renders a live two-column price-level book: buy levels
// on the left sorted best-first, sell levels on the right.
type BookPageModel struct {
	symbol string
	ch     <-chan BookMsg

	buyTable  table.Model
	sellTable table.Model

	width  int
	height int
}

func NewBookPage(symbol string, ch <-chan BookMsg) BookPageModel {
	columns := []table.Column{
		{Title: "Price", Width: 12},
		{Title: "Size", Width: 14},
	}
	buyTable := table.New(table.WithColumns(columns), table.WithStyles(nimbleTableStyles))
	sellTable := table.New(table.WithColumns(columns), table.WithStyles(nimbleTableStyles))

	return BookPageModel{
		symbol:    symbol,
		ch:        ch,
		buyTable:  buyTable,
		sellTable: sellTable,
		width:     20,
		height:    10,
	}
}

//////////////////////////////////////////////////////////////////////////////
// BubbleTea interface

func (m BookPageModel) Init() tea.Cmd {
	return waitForBook(m.ch)
}

func (m BookPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		half := (msg.Width - 4) / 2
		m.buyTable.SetWidth(half)
		m.sellTable.SetWidth(half)
		m.buyTable.SetHeight(msg.Height - 6)
		m.sellTable.SetHeight(msg.Height - 6)

	case BookMsg:
		m.buyTable.SetRows(levelRows(msg.Buy))
		m.sellTable.SetRows(levelRows(msg.Sell))
		return m, waitForBook(m.ch)
	}
	return m, nil
}

func levelRows(levels []model.PriceLevel) []table.Row {
	rows := make([]table.Row, 0, len(levels))
	for _, lvl := range levels {
		rows = append(rows, table.Row{
			strconv.FormatFloat(lvl.Price, 'f', 4, 64),
			humanize.Commaf(lvl.Size),
		})
	}
	return rows
}

func (m BookPageModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorYellow).Render(fmt.Sprintf(" %s ", m.symbol))
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		nimbleBorderStyle.Render(m.buyTable.View()),
		nimbleBorderStyle.Render(m.sellTable.View()),
	)
	return title + "\n" + row
}
