package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/scenra/scenra/internal/domain"
	"github.com/scenra/scenra/internal/tui/components"
	"github.com/scenra/scenra/internal/tui/styles"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const maxTitleWidth = 48

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderItems lays out catalog items as a table. isFavorite may be nil.
func renderItems(items []domain.CatalogItem, isFavorite func(domain.CatalogItem) bool) string {
	if len(items) == 0 {
		return "No se encontraron resultados."
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		mark := ""
		if isFavorite != nil && isFavorite(it) {
			mark = "♥"
		}
		poster := "sí"
		if it.PosterPath == "" {
			poster = components.PosterPlaceholder
		}
		rows = append(rows, []string{
			strconv.FormatInt(it.ID, 10),
			it.Kind.Label(),
			styles.Truncate(it.Title, maxTitleWidth),
			it.FormattedRating(),
			poster,
			mark,
		})
	}
	return renderTable(
		[]string{"ID", "Tipo", "Título", "Nota", "Póster", "Mi lista"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	)
}
