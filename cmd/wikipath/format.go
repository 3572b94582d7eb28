package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wikipath/wikipath/client"
)

// Output formats.
const (
	formatJSONName  = "json"
	formatTableName = "table"
	formatQuietName = "quiet"
)

func formatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// formatJSONLine writes v as one compact line, for streamed output.
func formatJSONLine(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func formatTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			wd := 0
			if i < len(widths) {
				wd = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", wd, cell)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, wd := range widths {
		seps[i] = strings.Repeat("-", wd)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

// pathLine renders a path as "A -> B -> C".
func pathLine(p *client.ArticlePath) string {
	return strings.Join(p.Titles(), " -> ")
}

// writePath prints one path in the selected format.
func writePath(w io.Writer, p *client.ArticlePath) error {
	switch flagFmt {
	case formatQuietName:
		fmt.Fprintln(w, pathLine(p))
	case formatTableName:
		rows := make([][]string, len(p.Articles))
		for i, a := range p.Articles {
			rows[i] = []string{strconv.Itoa(i), strconv.FormatInt(a.ID, 10), a.Title, a.Link}
		}
		formatTable(w, []string{"STEP", "ID", "TITLE", "LINK"}, rows)
	default:
		return formatJSON(w, p)
	}
	return nil
}

// destinationRow is the table row for one destination of a multi query.
func destinationRow(dp client.DestinationPath) []string {
	switch {
	case dp.Error != "":
		return []string{dp.Destination, "-", "error: " + dp.Error}
	case dp.Path == nil:
		return []string{dp.Destination, "-", "no path"}
	default:
		return []string{dp.Destination, strconv.Itoa(dp.Path.Clicks()), pathLine(dp.Path)}
	}
}

// destinationLine is the quiet rendering of one destination.
func destinationLine(dp client.DestinationPath) string {
	row := destinationRow(dp)
	return row[0] + ": " + row[2]
}
