package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// Output formats.
const (
	formatTable    = "table"
	formatJSON     = "json"
	formatCSV      = "csv"
	formatMarkdown = "markdown"
)

// format returns the configured output format.
func (a *app) format() string {
	return strings.ToLower(a.config.GetString(cfgKeyFormat))
}

func renderSnapshot(w io.Writer, snap types.Snapshot, format string) error {
	if format == formatJSON {
		return renderJSON(w, snap)
	}
	if len(snap.Rows) == 0 && format == formatTable {
		_, _ = fmt.Fprintf(w, "%s (0 rows)\n", snap.Table)
		return nil
	}

	header := make(table.Row, len(snap.Columns))
	for i, c := range snap.Columns {
		header[i] = c.Name
	}
	rows := make([]table.Row, len(snap.Rows))
	for i, r := range snap.Rows {
		row := make(table.Row, len(r))
		for j, v := range r {
			row[j] = v
		}
		rows[i] = row
	}
	return renderGrid(w, header, rows, format)
}

func renderTables(w io.Writer, tables []string, format string) error {
	if format == formatJSON {
		return renderJSON(w, tables)
	}
	if len(tables) == 0 && format == formatTable {
		_, _ = fmt.Fprintln(w, "(no tables)")
		return nil
	}

	rows := make([]table.Row, len(tables))
	for i, name := range tables {
		rows[i] = table.Row{name}
	}
	return renderGrid(w, table.Row{"table"}, rows, format)
}

func renderGrid(w io.Writer, header table.Row, rows []table.Row, format string) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)

	switch format {
	case formatTable:
		t.Render()
	case formatCSV:
		t.RenderCSV()
	case formatMarkdown, "md":
		t.RenderMarkdown()
	default:
		return fmt.Errorf("unknown format %q (valid: table, json, csv, markdown)", format)
	}
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
