package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/1broseidon/winkit/window"
)

type monitorRow struct {
	Index    int    `json:"index"`
	Name     string `json:"name,omitempty"`
	NativeID string `json:"native_id"`
	Width    uint32 `json:"width"`
	Height   uint32 `json:"height"`
	Primary  bool   `json:"primary"`
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var bf backendFlags
	bf.register(fs)
	asJSON := fs.Bool("json", false, "Print JSON (default when stdout is not a terminal)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winkit monitors [--json] [--backend NAME] [--display DISPLAY]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List monitors known to the backend. The primary monitor is marked.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "monitors takes no arguments")
		fs.Usage()
		return 2
	}

	be, _, err := bf.open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	rows := collectMonitors(window.AvailableMonitorsOf(be), window.PrimaryMonitorOf(be))

	if *asJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := writeMonitorsJSON(os.Stdout, rows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	fmt.Println(renderMonitorTable(rows))
	return 0
}

func collectMonitors(it *window.MonitorIter, primary window.MonitorID) []monitorRow {
	lower, _, _ := it.SizeHint()
	rows := make([]monitorRow, 0, lower)
	for mon := range it.All() {
		name, _ := mon.Name()
		w, h := mon.Dimensions()
		rows = append(rows, monitorRow{
			Index:    len(rows),
			Name:     name,
			NativeID: mon.NativeIdentifier().String(),
			Width:    w,
			Height:   h,
			Primary:  mon.Backend() == primary.Backend(),
		})
	}
	return rows
}

func writeMonitorsJSON(w io.Writer, rows []monitorRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func renderMonitorTable(rows []monitorRow) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	primaryStyle := cellStyle.Foreground(lipgloss.Color("42"))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers("#", "NAME", "NATIVE ID", "SIZE", "PRIMARY").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(rows) && rows[row].Primary:
				return primaryStyle
			default:
				return cellStyle
			}
		})

	for _, r := range rows {
		name := r.Name
		if name == "" {
			name = "-"
		}
		primary := ""
		if r.Primary {
			primary = "yes"
		}
		t.Row(
			strconv.Itoa(r.Index),
			name,
			r.NativeID,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			primary,
		)
	}
	return t.Render()
}
