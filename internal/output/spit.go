// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/profcache/internal/config"
	"github.com/tfctl/profcache/internal/filters"
)

// Dataset is a list of rows keyed by column name.
type Dataset []map[string]interface{}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		switch value.(type) {
		case int, bool:
			// Zero counts and false flags are values, not blanks.
		default:
			return emptyValue[0]
		}
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	case time.Time:
		return humanize.Time(value)
	case fmt.Stringer:
		return value.String()
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// SliceDiceSpit filters a dataset by the command's --filter spec, sorts it by
// --sort and renders it per --output: "json" and "yaml" emit the rows,
// anything else a table of columns. Output is written to w. If w is nil,
// os.Stdout is used.
func SliceDiceSpit(dataset Dataset, columns []string, cmd *cli.Command, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	dataset = filters.FilterDataset(dataset, cmd.String("filter"))
	SortDataset(dataset, cmd.String("sort"))

	switch cmd.String("output") {
	case "json":
		jsonOutput, err := json.MarshalIndent(project(dataset, columns), "", "  ")
		if err != nil {
			log.Errorf("SliceDiceSpit json marshal: %v", err)
			return
		}
		fmt.Fprintln(w, string(jsonOutput))
	case "yaml":
		yamlOutput, err := yaml.Marshal(project(dataset, columns))
		if err != nil {
			log.Errorf("SliceDiceSpit yaml marshal: %v", err)
			return
		}
		_, _ = w.Write(yamlOutput)
	default:
		TableWriter(dataset, columns, cmd, w)
	}
}

// TableWriter renders the dataset in a tabular form honoring color, titles
// and padding options. Output is written to w. If w is nil, os.Stdout is
// used.
func TableWriter(dataset Dataset, columns []string, cmd *cli.Command, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	if len(dataset) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if cmd.Bool("color") {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var rows [][]string
	for _, result := range dataset {
		row := make([]string, 0, len(columns))
		for _, col := range columns {
			row = append(row, InterfaceToString(result[col], "-"))
		}
		rows = append(rows, row)
	}

	if header, ok := cmd.Metadata["header"].(string); ok {
		fmt.Fprintln(w, headerStyle.Render(header))
	}

	pad := int(cmd.Int("padding"))
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if cmd.Bool("titles") {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(columns...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if footer, ok := cmd.Metadata["footer"].(string); ok {
		fmt.Fprintln(w, headerStyle.Render(footer))
	}
}

// project keeps only the named columns of each row, with times in RFC 3339.
func project(dataset Dataset, columns []string) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(dataset))
	for _, row := range dataset {
		m := make(map[string]interface{}, len(columns))
		for _, col := range columns {
			v := row[col]
			if ts, ok := v.(time.Time); ok {
				if ts.IsZero() {
					v = nil
				} else {
					v = ts.UTC().Format(time.RFC3339)
				}
			}
			m[col] = v
		}
		out = append(out, m)
	}
	return out
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
