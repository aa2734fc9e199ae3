// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dimensions-query/pkg/types"
)

// Write prints ft in the given format. An empty format means table.
func Write(w io.Writer, ft types.FrequencyTable, format types.OutputFormat) error {
	switch format {
	case "", types.FormatTable:
		return FormatTable(ft, w)
	case types.FormatJSON:
		return FormatJSON(ft, w)
	case types.FormatYAML:
		return FormatYAML(ft, w)
	default:
		return fmt.Errorf("unsupported frequency table format %q", format)
	}
}

// FormatTable writes ft as an aligned two-column text table.
func FormatTable(ft types.FrequencyTable, w io.Writer) error {
	valueWidth := runewidth.StringWidth(ft.Category)
	for _, row := range ft.Rows {
		if vw := runewidth.StringWidth(row.Value); vw > valueWidth {
			valueWidth = vw
		}
	}
	countWidth := runewidth.StringWidth(types.CountLabel)

	var b strings.Builder
	b.WriteString(runewidth.FillRight(ft.Category, valueWidth) + "  " + types.CountLabel + "\n")
	b.WriteString(strings.Repeat("-", valueWidth) + "  " + strings.Repeat("-", countWidth) + "\n")
	for _, row := range ft.Rows {
		b.WriteString(runewidth.FillRight(row.Value, valueWidth) + "  " + runewidth.FillLeft(strconv.Itoa(row.Count), countWidth) + "\n")
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatJSON writes ft as indented JSON.
func FormatJSON(ft types.FrequencyTable, w io.Writer) error {
	if ft.Rows == nil {
		ft.Rows = []types.Frequency{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ft)
}

// FormatYAML writes ft as a YAML document.
func FormatYAML(ft types.FrequencyTable, w io.Writer) error {
	if ft.Rows == nil {
		ft.Rows = []types.Frequency{}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(ft)
}
