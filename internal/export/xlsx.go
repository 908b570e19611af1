package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/KevinKickass/OpenIOTable/internal/iotable"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	defaultSheet = "Sheet1"

	minColumnWidth = 10.0
	maxColumnWidth = 50.0
	widthPadding   = 2.0

	highlightColor = "FFFF00"
)

// highlightHeaders are the columns an engineer fills in after generation.
var highlightHeaders = map[string]bool{
	iotable.HeaderPowerSupplyType: true,
	iotable.HeaderWireSystem:      true,
	iotable.HeaderTag:             true,
	iotable.HeaderVariableNameHMI: true,
	iotable.HeaderVariableDesc:    true,
	iotable.HeaderRangeLowerLimit: true,
	iotable.HeaderRangeUpperLimit: true,
	iotable.HeaderSLLValue:        true,
	iotable.HeaderSLValue:         true,
	iotable.HeaderSHValue:         true,
	iotable.HeaderSHHValue:        true,
}

// FileName is the suggested file name of a station's point table.
func FileName(station string) string {
	return fmt.Sprintf("%s_IO点表.xlsx", station)
}

// Exporter writes point tables as xlsx workbooks.
type Exporter struct {
	sheetName string
	logger    *zap.Logger
}

func NewExporter(sheetName string, logger *zap.Logger) *Exporter {
	if sheetName == "" {
		sheetName = defaultSheet
	}
	return &Exporter{sheetName: sheetName, logger: logger}
}

// WriteFile saves table to path.
func (e *Exporter) WriteFile(path string, table *iotable.Table) error {
	f, err := e.workbook(table)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.Info("Point table exported",
		zap.String("path", path),
		zap.Int("points", table.Len()))
	return nil
}

// Write streams table to w.
func (e *Exporter) Write(w io.Writer, table *iotable.Table) error {
	f, err := e.workbook(table)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (e *Exporter) workbook(table *iotable.Table) (*excelize.File, error) {
	f := excelize.NewFile()
	if e.sheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, e.sheetName); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	styles, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := e.writeHeaders(f, styles); err != nil {
		f.Close()
		return nil, err
	}
	if err := e.writeRows(f, styles, table); err != nil {
		f.Close()
		return nil, err
	}
	if err := e.adjustColumnWidths(f, table); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

type styles struct {
	header          int
	headerHighlight int
	cell            int
	cellHighlight   int
}

func newStyles(f *excelize.File) (*styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	fill := excelize.Fill{Type: "pattern", Color: []string{highlightColor}, Pattern: 1}

	defs := []*excelize.Style{
		{Font: &excelize.Font{Bold: true}, Border: border},
		{Font: &excelize.Font{Bold: true}, Border: border, Fill: fill},
		{Border: border},
		{Border: border, Fill: fill},
	}

	ids := make([]int, len(defs))
	for i, def := range defs {
		id, err := f.NewStyle(def)
		if err != nil {
			return nil, fmt.Errorf("failed to create style: %w", err)
		}
		ids[i] = id
	}

	return &styles{header: ids[0], headerHighlight: ids[1], cell: ids[2], cellHighlight: ids[3]}, nil
}

func (e *Exporter) writeHeaders(f *excelize.File, s *styles) error {
	for i, header := range iotable.Headers() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(e.sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header %s: %w", header, err)
		}

		style := s.header
		if highlightHeaders[header] {
			style = s.headerHighlight
		}
		if err := f.SetCellStyle(e.sheetName, cell, cell, style); err != nil {
			return fmt.Errorf("failed to style header %s: %w", header, err)
		}
	}
	return nil
}

func (e *Exporter) writeRows(f *excelize.File, s *styles, table *iotable.Table) error {
	headers := iotable.Headers()

	for r := range table.Points {
		p := &table.Points[r]
		row := r + 2

		for c, value := range p.Values() {
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return err
			}

			if isFormulaCell(table, headers[c], value) {
				err = f.SetCellFormula(e.sheetName, cell, strings.TrimPrefix(value, "="))
			} else if value != "" {
				err = f.SetCellStr(e.sheetName, cell, value)
			}
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", cell, err)
			}

			style := s.cell
			if shouldHighlight(headers[c], value, p.IsReal()) {
				style = s.cellHighlight
			}
			if err := f.SetCellStyle(e.sheetName, cell, cell, style); err != nil {
				return fmt.Errorf("failed to style %s: %w", cell, err)
			}
		}
	}
	return nil
}

// isFormulaCell reports whether value is written as a formula. Only generated
// sub-point names of formula tables qualify; user supplied text is never a formula.
func isFormulaCell(table *iotable.Table, header, value string) bool {
	return table.NameMode == iotable.NameModeFormula &&
		iotable.IsSubPointNameColumn(header) &&
		strings.HasPrefix(value, "=")
}

// shouldHighlight marks cells the engineer still has to fill. Not-applicable
// cells and the range columns of BOOL points stay plain.
func shouldHighlight(header, value string, isReal bool) bool {
	if !highlightHeaders[header] || value == iotable.Placeholder {
		return false
	}
	if !isReal && strings.Contains(header, "量程") {
		return false
	}
	return true
}

func (e *Exporter) adjustColumnWidths(f *excelize.File, table *iotable.Table) error {
	headers := iotable.Headers()
	widths := make([]float64, len(headers))

	for i, header := range headers {
		widths[i] = textWidth(header)
	}
	for r := range table.Points {
		for c, value := range table.Points[r].Values() {
			// Formula text is longer than what the sheet displays.
			if isFormulaCell(table, headers[c], value) {
				continue
			}
			if w := textWidth(value); w > widths[c] {
				widths[c] = w
			}
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(e.sheetName, col, col, min(w, maxColumnWidth)); err != nil {
			return fmt.Errorf("failed to set width of %s: %w", col, err)
		}
	}
	return nil
}

// textWidth estimates a display width: ASCII counts one, wide runes two.
func textWidth(s string) float64 {
	w := 0.0
	for _, r := range s {
		if r < utf8.RuneSelf {
			w++
		} else {
			w += 2
		}
	}
	return max(w+widthPadding, minColumnWidth)
}
