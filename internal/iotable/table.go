package iotable

import "github.com/KevinKickass/OpenIOTable/internal/catalog"

// Table is a finished point table.
type Table struct {
	Name      string          `json:"name"`
	Station   string          `json:"station"`
	NameMode  NameMode        `json:"name_mode"`
	RackCount uint32          `json:"rack_count"`
	Summary   catalog.Summary `json:"summary"`
	Points    []IOPoint       `json:"points"`
}

// Len returns the number of points.
func (t *Table) Len() int {
	return len(t.Points)
}

// Rows returns every point as an ordered slice of cell values.
func (t *Table) Rows() [][]string {
	rows := make([][]string, len(t.Points))
	for i := range t.Points {
		rows[i] = t.Points[i].Values()
	}
	return rows
}

// ApplyVariableNames sets HMI variable names by channel tag and re-derives the
// sub-point names of REAL points. Formula tables keep their formulas since the
// spreadsheet re-evaluates them. It returns the number of points updated.
func (t *Table) ApplyVariableNames(names map[string]string) int {
	updated := 0
	for i := range t.Points {
		p := &t.Points[i]
		name, ok := names[p.ChannelTag]
		if !ok {
			continue
		}
		p.VariableNameHMI = name
		if p.IsReal() && t.NameMode != NameModeFormula {
			nameSubPoints(p, NameModeValue, 0)
		}
		updated++
	}
	return updated
}
