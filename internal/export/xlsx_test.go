package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/KevinKickass/OpenIOTable/internal/catalog"
	"github.com/KevinKickass/OpenIOTable/internal/iotable"
	"github.com/KevinKickass/OpenIOTable/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func buildTable(t *testing.T, mode iotable.NameMode) *iotable.Table {
	t.Helper()
	b := iotable.NewBuilder(catalog.Default(), zap.NewNop(), iotable.WithNameMode(mode))
	table, err := b.Build("东坝站", []types.EquipmentItem{
		{EquipmentName: "AI", SpecModel: "LK411", Quantity: 1, StationName: "东坝站"},
		{EquipmentName: "DI", SpecModel: "LK610", Quantity: 1, StationName: "东坝站"},
	})
	require.NoError(t, err)
	return table
}

func TestWriteRoundTrip(t *testing.T) {
	table := buildTable(t, iotable.NameModeValue)

	var buf bytes.Buffer
	require.NoError(t, NewExporter("IO点表", zap.NewNop()).Write(&buf, table))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("IO点表")
	require.NoError(t, err)
	require.Len(t, rows, table.Len()+1)
	assert.Equal(t, iotable.Headers(), rows[0])

	v, err := f.GetCellValue("IO点表", "AZ2")
	require.NoError(t, err)
	assert.Equal(t, "%MD320", v)

	v, err = f.GetCellValue("IO点表", "BA10")
	require.NoError(t, err)
	assert.Equal(t, "3201", v)
}

func TestWriteFormulaCells(t *testing.T) {
	table := buildTable(t, iotable.NameModeFormula)
	path := filepath.Join(t.TempDir(), FileName("东坝站"))

	require.NoError(t, NewExporter("", zap.NewNop()).WriteFile(path, table))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	formula, err := f.GetCellFormula(defaultSheet, "R2")
	require.NoError(t, err)
	assert.Equal(t, `IF(ISBLANK(I2),"_LoLoLimit",I2&"_LoLoLimit")`, formula)
}

func TestUserTextIsNeverAFormula(t *testing.T) {
	const evil = `=HYPERLINK("http://x","click")`

	for _, mode := range []iotable.NameMode{iotable.NameModeValue, iotable.NameModeFormula} {
		t.Run(string(mode), func(t *testing.T) {
			b := iotable.NewBuilder(catalog.Default(), zap.NewNop(), iotable.WithNameMode(mode))
			table, err := b.Build("=S1", []types.EquipmentItem{
				{EquipmentName: evil, SpecModel: "LK411", Quantity: 1, StationName: "=S1"},
			})
			require.NoError(t, err)
			table.ApplyVariableNames(map[string]string{"1_2_AI_0": "=1+1"})

			var buf bytes.Buffer
			require.NoError(t, NewExporter("", zap.NewNop()).Write(&buf, table))
			f, err := excelize.OpenReader(&buf)
			require.NoError(t, err)
			defer f.Close()

			for _, header := range []string{iotable.HeaderModuleName, iotable.HeaderStationName, iotable.HeaderVariableNameHMI} {
				cell, err := excelize.CoordinatesToCellName(iotable.ColumnNumber(header), 2)
				require.NoError(t, err)

				formula, err := f.GetCellFormula(defaultSheet, cell)
				require.NoError(t, err)
				assert.Empty(t, formula, header)
			}

			v, err := f.GetCellValue(defaultSheet, "B2")
			require.NoError(t, err)
			assert.Equal(t, evil, v)

			sll, err := excelize.CoordinatesToCellName(iotable.ColumnNumber(iotable.HeaderSLLSetpoint), 2)
			require.NoError(t, err)
			formula, err := f.GetCellFormula(defaultSheet, sll)
			require.NoError(t, err)
			if mode == iotable.NameModeFormula {
				assert.NotEmpty(t, formula)
			} else {
				assert.Empty(t, formula)
				v, err := f.GetCellValue(defaultSheet, sll)
				require.NoError(t, err)
				assert.Equal(t, "=1+1_LoLoLimit", v)
			}
		})
	}
}

func TestShouldHighlight(t *testing.T) {
	assert.True(t, shouldHighlight(iotable.HeaderTag, "", true))
	assert.True(t, shouldHighlight(iotable.HeaderRangeLowerLimit, "", true))
	assert.False(t, shouldHighlight(iotable.HeaderRangeLowerLimit, "", false))
	assert.False(t, shouldHighlight(iotable.HeaderSLLValue, iotable.Placeholder, false))
	assert.False(t, shouldHighlight(iotable.HeaderPLCAbsoluteAddress, "%MD320", true))
}

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 10.0, textWidth("R/W"))
	assert.Equal(t, 13.0, textWidth("模块类型_AI"))
	assert.Equal(t, 12.0, textWidth("%MX20.0_ab"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "东坝站_IO点表.xlsx", FileName("东坝站"))
}
