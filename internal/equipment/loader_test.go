package equipment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KevinKickass/OpenIOTable/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const yamlList = `
station_name: 东坝站
project_number: P-2024-001
equipment:
  - name: 模拟量输入模块
    model: LK411
    quantity: 2
  - name: 开关量输出模块
    model: LK710
    quantity: 1
    station_name: 西坝站
`

const jsonList = `{
  "station_name": "东坝站",
  "equipment": [{"name": "机架", "model": "LK117", "quantity": 2}]
}`

func newTestLoader(t *testing.T, searchPaths ...string) *Loader {
	t.Helper()
	l, err := NewLoader(searchPaths, zap.NewNop())
	require.NoError(t, err)
	return l
}

func TestLoadYAMLFromSearchPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dongba.yaml"), []byte(yamlList), 0o644))

	doc, err := newTestLoader(t, dir).Load("dongba")
	require.NoError(t, err)

	assert.Equal(t, "东坝站", doc.StationName)
	assert.Equal(t, "P-2024-001", doc.ProjectNumber)

	items := doc.Items()
	require.Len(t, items, 2)
	assert.Equal(t, types.EquipmentItem{
		EquipmentName: "模拟量输入模块",
		SpecModel:     "LK411",
		Quantity:      2,
		StationName:   "东坝站",
	}, items[0])
	assert.Equal(t, "西坝站", items[1].StationName)
}

func TestLoadJSONByPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonList), 0o644))

	doc, err := newTestLoader(t).Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Equipment, 1)
	assert.Equal(t, uint32(2), doc.Equipment[0].Quantity)
}

func TestLoadNotFound(t *testing.T) {
	_, err := newTestLoader(t, t.TempDir()).Load("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "equipment list not found")
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	l := newTestLoader(t)

	tests := map[string]string{
		"missing station":   `{"equipment": []}`,
		"negative quantity": `{"station_name": "s", "equipment": [{"name": "a", "model": "LK411", "quantity": -1}]}`,
		"fractional":        `{"station_name": "s", "equipment": [{"name": "a", "model": "LK411", "quantity": 1.5}]}`,
		"missing model":     `{"station_name": "s", "equipment": [{"name": "a", "quantity": 1}]}`,
		"huge quantity":     `{"station_name": "s", "equipment": [{"name": "a", "model": "LK610", "quantity": 4294967295}]}`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := l.Parse([]byte(doc), ".json")
			assert.Error(t, err)
		})
	}

	_, err := l.Parse([]byte("station_name: [unclosed"), ".yaml")
	assert.Error(t, err)
}

func TestParseDetectsFormat(t *testing.T) {
	l := newTestLoader(t)

	doc, err := l.Parse([]byte(yamlList), "")
	require.NoError(t, err)
	assert.Len(t, doc.Equipment, 2)

	doc, err = l.Parse([]byte(jsonList), ".txt")
	require.NoError(t, err)
	assert.Len(t, doc.Equipment, 1)
}

func TestConvertItems(t *testing.T) {
	raw := []map[string]any{
		{"name": "AI", "model": "LK411", "quantity": 2.0, "station_name": "s"},
		{"name": "DI", "model": "LK610", "quantity": 3.9, "station_name": "s"},
		{"name": "neg", "model": "LK610", "quantity": -4.0, "station_name": "s"},
		{"name": "int", "model": "LK710", "quantity": 1, "station_name": "s"},
		{"model": "LK411", "quantity": 1.0, "station_name": "s"},
		{"name": "no qty", "model": "LK411", "station_name": "s"},
		{"name": "str qty", "model": "LK411", "quantity": "2", "station_name": "s"},
		{"name": "no station", "model": "LK411", "quantity": 1.0},
	}

	items := ConvertItems(raw)
	require.Len(t, items, 4)
	assert.Equal(t, uint32(2), items[0].Quantity)
	assert.Equal(t, uint32(3), items[1].Quantity)
	assert.Equal(t, uint32(0), items[2].Quantity)
	assert.Equal(t, uint32(1), items[3].Quantity)
}

func TestCheckQuantities(t *testing.T) {
	ok := []types.EquipmentItem{
		{EquipmentName: "rack", SpecModel: "LK117", Quantity: 1000},
		{EquipmentName: "DI", SpecModel: "LK610", Quantity: MaxQuantity},
	}
	assert.NoError(t, CheckQuantities(ok))

	raw := []map[string]any{
		{"name": "DI", "model": "LK610", "quantity": 1e12, "station_name": "s"},
	}
	items := ConvertItems(raw)
	require.Len(t, items, 1)

	err := CheckQuantities(items)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuantityRange)
	assert.Contains(t, err.Error(), "LK610")
}
