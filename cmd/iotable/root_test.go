package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KevinKickass/OpenIOTable/internal/iotable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const stationYAML = `station_name: S1
project_number: P-001
equipment:
  - name: 机架
    model: LK117
    quantity: 1
  - name: AI模块
    model: LK411
    quantity: 1
  - name: DI模块
    model: LK610
    quantity: 1
`

func writeStation(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "S1.yaml")
	require.NoError(t, os.WriteFile(path, []byte(stationYAML), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateJSON(t *testing.T) {
	path := writeStation(t)

	out, err := run(t, "generate", path, "--format", "json")
	require.NoError(t, err)

	var table iotable.Table
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	assert.Equal(t, "S1", table.Station)
	assert.Len(t, table.Points, 24)
	assert.Equal(t, "%MX25.0", table.Points[8].PLCAbsoluteAddress)
}

func TestGenerateXLSX(t *testing.T) {
	path := writeStation(t)
	target := filepath.Join(t.TempDir(), "out.xlsx")

	out, err := run(t, "generate", path, "-o", target, "--name-mode", "formula")
	require.NoError(t, err)
	assert.Contains(t, out, "24 points")

	f, err := excelize.OpenFile(target)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	formula, err := f.GetCellFormula(sheet, "R2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(formula, "IF(ISBLANK(I2)"))
}

func TestGenerateRejectsBadInput(t *testing.T) {
	path := writeStation(t)

	_, err := run(t, "generate", path, "--format", "csv")
	assert.Error(t, err)

	_, err = run(t, "generate", path, "--name-mode", "macro")
	assert.Error(t, err)

	_, err = run(t, "generate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	path := writeStation(t)

	out, err := run(t, "summary", path)
	require.NoError(t, err)
	assert.Contains(t, out, "S1")
	assert.Regexp(t, `AI\s+8\s+REAL`, out)
	assert.Regexp(t, `DI\s+16\s+BOOL`, out)
	assert.Regexp(t, `DO\s+0\s+BOOL`, out)
}

func TestToken(t *testing.T) {
	out, err := run(t, "token", "--role", "viewer")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "."), 3)

	_, err = run(t, "token", "--role", "root")
	assert.Error(t, err)
}
