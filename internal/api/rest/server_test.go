package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/KevinKickass/OpenIOTable/internal/api/websocket"
	"github.com/KevinKickass/OpenIOTable/internal/auth"
	"github.com/KevinKickass/OpenIOTable/internal/catalog"
	"github.com/KevinKickass/OpenIOTable/internal/config"
	"github.com/KevinKickass/OpenIOTable/internal/export"
	"github.com/KevinKickass/OpenIOTable/internal/interfaces"
	"github.com/KevinKickass/OpenIOTable/internal/iotable"
	"github.com/KevinKickass/OpenIOTable/internal/storage"
	"github.com/KevinKickass/OpenIOTable/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	mu          sync.Mutex
	stations    map[string][]types.EquipmentItem
	generations []storage.Generation
}

func newFakeStore() *fakeStore {
	return &fakeStore{stations: make(map[string][]types.EquipmentItem)}
}

func (f *fakeStore) SaveStationEquipment(_ context.Context, station string, items []types.EquipmentItem) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stations[station] = items
	return uuid.New(), nil
}

func (f *fakeStore) LoadStationEquipment(_ context.Context, station string) ([]types.EquipmentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, ok := f.stations[station]
	if !ok {
		return nil, storage.ErrStationNotFound
	}
	return items, nil
}

func (f *fakeStore) ListStations(context.Context) ([]storage.Station, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]storage.Station, 0, len(f.stations))
	for name, items := range f.stations {
		out = append(out, storage.Station{Name: name, EquipmentCount: len(items)})
	}
	return out, nil
}

func (f *fakeStore) DeleteStation(_ context.Context, station string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stations[station]; !ok {
		return storage.ErrStationNotFound
	}
	delete(f.stations, station)
	return nil
}

func (f *fakeStore) RecordGeneration(_ context.Context, gen storage.Generation) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generations = append(f.generations, gen)
	return uuid.New(), nil
}

func (f *fakeStore) ListGenerations(_ context.Context, station string, _ int) ([]storage.Generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stations[station]; !ok {
		return nil, storage.ErrStationNotFound
	}
	out := make([]storage.Generation, 0)
	for _, g := range f.generations {
		if g.Station == station {
			out = append(out, g)
		}
	}
	return out, nil
}

type fakeLM struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	builder  *iotable.Builder
	exporter *export.Exporter
	store    interfaces.StationStore
}

func (f *fakeLM) Config() *config.Config { return f.cfg }
func (f *fakeLM) Catalog() *catalog.Catalog { return f.catalog }
func (f *fakeLM) Builder() *iotable.Builder { return f.builder }
func (f *fakeLM) Exporter() *export.Exporter { return f.exporter }
func (f *fakeLM) Stations() interfaces.StationStore { return f.store }
func (f *fakeLM) Shutdown(context.Context) error { return nil }
func (f *fakeLM) GetCurrentStatus() interfaces.SystemStatus {
	return interfaces.SystemStatus{State: "RUNNING", Accepting: true, CatalogModels: len(f.catalog.Profiles())}
}

type testEnv struct {
	server *Server
	auth   *auth.AuthService
	store  *fakeStore
}

func newTestEnv(t *testing.T, authEnabled bool, withStore bool) *testEnv {
	t.Helper()

	cfg := config.Default()
	cfg.Auth.Enabled = authEnabled
	cfg.Auth.JWTSecretEnv = "IOT_REST_TEST_SECRET"
	cfg.Auth.AccessTokenTTL = time.Hour

	logger := zap.NewNop()
	cat := catalog.Default()
	lm := &fakeLM{
		cfg:      cfg,
		catalog:  cat,
		builder:  iotable.NewBuilder(cat, logger),
		exporter: export.NewExporter("IO点表", logger),
	}

	env := &testEnv{auth: auth.NewAuthService(cfg.Auth)}
	if withStore {
		env.store = newFakeStore()
		lm.store = env.store
	}

	hub := websocket.NewHub(logger, env.auth)
	go hub.Run()
	t.Cleanup(hub.Stop)

	env.server = NewServer(cfg, lm, logger, hub, env.auth)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func equipmentBody(station string, items ...map[string]any) map[string]any {
	return map[string]any{
		"station_name": station,
		"equipment":    items,
	}
}

func item(name, model string, qty int) map[string]any {
	return map[string]any{"name": name, "model": model, "quantity": qty}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.ErrorBody {
	t.Helper()
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthAndCatalog(t *testing.T) {
	env := newTestEnv(t, false, false)

	w := env.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/catalog", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RackModel string                 `json:"rack_model"`
		Profiles  []types.ChannelProfile `json:"profiles"`
		Columns   []iotable.Column       `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LK117", resp.RackModel)
	assert.Len(t, resp.Profiles, 4)
	assert.Len(t, resp.Columns, 53)
}

func TestSystemStatus(t *testing.T) {
	env := newTestEnv(t, false, false)

	w := env.do(t, http.MethodGet, "/api/v1/system/status", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp systemStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RUNNING", resp.State)
	assert.True(t, resp.Accepting)
	assert.Equal(t, 4, resp.CatalogModels)
	assert.Equal(t, "LK117", resp.RackModel)
	assert.Equal(t, "value", resp.NameMode)
	assert.Equal(t, "IO点表", resp.SheetName)
	assert.Equal(t, GeneratorLimits{SlotsPerRack: 10, MaxRackCount: 1000, MaxQuantity: 10000}, resp.Limits)
	assert.Zero(t, resp.WSClients)
	assert.NotZero(t, resp.Timestamp)
}

func TestSummarizeChannels(t *testing.T) {
	env := newTestEnv(t, false, false)

	w := env.do(t, http.MethodPost, "/api/v1/channels/summary",
		equipmentBody("S1", item("AI模块", "LK411", 2), item("DI模块", "LK610", 1)), "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary catalog.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, uint64(16), summary["AI"].Count)
	assert.Equal(t, "REAL", summary["AI"].DataType)
	assert.Equal(t, uint64(16), summary["DI"].Count)
	assert.Equal(t, uint64(0), summary["AO"].Count)
}

func TestSummarizeChannelsRejectsHugeQuantity(t *testing.T) {
	env := newTestEnv(t, false, false)

	w := env.do(t, http.MethodPost, "/api/v1/channels/summary",
		equipmentBody("S1", item("DI模块", "LK610", 4294967295)), "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, types.CodeBadRequest, decodeError(t, w).Code)
}

func TestBuildTable(t *testing.T) {
	env := newTestEnv(t, false, false)

	w := env.do(t, http.MethodPost, "/api/v1/io-tables",
		equipmentBody("S1", item("机架", "LK117", 1), item("AI模块", "LK411", 1)), "")
	require.Equal(t, http.StatusOK, w.Code)

	var table iotable.Table
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	assert.Equal(t, "S1_IO表", table.Name)
	assert.Equal(t, uint32(1), table.RackCount)
	require.Len(t, table.Points, 8)
	assert.Equal(t, "%MD320", table.Points[0].PLCAbsoluteAddress)
	assert.Equal(t, "43161", table.Points[0].HostCommAddress)
	assert.Equal(t, "1_2_AI_0", table.Points[0].ChannelTag)
}

func TestBuildTableVariableNamesAndFormula(t *testing.T) {
	env := newTestEnv(t, false, false)

	body := equipmentBody("S1", item("AI模块", "LK411", 1))
	body["variable_names"] = map[string]string{"1_2_AI_0": "PT101"}
	w := env.do(t, http.MethodPost, "/api/v1/io-tables", body, "")
	require.Equal(t, http.StatusOK, w.Code)

	var table iotable.Table
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	assert.Equal(t, "PT101", table.Points[0].VariableNameHMI)
	assert.Equal(t, "PT101_LL", table.Points[0].LLAlarm)

	body = equipmentBody("S1", item("AI模块", "LK411", 1))
	body["name_mode"] = "formula"
	w = env.do(t, http.MethodPost, "/api/v1/io-tables", body, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	assert.True(t, strings.HasPrefix(table.Points[0].LLAlarm, "=IF(ISBLANK(I2)"))
}

func TestBuildTableErrors(t *testing.T) {
	env := newTestEnv(t, false, false)

	t.Run("missing station", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/io-tables", equipmentBody("", item("AI", "LK411", 1)), "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad name mode", func(t *testing.T) {
		body := equipmentBody("S1", item("AI", "LK411", 1))
		body["name_mode"] = "macro"
		w := env.do(t, http.MethodPost, "/api/v1/io-tables", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("slot overflow", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/io-tables",
			equipmentBody("S1", item("机架", "LK117", 1), item("DI模块", "LK610", 11)), "")
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		body := decodeError(t, w)
		assert.Equal(t, types.CodeSlotOverflow, body.Code)
		details, ok := body.Details.(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 1, details["rack_count"])
		assert.EqualValues(t, 2, details["required_rack"])
	})

	t.Run("quantity above limit", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/io-tables",
			equipmentBody("S1", item("DI模块", "LK610", 10001)), "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, types.CodeBadRequest, decodeError(t, w).Code)
	})

	t.Run("too many racks", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/io-tables",
			equipmentBody("S1", item("机架", "LK117", 1001), item("DI模块", "LK610", 1)), "")
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, types.CodeRackCount, decodeError(t, w).Code)
	})
}

func TestExportTable(t *testing.T) {
	env := newTestEnv(t, false, false)

	w := env.do(t, http.MethodPost, "/api/v1/io-tables/export",
		equipmentBody("S1", item("DO模块", "LK710", 1)), "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "S1_IO%E7%82%B9%E8%A1%A8.xlsx")
	// xlsx files are zip archives
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestStationsDisabled(t *testing.T) {
	env := newTestEnv(t, false, false)

	w := env.do(t, http.MethodGet, "/api/v1/stations", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, types.CodeUnavailable, decodeError(t, w).Code)
}

func TestStationLifecycle(t *testing.T) {
	env := newTestEnv(t, false, true)

	w := env.do(t, http.MethodGet, "/api/v1/stations/S9/equipment", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPut, "/api/v1/stations/S9/equipment",
		equipmentBody("ignored", item("AI模块", "LK411", 1), item("DI模块", "LK610", 1)), "")
	require.Equal(t, http.StatusOK, w.Code)

	items, err := env.store.LoadStationEquipment(context.Background(), "S9")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "S9", items[0].StationName)

	w = env.do(t, http.MethodPost, "/api/v1/stations/S9/io-table", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var table iotable.Table
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	assert.Len(t, table.Points, 24)

	w = env.do(t, http.MethodPost, "/api/v1/stations/S9/io-table?format=xlsx", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))

	w = env.do(t, http.MethodGet, "/api/v1/stations/S9/generations", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var gens struct {
		Generations []storage.Generation `json:"generations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gens))
	require.Len(t, gens.Generations, 2)
	assert.True(t, gens.Generations[0].Success)
	assert.Equal(t, 24, gens.Generations[0].PointCount)

	w = env.do(t, http.MethodGet, "/api/v1/stations/S9/generations?limit=x", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/stations", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/api/v1/stations/S9/equipment", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodDelete, "/api/v1/stations/S9/equipment", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthEnforced(t *testing.T) {
	env := newTestEnv(t, true, true)

	viewer, _, err := env.auth.IssueToken("hmi", auth.RoleViewer)
	require.NoError(t, err)
	engineer, _, err := env.auth.IssueToken("eng", auth.RoleEngineer)
	require.NoError(t, err)

	body := equipmentBody("S1", item("AI模块", "LK411", 1))

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/v1/catalog", nil, "").Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/catalog", nil, viewer).Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPost, "/api/v1/io-tables", body, viewer).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/io-tables", body, engineer).Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPut, "/api/v1/stations/S1/equipment", body, engineer).Code)
}
