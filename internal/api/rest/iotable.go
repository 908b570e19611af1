package rest

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/KevinKickass/OpenIOTable/internal/allocator"
	"github.com/KevinKickass/OpenIOTable/internal/api/websocket"
	"github.com/KevinKickass/OpenIOTable/internal/equipment"
	"github.com/KevinKickass/OpenIOTable/internal/export"
	"github.com/KevinKickass/OpenIOTable/internal/iotable"
	"github.com/KevinKickass/OpenIOTable/internal/modbus"
	"github.com/KevinKickass/OpenIOTable/internal/storage"
	"github.com/KevinKickass/OpenIOTable/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	sourceAPI     = "api"
	sourceStation = "station"
)

type equipmentRequest struct {
	StationName   string            `json:"station_name"`
	NameMode      string            `json:"name_mode"`
	Equipment     []map[string]any  `json:"equipment"`
	VariableNames map[string]string `json:"variable_names"`
}

// items converts the loosely typed records. Records without their own station
// inherit the request's station.
func (r *equipmentRequest) items() []types.EquipmentItem {
	for _, rec := range r.Equipment {
		if _, ok := rec["station_name"]; !ok {
			rec["station_name"] = r.StationName
		}
	}
	return equipment.ConvertItems(r.Equipment)
}

func (s *Server) bindEquipment(c *gin.Context, req *equipmentRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeBadRequest, "Invalid request body", err.Error()))
		return false
	}
	return true
}

// checkedItems converts the request's equipment and rejects quantities no
// station can hold.
func (s *Server) checkedItems(c *gin.Context, req *equipmentRequest) ([]types.EquipmentItem, bool) {
	items := req.items()
	if err := equipment.CheckQuantities(items); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeBadRequest, "Invalid equipment quantity", err.Error()))
		return nil, false
	}
	return items, true
}

type generateRequest struct {
	station  string
	items    []types.EquipmentItem
	nameMode string
	names    map[string]string
	source   string
}

// POST /api/v1/io-tables
func (s *Server) buildTable(c *gin.Context) {
	req, ok := s.bindGenerate(c)
	if !ok {
		return
	}

	table, ok := s.generate(c, req)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, table)
}

// POST /api/v1/io-tables/export
func (s *Server) exportTable(c *gin.Context) {
	req, ok := s.bindGenerate(c)
	if !ok {
		return
	}

	table, ok := s.generate(c, req)
	if !ok {
		return
	}

	s.writeWorkbook(c, table)
}

func (s *Server) bindGenerate(c *gin.Context) (generateRequest, bool) {
	var req equipmentRequest
	if !s.bindEquipment(c, &req) {
		return generateRequest{}, false
	}

	if req.StationName == "" {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeBadRequest, "station_name is required", nil))
		return generateRequest{}, false
	}

	items, ok := s.checkedItems(c, &req)
	if !ok {
		return generateRequest{}, false
	}

	return generateRequest{
		station:  req.StationName,
		items:    items,
		nameMode: req.NameMode,
		names:    req.VariableNames,
		source:   sourceAPI,
	}, true
}

// generate builds the table, notifies websocket clients and records the outcome
// for stored stations. It writes the error response itself and reports false
// on failure.
func (s *Server) generate(c *gin.Context, req generateRequest) (*iotable.Table, bool) {
	builder, err := s.builderFor(req.nameMode)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeBadRequest, "Invalid name mode", err.Error()))
		return nil, false
	}

	table, err := builder.Build(req.station, req.items)
	if err != nil {
		code, status, details := classifyBuildError(err)
		s.wsHub.Broadcast(websocket.NewTableFailedMessage(req.station, code, req.source, err))
		s.recordGeneration(c, req, storage.Generation{Station: req.station, Error: err.Error()})
		c.JSON(status, types.NewErrorResponse(code, "Failed to build point table", details))
		return nil, false
	}

	if len(req.names) > 0 {
		updated := table.ApplyVariableNames(req.names)
		s.logger.Debug("Variable names applied",
			zap.String("station", req.station),
			zap.Int("updated", updated))
	}

	s.wsHub.Broadcast(websocket.NewTableGeneratedMessage(websocket.TableGeneratedData{
		Station:    table.Station,
		TableName:  table.Name,
		PointCount: table.Len(),
		RackCount:  table.RackCount,
		Source:     req.source,
	}))
	s.recordGeneration(c, req, storage.Generation{
		Station:    req.station,
		PointCount: table.Len(),
		RackCount:  int(table.RackCount),
		Success:    true,
	})

	return table, true
}

func (s *Server) builderFor(nameMode string) (*iotable.Builder, error) {
	if nameMode == "" {
		return s.lm.Builder(), nil
	}

	mode, err := iotable.ParseNameMode(nameMode)
	if err != nil {
		return nil, err
	}
	return iotable.NewBuilder(s.lm.Catalog(), s.logger, iotable.WithNameMode(mode)), nil
}

func (s *Server) recordGeneration(c *gin.Context, req generateRequest, gen storage.Generation) {
	store := s.lm.Stations()
	if store == nil || req.source != sourceStation {
		return
	}

	if _, err := store.RecordGeneration(c.Request.Context(), gen); err != nil {
		s.logger.Warn("Failed to record generation",
			zap.String("station", req.station),
			zap.Error(err))
	}
}

func (s *Server) writeWorkbook(c *gin.Context, table *iotable.Table) {
	var buf bytes.Buffer
	if err := s.lm.Exporter().Write(&buf, table); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.CodeInternal, "Failed to export point table", err.Error()))
		return
	}

	fileName := export.FileName(table.Station)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="io_table.xlsx"; filename*=UTF-8''%s`, url.PathEscape(fileName)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// classifyBuildError maps build errors to an error code, HTTP status and details.
func classifyBuildError(err error) (string, int, any) {
	var overflow *allocator.SlotOverflowError
	switch {
	case errors.As(err, &overflow):
		return types.CodeSlotOverflow, http.StatusUnprocessableEntity, overflow
	case errors.Is(err, allocator.ErrRackCount):
		return types.CodeRackCount, http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, modbus.ErrAddrParse):
		return types.CodeAddrParse, http.StatusUnprocessableEntity, err.Error()
	default:
		return types.CodeInternal, http.StatusInternalServerError, err.Error()
	}
}
