package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/KevinKickass/OpenIOTable/internal/interfaces"
	"github.com/KevinKickass/OpenIOTable/internal/storage"
	"github.com/KevinKickass/OpenIOTable/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (s *Server) stationStore(c *gin.Context) (interfaces.StationStore, bool) {
	store := s.lm.Stations()
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, types.NewErrorResponse(types.CodeUnavailable, "Station storage is disabled", nil))
		return nil, false
	}
	return store, true
}

func (s *Server) storageError(c *gin.Context, station string, err error) {
	if errors.Is(err, storage.ErrStationNotFound) {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.CodeNotFound, "Station not found", station))
		return
	}

	s.logger.Error("Station storage failed", zap.String("station", station), zap.Error(err))
	c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.CodeInternal, "Station storage failed", err.Error()))
}

// GET /api/v1/stations
func (s *Server) listStations(c *gin.Context) {
	store, ok := s.stationStore(c)
	if !ok {
		return
	}

	stations, err := store.ListStations(c.Request.Context())
	if err != nil {
		s.storageError(c, "", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stations": stations,
		"count":    len(stations),
	})
}

// GET /api/v1/stations/:name/equipment
func (s *Server) getStationEquipment(c *gin.Context) {
	store, ok := s.stationStore(c)
	if !ok {
		return
	}

	name := c.Param("name")
	items, err := store.LoadStationEquipment(c.Request.Context(), name)
	if err != nil {
		s.storageError(c, name, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"station_name": name,
		"equipment":    items,
	})
}

// PUT /api/v1/stations/:name/equipment
func (s *Server) putStationEquipment(c *gin.Context) {
	store, ok := s.stationStore(c)
	if !ok {
		return
	}

	var req equipmentRequest
	if !s.bindEquipment(c, &req) {
		return
	}

	name := c.Param("name")
	req.StationName = name
	for _, rec := range req.Equipment {
		delete(rec, "station_name")
	}
	items, ok := s.checkedItems(c, &req)
	if !ok {
		return
	}

	id, err := store.SaveStationEquipment(c.Request.Context(), name, items)
	if err != nil {
		s.storageError(c, name, err)
		return
	}

	s.logger.Info("Station equipment saved",
		zap.String("station", name),
		zap.Int("items", len(items)))

	c.JSON(http.StatusOK, gin.H{
		"id":              id,
		"station_name":    name,
		"equipment_count": len(items),
	})
}

// DELETE /api/v1/stations/:name/equipment
func (s *Server) deleteStation(c *gin.Context) {
	store, ok := s.stationStore(c)
	if !ok {
		return
	}

	name := c.Param("name")
	if err := store.DeleteStation(c.Request.Context(), name); err != nil {
		s.storageError(c, name, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "station deleted"})
}

// POST /api/v1/stations/:name/io-table?format=xlsx&name_mode=formula
func (s *Server) buildStationTable(c *gin.Context) {
	store, ok := s.stationStore(c)
	if !ok {
		return
	}

	name := c.Param("name")
	items, err := store.LoadStationEquipment(c.Request.Context(), name)
	if err != nil {
		s.storageError(c, name, err)
		return
	}

	table, ok := s.generate(c, generateRequest{
		station:  name,
		items:    items,
		nameMode: c.Query("name_mode"),
		source:   sourceStation,
	})
	if !ok {
		return
	}

	if c.Query("format") == "xlsx" {
		s.writeWorkbook(c, table)
		return
	}
	c.JSON(http.StatusOK, table)
}

// GET /api/v1/stations/:name/generations?limit=20
func (s *Server) listGenerations(c *gin.Context) {
	store, ok := s.stationStore(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeBadRequest, "Invalid limit", raw))
			return
		}
		limit = n
	}

	name := c.Param("name")
	gens, err := store.ListGenerations(c.Request.Context(), name, limit)
	if err != nil {
		s.storageError(c, name, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"station_name": name,
		"generations":  gens,
	})
}
