package rest

import (
	"net/http"
	"time"

	"github.com/KevinKickass/OpenIOTable/internal/allocator"
	"github.com/KevinKickass/OpenIOTable/internal/catalog"
	"github.com/KevinKickass/OpenIOTable/internal/equipment"
	"github.com/KevinKickass/OpenIOTable/internal/interfaces"
	"github.com/gin-gonic/gin"
)

// GeneratorLimits reports the placement bounds requests are checked against.
type GeneratorLimits struct {
	SlotsPerRack uint32 `json:"slots_per_rack"`
	MaxRackCount uint32 `json:"max_rack_count"`
	MaxQuantity  uint32 `json:"max_quantity"`
}

type systemStatusResponse struct {
	interfaces.SystemStatus
	RackModel string          `json:"rack_model"`
	NameMode  string          `json:"name_mode"`
	SheetName string          `json:"sheet_name"`
	Limits    GeneratorLimits `json:"limits"`
	WSClients int             `json:"ws_clients"`
	Timestamp int64           `json:"timestamp"`
}

// GET /api/v1/system/status
func (s *Server) getSystemStatus(c *gin.Context) {
	exportCfg := s.lm.Config().Export
	c.JSON(http.StatusOK, systemStatusResponse{
		SystemStatus: s.lm.GetCurrentStatus(),
		RackModel:    catalog.RackModelKey,
		NameMode:     exportCfg.NameMode,
		SheetName:    exportCfg.SheetName,
		Limits: GeneratorLimits{
			SlotsPerRack: allocator.SlotsPerRack,
			MaxRackCount: allocator.MaxRackCount,
			MaxQuantity:  equipment.MaxQuantity,
		},
		WSClients: s.wsHub.GetClientCount(),
		Timestamp: time.Now().Unix(),
	})
}
