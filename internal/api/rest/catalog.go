package rest

import (
	"net/http"

	"github.com/KevinKickass/OpenIOTable/internal/catalog"
	"github.com/KevinKickass/OpenIOTable/internal/iotable"
	"github.com/gin-gonic/gin"
)

// GET /api/v1/catalog
func (s *Server) getCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"rack_model": catalog.RackModelKey,
		"profiles":   s.lm.Catalog().Profiles(),
		"columns":    iotable.Columns(),
	})
}

// POST /api/v1/channels/summary
func (s *Server) summarizeChannels(c *gin.Context) {
	var req equipmentRequest
	if !s.bindEquipment(c, &req) {
		return
	}

	items, ok := s.checkedItems(c, &req)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.lm.Catalog().Summarize(items))
}
