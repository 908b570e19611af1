package interfaces

import (
	"context"

	"github.com/KevinKickass/OpenIOTable/internal/catalog"
	"github.com/KevinKickass/OpenIOTable/internal/config"
	"github.com/KevinKickass/OpenIOTable/internal/export"
	"github.com/KevinKickass/OpenIOTable/internal/iotable"
	"github.com/KevinKickass/OpenIOTable/internal/storage"
	"github.com/KevinKickass/OpenIOTable/internal/types"
	"github.com/google/uuid"
)

// SystemStatus represents the current system state
type SystemStatus struct {
	State            string `json:"state"`
	Accepting        bool   `json:"accepting_generations"`
	StorageEnabled   bool   `json:"storage_enabled"`
	AuthEnabled      bool   `json:"auth_enabled"`
	CatalogModels    int    `json:"catalog_models"`
	ConnectedClients int    `json:"connected_clients"`
	StartedAt        int64  `json:"started_at"`
}

// StationStore persists station equipment lists and generation history.
type StationStore interface {
	SaveStationEquipment(ctx context.Context, station string, items []types.EquipmentItem) (uuid.UUID, error)
	LoadStationEquipment(ctx context.Context, station string) ([]types.EquipmentItem, error)
	ListStations(ctx context.Context) ([]storage.Station, error)
	DeleteStation(ctx context.Context, station string) error
	RecordGeneration(ctx context.Context, gen storage.Generation) (uuid.UUID, error)
	ListGenerations(ctx context.Context, station string, limit int) ([]storage.Generation, error)
}

type LifecycleManager interface {
	Config() *config.Config
	Catalog() *catalog.Catalog
	Builder() *iotable.Builder
	Exporter() *export.Exporter
	// Stations returns nil when the database is disabled.
	Stations() StationStore
	GetCurrentStatus() SystemStatus
	Shutdown(ctx context.Context) error
}
