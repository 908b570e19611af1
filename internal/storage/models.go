package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrStationNotFound is returned when no station with the given name is stored.
var ErrStationNotFound = errors.New("station not found")

type Station struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	EquipmentCount int       `json:"equipment_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Generation records the outcome of one point table build.
type Generation struct {
	ID         uuid.UUID `json:"id"`
	Station    string    `json:"station"`
	PointCount int       `json:"point_count"`
	RackCount  int       `json:"rack_count"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
