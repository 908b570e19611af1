package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/KevinKickass/OpenIOTable/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveStationEquipment replaces the stored equipment list of a station,
// creating the station on first save.
func (p *PostgresClient) SaveStationEquipment(ctx context.Context, station string, items []types.EquipmentItem) (uuid.UUID, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var stationID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO stations (id, name)
		VALUES ($1, $2)
		ON CONFLICT (name)
		DO UPDATE SET updated_at = NOW()
		RETURNING id
	`, uuid.New(), station).Scan(&stationID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert station: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM station_equipment WHERE station_id = $1`, stationID); err != nil {
		return uuid.Nil, fmt.Errorf("failed to clear equipment: %w", err)
	}

	batch := &pgx.Batch{}
	for i, item := range items {
		batch.Queue(`
			INSERT INTO station_equipment (station_id, position, equipment_name, spec_model, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, stationID, i, item.EquipmentName, item.SpecModel, int64(item.Quantity))
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert equipment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return stationID, nil
}

// LoadStationEquipment returns the equipment list in its stored order.
func (p *PostgresClient) LoadStationEquipment(ctx context.Context, station string) ([]types.EquipmentItem, error) {
	stationID, err := p.stationID(ctx, station)
	if err != nil {
		return nil, err
	}

	rows, err := p.pool.Query(ctx, `
		SELECT equipment_name, spec_model, quantity
		FROM station_equipment
		WHERE station_id = $1
		ORDER BY position
	`, stationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	defer rows.Close()

	items := make([]types.EquipmentItem, 0)
	for rows.Next() {
		var item types.EquipmentItem
		var quantity int64
		if err := rows.Scan(&item.EquipmentName, &item.SpecModel, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		item.Quantity = uint32(quantity)
		item.StationName = station
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read equipment: %w", err)
	}

	return items, nil
}

// ListStations lists all stored stations ordered by name.
func (p *PostgresClient) ListStations(ctx context.Context) ([]Station, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT s.id, s.name, COUNT(e.position), s.created_at, s.updated_at
		FROM stations s
		LEFT JOIN station_equipment e ON e.station_id = s.id
		GROUP BY s.id
		ORDER BY s.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	stations := make([]Station, 0)
	for rows.Next() {
		var s Station
		if err := rows.Scan(&s.ID, &s.Name, &s.EquipmentCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stations: %w", err)
	}

	return stations, nil
}

// DeleteStation removes a station with its equipment and generation history.
func (p *PostgresClient) DeleteStation(ctx context.Context, station string) error {
	result, err := p.pool.Exec(ctx, `DELETE FROM stations WHERE name = $1`, station)
	if err != nil {
		return fmt.Errorf("failed to delete station: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrStationNotFound
	}

	return nil
}

func (p *PostgresClient) stationID(ctx context.Context, station string) (uuid.UUID, error) {
	var id uuid.UUID
	err := p.pool.QueryRow(ctx, `SELECT id FROM stations WHERE name = $1`, station).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, ErrStationNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up station: %w", err)
	}
	return id, nil
}
