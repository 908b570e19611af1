package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// RecordGeneration stores the outcome of a build for a stored station.
func (p *PostgresClient) RecordGeneration(ctx context.Context, gen Generation) (uuid.UUID, error) {
	stationID, err := p.stationID(ctx, gen.Station)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	_, err = p.pool.Exec(ctx, `
		INSERT INTO generations (id, station_id, point_count, rack_count, success, error)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, stationID, gen.PointCount, gen.RackCount, gen.Success, gen.Error)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record generation: %w", err)
	}

	return id, nil
}

// ListGenerations returns the most recent generations of a station, newest first.
func (p *PostgresClient) ListGenerations(ctx context.Context, station string, limit int) ([]Generation, error) {
	stationID, err := p.stationID(ctx, station)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := p.pool.Query(ctx, `
		SELECT id, point_count, rack_count, success, error, created_at
		FROM generations
		WHERE station_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, stationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer rows.Close()

	gens := make([]Generation, 0)
	for rows.Next() {
		g := Generation{Station: station}
		if err := rows.Scan(&g.ID, &g.PointCount, &g.RackCount, &g.Success, &g.Error, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		gens = append(gens, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read generations: %w", err)
	}

	return gens, nil
}
