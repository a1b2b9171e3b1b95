package fill

import (
	"collection-route-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLite-backed FillLevelProvider reading the most recent sensor
// reading per bin from the bin_readings table (populated by the
// ingestion backend or the seed data).
type SqliteFillProvider struct {
	DB *sql.DB
}

func NewSqliteFillProvider(db *sql.DB) *SqliteFillProvider {
	return &SqliteFillProvider{DB: db}
}

func (p *SqliteFillProvider) GetFillLevels(
	ctx context.Context,
	floor domain.FloorTag,
	binIDs []string,
) (map[string]float64, error) {
	if p.DB == nil {
		return nil, errors.New("sqlite fill provider: DB is nil")
	}
	if len(binIDs) == 0 {
		return map[string]float64{}, nil
	}

	ph := make([]string, 0, len(binIDs))
	args := make([]any, 0, 1+len(binIDs))
	args = append(args, string(floor))
	for _, id := range binIDs {
		ph = append(ph, "?")
		args = append(args, id)
	}

	// SQLite cannot bind slices in an IN (...) clause; only the
	// placeholder structure is interpolated, values stay parameterized.
	query := fmt.Sprintf(`
	SELECT
		bin_id,
		fill_level
	FROM bin_readings r
	WHERE floor_tag = ?
		AND bin_id IN (%s)
		AND recorded_at = (
			SELECT MAX(recorded_at)
			FROM bin_readings
			WHERE floor_tag = r.floor_tag AND bin_id = r.bin_id
		);
	`, strings.Join(ph, ","))

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get fill levels: query bin_readings table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64, len(binIDs))
	for rows.Next() {
		var id string
		var level float64
		if err := rows.Scan(&id, &level); err != nil {
			return nil, fmt.Errorf("get fill levels: scan row: %w", err)
		}
		out[id] = level
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get fill levels: row iteration: %w", err)
	}

	return out, nil
}
