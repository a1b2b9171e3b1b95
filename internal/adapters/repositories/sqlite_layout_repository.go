package repositories

import (
	"collection-route-service/internal/domain"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLite-backed implementation of the LayoutRepository port.
type SqliteLayoutRepository struct{ DB *sql.DB }

func NewSqliteLayoutRepository(db *sql.DB) *SqliteLayoutRepository {
	return &SqliteLayoutRepository{DB: db}
}

// Return all floor layouts in building order.
func (s *SqliteLayoutRepository) ListLayouts(ctx context.Context) ([]domain.FloorLayout, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite layout repository: DB is nil")
	}

	query := `
	SELECT
		floor_tag,
		layout_json
	FROM floor_layouts
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list layouts: query floor_layouts table: %w", err)
	}
	defer rows.Close()

	layouts := make([]domain.FloorLayout, 0, 8)
	for rows.Next() {
		var tag, doc string
		if err := rows.Scan(&tag, &doc); err != nil {
			return nil, fmt.Errorf("list layouts: scan row: %w", err)
		}

		var l domain.FloorLayout
		if err := json.Unmarshal([]byte(doc), &l); err != nil {
			return nil, fmt.Errorf("list layouts: parse layout for floor %q: %w", tag, err)
		}
		l.Tag = domain.FloorTag(tag)
		layouts = append(layouts, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list layouts: row iteration: %w", err)
	}

	return layouts, nil
}
