package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/koinonia-dev/koinonia/internal/domain"
	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
)

func (s *Storage) ChurchCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(id) FROM churches").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count churches: %w", err)
	}
	return count, nil
}

func (s *Storage) Churches(limit, offset int) ([]domain.Church, error) {
	rows, err := s.db.Query(`
        SELECT id, name
        FROM churches
        ORDER BY lower(name) ASC
        LIMIT $1 OFFSET $2
    `, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch churches: %w", err)
	}
	defer rows.Close()

	var churches []domain.Church
	for rows.Next() {
		var church domain.Church
		if err := rows.Scan(&church.Id, &church.Name); err != nil {
			return nil, fmt.Errorf("failed to scan church: %w", err)
		}
		churches = append(churches, church)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return churches, nil
}

func (s *Storage) Church(name domain.ChurchName) (domain.Church, error) {
	var church domain.Church
	err := s.db.QueryRow(
		"SELECT id, name FROM churches WHERE name ILIKE $1",
		name,
	).Scan(&church.Id, &church.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Church{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Church not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Church{}, fmt.Errorf("failed to fetch church: %w", err)
	}
	return church, nil
}
