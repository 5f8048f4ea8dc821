package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/koinonia-dev/koinonia/internal/domain"
	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
)

func (s *Storage) SeriesCount(churchId domain.ChurchId) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(DISTINCT series) FROM sermons WHERE church_id = $1",
		churchId,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count series: %w", err)
	}
	return count, nil
}

// Series returns the distinct series names for a church, newest first by the
// earliest sermon date within each series.
func (s *Storage) Series(churchId domain.ChurchId, limit, offset int) ([]domain.Series, error) {
	rows, err := s.db.Query(`
        SELECT MIN(date) AS date, series
        FROM sermons
        WHERE church_id = $1
        GROUP BY series
        ORDER BY date DESC
        LIMIT $2 OFFSET $3
    `, churchId, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch series: %w", err)
	}
	defer rows.Close()

	var series []domain.Series
	for rows.Next() {
		var sr domain.Series
		if err := rows.Scan(&sr.Date, &sr.Name); err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}
		series = append(series, sr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return series, nil
}

func (s *Storage) SermonCount(churchId domain.ChurchId, seriesName domain.SeriesName) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(id) FROM sermons WHERE church_id = $1 AND series ILIKE $2",
		churchId, seriesName,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sermons: %w", err)
	}
	return count, nil
}

func (s *Storage) Sermons(churchId domain.ChurchId, seriesName domain.SeriesName, limit, offset int) ([]domain.Sermon, error) {
	rows, err := s.db.Query(`
        SELECT id, church_id, series, name, date
        FROM sermons
        WHERE church_id = $1 AND series ILIKE $2
        ORDER BY date DESC
        LIMIT $3 OFFSET $4
    `, churchId, seriesName, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sermons: %w", err)
	}
	defer rows.Close()

	var sermons []domain.Sermon
	for rows.Next() {
		var sermon domain.Sermon
		if err := rows.Scan(&sermon.Id, &sermon.ChurchId, &sermon.Series, &sermon.Name, &sermon.Date); err != nil {
			return nil, fmt.Errorf("failed to scan sermon: %w", err)
		}
		sermons = append(sermons, sermon)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return sermons, nil
}

func (s *Storage) Sermon(churchId domain.ChurchId, seriesName domain.SeriesName, sermonName domain.SermonName) (domain.Sermon, error) {
	var sermon domain.Sermon
	err := s.db.QueryRow(`
        SELECT id, church_id, series, name, date
        FROM sermons
        WHERE church_id = $1 AND series ILIKE $2 AND name ILIKE $3
    `, churchId, seriesName, sermonName).Scan(
		&sermon.Id, &sermon.ChurchId, &sermon.Series, &sermon.Name, &sermon.Date,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Sermon{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Sermon not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Sermon{}, fmt.Errorf("failed to fetch sermon: %w", err)
	}
	return sermon, nil
}
