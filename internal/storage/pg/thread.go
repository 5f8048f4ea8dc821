package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/koinonia-dev/koinonia/internal/domain"
	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
)

func (s *Storage) ThreadCount(sermonId domain.SermonId) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(id) FROM threads WHERE sermon_id = $1",
		sermonId,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count threads: %w", err)
	}
	return count, nil
}

func (s *Storage) Threads(sermonId domain.SermonId, limit, offset int) ([]domain.Thread, error) {
	rows, err := s.db.Query(`
        SELECT id, sermon_id, group_name, prompt, username, date
        FROM threads
        WHERE sermon_id = $1
        ORDER BY lower(group_name), date DESC
        LIMIT $2 OFFSET $3
    `, sermonId, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch threads: %w", err)
	}
	defer rows.Close()

	var threads []domain.Thread
	for rows.Next() {
		var thread domain.Thread
		if err := rows.Scan(
			&thread.Id, &thread.SermonId, &thread.GroupName,
			&thread.Prompt, &thread.Username, &thread.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, thread)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return threads, nil
}

func (s *Storage) Thread(sermonId domain.SermonId, id domain.ThreadId) (domain.Thread, error) {
	var thread domain.Thread
	err := s.db.QueryRow(`
        SELECT id, sermon_id, group_name, prompt, username, date
        FROM threads
        WHERE sermon_id = $1 AND id = $2
    `, sermonId, id).Scan(
		&thread.Id, &thread.SermonId, &thread.GroupName,
		&thread.Prompt, &thread.Username, &thread.Date,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Thread not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Thread{}, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return thread, nil
}

// CreateThread inserts and returns the generated id in one statement, so
// there is no re-query race between identically named threads.
func (s *Storage) CreateThread(creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	var id domain.ThreadId
	err := s.db.QueryRow(`
        INSERT INTO threads (group_name, prompt, username, sermon_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, creationData.GroupName, creationData.Prompt, creationData.Owner, creationData.SermonId).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert thread: %w", err)
	}
	return id, nil
}

// EditThread updates a thread only when it belongs to owner. A missing thread
// and a thread owned by someone else are indistinguishable here: both affect
// zero rows and report not found.
func (s *Storage) EditThread(id domain.ThreadId, owner domain.Username, groupName, prompt string) error {
	result, err := s.db.Exec(`
        UPDATE threads
        SET group_name = $1, prompt = $2
        WHERE username = $3 AND id = $4
    `, groupName, prompt, owner, id)
	if err != nil {
		return fmt.Errorf("failed to update thread: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found or not yours",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}

func (s *Storage) DeleteThread(id domain.ThreadId, owner domain.Username) error {
	result, err := s.db.Exec(
		"DELETE FROM threads WHERE username = $1 AND id = $2",
		owner, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Thread not found or not yours",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}
