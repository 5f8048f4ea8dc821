package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/koinonia-dev/koinonia/internal/domain"
	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
)

func (s *Storage) PostCount(threadId domain.ThreadId) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(id) FROM posts WHERE thread_id = $1",
		threadId,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// Posts are newest first; id breaks ties so posts created in the same second
// keep a stable order.
func (s *Storage) Posts(threadId domain.ThreadId, limit, offset int) ([]domain.Post, error) {
	rows, err := s.db.Query(`
        SELECT id, thread_id, content, username, date
        FROM posts
        WHERE thread_id = $1
        ORDER BY date DESC, id DESC
        LIMIT $2 OFFSET $3
    `, threadId, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.Id, &post.ThreadId, &post.Content, &post.Username, &post.Date); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, nil
}

func (s *Storage) Post(id domain.PostId) (domain.Post, error) {
	var post domain.Post
	err := s.db.QueryRow(`
        SELECT id, thread_id, content, username, date
        FROM posts
        WHERE id = $1
    `, id).Scan(&post.Id, &post.ThreadId, &post.Content, &post.Username, &post.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, &internal_errors.ErrorWithStatusCode{
				Message:    "Post not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return domain.Post{}, fmt.Errorf("failed to fetch post: %w", err)
	}
	return post, nil
}

func (s *Storage) CreatePost(creationData domain.PostCreationData) (domain.PostId, error) {
	var id domain.PostId
	err := s.db.QueryRow(`
        INSERT INTO posts (content, thread_id, username)
        VALUES ($1, $2, $3)
        RETURNING id
    `, creationData.Content, creationData.ThreadId, creationData.Owner).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

func (s *Storage) EditPost(id domain.PostId, threadId domain.ThreadId, owner domain.Username, content string) error {
	result, err := s.db.Exec(`
        UPDATE posts
        SET content = $1
        WHERE username = $2 AND thread_id = $3 AND id = $4
    `, content, owner, threadId, id)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Post not found or not yours",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}

func (s *Storage) DeletePost(id domain.PostId, owner domain.Username) error {
	result, err := s.db.Exec(
		"DELETE FROM posts WHERE username = $1 AND id = $2",
		owner, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Post not found or not yours",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}
