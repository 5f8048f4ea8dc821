package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/koinonia-dev/koinonia/internal/domain"
	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
)

// PasswordHash returns the stored bcrypt hash for a user. The plaintext
// comparison happens in the auth service; this layer never sees passwords.
func (s *Storage) PasswordHash(username domain.Username) (string, error) {
	var hash string
	err := s.db.QueryRow(
		"SELECT password FROM users WHERE username = $1",
		username,
	).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", &internal_errors.ErrorWithStatusCode{
				Message:    "User not found",
				StatusCode: http.StatusNotFound,
			}
		}
		return "", fmt.Errorf("failed to fetch password hash: %w", err)
	}
	return hash, nil
}
