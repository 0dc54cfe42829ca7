package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
)

// UserRepository provides data access methods for the user table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetUsers retrieves all users. Returns an empty slice when none exist.
func (s *UserRepository) GetUsers() ([]model.User, error) {
	query := `
		SELECT id, username, password, email, api_key
		FROM user
		ORDER BY id ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query user table: %w", err)
	}
	defer rows.Close()

	users := []model.User{}

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user table: %w", err)
	}

	return users, nil
}

// GetUserOnID retrieves a single user by ID.
func (s *UserRepository) GetUserOnID(userID int64) (model.User, error) {
	row := s.db.QueryRow(`
		SELECT id, username, password, email, api_key
		FROM user
		WHERE id = ?
	`, userID)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}

	return u, nil
}

// GetUserOnUsername retrieves a single user by username.
func (s *UserRepository) GetUserOnUsername(username string) (model.User, error) {
	row := s.db.QueryRow(`
		SELECT id, username, password, email, api_key
		FROM user
		WHERE username = ?
	`, username)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}

	return u, nil
}

// ExistsOnID reports whether a user with the given ID exists.
func (s *UserRepository) ExistsOnID(userID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM user WHERE id = ?)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query user existence: %w", err)
	}
	return exists, nil
}

// SaveUser inserts a new user when the ID is zero, otherwise updates the
// existing row. The assigned ID is written back.
func (s *UserRepository) SaveUser(u *model.User) error {
	if u.ID == 0 {
		result, err := s.db.Exec(`
			INSERT INTO user (username, password, email, api_key)
			VALUES (?, ?, ?, ?)
		`, u.Username, u.Password, u.Email, u.APIKey)
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted user id: %w", err)
		}
		u.ID = id
		return nil
	}

	result, err := s.db.Exec(`
		UPDATE user SET username = ?, password = ?, email = ?, api_key = ?
		WHERE id = ?
	`, u.Username, u.Password, u.Email, u.APIKey, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		_, err := s.db.Exec(`
			INSERT INTO user (id, username, password, email, api_key)
			VALUES (?, ?, ?, ?, ?)
		`, u.ID, u.Username, u.Password, u.Email, u.APIKey)
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
	}

	return nil
}

// DeleteUserOnID deletes a user by ID. Returns ErrUserNotFound when no row matched.
func (s *UserRepository) DeleteUserOnID(userID int64) error {
	result, err := s.db.Exec(`DELETE FROM user WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// DeleteUserOnUsername deletes a user by username. Deleting an unknown
// username is a no-op, not an error.
func (s *UserRepository) DeleteUserOnUsername(username string) error {
	_, err := s.db.Exec(`DELETE FROM user WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func scanUser(row scanner) (model.User, error) {
	var u model.User
	var email, apiKey sql.NullString

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&email,
		&apiKey,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, err
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user table results: %w", err)
	}

	if email.Valid {
		u.Email = email.String
	}
	if apiKey.Valid {
		u.APIKey = apiKey.String
	}

	return u, nil
}
