package user

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"financetracker/internal/finance/domain"
)

var ErrUserNotFound = errors.New("user not found")

const uniqueViolationCode = "23505"

type Repository interface {
	createUserWithDefaults(user *User, displayName string) error
	getUserByID(id string) (*User, error)
	getUserByUsername(username string) (*User, error)
	getProfile(userID string) (*Profile, error)
	deleteUser(userID string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

// createUserWithDefaults inserts the user, their profile and the fallback
// category every account starts with, all in one transaction.
func (r *userRepository) createUserWithDefaults(user *User, displayName string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %v", err)
	}
	defer tx.Rollback()

	userID := uuid.NewString()
	query := `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at;
	`
	err = tx.QueryRow(query, userID, user.Username, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrUsernameTaken
		}
		return fmt.Errorf("could not create user: %v", err)
	}

	_, err = tx.Exec(`INSERT INTO user_profiles (user_id, display_name) VALUES ($1, $2)`, userID, displayName)
	if err != nil {
		return fmt.Errorf("could not create user profile: %v", err)
	}

	_, err = tx.Exec(
		`INSERT INTO categories (user_id, name, type) VALUES ($1, $2, $3)`,
		userID, domain.DefaultCategoryName, string(domain.CategoryTypeNeutral),
	)
	if err != nil {
		return fmt.Errorf("could not create default category: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %v", err)
	}

	user.ID = userID
	return nil
}

func (r *userRepository) getUserByID(id string) (*User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	var user User
	err := r.db.QueryRow(query, id).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}

	return &user, nil
}

func (r *userRepository) getUserByUsername(username string) (*User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	var user User
	err := r.db.QueryRow(query, username).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}

	return &user, nil
}

func (r *userRepository) getProfile(userID string) (*Profile, error) {
	query := `
		SELECT u.username, u.email, p.display_name
		FROM users u
		JOIN user_profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`

	var profile Profile
	err := r.db.QueryRow(query, userID).Scan(&profile.Username, &profile.Email, &profile.DisplayName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user profile: %v", err)
	}

	return &profile, nil
}

// deleteUser removes the account. Categories, transactions and the profile
// go with it through the foreign key cascades.
func (r *userRepository) deleteUser(userID string) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("could not delete user: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not delete user: %v", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
