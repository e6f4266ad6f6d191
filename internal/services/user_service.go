package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/reyhanturkkal/Task-Management/internal/errs"
	"github.com/reyhanturkkal/Task-Management/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	CreateUser(username, email, password string) (models.User, error)
	UpdateProfile(id string, update models.ProfileUpdate) (models.User, error)
	DeleteUser(id string) error
	AuthenticateUser(email, password string) (models.User, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure. The driver exposes no typed error for it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, errs.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the password hash.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, errs.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser creates a new user, hashing their password. A taken email
// fails with errs.ErrConflict.
func (s *UserService) CreateUser(username, email, password string) (models.User, error) {
	if username == "" || email == "" || password == "" {
		return models.User{}, errs.Validation("username, email and password are required")
	}

	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&exists); err != nil {
		return models.User{}, err
	}
	if exists > 0 {
		return models.User{}, errs.ErrConflict
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, username, email, password_hash) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		// Two concurrent signups can both pass the count above; the
		// constraint catches the loser.
		if isUniqueViolation(err) {
			return models.User{}, errs.ErrConflict
		}
		return models.User{}, err
	}

	// Re-read so the caller gets the stored row without the password hash.
	return s.GetUserByID(user.ID)
}

// UpdateProfile applies a partial update to a user's profile. Nil and
// empty-string fields are left untouched; a new password is re-hashed
// before storage.
func (s *UserService) UpdateProfile(id string, update models.ProfileUpdate) (models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return models.User{}, err
	}

	if update.Username != nil && *update.Username != "" {
		user.Username = *update.Username
	}
	if update.Email != nil && *update.Email != "" && *update.Email != user.Email {
		var exists int
		if err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE email = ? AND id != ?", *update.Email, id).Scan(&exists); err != nil {
			return models.User{}, err
		}
		if exists > 0 {
			return models.User{}, errs.ErrConflict
		}
		user.Email = *update.Email
	}

	if _, err := s.db.Exec("UPDATE users SET username = ?, email = ? WHERE id = ?", user.Username, user.Email, id); err != nil {
		if isUniqueViolation(err) {
			return models.User{}, errs.ErrConflict
		}
		return models.User{}, err
	}

	if update.Password != nil && *update.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, fmt.Errorf("failed to hash new password: %w", err)
		}
		if _, err := s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(hashedPassword), id); err != nil {
			return models.User{}, err
		}
	}

	return s.GetUserByID(id)
}

// DeleteUser removes a user and all of their tasks. The explicit task delete
// backs up the schema's ON DELETE CASCADE so the invariant holds even on
// databases migrated without foreign keys enabled.
func (s *UserService) DeleteUser(id string) error {
	if _, err := s.GetUserByID(id); err != nil {
		return err
	}

	if _, err := s.db.Exec("DELETE FROM tasks WHERE user_id = ?", id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

// AuthenticateUser verifies a user's credentials. Unknown emails and wrong
// passwords both fail with errs.ErrInvalidCredentials so callers cannot
// probe which emails are registered.
func (s *UserService) AuthenticateUser(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, errs.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return models.User{}, errs.ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
