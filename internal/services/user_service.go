package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cadastro-api/cadastro-be/internal/auth"
	"github.com/cadastro-api/cadastro-be/internal/models"
)

// Sentinel errors returned by the user service. Anything else coming out of
// it is an unexpected store failure.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("email or cpf already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Create(ctx context.Context, name, email, password, cpf string) (models.User, error)
	Authenticate(ctx context.Context, email, cpf, password string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	Update(ctx context.Context, id string, name, email, password *string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.User, error)
}

// UserService provides persistence and credential checks for user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// findByEmailOrCPF returns the row matching either identifier, password hash
// included. Callers must treat sql.ErrNoRows as "no such user".
func (s *UserService) findByEmailOrCPF(ctx context.Context, email, cpf string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, password FROM users WHERE email = ? OR cpf = ? LIMIT 1", email, cpf)
	if err := row.Scan(&user.ID, &user.PasswordHash); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Create inserts a new user, hashing the password first. The id is minted
// here, not supplied by the caller. Duplicate detection checks email and cpf
// jointly; the unique constraints on the table remain the real guarantee, as
// the check-then-insert sequence is not atomic across concurrent requests.
func (s *UserService) Create(ctx context.Context, name, email, password, cpf string) (models.User, error) {
	_, err := s.findByEmailOrCPF(ctx, email, cpf)
	if err == nil {
		return models.User{}, ErrDuplicateUser
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("failed to check for existing user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
		CPF:   cpf,
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users(id, name, email, password, cpf) VALUES(?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, hash, user.CPF)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

// Authenticate verifies a user's credentials by email or cpf. Unknown user
// and wrong password both map to ErrInvalidCredentials so callers cannot
// leak which check failed.
func (s *UserService) Authenticate(ctx context.Context, email, cpf, password string) (models.User, error) {
	user, err := s.findByEmailOrCPF(ctx, email, cpf)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// GetByID retrieves a single user by id, never projecting the password hash.
func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, cpf FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.CPF)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Update applies a partial update: nil fields keep their stored value. A new
// password is re-hashed before storage. Returns ErrUserNotFound when no row
// matched the id.
func (s *UserService) Update(ctx context.Context, id string, name, email, password *string) error {
	var setClauses []string
	var args []interface{}

	if name != nil {
		setClauses = append(setClauses, "name = ?")
		args = append(args, *name)
	}
	if email != nil {
		setClauses = append(setClauses, "email = ?")
		args = append(args, *email)
	}
	if password != nil {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			return err
		}
		setClauses = append(setClauses, "password = ?")
		args = append(args, hash)
	}
	if len(setClauses) == 0 {
		return nil
	}

	args = append(args, id)
	query := "UPDATE users SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user by id. Returns ErrUserNotFound when no row matched.
func (s *UserService) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// List returns every user, id/name/email/cpf projection only.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, email, cpf FROM users")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CPF); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
