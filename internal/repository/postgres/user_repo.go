package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

// CreateWithProfile inserts the user, profile and default role in one
// transaction. The hosted platform this replaces did the same work with a
// signup trigger.
func (r *userRepo) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("User with this email already exists")
		}
		return apperror.Internal(err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (id, user_id, name, email, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		profile.ID, profile.UserID, profile.Name, profile.Email, profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return apperror.Internal(err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`,
		user.ID, domain.RoleUser)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		userID, passwordHash)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT id, user_id, name, email, created_at, updated_at FROM profiles WHERE user_id = $1`
	var p domain.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Email, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfilesByUserIDs resolves a set of owners in one round trip, replacing
// the per-row lookups the admin view and activity feed used to do.
func (r *userRepo) GetProfilesByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.Profile, error) {
	result := make(map[string]domain.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, email, created_at, updated_at
         FROM profiles WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, apperror.Internal(err)
		}
		result[p.UserID] = p
	}
	return result, rows.Err()
}

func (r *userRepo) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, email, created_at, updated_at
         FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, apperror.Internal(err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *userRepo) UpdateProfileName(ctx context.Context, userID, name string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE profiles SET name = $2, updated_at = now() WHERE user_id = $1`,
		userID, name)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// GetRole defaults to 'user' when no role row exists, matching the original
// behavior of treating a missing row as an ordinary account.
func (r *userRepo) GetRole(ctx context.Context, userID string) (domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRow(ctx,
		`SELECT role FROM user_roles WHERE user_id = $1`, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RoleUser, nil
		}
		return "", err
	}
	return role, nil
}

func (r *userRepo) GetRolesByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.Role, error) {
	result := make(map[string]domain.Role, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id, role FROM user_roles WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		var role domain.Role
		if err := rows.Scan(&userID, &role); err != nil {
			return nil, apperror.Internal(err)
		}
		result[userID] = role
	}
	return result, rows.Err()
}

func (r *userRepo) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
         ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role`,
		userID, role)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) HasAdmin(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_roles WHERE role = $1)`,
		domain.RoleAdmin).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
