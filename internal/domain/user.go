package domain

import (
	"context"
	"time"
)

// Role is resolved once per request by the auth middleware and carried in
// context. Everything below the delivery layer reads it from there instead of
// re-querying user_roles.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// RoleFromContext returns the caller's role, falling back to anonymous when
// the request never passed the auth middleware.
func RoleFromContext(ctx context.Context) Role {
	if r, ok := ctx.Value(KeyUserRole).(Role); ok {
		return r
	}
	return RoleAnonymous
}

// UserIDFromContext returns the authenticated caller's id, or "" when absent.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyUserID).(string); ok {
		return id
	}
	return ""
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the user's display record. Created in the same transaction as the
// User row (the hosted provider did this with a signup trigger).
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ManagedUser is a profile joined with its role, for the admin user list.
type ManagedUser struct {
	Profile
	Role Role `json:"role"`
}

// Identity is what the auth middleware attaches to a request.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

type UserRepository interface {
	// CreateWithProfile inserts the user, its profile and a default 'user'
	// role row in one transaction.
	CreateWithProfile(ctx context.Context, user *User, profile *Profile) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	GetProfileByUserID(ctx context.Context, userID string) (*Profile, error)
	// GetProfilesByUserIDs resolves many owners in a single round trip.
	GetProfilesByUserIDs(ctx context.Context, userIDs []string) (map[string]Profile, error)
	ListProfiles(ctx context.Context) ([]Profile, error)
	UpdateProfileName(ctx context.Context, userID, name string) error

	GetRole(ctx context.Context, userID string) (Role, error)
	GetRolesByUserIDs(ctx context.Context, userIDs []string) (map[string]Role, error)
	UpdateRole(ctx context.Context, userID string, role Role) error
	HasAdmin(ctx context.Context) (bool, error)
}

// TokenResponse is returned by Login.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      Identity  `json:"user"`
}

type AuthUsecase interface {
	Register(ctx context.Context, name, email, password string) (*Profile, error)
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	// Logout revokes the presented token until its natural expiry.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	ChangePassword(ctx context.Context, newPassword string) error
	Me(ctx context.Context) (*Identity, error)
	UpdateProfileName(ctx context.Context, name string) error
	// ResolveIdentity is used by the auth middleware to turn a verified token
	// subject into a role-bearing identity.
	ResolveIdentity(ctx context.Context, userID string) (*Identity, error)
}

type AdminUsecase interface {
	ListReports(ctx context.Context, division Division) ([]ReportWithOwner, error)
	ExportReports(ctx context.Context, division Division) (data []byte, filename string, err error)
	ListUsers(ctx context.Context) ([]ManagedUser, error)
	CreateUser(ctx context.Context, name, email, password string) (*Profile, error)
}

// BootstrapUsecase seeds the first administrator. Deployment-time only, see
// cmd/bootstrap.
type BootstrapUsecase interface {
	EnsureAdmin(ctx context.Context, name, email, password string) (*Profile, error)
}
