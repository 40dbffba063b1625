package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user and authentication operations.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrNotVerified        = errors.New("user must be verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents a registered speaker or organizer.
// swagger:model User
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstname"`
	Verified     bool      `json:"verified"`
	Admin        bool      `json:"admin"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User. ID is set by the repository on create;
// Verified starts false until the email round-trip completes.
func NewUser(email, firstName, passwordHash, salt string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:        email,
		FirstName:    firstName,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// TokenClaims is the decoded claim set of a bearer token. Subject carries
// the user id as a string-encoded integer.
type TokenClaims struct {
	Subject  string
	Email    string
	Verified bool
	Admin    bool
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues signed tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID int, email string, verified, admin bool, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token's signature and returns its claim set.
// A missing, malformed, or badly signed token yields an error; callers must
// treat any error as "unauthenticated".
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	SetVerified(ctx context.Context, id int) error
}

// UserService defines the business logic for signup, email verification,
// and login.
type UserService interface {
	SignUp(ctx context.Context, email, firstName, password string) (*User, error)
	VerifyEmail(ctx context.Context, token string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	GetByID(ctx context.Context, id int) (*User, error)
}
