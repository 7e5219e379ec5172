package userstore

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no user matches the lookup.
	ErrNotFound = errors.New("userstore: user not found")

	// ErrDuplicate indicates the email, phone, or wechat id is already
	// registered.
	ErrDuplicate = errors.New("userstore: identifier already registered")

	// ErrMissingIdentifier indicates a user with no email, phone, or
	// wechat id.
	ErrMissingIdentifier = errors.New("userstore: user needs at least one identifier")
)

// User is an account record. PasswordHash is the sha256 hex digest of
// the password; the plaintext is never stored.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	WechatOpenID  string    `json:"wechatOpenId,omitempty"`
	WechatUnionID string    `json:"wechatUnionId,omitempty"`
	Nickname      string    `json:"nickname,omitempty"`
	Role          string    `json:"role"`
	PasswordHash  string    `json:"-"`
	LastLoginAt   time.Time `json:"lastLoginAt,omitempty"`
	LastLoginIP   string    `json:"lastLoginIp,omitempty"`
	LoginCount    int       `json:"loginCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Store provides user account storage.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods should honor cancellation/deadlines.
// - Errors: lookups return ErrNotFound for missing users; Create returns
//   ErrDuplicate when any identifier is taken.
type Store interface {
	// FindByID retrieves a user by id.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail retrieves a user by email address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByPhone retrieves a user by phone number.
	FindByPhone(ctx context.Context, phone string) (*User, error)

	// FindByWechatOpenID retrieves a user by wechat open id.
	FindByWechatOpenID(ctx context.Context, openID string) (*User, error)

	// Create stores a new user and assigns its ID and timestamps.
	Create(ctx context.Context, u *User) (*User, error)

	// Update replaces a stored user's mutable fields.
	Update(ctx context.Context, u *User) (*User, error)

	// RecordLogin stamps the login time and source IP and bumps the
	// login counter.
	RecordLogin(ctx context.Context, id, ip string) error
}
