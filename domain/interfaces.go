package domain

import "context"

// UserRepository defines identity data access operations. This core never
// deletes identities.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash []byte) error
	UpdateRole(ctx context.Context, id uint, role Role) error
	SetActive(ctx context.Context, id uint, active bool) error
	List(ctx context.Context) ([]*User, error)
}

// VerificationStore manages short-lived single-use secrets in a TTL store.
//
// Codes are keyed by (purpose, recipient); reset keys invert the mapping and
// are keyed by the secret itself, resolving to the recipient.
type VerificationStore interface {
	// IssueCode mints and stores a code. A live entry for the same
	// (purpose, recipient) pair fails with ErrRateLimited and is left intact.
	IssueCode(ctx context.Context, purpose Purpose, recipient string) (string, error)
	// CheckCode compares without consuming. Misses and mismatches are both
	// reported as ErrInvalidCode.
	CheckCode(ctx context.Context, purpose Purpose, recipient, candidate string) error
	// ConsumeCode atomically compares and, on a match, deletes the entry.
	// A mismatch leaves a still-valid entry untouched.
	ConsumeCode(ctx context.Context, purpose Purpose, recipient, candidate string) error
	DeleteCode(ctx context.Context, purpose Purpose, recipient string) error

	IssueResetKey(ctx context.Context, recipient string) (string, error)
	// LookupResetKey resolves a reset key to its recipient without consuming.
	LookupResetKey(ctx context.Context, key string) (string, error)
	// ConsumeResetKey atomically resolves and deletes the reset key.
	ConsumeResetKey(ctx context.Context, key string) (string, error)
}

// PasswordService defines one-way password hashing operations.
type PasswordService interface {
	Hash(password string) ([]byte, error)
	Verify(hashedPassword []byte, password string) bool
}

// TokenService encodes and decodes signed bearer token claims.
type TokenService interface {
	Issue(user *User, tokenType TokenType) (string, error)
	// Validate fails with ErrTokenExpired or ErrTokenInvalid; it never
	// returns claims from a token it could not verify.
	Validate(token string) (*TokenClaims, error)
}

// NotificationService delivers secrets out of band. Fire and forget: the
// core's contract ends at handing off the secret.
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// AuthService defines the identity verification and credential issuance flows.
type AuthService interface {
	SendSignupCode(ctx context.Context, phone string) error
	SendLoginCode(ctx context.Context, phone, password string) error
	Signup(ctx context.Context, phone, password, firstName, code string) (*AuthResult, error)
	Login(ctx context.Context, phone, password, code string) (*AuthResult, error)
	RequestPasswordReset(ctx context.Context, phone string) error
	ResetPassword(ctx context.Context, key, password, passwordConfirm string) error
	Refresh(ctx context.Context, user *User) (*AuthResult, error)
}
