package domain

import (
	"fmt"
	"time"
)

// Role is an ordered privilege level. Higher values subsume lower ones, so
// authorization checks are expressed as Role.Atleast(required).
type Role int

const (
	RoleUser      Role = 10
	RoleStuff     Role = 50
	RoleAdmin     Role = 100
	RoleSuperuser Role = 1000
)

// Atleast reports whether the role meets the required minimum.
func (r Role) Atleast(min Role) bool {
	return r >= min
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleStuff:
		return "stuff"
	case RoleAdmin:
		return "admin"
	case RoleSuperuser:
		return "superuser"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole maps a role name back to its ordered value.
func ParseRole(s string) (Role, error) {
	switch s {
	case "user":
		return RoleUser, nil
	case "stuff":
		return RoleStuff, nil
	case "admin":
		return RoleAdmin, nil
	case "superuser":
		return RoleSuperuser, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

// TokenType distinguishes the two bearer token classes.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Purpose names the lifecycle a verification entry belongs to. It is part of
// the storage key, so a login code can never satisfy a reset flow.
type Purpose string

const (
	PurposeVerification  Purpose = "code"
	PurposePasswordReset Purpose = "password"
)

// User is the identity record owned by the relational store. The phone number
// is the unique contact handle.
type User struct {
	ID           uint
	Phone        string
	PasswordHash []byte
	FirstName    string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TokenClaims is the signed payload carried by both token classes. Access and
// refresh claims differ only in Type and ExpiresAt; the identity snapshot is
// taken at issuance time.
type TokenClaims struct {
	Type      TokenType
	UserID    uint
	Subject   string
	FirstName string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is the issuance result handed to the transport layer.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult bundles the authenticated user with its freshly issued tokens.
type AuthResult struct {
	User   *User
	Tokens TokenPair
}
