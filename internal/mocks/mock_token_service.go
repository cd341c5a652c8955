package mocks

import (
	"fmt"

	"github.com/Vladislav1234512345/topten/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueFunc    func(user *domain.User, tokenType domain.TokenType) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue issues a token
func (m *MockTokenService) Issue(user *domain.User, tokenType domain.TokenType) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(user, tokenType)
	}
	// Default behavior: deterministic opaque token
	return fmt.Sprintf("%s-token-%d", tokenType, user.ID), nil
}

// Validate validates a token
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
