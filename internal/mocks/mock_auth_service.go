package mocks

import (
	"context"

	"github.com/Vladislav1234512345/topten/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	SendSignupCodeFunc       func(ctx context.Context, phone string) error
	SendLoginCodeFunc        func(ctx context.Context, phone, password string) error
	SignupFunc               func(ctx context.Context, phone, password, firstName, code string) (*domain.AuthResult, error)
	LoginFunc                func(ctx context.Context, phone, password, code string) (*domain.AuthResult, error)
	RequestPasswordResetFunc func(ctx context.Context, phone string) error
	ResetPasswordFunc        func(ctx context.Context, key, password, passwordConfirm string) error
	RefreshFunc              func(ctx context.Context, user *domain.User) (*domain.AuthResult, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func defaultAuthResult() *domain.AuthResult {
	return &domain.AuthResult{
		User: &domain.User{
			ID:        1,
			Phone:     "+15551234567",
			FirstName: "Test",
			Role:      domain.RoleUser,
			IsActive:  true,
		},
		Tokens: domain.TokenPair{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
		},
	}
}

// SendSignupCode sends a signup verification code
func (m *MockAuthService) SendSignupCode(ctx context.Context, phone string) error {
	if m.SendSignupCodeFunc != nil {
		return m.SendSignupCodeFunc(ctx, phone)
	}
	// Default behavior: success
	return nil
}

// SendLoginCode sends a login verification code
func (m *MockAuthService) SendLoginCode(ctx context.Context, phone, password string) error {
	if m.SendLoginCodeFunc != nil {
		return m.SendLoginCodeFunc(ctx, phone, password)
	}
	// Default behavior: success
	return nil
}

// Signup registers a new user
func (m *MockAuthService) Signup(ctx context.Context, phone, password, firstName, code string) (*domain.AuthResult, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, phone, password, firstName, code)
	}
	// Default behavior: success
	return defaultAuthResult(), nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, phone, password, code string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, phone, password, code)
	}
	// Default behavior: success
	return defaultAuthResult(), nil
}

// RequestPasswordReset issues and delivers a reset key
func (m *MockAuthService) RequestPasswordReset(ctx context.Context, phone string) error {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, phone)
	}
	// Default behavior: success
	return nil
}

// ResetPassword applies a new password addressed by the reset key
func (m *MockAuthService) ResetPassword(ctx context.Context, key, password, passwordConfirm string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, key, password, passwordConfirm)
	}
	// Default behavior: success
	return nil
}

// Refresh re-issues a token pair
func (m *MockAuthService) Refresh(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, user)
	}
	// Default behavior: success
	return defaultAuthResult(), nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
