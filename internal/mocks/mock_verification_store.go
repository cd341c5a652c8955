package mocks

import (
	"context"

	"github.com/Vladislav1234512345/topten/domain"
)

// MockVerificationStore implements domain.VerificationStore interface for testing
type MockVerificationStore struct {
	IssueCodeFunc       func(ctx context.Context, purpose domain.Purpose, recipient string) (string, error)
	CheckCodeFunc       func(ctx context.Context, purpose domain.Purpose, recipient, candidate string) error
	ConsumeCodeFunc     func(ctx context.Context, purpose domain.Purpose, recipient, candidate string) error
	DeleteCodeFunc      func(ctx context.Context, purpose domain.Purpose, recipient string) error
	IssueResetKeyFunc   func(ctx context.Context, recipient string) (string, error)
	LookupResetKeyFunc  func(ctx context.Context, key string) (string, error)
	ConsumeResetKeyFunc func(ctx context.Context, key string) (string, error)
}

// NewMockVerificationStore creates a new MockVerificationStore with default behaviors
func NewMockVerificationStore() *MockVerificationStore {
	return &MockVerificationStore{}
}

// IssueCode mints a verification code
func (m *MockVerificationStore) IssueCode(ctx context.Context, purpose domain.Purpose, recipient string) (string, error) {
	if m.IssueCodeFunc != nil {
		return m.IssueCodeFunc(ctx, purpose, recipient)
	}
	// Default behavior: fixed code
	return "123456", nil
}

// CheckCode compares a candidate without consuming
func (m *MockVerificationStore) CheckCode(ctx context.Context, purpose domain.Purpose, recipient, candidate string) error {
	if m.CheckCodeFunc != nil {
		return m.CheckCodeFunc(ctx, purpose, recipient, candidate)
	}
	// Default behavior: match
	return nil
}

// ConsumeCode atomically compares and deletes
func (m *MockVerificationStore) ConsumeCode(ctx context.Context, purpose domain.Purpose, recipient, candidate string) error {
	if m.ConsumeCodeFunc != nil {
		return m.ConsumeCodeFunc(ctx, purpose, recipient, candidate)
	}
	// Default behavior: match
	return nil
}

// DeleteCode removes an entry
func (m *MockVerificationStore) DeleteCode(ctx context.Context, purpose domain.Purpose, recipient string) error {
	if m.DeleteCodeFunc != nil {
		return m.DeleteCodeFunc(ctx, purpose, recipient)
	}
	// Default behavior: success
	return nil
}

// IssueResetKey mints a reset key
func (m *MockVerificationStore) IssueResetKey(ctx context.Context, recipient string) (string, error) {
	if m.IssueResetKeyFunc != nil {
		return m.IssueResetKeyFunc(ctx, recipient)
	}
	// Default behavior: fixed key
	return "reset-key", nil
}

// LookupResetKey resolves a reset key without consuming
func (m *MockVerificationStore) LookupResetKey(ctx context.Context, key string) (string, error) {
	if m.LookupResetKeyFunc != nil {
		return m.LookupResetKeyFunc(ctx, key)
	}
	// Default behavior: miss
	return "", domain.ErrInvalidResetKey
}

// ConsumeResetKey atomically resolves and deletes a reset key
func (m *MockVerificationStore) ConsumeResetKey(ctx context.Context, key string) (string, error) {
	if m.ConsumeResetKeyFunc != nil {
		return m.ConsumeResetKeyFunc(ctx, key)
	}
	// Default behavior: miss
	return "", domain.ErrInvalidResetKey
}

// Compile-time interface compliance verification
var _ domain.VerificationStore = (*MockVerificationStore)(nil)
