package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vladislav1234512345/topten/domain"
	"github.com/Vladislav1234512345/topten/internal/mocks"
)

type authServiceFixture struct {
	userRepo        *mocks.MockUserRepository
	verificationSvc *mocks.MockVerificationStore
	passwordSvc     *mocks.MockPasswordService
	tokenSvc        *mocks.MockTokenService
	notificationSvc *mocks.MockNotificationService
	svc             domain.AuthService
}

func newAuthServiceFixture(t *testing.T) *authServiceFixture {
	t.Helper()

	f := &authServiceFixture{
		userRepo:        mocks.NewMockUserRepository(),
		verificationSvc: mocks.NewMockVerificationStore(),
		passwordSvc:     mocks.NewMockPasswordService(),
		tokenSvc:        mocks.NewMockTokenService(),
		notificationSvc: mocks.NewMockNotificationService(),
	}
	f.svc = NewAuthService(
		f.userRepo,
		f.verificationSvc,
		f.passwordSvc,
		f.tokenSvc,
		f.notificationSvc,
		2*time.Minute,
		zap.NewNop(),
	)
	return f
}

func registeredUser() *domain.User {
	return &domain.User{
		ID:           7,
		Phone:        "+15551234567",
		PasswordHash: []byte("hashed_password123"),
		FirstName:    "Vlad",
		Role:         domain.RoleUser,
		IsActive:     true,
	}
}

func TestSendSignupCode(t *testing.T) {
	f := newAuthServiceFixture(t)

	err := f.svc.SendSignupCode(context.Background(), "+15551234567")
	require.NoError(t, err)

	require.Len(t, f.notificationSvc.SentSMS, 1)
	assert.Equal(t, "+15551234567", f.notificationSvc.SentSMS[0].To)
	assert.Contains(t, f.notificationSvc.SentSMS[0].Body, "123456")
}

func TestSendSignupCodeExistingHandle(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		return registeredUser(), nil
	}
	f.verificationSvc.IssueCodeFunc = func(ctx context.Context, purpose domain.Purpose, recipient string) (string, error) {
		t.Fatal("no code must be minted for a registered handle")
		return "", nil
	}

	err := f.svc.SendSignupCode(context.Background(), "+15551234567")
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	assert.Empty(t, f.notificationSvc.SentSMS)
}

func TestSendLoginCodeWrongPassword(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		return registeredUser(), nil
	}
	f.verificationSvc.IssueCodeFunc = func(ctx context.Context, purpose domain.Purpose, recipient string) (string, error) {
		t.Fatal("no code must be minted on a wrong password")
		return "", nil
	}

	err := f.svc.SendLoginCode(context.Background(), "+15551234567", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
}

func TestSendLoginCodeUnknownHandle(t *testing.T) {
	f := newAuthServiceFixture(t)

	err := f.svc.SendLoginCode(context.Background(), "+15551234567", "password123")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSendLoginCodeRateLimited(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		return registeredUser(), nil
	}
	f.verificationSvc.IssueCodeFunc = func(ctx context.Context, purpose domain.Purpose, recipient string) (string, error) {
		return "", domain.ErrRateLimited
	}

	err := f.svc.SendLoginCode(context.Background(), "+15551234567", "password123")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Empty(t, f.notificationSvc.SentSMS)
}

func TestSignup(t *testing.T) {
	f := newAuthServiceFixture(t)
	var deleted bool
	f.verificationSvc.DeleteCodeFunc = func(ctx context.Context, purpose domain.Purpose, recipient string) error {
		deleted = true
		return nil
	}
	f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		user.ID = 7
		return nil
	}

	result, err := f.svc.Signup(context.Background(), "+15551234567", "password123", "Vlad", "123456")
	require.NoError(t, err)

	assert.True(t, deleted, "the consumed code must be deleted")
	assert.Equal(t, uint(7), result.User.ID)
	assert.Equal(t, domain.RoleUser, result.User.Role)
	assert.True(t, result.User.IsActive)
	assert.Equal(t, []byte("hashed_password123"), result.User.PasswordHash)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
}

func TestSignupInvalidCodeCheckedBeforeExistence(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.verificationSvc.CheckCodeFunc = func(ctx context.Context, purpose domain.Purpose, recipient, candidate string) error {
		return domain.ErrInvalidCode
	}
	f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		t.Fatal("a bad code must fail before the identity store is touched")
		return nil
	}

	// A stale code never reveals whether the account exists.
	_, err := f.svc.Signup(context.Background(), "+15551234567", "password123", "Vlad", "000000")
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestSignupDuplicateHandle(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		return domain.ErrUserAlreadyExists
	}
	f.verificationSvc.DeleteCodeFunc = func(ctx context.Context, purpose domain.Purpose, recipient string) error {
		t.Fatal("the code must survive a conflicting signup")
		return nil
	}

	// Correct code plus registered handle yields AlreadyExists, not InvalidCode.
	_, err := f.svc.Signup(context.Background(), "+15551234567", "password123", "Vlad", "123456")
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		return registeredUser(), nil
	}
	var consumed bool
	f.verificationSvc.ConsumeCodeFunc = func(ctx context.Context, purpose domain.Purpose, recipient, candidate string) error {
		consumed = true
		return nil
	}

	result, err := f.svc.Login(context.Background(), "+15551234567", "password123", "123456")
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.Equal(t, "access-token-7", result.Tokens.AccessToken)
	assert.Equal(t, "refresh-token-7", result.Tokens.RefreshToken)
}

func TestLoginUnknownHandle(t *testing.T) {
	f := newAuthServiceFixture(t)

	_, err := f.svc.Login(context.Background(), "+15551234567", "password123", "123456")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLoginInactive(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		user := registeredUser()
		user.IsActive = false
		return user, nil
	}

	_, err := f.svc.Login(context.Background(), "+15551234567", "password123", "123456")
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestLoginPasswordCheckedBeforeCode(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		return registeredUser(), nil
	}
	f.verificationSvc.ConsumeCodeFunc = func(ctx context.Context, purpose domain.Purpose, recipient, candidate string) error {
		t.Fatal("a wrong password must not burn the code")
		return nil
	}

	_, err := f.svc.Login(context.Background(), "+15551234567", "wrong", "123456")
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
}

func TestLoginWrongCode(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		return registeredUser(), nil
	}
	f.verificationSvc.ConsumeCodeFunc = func(ctx context.Context, purpose domain.Purpose, recipient, candidate string) error {
		return domain.ErrInvalidCode
	}

	_, err := f.svc.Login(context.Background(), "+15551234567", "password123", "000000")
	assert.ErrorIs(t, err, domain.ErrInvalidCode)
}

func TestRequestPasswordReset(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		return registeredUser(), nil
	}

	err := f.svc.RequestPasswordReset(context.Background(), "+15551234567")
	require.NoError(t, err)

	require.Len(t, f.notificationSvc.SentSMS, 1)
	assert.Contains(t, f.notificationSvc.SentSMS[0].Body, "reset-key")
}

func TestRequestPasswordResetUnknownHandle(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.verificationSvc.IssueResetKeyFunc = func(ctx context.Context, recipient string) (string, error) {
		t.Fatal("no reset key must be minted for an unknown handle")
		return "", nil
	}

	err := f.svc.RequestPasswordReset(context.Background(), "+15551234567")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestResetPassword(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.verificationSvc.LookupResetKeyFunc = func(ctx context.Context, key string) (string, error) {
		return "+15551234567", nil
	}
	var consumed bool
	f.verificationSvc.ConsumeResetKeyFunc = func(ctx context.Context, key string) (string, error) {
		consumed = true
		return "+15551234567", nil
	}
	f.userRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.User, error) {
		return registeredUser(), nil
	}
	var updatedHash []byte
	f.userRepo.UpdatePasswordFunc = func(ctx context.Context, id uint, passwordHash []byte) error {
		assert.Equal(t, uint(7), id)
		updatedHash = passwordHash
		return nil
	}

	err := f.svc.ResetPassword(context.Background(), "some-key", "newpassword1", "newpassword1")
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.Equal(t, []byte("hashed_newpassword1"), updatedHash)
}

func TestResetPasswordInvalidKey(t *testing.T) {
	f := newAuthServiceFixture(t)

	err := f.svc.ResetPassword(context.Background(), "bogus", "newpassword1", "newpassword1")
	assert.ErrorIs(t, err, domain.ErrInvalidResetKey)
}

func TestResetPasswordMismatchLeavesKeyUsable(t *testing.T) {
	f := newAuthServiceFixture(t)
	f.verificationSvc.LookupResetKeyFunc = func(ctx context.Context, key string) (string, error) {
		return "+15551234567", nil
	}
	f.verificationSvc.ConsumeResetKeyFunc = func(ctx context.Context, key string) (string, error) {
		t.Fatal("a mismatched pair must not consume the reset key")
		return "", nil
	}
	f.userRepo.UpdatePasswordFunc = func(ctx context.Context, id uint, passwordHash []byte) error {
		t.Fatal("a mismatched pair must not touch the stored hash")
		return nil
	}

	err := f.svc.ResetPassword(context.Background(), "some-key", "newpassword1", "different1")
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
}

func TestRefresh(t *testing.T) {
	f := newAuthServiceFixture(t)

	result, err := f.svc.Refresh(context.Background(), registeredUser())
	require.NoError(t, err)
	assert.Equal(t, "access-token-7", result.Tokens.AccessToken)
	assert.Equal(t, "refresh-token-7", result.Tokens.RefreshToken)
}
