package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Vladislav1234512345/topten/domain"
)

// AuthServiceImpl implements domain.AuthService. Each operation is an ordered
// precondition chain; the first violated precondition decides the error.
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	verificationSvc domain.VerificationStore
	passwordSvc     domain.PasswordService
	tokenSvc        domain.TokenService
	notificationSvc domain.NotificationService
	codeTTL         time.Duration
	logger          *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	verificationSvc domain.VerificationStore,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	notificationSvc domain.NotificationService,
	codeTTL time.Duration,
	logger *zap.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		verificationSvc: verificationSvc,
		passwordSvc:     passwordSvc,
		tokenSvc:        tokenSvc,
		notificationSvc: notificationSvc,
		codeTTL:         codeTTL,
		logger:          logger,
	}
}

// SendSignupCode implements domain.AuthService. The contact handle must not
// be registered yet.
func (s *AuthServiceImpl) SendSignupCode(ctx context.Context, phone string) error {
	_, err := s.userRepo.FindByPhone(ctx, phone)
	if err == nil {
		s.logger.Warn("signup code requested for registered handle", zap.String("phone", phone))
		return domain.ErrUserAlreadyExists
	}
	if err != domain.ErrUserNotFound {
		return err
	}

	return s.issueAndSendCode(ctx, phone)
}

// SendLoginCode implements domain.AuthService. The password is verified
// before a code is minted, so wrong-password attempts never burn an entry.
func (s *AuthServiceImpl) SendLoginCode(ctx context.Context, phone, password string) error {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.logger.Warn("login code requested with wrong password", zap.String("phone", phone))
		return domain.ErrInvalidPassword
	}

	return s.issueAndSendCode(ctx, phone)
}

func (s *AuthServiceImpl) issueAndSendCode(ctx context.Context, phone string) error {
	code, err := s.verificationSvc.IssueCode(ctx, domain.PurposeVerification, phone)
	if err != nil {
		if err == domain.ErrRateLimited {
			s.logger.Warn("verification code still live", zap.String("phone", phone))
		}
		return err
	}

	message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.",
		code, int(s.codeTTL.Minutes()))
	if err := s.notificationSvc.SendSMS(phone, message); err != nil {
		// Delivery is the notifier's concern; the entry stays live so the
		// client can retry against the same code.
		s.logger.Error("failed to send verification code", zap.String("phone", phone), zap.Error(err))
	}

	s.logger.Info("verification code issued", zap.String("phone", phone))
	return nil
}

// Signup implements domain.AuthService. The code is checked before existence
// so a stale code never reveals whether the account is registered; it is only
// deleted after the identity is created.
func (s *AuthServiceImpl) Signup(ctx context.Context, phone, password, firstName, code string) (*domain.AuthResult, error) {
	if err := s.verificationSvc.CheckCode(ctx, domain.PurposeVerification, phone, code); err != nil {
		s.logger.Warn("signup with invalid code", zap.String("phone", phone))
		return nil, err
	}

	passwordHash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Phone:        phone,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		Role:         domain.RoleUser,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == domain.ErrUserAlreadyExists {
			s.logger.Warn("signup for registered handle", zap.String("phone", phone))
		}
		return nil, err
	}

	if err := s.verificationSvc.DeleteCode(ctx, domain.PurposeVerification, phone); err != nil {
		s.logger.Error("failed to delete consumed code", zap.String("phone", phone), zap.Error(err))
	}

	tokens, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.String("phone", phone), zap.Uint("user_id", user.ID))
	return &domain.AuthResult{User: user, Tokens: tokens}, nil
}

// Login implements domain.AuthService. The password is checked before the
// code deliberately, so a wrong-password attempt cannot burn a valid code.
func (s *AuthServiceImpl) Login(ctx context.Context, phone, password, code string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.logger.Warn("login with wrong password", zap.String("phone", phone))
		return nil, domain.ErrInvalidPassword
	}

	if err := s.verificationSvc.ConsumeCode(ctx, domain.PurposeVerification, phone, code); err != nil {
		s.logger.Warn("login with invalid code", zap.String("phone", phone))
		return nil, err
	}

	tokens, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("phone", phone), zap.Uint("user_id", user.ID))
	return &domain.AuthResult{User: user, Tokens: tokens}, nil
}

// RequestPasswordReset implements domain.AuthService
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, phone string) error {
	if _, err := s.userRepo.FindByPhone(ctx, phone); err != nil {
		return err
	}

	key, err := s.verificationSvc.IssueResetKey(ctx, phone)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Your password reset key: %s", key)
	if err := s.notificationSvc.SendSMS(phone, message); err != nil {
		s.logger.Error("failed to send reset key", zap.String("phone", phone), zap.Error(err))
	}

	s.logger.Info("password reset requested", zap.String("phone", phone))
	return nil
}

// ResetPassword implements domain.AuthService. The reset entry survives a
// password mismatch and is consumed only once the new hash is stored. No
// tokens are issued; the caller logs in afterwards.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, key, password, passwordConfirm string) error {
	phone, err := s.verificationSvc.LookupResetKey(ctx, key)
	if err != nil {
		s.logger.Warn("reset with invalid key")
		return err
	}

	if password != passwordConfirm {
		return domain.ErrPasswordMismatch
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}

	passwordHash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}

	if _, err := s.verificationSvc.ConsumeResetKey(ctx, key); err != nil {
		s.logger.Error("failed to consume reset key", zap.String("phone", phone), zap.Error(err))
	}

	s.logger.Info("password reset", zap.String("phone", phone), zap.Uint("user_id", user.ID))
	return nil
}

// Refresh implements domain.AuthService. The middleware has already
// re-resolved the identity from the store, so role changes and deactivations
// take effect on the next refresh rather than lingering until the refresh
// token expires.
func (s *AuthServiceImpl) Refresh(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	tokens, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("tokens refreshed", zap.String("phone", user.Phone), zap.Uint("user_id", user.ID))
	return &domain.AuthResult{User: user, Tokens: tokens}, nil
}

func (s *AuthServiceImpl) issuePair(user *domain.User) (domain.TokenPair, error) {
	accessToken, err := s.tokenSvc.Issue(user, domain.TokenTypeAccess)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.Issue(user, domain.TokenTypeRefresh)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
