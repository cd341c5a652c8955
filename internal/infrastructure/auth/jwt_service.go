package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Vladislav1234512345/topten/domain"
)

// jwtClaims is the wire representation of domain.TokenClaims.
type jwtClaims struct {
	Type      string `json:"type"`
	UserID    uint   `json:"uid"`
	FirstName string `json:"name,omitempty"`
	Role      int    `json:"role"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService with RS256 signing. The
// private key stays with the issuing authority; any instance holding only the
// public key can still validate.
type JWTServiceImpl struct {
	privateKey      *rsa.PrivateKey
	publicKey       *rsa.PublicKey
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService creates a new JWT service from PEM-encoded RSA key material.
func NewJWTService(privateKeyPEM, publicKeyPEM []byte, issuer string, accessTTL, refreshTTL time.Duration) (domain.TokenService, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA private key: %w", err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}

	return &JWTServiceImpl{
		privateKey:      privateKey,
		publicKey:       publicKey,
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}, nil
}

// NewJWTServiceFromKeys creates a JWT service from an already parsed keypair.
func NewJWTServiceFromKeys(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		privateKey:      privateKey,
		publicKey:       publicKey,
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

// Issue implements domain.TokenService. Access and refresh claims carry the
// same identity snapshot and differ only in type and lifetime.
func (j *JWTServiceImpl) Issue(user *domain.User, tokenType domain.TokenType) (string, error) {
	ttl := j.accessTokenTTL
	if tokenType == domain.TokenTypeRefresh {
		ttl = j.refreshTokenTTL
	}

	now := time.Now()
	claims := &jwtClaims{
		Type:      string(tokenType),
		UserID:    user.ID,
		FirstName: user.FirstName,
		Role:      int(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Phone,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(j.privateKey)
}

// Validate implements domain.TokenService. Expired tokens and tokens that
// fail signature or structural checks surface as distinct error kinds;
// callers silently refresh on the former and force re-authentication on the
// latter.
func (j *JWTServiceImpl) Validate(tokenString string) (*domain.TokenClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))

	var claims jwtClaims
	token, err := parser.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return j.publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	tokenType := domain.TokenType(claims.Type)
	if tokenType != domain.TokenTypeAccess && tokenType != domain.TokenTypeRefresh {
		return nil, domain.ErrTokenInvalid
	}

	tokenClaims := &domain.TokenClaims{
		Type:      tokenType,
		UserID:    claims.UserID,
		Subject:   claims.Subject,
		FirstName: claims.FirstName,
		Role:      domain.Role(claims.Role),
	}
	if claims.IssuedAt != nil {
		tokenClaims.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		tokenClaims.ExpiresAt = claims.ExpiresAt.Time
	}

	return tokenClaims, nil
}
