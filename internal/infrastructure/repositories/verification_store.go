package repositories

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vladislav1234512345/topten/domain"
)

const digits = "0123456789"
const alphanumerics = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// consumeRetries bounds optimistic-transaction restarts when the watched key
// is touched concurrently.
const consumeRetries = 4

// VerificationConfig carries secret shapes and lifetimes.
type VerificationConfig struct {
	CodeLength     int
	CodeTTL        time.Duration
	ResetKeyLength int
	ResetTTL       time.Duration
}

// VerificationStoreImpl implements domain.VerificationStore on Redis. Expiry
// is enforced entirely by Redis TTLs; nothing here polls or sweeps.
type VerificationStoreImpl struct {
	client *redis.Client
	config VerificationConfig
}

// NewVerificationStore creates a new Redis-backed verification store.
func NewVerificationStore(client *redis.Client, config VerificationConfig) domain.VerificationStore {
	return &VerificationStoreImpl{
		client: client,
		config: config,
	}
}

func codeKey(purpose domain.Purpose, recipient string) string {
	return fmt.Sprintf("%s:%s", purpose, recipient)
}

func resetSentKey(recipient string) string {
	return fmt.Sprintf("%s:sent:%s", domain.PurposePasswordReset, recipient)
}

func resetKeyKey(secret string) string {
	return fmt.Sprintf("%s:key:%s", domain.PurposePasswordReset, secret)
}

// IssueCode implements domain.VerificationStore. SET NX both mints and rate
// limits in one round trip: a still-live entry wins and stays untouched.
func (s *VerificationStoreImpl) IssueCode(ctx context.Context, purpose domain.Purpose, recipient string) (string, error) {
	code, err := generateSecret(digits, s.config.CodeLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	ok, err := s.client.SetNX(ctx, codeKey(purpose, recipient), code, s.config.CodeTTL).Result()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !ok {
		return "", domain.ErrRateLimited
	}

	return code, nil
}

// CheckCode implements domain.VerificationStore. Misses and mismatches are
// indistinguishable to the caller.
func (s *VerificationStoreImpl) CheckCode(ctx context.Context, purpose domain.Purpose, recipient, candidate string) error {
	stored, err := s.client.Get(ctx, codeKey(purpose, recipient)).Result()
	if err != nil {
		if err == redis.Nil {
			return domain.ErrInvalidCode
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) != 1 {
		return domain.ErrInvalidCode
	}

	return nil
}

// ConsumeCode implements domain.VerificationStore. The read and conditional
// delete run inside a single WATCH transaction so two concurrent calls with
// the correct secret cannot both succeed.
func (s *VerificationStoreImpl) ConsumeCode(ctx context.Context, purpose domain.Purpose, recipient, candidate string) error {
	key := codeKey(purpose, recipient)

	for i := 0; i < consumeRetries; i++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			stored, err := tx.Get(ctx, key).Result()
			if err != nil {
				if err == redis.Nil {
					return domain.ErrInvalidCode
				}
				return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
			}

			if subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) != 1 {
				// Mismatch leaves the still-valid entry untouched.
				return domain.ErrInvalidCode
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Del(ctx, key)
				return nil
			})
			return err
		}, key)

		if err == redis.TxFailedErr {
			continue
		}
		return err
	}

	return domain.ErrInvalidCode
}

// DeleteCode implements domain.VerificationStore.
func (s *VerificationStoreImpl) DeleteCode(ctx context.Context, purpose domain.Purpose, recipient string) error {
	if err := s.client.Del(ctx, codeKey(purpose, recipient)).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// IssueResetKey implements domain.VerificationStore. The mapping is inverted
// relative to codes: the high-entropy secret is the key and the recipient the
// value, so the delivered link alone locates the account. Rate limiting uses
// a separate per-recipient marker, since the secret key cannot serve that
// role.
func (s *VerificationStoreImpl) IssueResetKey(ctx context.Context, recipient string) (string, error) {
	ok, err := s.client.SetNX(ctx, resetSentKey(recipient), 1, s.config.ResetTTL).Result()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if !ok {
		return "", domain.ErrRateLimited
	}

	secret, err := generateSecret(alphanumerics, s.config.ResetKeyLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset key: %w", err)
	}

	if err := s.client.Set(ctx, resetKeyKey(secret), recipient, s.config.ResetTTL).Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return secret, nil
}

// LookupResetKey implements domain.VerificationStore.
func (s *VerificationStoreImpl) LookupResetKey(ctx context.Context, key string) (string, error) {
	recipient, err := s.client.Get(ctx, resetKeyKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", domain.ErrInvalidResetKey
		}
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return recipient, nil
}

// ConsumeResetKey implements domain.VerificationStore. GETDEL makes the
// resolve-and-delete a single atomic round trip.
func (s *VerificationStoreImpl) ConsumeResetKey(ctx context.Context, key string) (string, error) {
	recipient, err := s.client.GetDel(ctx, resetKeyKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", domain.ErrInvalidResetKey
		}
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	// The throttle marker has served its purpose once the key is consumed.
	_ = s.client.Del(ctx, resetSentKey(recipient)).Err()

	return recipient, nil
}

// generateSecret draws length characters from population using crypto/rand.
func generateSecret(population string, length int) (string, error) {
	secret := make([]byte, length)
	max := big.NewInt(int64(len(population)))
	for i := range secret {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		secret[i] = population[n.Int64()]
	}
	return string(secret), nil
}
