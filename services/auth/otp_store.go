package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	otpCodePrefix     = "otp:code:"
	otpAttemptsPrefix = "otp:attempts:"
	otpRequestsPrefix = "otp:requests:"
)

// RedisOTPStore keeps OTP state in Redis. All counter bumps go through INCR
// so concurrent requests against the same mobile number see a consistent
// count.
type RedisOTPStore struct {
	Client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{Client: client}
}

func (s *RedisOTPStore) SaveCode(ctx context.Context, mobile, hash string, ttl time.Duration) error {
	return s.Client.Set(ctx, otpCodePrefix+mobile, hash, ttl).Err()
}

func (s *RedisOTPStore) GetCode(ctx context.Context, mobile string) (string, error) {
	val, err := s.Client.Get(ctx, otpCodePrefix+mobile).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisOTPStore) DeleteCode(ctx context.Context, mobile string) error {
	return s.Client.Del(ctx, otpCodePrefix+mobile).Err()
}

func (s *RedisOTPStore) IncrAttempts(ctx context.Context, mobile string, ttl time.Duration) (int64, error) {
	key := otpAttemptsPrefix + mobile
	count, err := s.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := s.Client.Expire(ctx, key, ttl).Err(); err != nil {
			return count, fmt.Errorf("failed to set attempts TTL: %w", err)
		}
	}
	return count, nil
}

func (s *RedisOTPStore) ResetAttempts(ctx context.Context, mobile string) error {
	return s.Client.Del(ctx, otpAttemptsPrefix+mobile).Err()
}

func (s *RedisOTPStore) IncrRequests(ctx context.Context, mobile string, window time.Duration) (int64, time.Duration, error) {
	key := otpRequestsPrefix + mobile
	count, err := s.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := s.Client.Expire(ctx, key, window).Err(); err != nil {
			return count, window, fmt.Errorf("failed to set request window TTL: %w", err)
		}
		return count, window, nil
	}
	ttl, err := s.Client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}
	return count, ttl, nil
}
