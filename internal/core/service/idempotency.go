package service

import (
	"context"
	"time"

	"github.com/rafaelleal24/aceitera/internal/core/logger"
	"github.com/rafaelleal24/aceitera/internal/core/port"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
	"github.com/rafaelleal24/aceitera/internal/core/utils"
)

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

// IdempotencyEntry is what the cache holds per key. Result is only set once
// Status is completed.
type IdempotencyEntry[T any] struct {
	Status      IdempotencyStatus `json:"status"`
	PayloadHash string            `json:"payload_hash"`
	Result      *T                `json:"result,omitempty"`
}

var (
	errKeyReused       = serviceerrors.NewUnprocessableEntityError("idempotency key already used with a different payload")
	errClaimReleased   = serviceerrors.NewConflictError("previous request failed, retry with the same key")
	errStillProcessing = serviceerrors.NewConflictError("idempotency key still being processed, timed out")
)

// IdempotencyService deduplicates client retries keyed by a client generated
// request id. The first caller claims the key; concurrent duplicates poll
// until the first one completes.
type IdempotencyService[T any] struct {
	entries      port.CachePort[IdempotencyEntry[T]]
	ttl          time.Duration
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewIdempotencyService[T any](
	entries port.CachePort[IdempotencyEntry[T]],
	ttl, pollInterval, pollTimeout time.Duration,
) *IdempotencyService[T] {
	return &IdempotencyService[T]{
		entries:      entries,
		ttl:          ttl,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

// Execute runs fn at most once per key and payload. When fn fails the claim
// is released unless keepClaim reports the error as one a retry must not
// repeat blindly.
func (s *IdempotencyService[T]) Execute(
	ctx context.Context,
	key string,
	payload any,
	fn func(ctx context.Context) (*T, error),
	keepClaim func(err error) bool,
) (result *T, replayed bool, err error) {
	payloadHash, err := utils.Fingerprint(payload)
	if err != nil {
		return nil, false, serviceerrors.NewInvalidRequestError("request payload cannot be fingerprinted")
	}

	if previous, err := s.Claim(ctx, key, payloadHash); err != nil || previous != nil {
		return previous, previous != nil, err
	}

	result, err = fn(ctx)
	switch {
	case err == nil:
		s.Complete(ctx, key, payloadHash, result)
		return result, false, nil
	case keepClaim != nil && keepClaim(err):
		logger.Warn(ctx, "idempotency: keeping claim after ambiguous failure", map[string]any{
			"idempotency_key": key,
		})
	default:
		s.Release(ctx, key)
	}
	return nil, false, err
}

// Claim returns nil when the caller now owns key, or the stored result when
// an earlier request with the same payload already finished.
func (s *IdempotencyService[T]) Claim(ctx context.Context, key, payloadHash string) (*T, error) {
	pending := &IdempotencyEntry[T]{Status: IdempotencyProcessing, PayloadHash: payloadHash}
	won, err := s.entries.SetNX(ctx, key, pending, s.ttl)
	if err != nil {
		logger.Error(ctx, "idempotency: claim failed", err, map[string]any{
			"idempotency_key": key,
		})
		return nil, serviceerrors.NewStoreUnavailableError("idempotency_claim", err)
	}
	if won {
		return nil, nil
	}
	return s.await(ctx, key, payloadHash)
}

func (s *IdempotencyService[T]) Complete(ctx context.Context, key, payloadHash string, result *T) {
	done := &IdempotencyEntry[T]{Status: IdempotencyCompleted, PayloadHash: payloadHash, Result: result}
	if err := s.entries.Set(ctx, key, done, s.ttl); err != nil {
		logger.Error(ctx, "idempotency: complete failed", err, map[string]any{
			"idempotency_key": key,
			"payload_hash":    payloadHash,
		})
	}
}

func (s *IdempotencyService[T]) Release(ctx context.Context, key string) {
	if err := s.entries.Del(ctx, key); err != nil {
		logger.Error(ctx, "idempotency: release failed", err, map[string]any{
			"idempotency_key": key,
		})
	}
}

// await polls the entry owned by another request until it completes, is
// released, or pollTimeout elapses.
func (s *IdempotencyService[T]) await(ctx context.Context, key, payloadHash string) (*T, error) {
	deadline := time.NewTimer(s.pollTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		result, finished, err := s.lookup(ctx, key, payloadHash)
		if finished || err != nil {
			return result, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, errStillProcessing
		case <-ticker.C:
		}
	}
}

func (s *IdempotencyService[T]) lookup(ctx context.Context, key, payloadHash string) (*T, bool, error) {
	entry, err := s.entries.Get(ctx, key)
	switch {
	case err != nil:
		logger.Error(ctx, "idempotency: check failed", err, map[string]any{
			"idempotency_key": key,
		})
		return nil, false, serviceerrors.NewStoreUnavailableError("idempotency_check", err)
	case entry == nil:
		return nil, false, errClaimReleased
	case entry.PayloadHash != payloadHash:
		return nil, false, errKeyReused
	case entry.Status == IdempotencyCompleted:
		return entry.Result, true, nil
	default:
		return nil, false, nil
	}
}
