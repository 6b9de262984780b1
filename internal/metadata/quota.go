// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrQuotaExhausted reports that the shared daily allowance is spent.
// It wraps [ErrUnavailable]: the caller may retry tomorrow.
var ErrQuotaExhausted = fmt.Errorf("%w: daily quota exhausted", ErrUnavailable)

// Counter increments a named counter that expires after window.
type Counter interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Quota is a [Source] that charges every lookup against a fixed daily window
// before delegating to the wrapped source.
//
// Counter failures are logged and the lookup proceeds; the quota protects the
// upstream allowance and must not turn a Redis outage into a catalog outage.
type Quota struct {
	next   Source
	count  Counter
	limit  int64
	now    func() time.Time
	logger *slog.Logger
}

var _ Source = (*Quota)(nil)

// NewQuota wraps next with a shared allowance of limit lookups per UTC day.
// A limit of zero or less returns next unchanged.
func NewQuota(next Source, counter Counter, limit int64, logger *slog.Logger) Source {
	if limit <= 0 || counter == nil {
		return next
	}
	return &Quota{
		next:   next,
		count:  counter,
		limit:  limit,
		now:    time.Now,
		logger: logger,
	}
}

// Lookup charges one unit and delegates to the wrapped source.
func (quota *Quota) Lookup(ctx context.Context, isbn string) (*Record, error) {
	day := quota.now().UTC()
	key := day.Format("20060102")

	used, err := quota.count.Increment(ctx, key, 24*time.Hour)
	switch {
	case err != nil && ctx.Err() != nil:
		return nil, ctx.Err()
	case err != nil:
		quota.logger.Warn("metadata_quota_unavailable", slog.Any("error", err))
	case used > quota.limit:
		quota.logger.Warn("metadata_quota_exhausted",
			slog.String("window", key),
			slog.Int64("limit", quota.limit),
		)
		return nil, ErrQuotaExhausted
	}

	return quota.next.Lookup(ctx, isbn)
}

// IsQuotaExhausted reports whether err came from a spent allowance.
func IsQuotaExhausted(err error) bool {
	return errors.Is(err, ErrQuotaExhausted)
}
