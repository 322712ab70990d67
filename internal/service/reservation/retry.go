package reservation

import (
	"context"
	stderrors "errors"
	"math/rand/v2"
	"time"

	"github.com/dumeirei/hotel-backoffice/internal/common/cache"
	"github.com/dumeirei/hotel-backoffice/internal/common/database"
	"github.com/dumeirei/hotel-backoffice/internal/common/errors"
	"github.com/dumeirei/hotel-backoffice/internal/common/logger"
	"github.com/dumeirei/hotel-backoffice/internal/common/metrics"
	"github.com/dumeirei/hotel-backoffice/internal/repository"
)

// retryPolicy 并发冲突重试策略
type retryPolicy struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	metrics    *metrics.Metrics
}

func newRetryPolicy(maxRetries int, m *metrics.Metrics) *retryPolicy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &retryPolicy{
		maxRetries: maxRetries,
		baseDelay:  10 * time.Millisecond,
		maxDelay:   200 * time.Millisecond,
		metrics:    m,
	}
}

// isRetryable 判断是否为可透明重试的并发冲突
func isRetryable(err error) bool {
	return stderrors.Is(err, repository.ErrVersionConflict) ||
		stderrors.Is(err, cache.ErrLockNotAcquired) ||
		database.IsRetryable(err) ||
		database.IsDuplicateKey(err)
}

// do 执行 fn，遇到并发冲突时退避重试
// 重试耗尽返回 ErrReservationBusy，业务错误原样返回
func (p *retryPolicy) do(ctx context.Context, operation string, fn func(attempt int) error) error {
	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			if p.metrics != nil {
				p.metrics.RecordRetry(operation)
			}
			select {
			case <-ctx.Done():
				return errors.ErrReservationBusy.WithError(ctx.Err())
			case <-time.After(p.backoff(attempt)):
			}
		}

		err := fn(attempt)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
		logger.Ctx(ctx).Debug("并发冲突，准备重试",
			logger.Action(operation),
			logger.Int("attempt", attempt),
			logger.Err(err),
		)
	}

	logger.Ctx(ctx).Warn("并发冲突重试耗尽",
		logger.Action(operation),
		logger.Int("max_retries", p.maxRetries),
		logger.Err(lastErr),
	)
	return errors.ErrReservationBusy.WithError(lastErr)
}

// backoff 指数退避加抖动
func (p *retryPolicy) backoff(attempt int) time.Duration {
	d := p.baseDelay << (attempt - 1)
	if d > p.maxDelay || d <= 0 {
		d = p.maxDelay
	}
	return d/2 + rand.N(d/2+1)
}
