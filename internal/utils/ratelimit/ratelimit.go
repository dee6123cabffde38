package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter 有界并发+最小间隔的任务限速器（漏桶式），用于对接限流的上游API。
// 并发由信号量约束，请求间隔由令牌桶约束；两者都满足时任务才执行。
type Limiter struct {
	sem     chan struct{}
	limiter *rate.Limiter
}

// New 创建限速器。maxConcurrent 为并发上限，minInterval 为相邻请求的最小间隔。
func New(maxConcurrent int, minInterval time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	every := rate.Inf
	if minInterval > 0 {
		every = rate.Every(minInterval)
	}
	return &Limiter{
		sem:     make(chan struct{}, maxConcurrent),
		limiter: rate.NewLimiter(every, 1),
	}
}

// Do 在限速约束下执行fn；ctx取消时直接返回ctx错误，不执行fn
func (l *Limiter) Do(ctx context.Context, fn func() error) error {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l.sem }()

	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}
	return fn()
}
