package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/dietpop-lineup/internal/platform/logging"
)

var ErrMirrorClosed = errors.New("persistence mirror is closed")

// Mirror runs persistence writes on a worker pool without making callers
// wait. Writes submitted under the same key are coalesced and applied in
// submission order; only the latest pending write for a key survives.
type Mirror struct {
	pool    *ants.Pool
	timeout time.Duration
	logger  *logging.Logger

	mu      sync.Mutex
	pending map[string]func(context.Context) error
	running map[string]bool
	wg      sync.WaitGroup
	closed  bool

	failures atomic.Int64
}

func NewMirror(workers int, timeout time.Duration, logger *logging.Logger) (*Mirror, error) {
	if workers < 1 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(v any) {
		logger.Error("persistence write panicked", "panic", fmt.Sprint(v))
	}))
	if err != nil {
		return nil, fmt.Errorf("create persistence pool: %w", err)
	}

	return &Mirror{
		pool:    pool,
		timeout: timeout,
		logger:  logger.Named("mirror"),
		pending: make(map[string]func(context.Context) error),
		running: make(map[string]bool),
	}, nil
}

// Submit schedules write under key. It never returns the write's error; a
// failed write is logged and counted.
func (m *Mirror) Submit(key string, write func(context.Context) error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.failures.Add(1)
		m.logger.Warn("drop persistence write: mirror closed", "key", key)
		return
	}
	m.pending[key] = write
	if m.running[key] {
		m.mu.Unlock()
		return
	}
	m.running[key] = true
	m.wg.Add(1)
	m.mu.Unlock()

	if err := m.pool.Submit(func() { m.drain(key) }); err != nil {
		m.mu.Lock()
		delete(m.pending, key)
		delete(m.running, key)
		m.mu.Unlock()
		m.wg.Done()
		m.failures.Add(1)
		m.logger.Error("drop persistence write: submit failed", "key", key, "error", err)
	}
}

func (m *Mirror) drain(key string) {
	defer m.wg.Done()

	for {
		m.mu.Lock()
		write, ok := m.pending[key]
		if !ok {
			delete(m.running, key)
			m.mu.Unlock()
			return
		}
		delete(m.pending, key)
		m.mu.Unlock()

		m.run(key, write)
	}
}

func (m *Mirror) run(key string, write func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			m.failures.Add(1)
			m.logger.Error("persistence write panicked", "key", key, "panic", fmt.Sprint(r))
		}
	}()

	start := time.Now()
	if err := write(ctx); err != nil {
		m.failures.Add(1)
		m.logger.Warn("persistence write failed", "key", key, "duration", time.Since(start), "error", err)
		return
	}
	m.logger.Debug("persistence write done", "key", key, "duration", time.Since(start))
}

// Wait blocks until every write submitted so far has finished.
func (m *Mirror) Wait() {
	m.wg.Wait()
}

// Failures counts writes that errored or were dropped.
func (m *Mirror) Failures() int64 {
	return m.failures.Load()
}

// Close stops accepting writes, drains what is pending, and releases the pool.
func (m *Mirror) Close(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	var drainErr error
	select {
	case <-done:
	case <-ctx.Done():
		drainErr = fmt.Errorf("drain persistence writes: %w", ctx.Err())
	}

	releaseTimeout := time.Second
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left > 0 {
			releaseTimeout = left
		}
	}
	if err := m.pool.ReleaseTimeout(releaseTimeout); err != nil && drainErr == nil {
		drainErr = fmt.Errorf("release persistence pool: %w", err)
	}
	return drainErr
}

// persist hands write to mirror, or runs it inline when no mirror is wired.
func persist(ctx context.Context, mirror *Mirror, logger *logging.Logger, key string, write func(context.Context) error) {
	if mirror != nil {
		mirror.Submit(key, write)
		return
	}
	if err := write(ctx); err != nil {
		logger.WarnContext(ctx, "persistence write failed", "key", key, "error", err)
	}
}
