package observability

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/riskibarqy/roster-manager/internal/config"
	"github.com/riskibarqy/roster-manager/internal/platform/logging"
	"github.com/riskibarqy/roster-manager/internal/platform/resilience"
)

var errBetterStackTransient = crerr.New("betterstack transient failure")

// InitBetterStackLogger configures logger fanout to stdout and optional
// Better Stack shipping. Returns the logger to use and a close function that
// drains the shipping queue.
func InitBetterStackLogger(cfg config.Config, baseLogger *logging.Logger) (*logging.Logger, func(context.Context) error, error) {
	if baseLogger == nil {
		baseLogger = logging.NewJSON(cfg.LogLevel)
	}

	if !cfg.BetterStackEnabled {
		baseLogger.Info("betterstack disabled", "reason", "BETTERSTACK_ENABLED=false")
		return baseLogger, func(context.Context) error { return nil }, nil
	}

	endpoint := normalizeBetterStackEndpoint(cfg.BetterStackEndpoint)
	if endpoint == "" {
		return nil, nil, fmt.Errorf("betterstack endpoint cannot be empty")
	}

	shipper, err := newBetterStackShipper(betterStackShipperConfig{
		Endpoint:  endpoint,
		Token:     strings.TrimSpace(cfg.BetterStackToken),
		Timeout:   cfg.BetterStackTimeout,
		QueueSize: cfg.BetterStackQueueSize,
		Workers:   cfg.BetterStackWorkers,
		Circuit:   cfg.BetterStackCircuit,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build betterstack shipper: %w", err)
	}

	encoderCfg := logging.EncoderConfig()

	stdoutCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		cfg.LogLevel,
	)

	betterStackCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(shipper),
		cfg.BetterStackMinLevel,
	)

	zapLogger := zap.New(
		zapcore.NewTee(stdoutCore, betterStackCore),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	logger := logging.FromZap(zapLogger)
	logger.Info("betterstack enabled",
		"endpoint", endpoint,
		"min_level", cfg.BetterStackMinLevel.String(),
		"service_name", cfg.ServiceName,
		"environment", cfg.AppEnv,
	)

	return logger, func(ctx context.Context) error {
		drainCtx := ctx
		if drainCtx == nil {
			drainCtx = context.Background()
		}
		if _, hasDeadline := drainCtx.Deadline(); !hasDeadline {
			withTimeout, cancel := context.WithTimeout(drainCtx, 5*time.Second)
			defer cancel()
			drainCtx = withTimeout
		}
		if err := shipper.Close(drainCtx); err != nil {
			return fmt.Errorf("drain betterstack queue: %w", err)
		}
		if err := logger.Sync(); err != nil && !isIgnorableLoggerSyncError(err) {
			return err
		}
		return nil
	}, nil
}

func normalizeBetterStackEndpoint(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "https://" + value
}

func isIgnorableLoggerSyncError(err error) bool {
	if err == nil {
		return true
	}
	msg := err.Error()
	// Syncing os.Stdout fails on most platforms; that is not a real error.
	return strings.Contains(msg, "invalid argument") || strings.Contains(msg, "inappropriate ioctl")
}

type betterStackShipperConfig struct {
	Endpoint  string
	Token     string
	Timeout   time.Duration
	QueueSize int
	Workers   int
	Circuit   resilience.CircuitBreakerConfig
}

// betterStackShipper is a zap write syncer that ships encoded log lines to
// Better Stack without blocking the logging hot path. Payloads are queued on
// a bounded channel and drained by an ants worker pool; when the queue is
// full new entries are dropped and counted.
type betterStackShipper struct {
	endpoint       string
	token          string
	timeout        time.Duration
	client         *fasthttp.Client
	pool           *ants.Pool
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool

	queueMu sync.RWMutex
	queue   chan *bytebufferpool.ByteBuffer
	closed  bool
	workers sync.WaitGroup

	dropped atomic.Int64
}

func newBetterStackShipper(cfg betterStackShipperConfig) (*betterStackShipper, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, crerr.New("betterstack endpoint is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	queueSize := cfg.QueueSize
	if queueSize < 1 {
		queueSize = 1024
	}
	workerCount := cfg.Workers
	if workerCount < 1 {
		workerCount = 2
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, crerr.Wrap(err, "create shipper worker pool")
	}

	s := &betterStackShipper{
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		timeout:  timeout,
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		pool:           pool,
		breaker:        resilience.NewCircuitBreaker(cfg.Circuit),
		circuitEnabled: cfg.Circuit.Enabled,
		queue:          make(chan *bytebufferpool.ByteBuffer, queueSize),
	}

	for i := 0; i < workerCount; i++ {
		s.workers.Add(1)
		if err := pool.Submit(s.drainLoop); err != nil {
			s.workers.Done()
			pool.Release()
			return nil, crerr.Wrap(err, "start shipper worker")
		}
	}

	return s, nil
}

// Write queues one encoded log line. It never blocks: on a full queue the
// line is dropped. The input slice is owned by zap, so it is copied before
// the function returns.
func (s *betterStackShipper) Write(p []byte) (int, error) {
	buf := bytebufferpool.Get()
	_, _ = buf.Write(p)

	s.queueMu.RLock()
	defer s.queueMu.RUnlock()

	if s.closed {
		bytebufferpool.Put(buf)
		return len(p), nil
	}

	select {
	case s.queue <- buf:
	default:
		s.dropped.Add(1)
		bytebufferpool.Put(buf)
	}

	return len(p), nil
}

func (s *betterStackShipper) Sync() error {
	return nil
}

// Dropped reports how many log lines were discarded due to queue pressure.
func (s *betterStackShipper) Dropped() int64 {
	return s.dropped.Load()
}

func (s *betterStackShipper) drainLoop() {
	defer s.workers.Done()

	for buf := range s.queue {
		_ = s.ship(buf.B)
		bytebufferpool.Put(buf)
	}
}

func (s *betterStackShipper) ship(payload []byte) error {
	if s.circuitEnabled {
		if err := s.breaker.Allow(); err != nil {
			s.dropped.Add(1)
			return crerr.Wrap(err, "betterstack circuit rejected payload")
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	req.SetBody(payload)

	if err := s.client.DoTimeout(req, resp, s.timeout); err != nil {
		s.breaker.RecordFailure()
		return crerr.Wrapf(errBetterStackTransient, "post log payload: %v", err)
	}

	status := resp.StatusCode()
	if status >= fasthttp.StatusInternalServerError {
		s.breaker.RecordFailure()
		return crerr.Wrapf(errBetterStackTransient, "betterstack responded %d", status)
	}

	s.breaker.RecordSuccess()
	if status >= fasthttp.StatusBadRequest {
		return crerr.Newf("betterstack rejected payload with status %d", status)
	}

	return nil
}

// Close stops accepting new payloads and waits for the queue to drain until
// ctx expires.
func (s *betterStackShipper) Close(ctx context.Context) error {
	s.queueMu.Lock()
	if s.closed {
		s.queueMu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.queueMu.Unlock()

	done := make(chan struct{})
	go func() {
		s.workers.Wait()
		close(done)
	}()

	defer s.pool.Release()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return crerr.Wrap(ctx.Err(), "betterstack queue drain timed out")
	}
}
