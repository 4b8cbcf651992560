package smfp

import (
	"context"
	"net"
	"time"

	"github.com/op/go-logging"
)

// Dialer opens a fresh transport connection to path. The default dials a
// Unix-domain stream socket; tests substitute one that hands out one end of a
// net.Pipe instead.
type Dialer func(ctx context.Context, path string) (net.Conn, error)

func defaultDialer(ctx context.Context, path string) (net.Conn, error) {
	d := net.Dialer{}
	return d.DialContext(ctx, "unix", path)
}

type options struct {
	logger         *logging.Logger
	connectRetries int
	retryDelay     time.Duration
	dialTimeout    time.Duration
	dialer         Dialer
}

func defaultOptions() options {
	return options{
		logger:         logging.MustGetLogger("smfp"),
		connectRetries: 10,
		retryDelay:     time.Second,
		dialTimeout:    5 * time.Second,
		dialer:         defaultDialer,
	}
}

// Option configures a Connection created by Create.
type Option func(*options)

// WithLogger overrides the *logging.Logger used for connect-retry notices
// and protocol-violation warnings. Without this option a Connection logs
// through logging.MustGetLogger("smfp"), same as the caller would get by not
// configuring a backend at all — callers that want output must still call
// logging.SetBackend in their own main(), same as kryptco-kr's krd does.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithConnectRetries overrides the connect retry budget (default 10, per
// spec §4.3). Every value still dials at least once: n <= 0 means "one
// attempt, no retry" rather than "never dial at all".
func WithConnectRetries(n int) Option {
	return func(o *options) { o.connectRetries = n }
}

// WithRetryDelay overrides the fixed delay between connect retries (default
// 1s, per spec §4.3 — no exponential backoff).
func WithRetryDelay(d time.Duration) Option {
	return func(o *options) { o.retryDelay = d }
}

// WithDialTimeout bounds a single connect attempt (default 5s).
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) { o.dialTimeout = d }
}

// WithDialer overrides how a Connection opens its transport. Tests use this
// to dial an in-process fake server instead of a real Unix socket.
func WithDialer(d Dialer) Option {
	return func(o *options) { o.dialer = d }
}
