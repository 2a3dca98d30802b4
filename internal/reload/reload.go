// Package reload tells a running development server that a new
// configuration has been composed. Notification is best effort: callers log
// a failure and carry on.
package reload

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/spabuild/internal/ctxlog"
)

// ComposedEvent is the socket.io event name emitted after composition.
const ComposedEvent = "config:composed"

// DefaultTimeout bounds one notification, connection included.
const DefaultTimeout = 10 * time.Second

// Event is the payload of a notification.
type Event struct {
	Mode        string
	Fingerprint string
	Output      string
}

func (e Event) payload() map[string]any {
	return map[string]any{
		"mode":        e.Mode,
		"fingerprint": e.Fingerprint,
		"output":      e.Output,
	}
}

// Notifier delivers composition events.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Noop drops every event.
type Noop struct{}

func (Noop) Notify(context.Context, Event) error { return nil }

// SocketIO emits events to a socket.io server over a websocket transport.
type SocketIO struct {
	baseURL            string
	path               string
	namespace          string
	timeout            time.Duration
	insecureSkipVerify bool
}

// Option configures a SocketIO notifier.
type Option func(*SocketIO)

// WithNamespace selects the socket.io namespace. The default is "/".
func WithNamespace(ns string) Option {
	return func(s *SocketIO) { s.namespace = ns }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *SocketIO) { s.timeout = d }
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify() Option {
	return func(s *SocketIO) { s.insecureSkipVerify = true }
}

// NewSocketIO validates rawURL and returns a notifier for it. The URL path,
// when present, is the socket.io endpoint path.
func NewSocketIO(rawURL string, opts ...Option) (*SocketIO, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported notify URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("notify URL %q has no host", rawURL)
	}

	s := &SocketIO{
		baseURL:   fmt.Sprintf("%s://%s", u.Scheme, u.Host),
		path:      u.Path,
		namespace: "/",
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Notify connects, emits ComposedEvent and disconnects.
func (s *SocketIO) Notify(ctx context.Context, ev Event) error {
	logger := ctxlog.FromContext(ctx).With("notifier", "socketio", "url", s.baseURL, "namespace", s.namespace)
	logger.Debug("Notifier started.")
	defer logger.Debug("Notifier finished.")

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := socket.DefaultOptions()
	if s.path != "" && s.path != "/" {
		opts.SetPath(s.path)
	}
	if s.insecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	var connected atomic.Bool
	done := make(chan error, 2)

	manager := socket.NewManager(s.baseURL, opts)
	io := manager.Socket(s.namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	io.Once(types.EventName("connect"), func(...any) {
		connected.Store(true)
		logger.Debug("Connected, emitting event.", "sid", io.Id(), "event", ComposedEvent)
		io.Emit(ComposedEvent, ev.payload())
		done <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		done <- err
	})

	io.Connect()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("socket.io connection failed: %w", err)
		}
		logger.Info("Dev server notified.", "fingerprint", ev.Fingerprint)
		return nil
	case <-opCtx.Done():
		if connected.Load() {
			return fmt.Errorf("timed out after %s while emitting '%s'", s.timeout, ComposedEvent)
		}
		return fmt.Errorf("timed out after %s waiting for socket.io connection", s.timeout)
	}
}
