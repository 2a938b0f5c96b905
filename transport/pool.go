package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/likee/config"
)

type poolKey struct {
	scheme string
	host   string
	port   string
}

func (k poolKey) String() string {
	return k.scheme + "://" + net.JoinHostPort(k.host, k.port)
}

func keyFor(u *url.URL) (poolKey, error) {
	scheme := strings.ToLower(u.Scheme)
	port := u.Port()
	switch scheme {
	case "https":
		if port == "" {
			port = "443"
		}
	case "http":
		if port == "" {
			port = "80"
		}
	default:
		return poolKey{}, newFault(FaultInvalidURI, fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
	if u.Hostname() == "" {
		return poolKey{}, newFault(FaultInvalidURI, fmt.Errorf("missing host in %q", u.String()))
	}
	return poolKey{scheme: scheme, host: strings.ToLower(u.Hostname()), port: port}, nil
}

// Pool owns one persistent Connection per (scheme, host, port).
type Pool struct {
	cfg    config.ClientConfig
	logger zerolog.Logger
	getenv func(string) string

	mu    sync.Mutex
	conns map[poolKey]*Connection
}

// NewPool returns an empty pool whose connections use cfg.
func NewPool(cfg config.ClientConfig, logger zerolog.Logger) *Pool {
	return &Pool{
		cfg:    cfg,
		logger: logger,
		getenv: os.Getenv,
		conns:  make(map[poolKey]*Connection),
	}
}

// Fetch returns the connection for u's origin, creating it on first use.
func (p *Pool) Fetch(u *url.URL) (*Connection, error) {
	key, err := keyFor(u)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.conns[key]; ok {
		return c, nil
	}

	proxy, err := ResolveProxy(p.cfg, p.getenv)
	if err != nil {
		return nil, err
	}

	c := &Connection{key: key, cfg: p.cfg, proxy: proxy}
	p.conns[key] = c

	p.logger.Debug().
		Str("origin", key.String()).
		Bool("proxied", proxy != nil).
		Msg("Opened pooled connection")

	return c, nil
}

// Clear closes every connection and empties the pool.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, c := range p.conns {
		c.Close()
		delete(p.conns, key)
	}
}

// Len returns the number of pooled connections.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.conns)
}

// ResolveProxy picks the proxy from cfg, then HTTP_PROXY, then http_proxy.
// A nil URL means no proxy.
func ResolveProxy(cfg config.ClientConfig, getenv func(string) string) (*url.URL, error) {
	raw := cfg.Proxy
	if raw == "" {
		raw = getenv("HTTP_PROXY")
	}
	if raw == "" {
		raw = getenv("http_proxy")
	}
	if raw == "" {
		return nil, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, newFault(FaultProxy, fmt.Errorf("invalid proxy %q: %w", raw, err))
	}
	if u.Host == "" {
		return nil, newFault(FaultProxy, fmt.Errorf("invalid proxy %q: missing host", raw))
	}
	return u, nil
}

// Connection is a keep-alive connection to one origin. It is configured on
// Start and never retries on its own.
type Connection struct {
	key   poolKey
	cfg   config.ClientConfig
	proxy *url.URL

	mu        sync.Mutex
	transport *http.Transport
	client    *http.Client
}

// Start prepares the underlying transport. Calling it again is a no-op.
func (c *Connection) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return
	}

	dialer := &net.Dialer{Timeout: c.cfg.OpenTimeout}
	c.transport = &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				var netErr net.Error
				if errors.As(err, &netErr) && netErr.Timeout() && ctx.Err() == nil {
					return nil, newTimeoutFault(FaultOpenTimeout, err)
				}
				return nil, err
			}
			return &deadlineConn{Conn: conn, read: c.cfg.ReadTimeout, write: c.cfg.WriteTimeout}, nil
		},
		TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
		TLSHandshakeTimeout:   c.cfg.OpenTimeout,
		ResponseHeaderTimeout: c.cfg.ReadTimeout,
		IdleConnTimeout:       c.cfg.KeepAliveIdleTimeout,
		MaxIdleConnsPerHost:   1,
	}
	if c.proxy != nil {
		c.transport.Proxy = http.ProxyURL(c.proxy)
	}

	c.client = &http.Client{
		Transport: c.transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Started reports whether Start has been called since the last Close.
func (c *Connection) Started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client != nil
}

// Proxy returns the proxy this connection goes through, or nil.
func (c *Connection) Proxy() *url.URL {
	return c.proxy
}

// Do sends req. Start must have been called.
func (c *Connection) Do(req *http.Request) (*http.Response, error) {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()

	if client == nil {
		return nil, fmt.Errorf("connection to %s not started", c.key)
	}
	return client.Do(req)
}

// Close drops idle keep-alive connections.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
	c.transport = nil
	c.client = nil
}

// deadlineConn bounds every read by the read timeout and every write by the
// write timeout. Writing a request also restarts the read deadline, so a read
// left pending on an idle keep-alive connection waits at most read for the
// response.
type deadlineConn struct {
	net.Conn
	read  time.Duration
	write time.Duration
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if c.read > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.read)); err != nil {
			return 0, err
		}
	}
	n, err := c.Conn.Read(p)
	if err != nil && errors.Is(err, os.ErrDeadlineExceeded) {
		err = newTimeoutFault(FaultReadTimeout, err)
	}
	return n, err
}

func (c *deadlineConn) Write(p []byte) (int, error) {
	now := time.Now()
	if c.write > 0 {
		if err := c.Conn.SetWriteDeadline(now.Add(c.write)); err != nil {
			return 0, err
		}
	}
	if c.read > 0 {
		if err := c.Conn.SetReadDeadline(now.Add(c.write + c.read)); err != nil {
			return 0, err
		}
	}
	n, err := c.Conn.Write(p)
	if err != nil && errors.Is(err, os.ErrDeadlineExceeded) {
		err = newTimeoutFault(FaultWriteTimeout, err)
	}
	return n, err
}
