package eightsleep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout bounds a single status request.
	DefaultTimeout = 10 * time.Second

	historySize = 10
)

// ErrNotStarted is returned by Fetch when the client lifecycle contract is
// violated: Start must be called before the first Fetch.
var ErrNotStarted = errors.New("eightsleep: client not started")

// Snapshot is one /api/deviceStatus response. The payload is kept opaque
// because any field may be absent; FetchedAt lets callers track staleness.
type Snapshot struct {
	Data      map[string]any
	FetchedAt time.Time
}

func (s Snapshot) IsEmpty() bool {
	return len(s.Data) == 0
}

// DeviceInfo identifies the polled controller.
type DeviceInfo struct {
	Host        string
	Port        uint
	SensorLabel string
}

// StatusReader is the read-only surface of the pod controller consumed by
// the rest of the bridge.
type StatusReader interface {
	Start() error
	Stop()
	Fetch(ctx context.Context) error
	Latest() Snapshot
	History() []Snapshot
	Info() DeviceInfo
}

// Client polls the local pod controller over plain HTTP. The target endpoint
// is unauthenticated by design. A Client keeps the last 10 snapshots in
// memory, newest first; nothing is persisted across restarts.
type Client struct {
	host    string
	port    uint
	timeout time.Duration
	logger  *log.Logger

	// fetchMu serializes Fetch calls; mu guards lifecycle and history so
	// Latest/History never block behind an in-flight request.
	fetchMu sync.Mutex
	mu      sync.RWMutex

	httpClient *http.Client
	ownsClient bool
	started    bool

	history []Snapshot
}

type Option func(*Client)

// WithHTTPClient supplies an externally managed HTTP client. The Client will
// never release a borrowed resource on Stop.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient builds a client for http://host:port/api/deviceStatus.
// Construction performs no network I/O; call Start, then Fetch.
func NewClient(host string, port uint, opts ...Option) *Client {
	c := &Client{
		host:    host,
		port:    port,
		timeout: DefaultTimeout,
		logger:  log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) StatusURL() string {
	return fmt.Sprintf("http://%s:%d/api/deviceStatus", c.host, c.port)
}

// Start acquires the pooled HTTP client if none was supplied externally.
// Idempotent, no network I/O.
func (c *Client) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
		c.ownsClient = true
	}
	c.started = true
	return nil
}

// Stop releases the HTTP client only if this instance created it. Safe to
// call multiple times; the second call is a no-op.
func (c *Client) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return
	}
	c.started = false
	if c.ownsClient && c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
		c.ownsClient = false
	}
}

// Fetch performs a single bounded GET against the status endpoint. On a 200
// JSON response the body becomes the newest snapshot. Connectivity and
// protocol failures are logged and absorbed: history stays untouched and the
// previous snapshot remains authoritative, so a bad poll never destabilizes
// the scheduler driving this client. The only error surfaced is the
// lifecycle misuse ErrNotStarted.
func (c *Client) Fetch(ctx context.Context) error {
	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()

	c.mu.RLock()
	httpClient := c.httpClient
	started := c.started
	c.mu.RUnlock()

	if !started || httpClient == nil {
		return ErrNotStarted
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.StatusURL(), nil)
	if err != nil {
		c.logger.WithError(err).Error("eightsleep: could not build status request")
		return nil
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Error("eightsleep: status fetch failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status", resp.StatusCode).Error("eightsleep: unexpected status code")
		return nil
	}

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.logger.WithError(err).Error("eightsleep: could not decode status body")
		return nil
	}

	c.push(Snapshot{Data: data, FetchedAt: time.Now()})
	return nil
}

func (c *Client) push(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append([]Snapshot{snap}, c.history...)
	if len(c.history) > historySize {
		c.history = c.history[:historySize]
	}
}

// Latest returns the newest snapshot, or an empty one if nothing has been
// fetched yet. Never fails, never blocks behind an in-flight Fetch.
func (c *Client) Latest() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.history) == 0 {
		return Snapshot{Data: map[string]any{}}
	}
	return c.history[0]
}

// History returns a copy of the rolling snapshot history, newest first.
func (c *Client) History() []Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Snapshot, len(c.history))
	copy(out, c.history)
	return out
}

// Info reports the device identity, including the sensor label from the
// latest snapshot when one is available.
func (c *Client) Info() DeviceInfo {
	label, _ := c.Latest().Data["sensorLabel"].(string)
	return DeviceInfo{
		Host:        c.host,
		Port:        c.port,
		SensorLabel: label,
	}
}

var _ StatusReader = (*Client)(nil)
