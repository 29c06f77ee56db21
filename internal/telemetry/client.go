package telemetry

import (
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/posthog/posthog-go"
)

// Client is the interface for telemetry clients.
type Client interface {
	// Track enqueues an event and returns immediately. No-op when disabled.
	Track(event string, properties Properties)

	// Close flushes pending events.
	Close() error
}

// Properties is a type alias for event properties.
type Properties = map[string]any

// enqueuer is the subset of the PostHog client we use.
type enqueuer interface {
	io.Closer
	Enqueue(msg posthog.Message) error
}

// PostHogClient sends events through the PostHog SDK.
type PostHogClient struct {
	client  enqueuer
	config  *Config
	version string
	mu      sync.RWMutex
}

// ClientConfig holds configuration for initializing the telemetry client.
type ClientConfig struct {
	APIKey   string
	Endpoint string
	Version  string
	Config   *Config
}

// New returns a PostHog client when an API key is configured and the user
// has opted in, and a NoopClient otherwise.
func New(cfg ClientConfig) (Client, error) {
	if cfg.APIKey == "" || cfg.Config == nil || !cfg.Config.IsEnabled() {
		return NewNoopClient(), nil
	}

	phConfig := posthog.Config{
		BatchSize: 10,
		Interval:  1 * time.Second,
		Logger:    quietPostHogLogger{},
	}
	if cfg.Endpoint != "" {
		phConfig.Endpoint = cfg.Endpoint
	}

	client, err := posthog.NewWithConfig(cfg.APIKey, phConfig)
	if err != nil {
		return nil, err
	}
	return newPostHogClient(client, cfg.Config, cfg.Version), nil
}

func newPostHogClient(enq enqueuer, cfg *Config, version string) *PostHogClient {
	return &PostHogClient{client: enq, config: cfg, version: version}
}

// Track enqueues an event with the standard properties attached.
func (c *PostHogClient) Track(event string, properties Properties) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.client == nil || c.config == nil || !c.config.IsEnabled() {
		return
	}

	props := posthog.NewProperties()
	for k, v := range properties {
		props.Set(k, v)
	}
	props.Set("os", runtime.GOOS)
	props.Set("arch", runtime.GOARCH)
	props.Set("app_version", c.version)
	// No person profiles: events stay anonymous.
	props.Set("$process_person_profile", false)

	_ = c.client.Enqueue(posthog.Capture{
		DistinctId: c.config.AnonymousID,
		Event:      event,
		Properties: props,
	})
}

// Close flushes the PostHog queue.
func (c *PostHogClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// NoopClient is a telemetry client that does nothing.
type NoopClient struct{}

func (NoopClient) Track(string, Properties) {}
func (NoopClient) Close() error             { return nil }

// NewNoopClient returns a client that does nothing.
func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

// quietPostHogLogger keeps PostHog transport warnings out of terminal output.
type quietPostHogLogger struct{}

func (quietPostHogLogger) Debugf(string, ...interface{}) {}
func (quietPostHogLogger) Logf(string, ...interface{})   {}
func (quietPostHogLogger) Warnf(string, ...interface{})  {}
func (quietPostHogLogger) Errorf(string, ...interface{}) {}
