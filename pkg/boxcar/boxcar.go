// Package boxcar is a client for the Boxcar provider notification API.
//
// A Client carries one provider's credentials and turns each call into a
// single form-encoded POST. Failures never escape as errors; every call
// returns a Result describing what happened.
package boxcar

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the Boxcar host used when WithBaseURL is not given.
	DefaultBaseURL = "http://boxcar.io"

	// DefaultUserAgent is sent with every request unless WithUserAgent overrides it.
	DefaultUserAgent = "Boxcar Go API Client"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is immutable after New and may be shared between goroutines as long
// as its Doer is safe for concurrent use.
type Client struct {
	apiKey    string
	apiSecret string

	httpclient Doer
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

// Option configures a Client in New.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client. A nil doer is ignored.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		if doer != nil {
			c.httpclient = doer
		}
	}
}

// WithBaseURL points the client at another host, e.g. a staging endpoint or
// a test server. The value must not end with a slash.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithUserAgent overrides DefaultUserAgent. An empty value is ignored.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithLogger sets the logger used for request debug output. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Client for one provider's key and secret.
func New(apiKey, apiSecret string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpclient: &http.Client{},
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NotificationOptions holds the optional notification fields. Empty values are
// left out of the request.
type NotificationOptions struct {
	// FromName is the sender name shown to the user.
	FromName string
	// ID uniquely identifies the notification so the same event is not
	// delivered twice.
	ID string
	// SourceURL is opened when the user taps the notification.
	SourceURL string
	// IconURL is the notification icon, 57x57 by convention.
	IconURL string
}

// Subscribe registers email as a recipient of the provider.
func (c *Client) Subscribe(ctx context.Context, email string) Result {
	return c.makeRequest(ctx, operationSubscribe, request{email: email})
}

// Notify sends message to a single subscribed user.
func (c *Client) Notify(ctx context.Context, email, message string) Result {
	return c.makeRequest(ctx, operationCreate, request{email: email, message: message})
}

// NotifyWithOptions is Notify with the optional notification fields set.
func (c *Client) NotifyWithOptions(ctx context.Context, email, message string, opts NotificationOptions) Result {
	return c.makeRequest(ctx, operationCreate, request{email: email, message: message, options: opts})
}

// Broadcast sends message to every subscriber of the provider.
func (c *Client) Broadcast(ctx context.Context, message string) Result {
	return c.makeRequest(ctx, operationBroadcast, request{message: message})
}

// BroadcastWithOptions is Broadcast with the optional notification fields set.
func (c *Client) BroadcastWithOptions(ctx context.Context, message string, opts NotificationOptions) Result {
	return c.makeRequest(ctx, operationBroadcast, request{message: message, options: opts})
}
