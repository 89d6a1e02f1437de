// Package emailjs is a small client for the EmailJS REST send endpoint.
package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 4 << 10

// Request selects a hosted template and fills its variables.
type Request struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	Params     map[string]string
}

type payload struct {
	ServiceID   string            `json:"service_id"`
	TemplateID  string            `json:"template_id"`
	UserID      string            `json:"user_id"`
	Params      map[string]string `json:"template_params"`
	AccessToken string            `json:"accessToken,omitempty"`
}

// APIError is returned when EmailJS answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("emailjs: status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	endpoint   string
	privateKey string
	httpClient *http.Client
	timeout    time.Duration
	log        zerolog.Logger
}

type Option func(*Client)

func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each Send; a shorter context deadline still wins.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithPrivateKey sets the account access token required for
// non-browser callers when strict mode is enabled on the account.
func WithPrivateKey(key string) Option {
	return func(c *Client) { c.privateKey = key }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: newHTTPClient(),
		timeout:    10 * time.Second,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
		},
	}
}

// Send delivers one message. It makes exactly one HTTP request and never
// retries.
func (c *Client) Send(ctx context.Context, req Request) error {
	body, err := json.Marshal(payload{
		ServiceID:   req.ServiceID,
		TemplateID:  req.TemplateID,
		UserID:      req.PublicKey,
		Params:      req.Params,
		AccessToken: c.privateKey,
	})
	if err != nil {
		return fmt.Errorf("emailjs: encode request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("emailjs: send: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("template_id", req.TemplateID).
		Msg("emailjs responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(respBody))}
	}
	return nil
}
