// Package api is the client for the change-management service. Each
// operation returns its typed result together with the ordered diagnostic
// lines describing the HTTP exchange, or a TransportError, ResponseError or
// DecodeError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"situation/internal/config"
	"situation/internal/jsonutil"
)

// RequestIDHeader carries a fresh id per request for server-side correlation.
const RequestIDHeader = "X-Request-Id"

// Client talks to one service base URL with one bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	tracer     oteltrace.Tracer
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTracer sets the tracer used for per-call spans.
func WithTracer(t oteltrace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// WithLogger sets the logger that receives request and response bodies.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the configured service.
func New(cfg config.APIConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tracer:     noop.NewTracerProvider().Tracer("situation/api"),
		logger:     log.New(io.Discard),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the service base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// workspacePath builds /v1/w/{ws}/change-sets[/{cs}[/rest...]] with every
// segment escaped.
func workspacePath(ws string, segments ...string) string {
	var b strings.Builder
	b.WriteString("/v1/w/")
	b.WriteString(url.PathEscape(ws))
	b.WriteString("/change-sets")
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// call performs one request. in is JSON-encoded when non-nil; out receives
// the decoded success body when non-nil. The diagnostic lines are returned
// on every path so the caller decides what to surface.
func (c *Client) call(ctx context.Context, op, method, path string, in, out any) ([]string, error) {
	target := c.baseURL + path
	diag := []string{fmt.Sprintf("Calling API: %s %s", method, target)}

	ctx, span := c.tracer.Start(ctx, op,
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			semconv.HTTPMethodKey.String(method),
			semconv.HTTPURLKey.String(target),
			attribute.String("situation.operation", op),
		),
	)
	defer span.End()

	var body io.Reader
	var reqBytes []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "encode request")
			return diag, fmt.Errorf("encode %s request: %w", op, err)
		}
		reqBytes = b
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return diag, &TransportError{Method: method, URL: target, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	span.SetAttributes(attribute.String("situation.request_id", requestID))

	logger := c.logger.With("op", op, "request_id", requestID)
	logger.Debug("api request", "method", method, "url", target, "body", string(reqBytes))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		logger.Warn("api transport failure", "err", err)
		return diag, &TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	diag = append(diag, fmt.Sprintf("API Response Status: %s", resp.Status))
	span.SetAttributes(semconv.HTTPStatusCodeKey.Int(resp.StatusCode))

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		return diag, &TransportError{Method: method, URL: target, Err: fmt.Errorf("read body: %w", err)}
	}
	logger.Debug("api response", "status", resp.StatusCode, "body", string(respBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := &ResponseError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(respBytes),
		}
		var apiErr APIError
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Message != "" {
			rerr.API = &apiErr
		}
		span.SetStatus(codes.Error, resp.Status)
		logger.Warn("api error response", "status", resp.StatusCode)
		return diag, rerr
	}

	if out != nil {
		if err := jsonutil.UnmarshalWithContext(respBytes, out, op); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode")
			return diag, &DecodeError{Op: op, Err: err}
		}
	}
	return diag, nil
}
