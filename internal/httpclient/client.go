// Package httpclient is a traced, metered JSON client for read-only REST APIs.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultRequestTimeout  = 10 * time.Second
	defaultMaxBodyBytes    = 8 << 20
	defaultMaxConnsPerHost = 5
	defaultIdleConnTimeout = 2 * time.Minute
	defaultDialKeepAlive   = 10 * time.Second

	metricRequests = "http_client_requests_total"
	metricDuration = "http_client_request_duration_seconds"

	// traced response bodies are cut to this many bytes
	maxTracedBody = 512
)

// Client performs GET requests against one upstream and decodes JSON replies.
type Client interface {
	Get(ctx context.Context, req Request, result any) (*Response, error)
}

// Request describes one GET.
type Request struct {
	// Endpoint names the call in spans and metrics, e.g. "tickers".
	Endpoint string
	Path     string
	Query    map[string]string
	// OnError overrides the default rejection of status codes >= 400.
	OnError ResponseErrorHandler
}

// Response is a completed request.
type Response struct {
	StatusCode int
	Body       []byte
	// Decoded reports whether the body was unmarshalled into the result.
	Decoded bool
	Latency time.Duration
}

// StatusError is returned for status codes >= 400 when no OnError is set.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
}

type client struct {
	http         *http.Client
	baseURL      string
	headers      map[string]string
	maxBodyBytes int64
	provider     string
	tracer       trace.Tracer
	traceBodies  bool
	limiter      Waiter
	requests     metric.Int64Counter
	duration     metric.Float64Histogram
}

// NewInstrumentedClient builds a Client whose transport is wrapped with
// otelhttp so each request propagates trace context upstream.
func NewInstrumentedClient(opts ...Option) (Client, error) {
	o := &options{
		providerName: "default",
		timeout:      defaultRequestTimeout,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(o)
	}

	transport := o.transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			DialContext:     (&net.Dialer{KeepAlive: defaultDialKeepAlive}).DialContext,
			MaxConnsPerHost: defaultMaxConnsPerHost,
			IdleConnTimeout: defaultIdleConnTimeout,
		}
	}
	transport = otelhttp.NewTransport(transport,
		otelhttp.WithClientTrace(func(ctx context.Context) *httptrace.ClientTrace {
			return otelhttptrace.NewClientTrace(ctx)
		}),
	)

	mp := o.meterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter("httpclient",
		metric.WithInstrumentationAttributes(attribute.String("provider", o.providerName)))

	requests, err := meter.Int64Counter(metricRequests,
		metric.WithDescription("HTTP requests sent to market data upstreams"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram(metricDuration,
		metric.WithDescription("Round trip time of upstream HTTP requests"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	tracer := o.tracer
	if tracer == nil {
		tracer = otel.Tracer("httpclient")
	}

	headers := make(map[string]string, len(o.headers))
	for k, v := range o.headers {
		headers[k] = v
	}

	return &client{
		http:         &http.Client{Transport: transport, Timeout: o.timeout},
		baseURL:      strings.TrimSuffix(o.baseURL, "/"),
		headers:      headers,
		maxBodyBytes: o.maxBodyBytes,
		provider:     o.providerName,
		tracer:       tracer,
		traceBodies:  o.traceBodies,
		limiter:      o.limiter,
		requests:     requests,
		duration:     duration,
	}, nil
}

func (c *client) Get(ctx context.Context, req Request, result any) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "http.get "+req.Endpoint, trace.WithAttributes(
		attribute.String("provider", c.provider),
		attribute.String("endpoint", req.Endpoint),
		attribute.String("http.path", req.Path),
	))
	defer span.End()

	start := time.Now()
	resp, err := c.do(ctx, req, result)
	latency := time.Since(start)

	status := 0
	if resp != nil {
		resp.Latency = latency
		status = resp.StatusCode
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
	c.record(ctx, req.Endpoint, status, err, latency)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, context.Canceled) {
			span.SetAttributes(attribute.Bool("context.cancelled", true))
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			span.SetAttributes(attribute.Bool("request.timeout", true))
		}
		if c.traceBodies && resp != nil && len(resp.Body) > 0 {
			span.AddEvent("response.body", trace.WithAttributes(
				attribute.String("http.response_body", truncate(resp.Body, maxTracedBody))))
		}
	}
	return resp, err
}

func (c *client) do(ctx context.Context, req Request, result any) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(req), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, c.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Body: body}

	if req.OnError != nil {
		if err := req.OnError(resp.StatusCode, body); err != nil {
			return resp, err
		}
	} else if resp.StatusCode >= http.StatusBadRequest {
		return resp, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	// a body that does not decode leaves Decoded false for the caller to judge
	if result != nil && len(body) > 0 && json.Unmarshal(body, result) == nil {
		resp.Decoded = true
	}
	return resp, nil
}

func (c *client) url(req Request) string {
	u := req.Path
	if c.baseURL != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = c.baseURL + "/" + strings.TrimPrefix(u, "/")
	}
	if len(req.Query) == 0 {
		return u
	}

	q := url.Values{}
	for k, v := range req.Query {
		q.Set(k, v)
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + q.Encode()
}

func (c *client) record(ctx context.Context, endpoint string, status int, err error, latency time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("provider", c.provider),
		attribute.String("endpoint", endpoint),
		attribute.String("status", statusClass(status)),
		attribute.Bool("success", err == nil),
	)
	c.requests.Add(ctx, 1, attrs)
	c.duration.Record(ctx, latency.Seconds(), attrs)
}

// statusClass buckets status codes as "2xx", "4xx", ...; "none" when no response arrived.
func statusClass(status int) string {
	if status == 0 {
		return "none"
	}
	return strconv.Itoa(status/100) + "xx"
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
