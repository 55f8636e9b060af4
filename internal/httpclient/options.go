package httpclient

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Waiter blocks until the next request may be sent.
type Waiter interface {
	Wait(ctx context.Context) error
}

// ResponseErrorHandler maps a response to an error. Returning nil accepts it.
type ResponseErrorHandler func(statusCode int, body []byte) error

type options struct {
	providerName  string
	baseURL       string
	headers       map[string]string
	timeout       time.Duration
	maxBodyBytes  int64
	transport     http.RoundTripper
	meterProvider metric.MeterProvider
	tracer        trace.Tracer
	traceBodies   bool
	limiter       Waiter
}

// Option configures a Client.
type Option func(*options)

// WithProviderName labels spans and metrics with the upstream's name.
func WithProviderName(name string) Option {
	return func(o *options) { o.providerName = name }
}

// WithBaseURL sets the root every request path is joined to.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithHeaders sets headers sent on every request.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) { o.headers = headers }
}

// WithRequestTimeout bounds each request, including reading the body.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithMaxBodyBytes caps how much of a response body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) { o.maxBodyBytes = n }
}

// WithTransport replaces the pooled default transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithMeterProvider sets where request metrics go.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithTracer sets the tracer for request spans. With bodies set, response
// bodies of failed requests are attached to the span.
func WithTracer(tracer trace.Tracer, bodies bool) Option {
	return func(o *options) {
		o.tracer = tracer
		o.traceBodies = bodies
	}
}

// WithRateLimiter spaces every request through w.
func WithRateLimiter(w Waiter) Option {
	return func(o *options) { o.limiter = w }
}
