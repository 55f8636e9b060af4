package apm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"

	"github.com/fd1az/arbitrage-lens/internal/logger"
)

type Provider string

const (
	ZipkinProvider   Provider = "ZIPKIN_PROVIDER"
	OTLPGRPCProvider Provider = "OTLP_GRPC_PROVIDER"
	OTLPHTTPProvider Provider = "OTLP_HTTP_PROVIDER"
	ConsoleProvider  Provider = "CONSOLE_PROVIDER"
	EmptyProvider    Provider = "EMPTY_PROVIDER"
)

type TraceProvider interface {
	Stop() error
}

type traceProvider struct {
	tp *sdktrace.TracerProvider
}

type emptyTraceProvider struct{}

func (emptyTraceProvider) Stop() error { return nil }

// ExporterConfig carries the endpoint settings shared by remote exporters.
type ExporterConfig struct {
	Endpoint string
	Headers  string // key=value
}

type TracerOptions struct {
	exporter           sdktrace.SpanExporter
	tracerProviderName string
	serviceName        string
	useEmpty           bool
}

type TracerOption func(*TracerOptions) error

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) TracerOption {
	return func(o *TracerOptions) error {
		o.serviceName = name
		return nil
	}
}

func WithProvider(provider Provider, cfg ExporterConfig, log logger.LoggerInterface) TracerOption {
	switch provider {
	case ZipkinProvider:
		return useZipkin(cfg)
	case OTLPGRPCProvider:
		return useOTLPGRPC(cfg, log)
	case OTLPHTTPProvider:
		return useOTLPHTTP(cfg, log)
	case ConsoleProvider:
		return useConsole()
	case EmptyProvider:
		return useEmpty()
	}

	log.Warn(context.Background(), "TracerProvider not found, using EmptyProvider", "provider", provider)

	return useEmpty()
}

func useEmpty() TracerOption {
	return func(option *TracerOptions) error {
		option.useEmpty = true
		option.tracerProviderName = string(EmptyProvider)
		return nil
	}
}

func useConsole() TracerOption {
	return func(option *TracerOptions) error {
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return err
		}

		option.exporter = exp
		option.tracerProviderName = string(ConsoleProvider)
		return nil
	}
}

func useZipkin(cfg ExporterConfig) TracerOption {
	return func(option *TracerOptions) error {
		exp, err := zipkin.New(cfg.Endpoint)
		if err != nil {
			return err
		}

		option.exporter = exp
		option.tracerProviderName = string(ZipkinProvider)
		return nil
	}
}

func useOTLPGRPC(cfg ExporterConfig, log logger.LoggerInterface) TracerOption {
	return func(option *TracerOptions) error {
		log.Info(context.Background(), "Initializing OTLP gRPC trace exporter", "endpoint", cfg.Endpoint)

		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpointURL(cfg.Endpoint)}
		if headers, err := ParseHeaders(cfg.Headers); err != nil {
			return err
		} else if len(headers) > 0 {
			opts = append(opts, otlptracegrpc.WithHeaders(headers))
		}

		exp, err := otlptracegrpc.New(context.Background(), opts...)
		if err != nil {
			return err
		}

		option.exporter = exp
		option.tracerProviderName = string(OTLPGRPCProvider)
		return nil
	}
}

func useOTLPHTTP(cfg ExporterConfig, log logger.LoggerInterface) TracerOption {
	return func(option *TracerOptions) error {
		log.Info(context.Background(), "Initializing OTLP HTTP trace exporter", "endpoint", cfg.Endpoint)

		opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(cfg.Endpoint)}
		if headers, err := ParseHeaders(cfg.Headers); err != nil {
			return err
		} else if len(headers) > 0 {
			opts = append(opts, otlptracehttp.WithHeaders(headers))
		}

		exp, err := otlptracehttp.New(context.Background(), opts...)
		if err != nil {
			return err
		}

		option.exporter = exp
		option.tracerProviderName = string(OTLPHTTPProvider)
		return nil
	}
}

// ParseHeaders parses a single "key=value" pair. Empty input yields no headers.
func ParseHeaders(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}

	kv := strings.SplitN(raw, "=", 2)
	if len(kv) != 2 || kv[0] == "" {
		return nil, fmt.Errorf("invalid OTLP headers %q, expected key=value", raw)
	}

	return map[string]string{kv[0]: kv[1]}, nil
}

func NewTraceProvider(log logger.LoggerInterface, options ...TracerOption) (TraceProvider, error) {
	opts := &TracerOptions{}

	for _, opt := range options {
		if err := opt(opts); err != nil {
			return nil, err
		}
	}

	if opts.useEmpty || opts.exporter == nil {
		return emptyTraceProvider{}, nil
	}

	rsrc, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(opts.serviceName),
			attribute.String("otel.provider", opts.tracerProviderName),
		))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(opts.exporter),
		sdktrace.WithResource(rsrc),
	)

	// Set global trace provider
	otel.SetTracerProvider(tp)

	// Set trace propagator
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))

	log.Info(context.Background(), "tracing enabled", "provider", opts.tracerProviderName)

	return &traceProvider{
		tp,
	}, nil
}

func (o *traceProvider) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
	defer cancel()

	return o.tp.Shutdown(ctx)
}
