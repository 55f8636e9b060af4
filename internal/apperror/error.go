// Package apperror carries coded, user-presentable errors from the market
// data client up to the TUI, the console report and the JSON API.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"
)

// AppError is an error with a stable code, a user-facing message and the
// HTTP status the API answers with.
type AppError struct {
	Code       Code
	Message    string
	StatusCode int
	Context    string
	TraceID    string
	Timestamp  time.Time
	cause      error
	stack      []uintptr
}

func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Context != "" {
		b.WriteString(" [")
		b.WriteString(e.Context)
		b.WriteString("]")
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches another *AppError by code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Code == t.Code
}

// WithTraceID stamps the trace of the request that failed.
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// Retryable reports whether the same request may succeed later.
func (e *AppError) Retryable() bool {
	return retryable[e.Code]
}

// ErrorBody is the JSON error object of the API.
type ErrorBody struct {
	Code      Code   `json:"code"`
	Message   string `json:"message"`
	Context   string `json:"context,omitempty"`
	TraceID   string `json:"traceId,omitempty"`
	Retryable bool   `json:"retryable"`
	Timestamp string `json:"timestamp"`
}

// Response is the JSON envelope for failed API requests.
type Response struct {
	Error ErrorBody `json:"error"`
}

// ToResponse builds the API error envelope.
func (e *AppError) ToResponse() Response {
	return Response{Error: ErrorBody{
		Code:      e.Code,
		Message:   e.Message,
		Context:   e.Context,
		TraceID:   e.TraceID,
		Retryable: e.Retryable(),
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
	}}
}

// ToLog returns key/value pairs for structured logging, stack included.
func (e *AppError) ToLog() []any {
	kv := []any{"code", e.Code, "message", e.Message, "status", e.StatusCode}
	if e.Context != "" {
		kv = append(kv, "context", e.Context)
	}
	if e.TraceID != "" {
		kv = append(kv, "trace_id", e.TraceID)
	}
	if e.cause != nil {
		kv = append(kv, "cause", e.cause.Error())
	}
	if len(e.stack) > 0 {
		kv = append(kv, "stack", e.formatStack())
	}
	return kv
}

func (e *AppError) formatStack() string {
	var sb strings.Builder
	frames := runtime.CallersFrames(e.stack)
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			fmt.Fprintf(&sb, "\n\t%s:%d %s", frame.File, frame.Line, frame.Function)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

func captureStack() []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[:n]
}

// New creates an AppError. Message and status default from the code.
func New(code Code, opts ...Option) *AppError {
	err := &AppError{
		Code:       code,
		Message:    messages[code],
		StatusCode: statusFor(code),
		Timestamp:  time.Now(),
		stack:      captureStack(),
	}
	for _, opt := range opts {
		opt(err)
	}
	if err.Message == "" {
		err.Message = string(code)
	}
	return err
}

// Option configures an AppError.
type Option func(*AppError)

// WithMessage replaces the default message.
func WithMessage(message string) Option {
	return func(e *AppError) { e.Message = message }
}

// WithContext names where the error happened, e.g. the upstream endpoint.
func WithContext(context string) Option {
	return func(e *AppError) { e.Context = context }
}

// WithStatusCode overrides the HTTP status.
func WithStatusCode(statusCode int) Option {
	return func(e *AppError) { e.StatusCode = statusCode }
}

// WithCause wraps an underlying error.
func WithCause(cause error) Option {
	return func(e *AppError) { e.cause = cause }
}

// Internal creates a 500 wrapping cause.
func Internal(code Code, context string, cause error) *AppError {
	return New(code, WithContext(context), WithCause(cause), WithStatusCode(http.StatusInternalServerError))
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode extracts the error code, CodeUnknownError for foreign errors.
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknownError
}

// IsRetryable reports whether err is an AppError worth retrying.
func IsRetryable(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Retryable()
}

// Display returns the message to show a user: the AppError message, or
// err.Error() for anything else.
func Display(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
