package web

import (
	"context"
	"errors"
	"net/http"
	"time"
)

type ctxKey int

const key ctxKey = 1

type values struct {
	TraceID    string
	Now        time.Time
	StatusCode int
	Writer     http.ResponseWriter
}

func setValues(ctx context.Context, v *values) context.Context {
	return context.WithValue(ctx, key, v)
}

// GetTime returns the start time of the request from the context.
func GetTime(ctx context.Context) time.Time {
	v, ok := ctx.Value(key).(*values)
	if !ok {
		return time.Now()
	}

	return v.Now
}

// GetWriter returns the underlying writer for the request.
func GetWriter(ctx context.Context) (http.ResponseWriter, error) {
	v, ok := ctx.Value(key).(*values)
	if !ok {
		return nil, errors.New("web value missing from context")
	}

	return v.Writer, nil
}

func setStatusCode(ctx context.Context, statusCode int) {
	v, ok := ctx.Value(key).(*values)
	if !ok {
		return
	}

	v.StatusCode = statusCode
}

// GetStatusCode returns the status code written for the request.
func GetStatusCode(ctx context.Context) int {
	v, ok := ctx.Value(key).(*values)
	if !ok {
		return 0
	}

	return v.StatusCode
}
