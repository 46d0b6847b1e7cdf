package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/football-stats/internal/platform/tracing"
	"github.com/riskibarqy/football-stats/internal/usecase"
)

// Bodies follow the Google JSON style guide: {"apiVersion", "data"} on
// success and {"apiVersion", "error"} on failure.
const apiVersion = "2.0"

type envelope struct {
	APIVersion string    `json:"apiVersion"`
	Data       any       `json:"data,omitempty"`
	Error      *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Status  string        `json:"status"`
	Errors  []errorDetail `json:"errors,omitempty"`
}

type errorDetail struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorClass struct {
	target error
	code   int
	status string
	reason string
}

// errorClasses is checked in order. Anything unmatched is a 500 whose
// message is replaced so driver or upstream details do not leak.
var errorClasses = []errorClass{
	{usecase.ErrInvalidInput, http.StatusBadRequest, "INVALID_ARGUMENT", "invalidInput"},
	{usecase.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "notFound"},
	{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE", "dependencyUnavailable"},
}

var unclassified = errorClass{code: http.StatusInternalServerError, status: "INTERNAL", reason: "internalError"}

const internalMessage = "internal server error"

var encodeFailureBody = []byte(`{"apiVersion":"2.0","error":{"code":500,"message":"internal server error","status":"INTERNAL"}}`)

func classify(err error) errorClass {
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			return c
		}
	}
	return unclassified
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{APIVersion: apiVersion, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := classify(err)
	msg := internalMessage
	if class.code != http.StatusInternalServerError {
		msg = err.Error()
	} else {
		tracing.Fail(trace.SpanFromContext(ctx), err)
	}
	if class.code == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "30")
	}

	writeJSON(ctx, w, class.code, envelope{
		APIVersion: apiVersion,
		Error: &apiError{
			Code:    class.code,
			Message: msg,
			Status:  class.status,
			Errors:  []errorDetail{{Domain: "football-stats", Reason: class.reason, Message: msg}},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New(internalMessage))
}

// writeJSON encodes into a pooled buffer first so a marshal failure can
// still be answered with a well-formed 500.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		tracing.Fail(trace.SpanFromContext(ctx), err)
		status = http.StatusInternalServerError
		buf.Set(encodeFailureBody)
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}
