package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/dietpop-lineup/internal/platform/kvstore"
	"github.com/riskibarqy/dietpop-lineup/internal/usecase"
)

const (
	apiVersion      = "2.0"
	errorDomain     = "dietpop-lineup"
	internalMessage = "internal server error"
)

// envelope is the body of every API response: data on success, error otherwise.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
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

// errorClass describes how one family of errors is reported to clients.
type errorClass struct {
	match  func(error) bool
	code   int
	status string
	reason string
}

func matches(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

// errorClasses is checked in order; the first match wins.
var errorClasses = []errorClass{
	{match: matches(usecase.ErrInvalidInput), code: http.StatusBadRequest, status: "INVALID_ARGUMENT", reason: "invalidInput"},
	{match: matches(usecase.ErrNotFound), code: http.StatusNotFound, status: "NOT_FOUND", reason: "notFound"},
	{match: matches(usecase.ErrDependencyUnavailable), code: http.StatusServiceUnavailable, status: "UNAVAILABLE", reason: "dependencyUnavailable"},
	{match: kvstore.IsUnavailable, code: http.StatusServiceUnavailable, status: "UNAVAILABLE", reason: "storageUnavailable"},
}

var internalClass = errorClass{code: http.StatusInternalServerError, status: "INTERNAL", reason: "internalError"}

func classify(err error) errorClass {
	for _, c := range errorClasses {
		if c.match(err) {
			return c
		}
	}
	return internalClass
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: apiVersion, Data: data})
}

// writeError reports err under its class. Unclassified errors are answered
// with a fixed message and recorded on the request span instead.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := classify(err)
	message := err.Error()
	if class.code >= http.StatusInternalServerError {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, class.reason)
	}
	if class.code == http.StatusInternalServerError {
		message = internalMessage
	}

	writeJSON(w, class.code, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    class.code,
			Message: message,
			Status:  class.status,
			Errors:  []errorDetail{{Domain: errorDomain, Reason: class.reason, Message: message}},
		},
	})
}
