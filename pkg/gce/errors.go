/*
Copyright The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package gce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
)

// ErrClientNotInitialized is returned by Wrapper methods whose API client was never created
var ErrClientNotInitialized = errors.New("compute client not initialized")

// ErrZoneRequired is returned for zonal calls made without a zone
var ErrZoneRequired = errors.New("zone is required")

// ErrorType represents the type of a Compute Engine error
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeUnauthorized
	ErrorTypeForbidden
	ErrorTypeRateLimit
	ErrorTypeServerError
	ErrorTypeClientError
	ErrorTypeTimeout
	ErrorTypeConflict
	ErrorTypeValidation
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeUnknown:      "unknown",
	ErrorTypeNotFound:     "not_found",
	ErrorTypeUnauthorized: "unauthorized",
	ErrorTypeForbidden:    "forbidden",
	ErrorTypeRateLimit:    "rate_limit",
	ErrorTypeServerError:  "server_error",
	ErrorTypeClientError:  "client_error",
	ErrorTypeTimeout:      "timeout",
	ErrorTypeConflict:     "conflict",
	ErrorTypeValidation:   "validation",
}

// String returns the snake_case name used in metric labels
func (t ErrorType) String() string {
	if name, ok := errorTypeNames[t]; ok {
		return name
	}
	return errorTypeNames[ErrorTypeUnknown]
}

// GCEError is a classified Compute Engine API error
type GCEError struct {
	Type ErrorType
	// StatusCode is the HTTP status code, zero when unknown
	StatusCode int
	// Reason is the machine readable reason reported by the API, e.g. "notFound"
	Reason    string
	Message   string
	Retryable bool
	wrapped   error
}

// Error implements the error interface
func (e *GCEError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("compute error (reason: %s, status: %d): %s", e.Reason, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("compute error (status: %d): %s", e.StatusCode, e.Message)
}

// Unwrap returns the wrapped error
func (e *GCEError) Unwrap() error {
	return e.wrapped
}

func (e *GCEError) IsNotFound() bool {
	return e.Type == ErrorTypeNotFound
}

func (e *GCEError) IsUnauthorized() bool {
	return e.Type == ErrorTypeUnauthorized
}

func (e *GCEError) IsForbidden() bool {
	return e.Type == ErrorTypeForbidden
}

func (e *GCEError) IsRateLimit() bool {
	return e.Type == ErrorTypeRateLimit
}

func (e *GCEError) IsServerError() bool {
	return e.Type == ErrorTypeServerError
}

func (e *GCEError) IsTimeout() bool {
	return e.Type == ErrorTypeTimeout
}

func (e *GCEError) IsConflict() bool {
	return e.Type == ErrorTypeConflict
}

func (e *GCEError) IsValidation() bool {
	return e.Type == ErrorTypeValidation
}

// ParseError classifies err. It understands googleapi and gax API errors
// anywhere in the wrap chain and falls back to matching the message.
func ParseError(err error) *GCEError {
	if err == nil {
		return nil
	}

	var gceErr *GCEError
	if errors.As(err, &gceErr) {
		return gceErr
	}

	var googleErr *googleapi.Error
	if errors.As(err, &googleErr) {
		reason := ""
		if len(googleErr.Errors) > 0 {
			reason = googleErr.Errors[0].Reason
		}
		return fromStatusCode(err, googleErr.Code, reason, googleErr.Message)
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if code := apiErr.HTTPCode(); code > 0 {
			return fromStatusCode(err, code, apiErr.Reason(), apiErr.Error())
		}
		if status := apiErr.GRPCStatus(); status != nil {
			return fromStatusCode(err, httpStatusFromCode(status.Code()), apiErr.Reason(), status.Message())
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &GCEError{Type: ErrorTypeTimeout, StatusCode: http.StatusRequestTimeout, Message: err.Error(), Retryable: true, wrapped: err}
	}

	return parseErrorString(err)
}

// IsNotFound reports whether err is a Compute Engine "not found" error
func IsNotFound(err error) bool {
	parsed := ParseError(err)
	return parsed != nil && parsed.IsNotFound()
}

// IsRetryable reports whether retrying the failed request may succeed
func IsRetryable(err error) bool {
	parsed := ParseError(err)
	return parsed != nil && parsed.Retryable
}

// Status returns the metric status label for the outcome of a request
func Status(err error) string {
	if err == nil {
		return "success"
	}
	return ParseError(err).Type.String()
}

func fromStatusCode(err error, statusCode int, reason, message string) *GCEError {
	gceErr := &GCEError{
		StatusCode: statusCode,
		Reason:     reason,
		Message:    message,
		Retryable:  statusCode >= 500 || statusCode == http.StatusTooManyRequests,
		wrapped:    err,
	}

	switch statusCode {
	case http.StatusNotFound:
		gceErr.Type = ErrorTypeNotFound
	case http.StatusUnauthorized:
		gceErr.Type = ErrorTypeUnauthorized
	case http.StatusForbidden:
		// quota errors come back as 403 with a rate limit reason
		if strings.Contains(strings.ToLower(reason), "ratelimit") {
			gceErr.Type = ErrorTypeRateLimit
			gceErr.Retryable = true
		} else {
			gceErr.Type = ErrorTypeForbidden
		}
	case http.StatusTooManyRequests:
		gceErr.Type = ErrorTypeRateLimit
	case http.StatusConflict, http.StatusPreconditionFailed:
		gceErr.Type = ErrorTypeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		gceErr.Type = ErrorTypeValidation
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		gceErr.Type = ErrorTypeTimeout
		gceErr.Retryable = true
	default:
		switch {
		case statusCode >= 500:
			gceErr.Type = ErrorTypeServerError
		case statusCode >= 400:
			gceErr.Type = ErrorTypeClientError
		default:
			gceErr.Type = ErrorTypeUnknown
		}
	}
	return gceErr
}

func httpStatusFromCode(code codes.Code) int {
	switch code {
	case codes.NotFound:
		return http.StatusNotFound
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.FailedPrecondition:
		return http.StatusPreconditionFailed
	case codes.InvalidArgument, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.Internal, codes.Unknown, codes.DataLoss:
		return http.StatusInternalServerError
	default:
		return 0
	}
}

func parseErrorString(err error) *GCEError {
	errStr := strings.ToLower(err.Error())
	gceErr := &GCEError{
		Message: err.Error(),
		wrapped: err,
	}

	switch {
	case strings.Contains(errStr, "not found") || strings.Contains(errStr, "notfound"):
		gceErr.Type = ErrorTypeNotFound
		gceErr.StatusCode = http.StatusNotFound
	case strings.Contains(errStr, "unauthorized") || strings.Contains(errStr, "unauthenticated"):
		gceErr.Type = ErrorTypeUnauthorized
		gceErr.StatusCode = http.StatusUnauthorized
	case strings.Contains(errStr, "forbidden") || strings.Contains(errStr, "permission"):
		gceErr.Type = ErrorTypeForbidden
		gceErr.StatusCode = http.StatusForbidden
	case strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota"):
		gceErr.Type = ErrorTypeRateLimit
		gceErr.StatusCode = http.StatusTooManyRequests
		gceErr.Retryable = true
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline"):
		gceErr.Type = ErrorTypeTimeout
		gceErr.StatusCode = http.StatusRequestTimeout
		gceErr.Retryable = true
	case strings.Contains(errStr, "already exists") || strings.Contains(errStr, "fingerprint"):
		gceErr.Type = ErrorTypeConflict
		gceErr.StatusCode = http.StatusConflict
	case strings.Contains(errStr, "invalid"):
		gceErr.Type = ErrorTypeValidation
		gceErr.StatusCode = http.StatusBadRequest
	default:
		gceErr.Type = ErrorTypeUnknown
	}
	return gceErr
}
