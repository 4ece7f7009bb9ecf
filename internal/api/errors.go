package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"situation/internal/config"
)

// Error classes returned by Classify.
const (
	TypeConfig   = "config"    // Missing or invalid configuration
	TypeNetwork  = "network"   // Connection, DNS or timeout failures
	TypeAuth     = "auth"      // 401/403 from the service
	TypeNotFound = "not_found" // 404 from the service
	TypeResponse = "response"  // Any other non-success status
	TypeDecode   = "decode"    // Success status with a malformed body
	TypeInternal = "internal"  // Everything else
)

// APIError is the structured error body the service returns on failure.
type APIError struct {
	Code       *int   `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// TransportError wraps failures to reach the service at all.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseError is a non-success HTTP status. API is set when the body
// parsed as an APIError.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
	API        *APIError
}

func (e *ResponseError) Error() string {
	if e.API != nil {
		if e.API.Code != nil {
			return fmt.Sprintf("API request failed with status %s: code %d: %s", e.Status, *e.API.Code, e.API.Message)
		}
		return fmt.Sprintf("API request failed with status %s: %s", e.Status, e.API.Message)
	}
	body := strings.Join(strings.Fields(e.Body), " ")
	if body == "" {
		return fmt.Sprintf("API request failed with status %s", e.Status)
	}
	return fmt.Sprintf("API request failed with status %s: %s", e.Status, body)
}

// DecodeError is a success response whose body could not be decoded.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Classify determines the class of an error for log formatting.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	var (
		te *TransportError
		re *ResponseError
		de *DecodeError
	)
	switch {
	case config.IsConfigError(err):
		return TypeConfig
	case errors.As(err, &te):
		return TypeNetwork
	case errors.As(err, &re):
		switch re.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return TypeAuth
		case http.StatusNotFound:
			return TypeNotFound
		}
		return TypeResponse
	case errors.As(err, &de):
		return TypeDecode
	default:
		return TypeInternal
	}
}

// Pretty formats an error as a single log line with a short hint.
func Pretty(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch Classify(err) {
	case TypeConfig:
		return "Configuration error: " + msg
	case TypeNetwork:
		return "Connection error: " + msg
	case TypeAuth:
		return "Access denied: " + msg + " (check JWT_TOKEN)"
	case TypeNotFound:
		return "Not found: " + msg
	case TypeDecode:
		return "Unexpected response: " + msg
	default:
		return msg
	}
}
