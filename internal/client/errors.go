package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const DefaultErrorMessage = "Something went wrong. Please try again."

// APIError is returned for any non-2xx answer from the Travel Journal API.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("travel api %s %s: status=%d body=%s", e.Method, e.Path, e.Status, string(e.Body))
}

// TransportError means no response object was received at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("travel api unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Kind string

const (
	KindNone               Kind = ""
	KindNetworkUnreachable Kind = "network_unreachable"
	KindUnauthorized       Kind = "unauthorized"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindValidationFailed   Kind = "validation_failed"
	KindUnknown            Kind = "unknown"
)

func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return KindNetworkUnreachable
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return KindUnknown
	}

	switch {
	case apiErr.Status == http.StatusUnauthorized:
		return KindUnauthorized
	case apiErr.Status == http.StatusForbidden:
		return KindForbidden
	case apiErr.Status == http.StatusNotFound:
		return KindNotFound
	case apiErr.Status >= 400 && apiErr.Status < 500 && PrimaryMessage(apiErr.Body) != "":
		return KindValidationFailed
	default:
		return KindUnknown
	}
}

// StatusCode picks the HTTP status a handler should answer with for err.
func StatusCode(err error) int {
	switch Classify(err) {
	case KindNetworkUnreachable:
		return http.StatusBadGateway
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidationFailed:
		return http.StatusBadRequest
	default:
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 {
			return apiErr.Status
		}
		return http.StatusInternalServerError
	}
}

// FriendlyMessage turns err into something a user can read. The API body is
// searched for a plain string, then "message", then "errors" (first element
// or string); fallback is used when nothing fits.
func FriendlyMessage(err error, fallback string) string {
	if fallback == "" {
		fallback = DefaultErrorMessage
	}
	if err == nil {
		return fallback
	}

	var primary string
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		primary = PrimaryMessage(apiErr.Body)
	}

	switch Classify(err) {
	case KindNetworkUnreachable:
		return "Cannot reach the server. Check your internet connection."
	case KindUnauthorized:
		return "Your session has ended. Please log in again."
	case KindForbidden:
		return "Access denied. Your account does not have permission."
	case KindNotFound:
		if primary != "" {
			return primary
		}
		return "Data not found."
	}

	if primary != "" {
		return primary
	}
	return fallback
}

// PrimaryMessage extracts the most useful message from an API error body.
func PrimaryMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return text
	}

	switch v := data.(type) {
	case string:
		return v
	case map[string]any:
		if msg, ok := v["message"].(string); ok && msg != "" {
			return msg
		}
		switch errs := v["errors"].(type) {
		case []any:
			if len(errs) == 0 {
				return ""
			}
			switch first := errs[0].(type) {
			case string:
				return first
			case map[string]any:
				if msg, ok := first["message"].(string); ok {
					return msg
				}
			}
		case string:
			return errs
		}
	}

	return ""
}
