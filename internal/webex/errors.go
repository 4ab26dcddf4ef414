package webex

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Sentinel errors for API operations.
var (
	ErrMissingToken    = errors.New("webex access token is required")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTeamNotFound    = errors.New("team not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrNoEmail         = errors.New("authenticated user has no email address")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Method     string
	Resource   string
	Message    string
	TrackingID string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s (tracking id %s)", e.Method, e.Resource, e.StatusCode, msg, e.TrackingID)
}

// errorBody is the error payload Webex returns alongside 4xx/5xx statuses.
type errorBody struct {
	Message    string `json:"message"`
	TrackingID string `json:"trackingId"`
	Errors     []struct {
		Description string `json:"description"`
	} `json:"errors"`
}

func newAPIError(resp *http.Response, method, resource, trackingID string) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Method:     method,
		Resource:   resource,
		TrackingID: trackingID,
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" && len(body.Errors) > 0 {
			apiErr.Message = body.Errors[0].Description
		}
		if body.TrackingID != "" {
			apiErr.TrackingID = body.TrackingID
		}
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}

	if id := resp.Header.Get(HeaderTrackingID); id != "" && body.TrackingID == "" {
		apiErr.TrackingID = id
	}
	return apiErr
}

// IsNotFound reports whether err means the requested entity does not exist,
// either as a lookup miss or as a 404 from the API.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrTeamNotFound) || errors.Is(err, ErrRoomNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
