package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failure reported by the API: a non-2xx status or an envelope
// whose key is not "success".
type Error struct {
	Status int
	Key    string
	Msg    string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("api: status %d, key %q: %s", e.Status, e.Key, e.Msg)
	}
	return fmt.Sprintf("api: status %d, key %q", e.Status, e.Key)
}

// IsUnauthorized reports whether err is an API 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsBusiness reports whether err was reported by the API itself, as opposed
// to a transport or decoding failure.
func IsBusiness(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}

// Message picks the text to show for err: the server message of a business
// failure when present, otherwise failed for business failures and broken
// for transport or decoding failures.
func Message(err error, failed, broken string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Msg != "" {
			return apiErr.Msg
		}
		return failed
	}
	return broken
}
