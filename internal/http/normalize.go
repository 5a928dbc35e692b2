package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

// DefaultSuccessCodes are the statuses treated as success when none are given.
var DefaultSuccessCodes = []int{http.StatusOK, http.StatusCreated}

// DeleteSuccessCodes are the statuses treated as success for deletions.
var DeleteSuccessCodes = []int{http.StatusOK, http.StatusNoContent}

// Normalize converts a transport result to a decoded JSON value or a
// *zendesk.Error. A successful empty body yields a nil value.
func Normalize(raw *zendesk.RawResponse, err error, successCodes ...int) (interface{}, error) {
	if err != nil {
		var zerr *zendesk.Error
		if errors.As(err, &zerr) {
			return nil, zerr
		}

		return nil, zendesk.NewTransportError(err)
	}

	if raw == nil {
		return nil, zendesk.NewTransportError(zendesk.ErrEmptyResponse)
	}

	if len(successCodes) == 0 {
		successCodes = DefaultSuccessCodes
	}

	if !slices.Contains(successCodes, raw.StatusCode) {
		return nil, zendesk.NewHTTPStatusError(raw.StatusCode, raw.Body)
	}

	if len(bytes.TrimSpace(raw.Body)) == 0 {
		return nil, nil //nolint:nilnil
	}

	var value interface{}

	err = json.Unmarshal(raw.Body, &value)
	if err != nil {
		return nil, zendesk.NewDecodeError(raw.StatusCode, raw.Body, err)
	}

	return value, nil
}
