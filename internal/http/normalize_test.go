package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zdhttp "github.com/fivetwenty-io/zendesk/internal/http"
	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("decodes a successful body", func(t *testing.T) {
		t.Parallel()

		value, err := zdhttp.Normalize(&zendesk.RawResponse{StatusCode: 200, Body: []byte(`{"a":1}`)}, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"a": float64(1)}, value)
	})

	t.Run("status outside the success set", func(t *testing.T) {
		t.Parallel()

		_, err := zdhttp.Normalize(&zendesk.RawResponse{
			StatusCode: http.StatusNotFound,
			Body:       []byte(`{"error":"RecordNotFound","description":"Not found"}`),
		}, nil)
		require.Error(t, err)
		assert.True(t, zendesk.IsNotFound(err))
		assert.Equal(t, http.StatusNotFound, zendesk.StatusCode(err))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Parallel()

		_, err := zdhttp.Normalize(&zendesk.RawResponse{StatusCode: 200, Body: []byte("not-json")}, nil)
		require.Error(t, err)
		assert.True(t, zendesk.IsDecode(err))
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		value, err := zdhttp.Normalize(&zendesk.RawResponse{StatusCode: http.StatusNoContent}, nil, zdhttp.DeleteSuccessCodes...)
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("custom success codes", func(t *testing.T) {
		t.Parallel()

		_, err := zdhttp.Normalize(&zendesk.RawResponse{StatusCode: http.StatusCreated, Body: []byte("{}")}, nil, http.StatusOK)
		require.Error(t, err)
		assert.Equal(t, http.StatusCreated, zendesk.StatusCode(err))

		value, err := zdhttp.Normalize(&zendesk.RawResponse{StatusCode: http.StatusAccepted, Body: []byte(`[1]`)}, nil, http.StatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, []interface{}{float64(1)}, value)
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()

		_, err := zdhttp.Normalize(nil, errDialFailed)
		require.ErrorIs(t, err, errDialFailed)
		assert.True(t, zendesk.IsTransport(err))
	})

	t.Run("existing error passes through", func(t *testing.T) {
		t.Parallel()

		original := zendesk.NewTransportError(errDialFailed)

		_, err := zdhttp.Normalize(nil, original)
		assert.Same(t, original, err)
	})

	t.Run("missing response", func(t *testing.T) {
		t.Parallel()

		_, err := zdhttp.Normalize(nil, nil)
		require.ErrorIs(t, err, zendesk.ErrEmptyResponse)
	})
}
