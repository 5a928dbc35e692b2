package zendesk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zendesk/pkg/zendesk"
)

func TestAsObject(t *testing.T) {
	t.Parallel()

	obj, err := zendesk.AsObject(nil)
	require.NoError(t, err)
	assert.Empty(t, obj)

	obj, err = zendesk.AsObject(map[string]interface{}{"id": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, zendesk.Object{"id": float64(1)}, obj)

	_, err = zendesk.AsObject([]interface{}{1, 2})
	require.ErrorIs(t, err, zendesk.ErrNotAnObject)
}

func TestObject_Accessors(t *testing.T) {
	t.Parallel()

	obj := zendesk.Object{
		"id":      float64(35436),
		"subject": "Help",
		"active":  true,
		"via":     map[string]interface{}{"channel": "email"},
		"tags":    []interface{}{"a", "b"},
	}

	id, ok := obj.Int64("id")
	require.True(t, ok)
	assert.Equal(t, int64(35436), id)
	assert.Equal(t, "35436", obj.String("id"))
	assert.Equal(t, "Help", obj.String("subject"))
	assert.True(t, obj.Bool("active"))
	assert.False(t, obj.Bool("missing"))

	via, ok := obj.Object("via")
	require.True(t, ok)
	assert.Equal(t, "email", via.String("channel"))

	_, ok = obj.Object("missing")
	assert.False(t, ok)

	_, ok = obj.Int64("subject")
	assert.False(t, ok)
}

func TestObject_Decode(t *testing.T) {
	t.Parallel()

	var ticket struct {
		ID      int64    `json:"id"`
		Subject string   `json:"subject"`
		Tags    []string `json:"tags"`
	}

	obj := zendesk.Object{"id": float64(7), "subject": "Help", "tags": []interface{}{"vip"}}

	require.NoError(t, obj.Decode(&ticket))
	assert.Equal(t, int64(7), ticket.ID)
	assert.Equal(t, []string{"vip"}, ticket.Tags)
}
