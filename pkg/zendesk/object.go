package zendesk

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// Object is a decoded JSON object as returned by the Zendesk API.
type Object map[string]interface{}

// AsObject converts a decoded JSON value to an Object. A nil value (empty
// response body) yields an empty Object.
func AsObject(value interface{}) (Object, error) {
	switch v := value.(type) {
	case nil:
		return Object{}, nil
	case Object:
		return v, nil
	case map[string]interface{}:
		return Object(v), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotAnObject, value)
	}
}

// Decode converts the object into target, typically a struct with json tags.
func (o Object) Decode(target interface{}) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encoding object: %w", err)
	}

	err = json.Unmarshal(data, target)
	if err != nil {
		return fmt.Errorf("decoding object: %w", err)
	}

	return nil
}

// Object returns the nested object stored under key.
func (o Object) Object(key string) (Object, bool) {
	nested, err := AsObject(o[key])
	if err != nil || o[key] == nil {
		return nil, false
	}

	return nested, true
}

// Objects returns the array of objects stored under key. Non-object elements are skipped.
func (o Object) Objects(key string) []Object {
	raw, ok := o[key].([]interface{})
	if !ok {
		return nil
	}

	items := make([]Object, 0, len(raw))

	for _, item := range raw {
		if obj, ok := item.(map[string]interface{}); ok {
			items = append(items, Object(obj))
		}
	}

	return items
}

// String returns the value under key formatted as a string, or "".
func (o Object) String(key string) string {
	value, ok := o[key]
	if !ok || value == nil {
		return ""
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return ""
	}

	return s
}

// Int64 returns the value under key as an integer.
func (o Object) Int64(key string) (int64, bool) {
	value, ok := o[key]
	if !ok || value == nil {
		return 0, false
	}

	n, err := cast.ToInt64E(value)
	if err != nil {
		return 0, false
	}

	return n, true
}

// Bool returns the value under key as a boolean.
func (o Object) Bool(key string) bool {
	return cast.ToBool(o[key])
}
