package codec

import "encoding/json"

// JSON serializes members with encoding/json. Struct fields marshal in
// declaration order, so struct members are deterministic; avoid map-typed
// members, whose key order is not.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
