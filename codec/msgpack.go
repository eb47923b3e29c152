package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack serializes members with vmihailenco/msgpack/v5. Compact and fast;
// struct members encode in field order and are deterministic. Use
// `msgpack:"fieldName"` tags if you need explicit control.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}
func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
