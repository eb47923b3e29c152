// Package codec converts member values to and from the raw members stored in
// the backing store's sets.
//
// Unlike a value cache, set members double as identities: Contains and Remove
// look members up by their encoded bytes. A codec used with rediset must
// therefore be deterministic. String/Bytes/JSON-of-structs are fine; for CBOR
// use the deterministic mode, and the Protobuf codec always marshals
// deterministically.
package codec

// Codec encodes member values V to []byte and back.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// String is the identity codec for string members. This is the default codec
// for rediset instances over plain string members.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }

// Bytes is the identity codec for []byte members.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }
