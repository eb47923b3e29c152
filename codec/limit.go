package codec

import "fmt"

// Limit wraps another codec to cap member sizes in both directions. Oversized
// members would bloat every derived materialization they appear in, so the
// cap applies on Encode as well as Decode. If Max <= 0, limiting is disabled.
type Limit[V any] struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Codec[V]
	// Max is the maximum permitted encoded member length in bytes.
	Max int
}

func (c Limit[V]) Encode(v V) ([]byte, error) {
	b, err := c.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	if c.Max > 0 && len(b) > c.Max {
		return nil, fmt.Errorf("member too large: %d > %d", len(b), c.Max)
	}
	return b, nil
}

func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.Max > 0 && len(b) > c.Max {
		var zero V
		return zero, fmt.Errorf("member too large: %d > %d", len(b), c.Max)
	}
	return c.Inner.Decode(b)
}
