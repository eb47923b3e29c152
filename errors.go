package rediset

import "errors"

var (
	// ErrNilStore is returned by New when Options.Store is missing.
	ErrNilStore = errors.New("rediset: store is required")

	// ErrNilCodec is returned by New when V is not string and no codec was
	// supplied.
	ErrNilCodec = errors.New("rediset: codec is required for non-string member types")

	// ErrNoItems is returned by composition calls given zero sets or keys.
	ErrNoItems = errors.New("rediset: at least one set or key is required")

	// ErrBadItem is returned when a composition argument is neither a node,
	// a key string, nor an option.
	ErrBadItem = errors.New("rediset: composition arguments must be nodes or key strings")

	// ErrOrderedDifference is returned when Difference is given a sorted-set
	// child; the store defines no scored difference.
	ErrOrderedDifference = errors.New("rediset: difference is not defined over sorted sets")

	// ErrIndexOutOfRange is returned by At for indices beyond the
	// materialized sequence. The safe accessor Get signals the same
	// condition with ok=false instead.
	ErrIndexOutOfRange = errors.New("rediset: index out of range")
)
