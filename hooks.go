package rediset

import "github.com/semargal/rediset/store"

// Hooks are lightweight callbacks for high-signal evaluation events.
// Implementations MUST be cheap and non-blocking; the evaluator calls them on
// hot paths.
type Hooks interface {
	// A composite's key was still live inside its cache window; the combine
	// was skipped.
	CacheHit(key string)

	// A combine command populated key from sources children.
	Materialized(key string, op store.Op, sources int)

	// The combine command for key failed; the destination keeps its prior
	// state and the next read retries from scratch.
	CombineFailed(key string, op store.Op, err error)
}

// NopHooks is the default no-op Hooks implementation.
type NopHooks struct{}

func (NopHooks) CacheHit(string)                       {}
func (NopHooks) Materialized(string, store.Op, int)    {}
func (NopHooks) CombineFailed(string, store.Op, error) {}
