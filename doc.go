// Package rediset composes set algebra (intersection, union, difference)
// over collections held in an external key-value store, as a tree of lazily
// evaluated operations. Results are materialized by the store's own
// combination commands and cached in place via key TTLs, so nested operations
// are not recomputed on every read.
//
// Components:
//   - store.Store: thin pass-through to the backing store's native set and
//     sorted-set commands (Redis adapter included, in-memory for tests).
//   - Leaf nodes (Set, SortedSet): caller-keyed collections, mutated directly.
//   - Operation nodes: own an ordered list of children, derive a deterministic
//     key from their structure, and materialize bottom-up on read.
//   - codec.Codec[V]: deterministically (de)serializes member values.
//
// Keys:
//
//	<prefix>:<key>             - leaf collections
//	<prefix>:<tag>:<hash>      - materialized operations; tag names the
//	                             operation (inter, union, diff, zinter,
//	                             zunion), hash covers the order-normalized
//	                             child identities
//
// Two structurally identical trees derive the same key and share one
// materialization; whether a cached result is still warm is answered entirely
// by whether its key currently exists, so every process sharing the store
// observes the same cache state.
//
// Usage:
//
//	rs, _ := rediset.New(rediset.Options[string]{Store: st, KeyPrefix: "app", DefaultCacheTTL: time.Minute})
//	active := rs.Set("users:active")
//	staff := rs.Set("users:staff")
//	both, _ := rs.Intersection(active, staff)
//	n, _ := both.Cardinality(ctx)
package rediset
