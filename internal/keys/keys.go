// Package keys derives deterministic store keys for operation nodes.
//
// A derived key is a pure function of the operation tag and the child
// identities: structurally identical trees always map to the same key, which
// is what lets shared subtrees share one materialization.
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Commutative derives a key that is identical for any permutation of
// children. Extra components (such as an aggregate function) participate in
// the digest after the normalized children.
func Commutative(tag string, children []string, extra ...string) string {
	s := make([]string, len(children))
	copy(s, children)
	sort.Strings(s)
	return tag + ":" + digest(tag, append(s, extra...))
}

// LeftFixed keeps the first child in place and order-normalizes the rest, so
// permuting the remaining children leaves the key unchanged but swapping the
// first one does not.
func LeftFixed(tag string, head string, rest []string, extra ...string) string {
	s := make([]string, 0, len(rest)+len(extra)+1)
	s = append(s, head)
	tail := make([]string, len(rest))
	copy(tail, rest)
	sort.Strings(tail)
	s = append(s, tail...)
	s = append(s, extra...)
	return tag + ":" + digest(tag, s)
}

// digest hashes the tag and parts with an unambiguous separator and keeps the
// first 16 hex chars, enough to make collisions a non-concern for key counts
// any single store will ever hold.
func digest(tag string, parts []string) string {
	h := sha256.New()
	h.Write([]byte(tag))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}
