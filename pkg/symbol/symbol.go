// Package symbol provides the stable hash of symbol names shared by
// environment bucket placement and special form dispatch.
package symbol

import "github.com/cespare/xxhash/v2"

// Hash returns the hash code of name.  Hash is stable across processes so
// hash codes may be computed ahead of time for well known names.
func Hash(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Bucket returns the index of the bucket for a name with hash code h in a
// table of n buckets.  A table with a single bucket does not need the hash
// code at all.
func Bucket(h uint64, n int) int {
	if n <= 1 {
		return 0
	}
	return int(h % uint64(n))
}
