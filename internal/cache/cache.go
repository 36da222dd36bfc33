// Package cache memoizes completed calculations behind a deterministic
// quantized-input key. The cache is never a source of truth: a miss always
// recomputes, and a catalog version bump changes every key so stale entries
// age out of the LRU.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"math"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the entry capacity when none is configured.
const DefaultSize = 256

// quantumDecimals is the float rounding applied to key inputs. Inputs that
// differ only below solver tolerance share a cache entry.
const quantumDecimals = 6

// Quantize rounds to six decimal places. The result boundary rounding in
// content hashing uses the same rule so cache keys and result hashes agree
// on what counts as identical.
func Quantize(v float64) float64 {
	q := math.Round(v*1e6) / 1e6
	if q == 0 {
		return 0
	}
	return q
}

// KeyBuilder accumulates inputs into a SHA-256 cache key. Each field is
// written with a type tag and length prefix so adjacent fields cannot run
// together.
type KeyBuilder struct {
	h hash.Hash
}

// NewKey starts a key scoped to a catalog version.
func NewKey(catalogVersion string) *KeyBuilder {
	b := &KeyBuilder{h: sha256.New()}
	return b.String(catalogVersion)
}

func (b *KeyBuilder) write(tag byte, s string) *KeyBuilder {
	fmt.Fprintf(b.h, "%c%d:%s;", tag, len(s), s)
	return b
}

// String appends a string field verbatim.
func (b *KeyBuilder) String(s string) *KeyBuilder {
	return b.write('s', s)
}

// Float appends a float field, quantized.
func (b *KeyBuilder) Float(v float64) *KeyBuilder {
	return b.write('f', strconv.FormatFloat(Quantize(v), 'g', -1, 64))
}

// Int appends an integer field.
func (b *KeyBuilder) Int(v int) *KeyBuilder {
	return b.write('i', strconv.Itoa(v))
}

// Bool appends a boolean field.
func (b *KeyBuilder) Bool(v bool) *KeyBuilder {
	return b.write('b', strconv.FormatBool(v))
}

// Sum returns the hex key. The builder must not be reused afterward.
func (b *KeyBuilder) Sum() string {
	return hex.EncodeToString(b.h.Sum(nil))
}

// Cache is a fixed-capacity LRU safe for concurrent solvers.
type Cache[V any] struct {
	lru *lru.Cache[string, V]
}

// New creates a cache with the given capacity; zero or negative takes
// DefaultSize.
func New[V any](size int) (*Cache[V], error) {
	if size <= 0 {
		size = DefaultSize
	}
	inner, err := lru.New[string, V](size)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Cache[V]{lru: inner}, nil
}

// Get returns the cached value for a key.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

// Add stores a value, evicting the least recently used entry at capacity.
func (c *Cache[V]) Add(key string, value V) {
	c.lru.Add(key, value)
}

// Purge drops every entry.
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}

// Len reports the current entry count.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}
