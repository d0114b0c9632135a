package types

import (
	"iter"
	"slices"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// Comments is an insertion-ordered multimap of Vorbis comment fields.
//
// Keys are stored upper-cased, so lookups are ASCII case-insensitive.
// Values are kept verbatim and in the order they were added; a key that
// appears several times keeps every value.
//
// The zero value is ready to use.
type Comments struct {
	m     *orderedmap.OrderedMap[string, []string]
	count int
}

// NewComments returns an empty Comments.
func NewComments() *Comments {
	return &Comments{m: orderedmap.NewOrderedMap[string, []string]()}
}

// Add appends value under key. A key seen for the first time is placed after
// all existing keys.
func (c *Comments) Add(key, value string) {
	if c.m == nil {
		c.m = orderedmap.NewOrderedMap[string, []string]()
	}
	key = NormalizeKey(key)
	values, _ := c.m.Get(key)
	c.m.Set(key, append(values, value))
	c.count++
}

// Get returns a copy of all values for key, or nil.
//
// Example:
//
//	for _, artist := range vc.Comments.Get("artist") {
//		fmt.Println(artist)
//	}
func (c *Comments) Get(key string) []string {
	if c == nil || c.m == nil {
		return nil
	}
	values, ok := c.m.Get(NormalizeKey(key))
	if !ok {
		return nil
	}
	return slices.Clone(values)
}

// First returns the first value for key, or "".
func (c *Comments) First(key string) string {
	if c == nil || c.m == nil {
		return ""
	}
	values, _ := c.m.Get(NormalizeKey(key))
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Has reports whether key has at least one value.
func (c *Comments) Has(key string) bool {
	if c == nil || c.m == nil {
		return false
	}
	return c.m.Has(NormalizeKey(key))
}

// Keys returns an iterator over the distinct keys in first-seen order.
func (c *Comments) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		if c == nil || c.m == nil {
			return
		}
		for k := range c.m.Keys() {
			if !yield(k) {
				return
			}
		}
	}
}

// All returns an iterator over keys and their values in first-seen order.
//
// The yielded slices must not be modified.
func (c *Comments) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		if c == nil || c.m == nil {
			return
		}
		for k, v := range c.m.AllFromFront() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Len returns the number of distinct keys.
func (c *Comments) Len() int {
	if c == nil || c.m == nil {
		return 0
	}
	return c.m.Len()
}

// Count returns the total number of values across all keys.
func (c *Comments) Count() int {
	if c == nil {
		return 0
	}
	return c.count
}

// NormalizeKey upper-cases the ASCII letters of a field name.
func NormalizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		if 'a' <= r && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}, key)
}
