package cache

import (
	"sort"

	"github.com/mumoshu/pipeline/pkg/api/step"
)

// ResultCache holds the most recent result per result type.
type ResultCache struct {
	results map[step.Key]interface{}
}

func New() *ResultCache {
	return &ResultCache{
		results: map[step.Key]interface{}{},
	}
}

// Put stores v under k, replacing any previous value of the same type.
func (c *ResultCache) Put(k step.Key, v interface{}) {
	c.results[k] = v
}

// Get looks up the value stored under exactly k.
func (c *ResultCache) Get(k step.Key) (interface{}, bool) {
	v, ok := c.results[k]
	return v, ok
}

func (c *ResultCache) Len() int {
	return len(c.results)
}

// Keys returns the cached keys sorted by their string form.
func (c *ResultCache) Keys() []step.Key {
	keys := make([]step.Key, 0, len(c.results))
	for k := range c.results {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}
