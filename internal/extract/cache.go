package extract

import (
	"github.com/cespare/xxhash/v2"
	"github.com/maypok86/otter"
)

const defaultCacheCapacity = 4096

// CachingExtractor wraps an Extractor with a content-keyed cache so
// repeated analysis of unchanged files (watch mode) skips re-extraction.
// Keys are content hashes, so a long-lived cache never returns stale
// tables for edited files.
type CachingExtractor struct {
	inner Extractor
	cache otter.Cache[uint64, *SymbolTable]
}

// NewCachingExtractor wraps inner with a bounded extraction cache.
func NewCachingExtractor(inner Extractor) (*CachingExtractor, error) {
	builder, err := otter.NewBuilder[uint64, *SymbolTable](defaultCacheCapacity)
	if err != nil {
		return nil, err
	}
	cache, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &CachingExtractor{inner: inner, cache: cache}, nil
}

// Extract returns the cached table for identical content, delegating to
// the wrapped extractor on a miss. Failed extractions are not cached.
func (c *CachingExtractor) Extract(code string) (*SymbolTable, error) {
	key := xxhash.Sum64String(code)
	if table, ok := c.cache.Get(key); ok {
		return table, nil
	}

	table, err := c.inner.Extract(code)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, table)
	return table, nil
}

// Close releases the cache resources.
func (c *CachingExtractor) Close() {
	c.cache.Close()
}

// CachingExtractors wraps every extractor in the map; used by watch mode.
func CachingExtractors(extractors map[string]Extractor) (map[string]Extractor, error) {
	wrapped := make(map[string]Extractor, len(extractors))
	for lang, ex := range extractors {
		ce, err := NewCachingExtractor(ex)
		if err != nil {
			return nil, err
		}
		wrapped[lang] = ce
	}
	return wrapped, nil
}
