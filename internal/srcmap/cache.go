package srcmap

// Cache is a single-entry, most-recently-used cache of file indexes.
//
// A run typically translates several offsets for the same file in a row
// (rendering one file's diagnostics), so a capacity of one entry is enough.
// The cache is constructed per run and passed by reference; it is not safe
// for concurrent use.
type Cache struct {
	path string
	idx  *Index
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the index for path, building it via load on a miss.
// The previous entry, if any, is evicted.
func (c *Cache) Get(path string, load func() ([]byte, error)) (*Index, error) {
	if c.idx != nil && c.path == path {
		return c.idx, nil
	}

	source, err := load()
	if err != nil {
		return nil, err
	}

	c.path = path
	c.idx = NewIndex(source)
	return c.idx, nil
}

// Put stores a prebuilt index for path, evicting the previous entry.
func (c *Cache) Put(path string, idx *Index) {
	c.path = path
	c.idx = idx
}
