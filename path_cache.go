package main

// encodeKey packs a grid coordinate into a single integer key, y*width + x.
// The encoding is injective for all in-bounds coordinates and is relied on
// for cache keys, set membership and node identity.
func encodeKey(x, y, width int) int64 {
	return int64(y)*int64(width) + int64(x)
}

// cachedPath is an immutable computed path plus an index from each point's
// encoded key to its position in the sequence, so shorter queries can be
// served as prefixes without scanning.
type cachedPath struct {
	points  []GridPoint
	indexOf map[int64]int
	cost    float64
}

func newCachedPath(points []GridPoint, cost float64, width int) *cachedPath {
	cp := &cachedPath{
		points:  points,
		indexOf: make(map[int64]int, len(points)),
		cost:    cost,
	}
	for i, pt := range points {
		cp.indexOf[encodeKey(pt.X, pt.Y, width)] = i
	}
	return cp
}

// pathCache holds the exact (start,end) result cache and the subpath index.
// A nil *cachedPath in the exact map is a cached "no path" verdict. Entries
// never expire except through clear.
type pathCache struct {
	maxKey  int64 // width*height, scales the start key in the pair key
	exact   map[int64]*cachedPath
	byStart map[int64][]*cachedPath
	hits    int
	misses  int
}

func newPathCache(width, height int) *pathCache {
	return &pathCache{
		maxKey:  int64(width) * int64(height),
		exact:   make(map[int64]*cachedPath),
		byStart: make(map[int64][]*cachedPath),
	}
}

func (c *pathCache) pairKey(startKey, endKey int64) int64 {
	return startKey*c.maxKey + endKey
}

// lookup serves a query from the exact cache, or as a prefix of a longer
// cached path that starts at the same cell (shortest paths have optimal
// substructure, so any prefix of a cached optimal path is itself optimal).
// hit reports whether the cache had a verdict at all; found distinguishes a
// cached path from a cached "no path".
func (c *pathCache) lookup(startKey, endKey int64) (points []GridPoint, found bool, hit bool) {
	if cp, ok := c.exact[c.pairKey(startKey, endKey)]; ok {
		c.hits++
		if cp == nil {
			return nil, false, true
		}
		return cp.points, true, true
	}
	for _, cp := range c.byStart[startKey] {
		if idx, ok := cp.indexOf[endKey]; ok {
			c.hits++
			return cp.points[:idx+1], true, true
		}
	}
	c.misses++
	return nil, false, false
}

// store records a computed path under its exact key and registers it in the
// subpath index for its start cell.
func (c *pathCache) store(startKey, endKey int64, cp *cachedPath) {
	c.exact[c.pairKey(startKey, endKey)] = cp
	c.byStart[startKey] = append(c.byStart[startKey], cp)
}

// storeMiss records a "no traversable route" verdict so the same fruitless
// search is not repeated.
func (c *pathCache) storeMiss(startKey, endKey int64) {
	c.exact[c.pairKey(startKey, endKey)] = nil
}

// clear discards all cached verdicts. Hit/miss counters survive.
func (c *pathCache) clear() {
	c.exact = make(map[int64]*cachedPath)
	c.byStart = make(map[int64][]*cachedPath)
}

// stats returns cumulative hit/miss counts and the number of exact entries.
func (c *pathCache) stats() (hits, misses, entries int) {
	return c.hits, c.misses, len(c.exact)
}
