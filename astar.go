package main

import (
	"math"
)

// diagonalCost scales diagonal steps in 8-directional movement.
const diagonalCost = math.Sqrt2

// StepCostFunc returns the cost of moving between two adjacent cells.
// +Inf marks the edge as impassable. The engine treats the function as
// referentially stable for the lifetime of any cached result; callers must
// invoke ClearCache whenever the underlying cost landscape changes.
type StepCostFunc func(from, to GridPoint) float64

var (
	cardinalDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	allDirs      = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// Pathfinder is the grid A* engine with result caching, subpath reuse and
// node pooling. One instance serves one grid and persists across queries.
//
// FindPath is not reentrant on the same instance: the open/closed sets, the
// node map and the pool cursor are shared scratch state reused between
// queries. Concurrent callers must serialize access externally (the HTTP
// layer holds a mutex) or use one instance per worker.
type Pathfinder struct {
	width, height int
	stepCost      StepCostFunc
	dirs          [][2]int

	cache *pathCache
	pool  *nodePool

	// per-query scratch, cleared at the start of every search
	open   *PriorityQueue[*pathNode]
	nodes  map[int64]*pathNode // discovered nodes by encoded key; doubles as open-set membership
	closed map[int64]bool
}

// NewPathfinder builds an engine for a width x height grid. useDiagonals
// selects 8-directional movement, where diagonal steps cost sqrt(2) times
// the step cost. Grid dimensions must be positive and width*height must fit
// the int64 cache-key space; neither is validated here.
func NewPathfinder(width, height int, stepCost StepCostFunc, useDiagonals bool) *Pathfinder {
	dirs := cardinalDirs[:]
	if useDiagonals {
		dirs = allDirs[:]
	}
	return &Pathfinder{
		width:    width,
		height:   height,
		stepCost: stepCost,
		dirs:     dirs,
		cache:    newPathCache(width, height),
		pool:     newNodePool(),
		open:     NewPriorityQueue[*pathNode](func(a, b float64) bool { return a < b }),
		nodes:    make(map[int64]*pathNode),
		closed:   make(map[int64]bool),
	}
}

// FindPath returns the least-cost path from start to end, both inclusive,
// or ok=false when no traversable route exists. An out-of-bounds endpoint
// is a normal "no path" case, not an error. Results are cached, including
// negative ones; the returned slice is shared with the cache and must not
// be modified by the caller.
func (pf *Pathfinder) FindPath(start, end GridPoint) ([]GridPoint, bool) {
	if !pf.inBounds(start) || !pf.inBounds(end) {
		return nil, false
	}
	if start == end {
		return []GridPoint{start}, true
	}

	startKey := encodeKey(start.X, start.Y, pf.width)
	endKey := encodeKey(end.X, end.Y, pf.width)
	if points, found, hit := pf.cache.lookup(startKey, endKey); hit {
		return points, found
	}
	return pf.search(start, end, startKey, endKey)
}

// ClearCache discards every cached result, positive and negative. The node
// pool is unaffected. Must not be called while a FindPath call is in flight
// on the same instance.
func (pf *Pathfinder) ClearCache() {
	pf.cache.clear()
}

// CacheStats reports cumulative cache hits, misses and stored verdicts.
func (pf *Pathfinder) CacheStats() (hits, misses, entries int) {
	return pf.cache.stats()
}

// Width returns the grid width the engine was built for.
func (pf *Pathfinder) Width() int { return pf.width }

// Height returns the grid height the engine was built for.
func (pf *Pathfinder) Height() int { return pf.height }

func (pf *Pathfinder) inBounds(p GridPoint) bool {
	return p.X >= 0 && p.X < pf.width && p.Y >= 0 && p.Y < pf.height
}

// heuristic is the Chebyshev distance with the diagonal discount:
// max(|dx|,|dy|) + (sqrt(2)-1)*min(|dx|,|dy|). Admissible and consistent
// for 8-directional movement; still admissible, if loose, for 4-directional.
func (pf *Pathfinder) heuristic(from, to GridPoint) float64 {
	dx := absInt(from.X - to.X)
	dy := absInt(from.Y - to.Y)
	return float64(max(dx, dy)) + (diagonalCost-1)*float64(min(dx, dy))
}

func (pf *Pathfinder) search(start, end GridPoint, startKey, endKey int64) ([]GridPoint, bool) {
	pf.open.Clear()
	clear(pf.nodes)
	clear(pf.closed)
	pf.pool.reset()

	startNode := pf.pool.acquire(start.X, start.Y)
	startNode.h = pf.heuristic(start, end)
	startNode.f = startNode.h
	pf.nodes[startKey] = startNode
	pf.open.Enqueue(startNode, startNode.f)

	for {
		current, ok := pf.open.Dequeue()
		if !ok {
			break
		}
		key := encodeKey(current.x, current.y, pf.width)
		if pf.closed[key] {
			// stale duplicate left behind by a cheaper re-enqueue
			continue
		}

		if key == endKey {
			cp := pf.reconstruct(current)
			pf.cache.store(startKey, endKey, cp)
			return cp.points, true
		}
		pf.closed[key] = true

		for _, d := range pf.dirs {
			nx, ny := current.x+d[0], current.y+d[1]
			if nx < 0 || nx >= pf.width || ny < 0 || ny >= pf.height {
				continue
			}
			nkey := encodeKey(nx, ny, pf.width)
			if pf.closed[nkey] {
				continue
			}

			step := pf.stepCost(GridPoint{X: current.x, Y: current.y}, GridPoint{X: nx, Y: ny})
			if math.IsInf(step, 1) {
				continue
			}
			if d[0] != 0 && d[1] != 0 {
				step *= diagonalCost
			}
			tentativeG := current.g + step

			neighbor, seen := pf.nodes[nkey]
			if seen && neighbor.g <= tentativeG {
				continue // no improvement over the open entry
			}
			if !seen {
				neighbor = pf.pool.acquire(nx, ny)
				neighbor.h = pf.heuristic(GridPoint{X: nx, Y: ny}, end)
				pf.nodes[nkey] = neighbor
			}
			neighbor.parent = current
			neighbor.g = tentativeG
			neighbor.f = tentativeG + neighbor.h
			// a worse entry for this node may still sit in the heap; it is
			// skipped via the closed set when it eventually surfaces
			pf.open.Enqueue(neighbor, neighbor.f)
		}
	}

	pf.cache.storeMiss(startKey, endKey)
	return nil, false
}

func (pf *Pathfinder) reconstruct(goal *pathNode) *cachedPath {
	count := 0
	for n := goal; n != nil; n = n.parent {
		count++
	}
	points := make([]GridPoint, count)
	i := count - 1
	for n := goal; n != nil; n = n.parent {
		points[i] = GridPoint{X: n.x, Y: n.y}
		i--
	}
	return newCachedPath(points, goal.g, pf.width)
}
