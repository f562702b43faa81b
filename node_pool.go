package main

// pathNode is a single A* search record. Nodes are owned exclusively by the
// in-flight search and recycled through the pool between queries.
type pathNode struct {
	x, y   int
	g      float64 // cost accumulated from the start
	h      float64 // heuristic estimate to the end
	f      float64 // g + h
	parent *pathNode
}

// poolRetainedCap bounds how many records the pool keeps alive between
// queries. Searches that outgrow it fall back to plain allocation for the
// overflow, which is not retained.
const poolRetainedCap = 1000

// nodePool is a reusable arena of search records. reset rewinds the reuse
// cursor; acquire hands out the next record, restored to its zero search
// state.
type nodePool struct {
	nodes  []*pathNode
	cursor int
}

func newNodePool() *nodePool {
	return &nodePool{nodes: make([]*pathNode, 0, poolRetainedCap)}
}

func (p *nodePool) acquire(x, y int) *pathNode {
	if p.cursor < len(p.nodes) {
		n := p.nodes[p.cursor]
		p.cursor++
		n.x, n.y = x, y
		n.g, n.h, n.f = 0, 0, 0
		n.parent = nil
		return n
	}
	n := &pathNode{x: x, y: y}
	if len(p.nodes) < poolRetainedCap {
		p.nodes = append(p.nodes, n)
		p.cursor = len(p.nodes)
	}
	return n
}

// reset rewinds the cursor without deallocating. Called once per query
// before the search body runs.
func (p *nodePool) reset() {
	p.cursor = 0
}
