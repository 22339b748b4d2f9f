package edgeroute

import (
	"container/heap"

	"golang.org/x/exp/slices"

	"github.com/gridwire/gridwire/lib/geo"
)

type direction int8

const (
	dirNone direction = iota
	dirHorizontal
	dirVertical
)

// searchNode is one A* candidate: a grid point, its accumulated cost g, its
// estimated total cost f, and the direction used to reach it for
// turn-penalty bookkeeping. Nodes live only for the duration of one call.
type searchNode struct {
	p    *geo.Point
	g    float64
	f    float64
	dir  direction
	prev *searchNode
}

type openSet []*searchNode

func (o openSet) Len() int            { return len(o) }
func (o openSet) Less(i, j int) bool  { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int)       { o[i], o[j] = o[j], o[i] }
func (o *openSet) Push(x interface{}) { *o = append(*o, x.(*searchNode)) }
func (o *openSet) Pop() interface{} {
	old := *o
	n := len(old)
	item := old[n-1]
	*o = old[:n-1]
	return item
}

// coordKey indexes grid points by exact coordinates. All values are derived
// identically from the request, so float equality is reliable here.
type coordKey struct {
	x, y float64
}

func keyOf(p *geo.Point) coordKey {
	return coordKey{p.X, p.Y}
}

// hananGrid is the candidate point set for the search: the Cartesian product
// of every obstacle edge coordinate offset by GridMargin plus the endpoint
// coordinates. Any optimal rectilinear path bends only at these points.
// Adjacency is precomputed per coordinate so each expansion avoids an O(n²)
// scan over all candidates.
type hananGrid struct {
	byX map[float64][]*geo.Point
	byY map[float64][]*geo.Point
}

func buildGrid(req Request) *hananGrid {
	xs := []float64{req.Src.X, req.Dst.X}
	ys := []float64{req.Src.Y, req.Dst.Y}
	for _, obstacle := range req.Obstacles {
		tl := obstacle.TopLeft
		xs = append(xs, tl.X-GridMargin, tl.X+obstacle.Width+GridMargin)
		ys = append(ys, tl.Y-GridMargin, tl.Y+obstacle.Height+GridMargin)
	}
	slices.Sort(xs)
	xs = slices.Compact(xs)
	slices.Sort(ys)
	ys = slices.Compact(ys)

	grid := &hananGrid{
		byX: make(map[float64][]*geo.Point, len(xs)),
		byY: make(map[float64][]*geo.Point, len(ys)),
	}
	for _, x := range xs {
		for _, y := range ys {
			p := geo.NewPoint(x, y)
			grid.byX[x] = append(grid.byX[x], p)
			grid.byY[y] = append(grid.byY[y], p)
		}
	}
	return grid
}

// neighbors are every other candidate sharing the point's exact x or y.
// The connecting segment may span multiple grid lines; collision checks on
// the segment itself decide whether the hop is usable.
func (g *hananGrid) neighbors(p *geo.Point) []*geo.Point {
	column := g.byX[p.X]
	row := g.byY[p.Y]
	out := make([]*geo.Point, 0, len(column)+len(row))
	for _, q := range column {
		if q.Y != p.Y {
			out = append(out, q)
		}
	}
	for _, q := range row {
		if q.X != p.X {
			out = append(out, q)
		}
	}
	return out
}

// gridRoute runs A* over the Hanan grid. The heuristic is Manhattan distance
// to the target; each transition costs its segment length plus TurnPenalty
// when the direction of travel changes. Expansion stops at MaxExpansions so
// pathological arrangements degrade to the elbow fallback instead of
// stalling an interactive render.
func gridRoute(req Request) geo.Route {
	grid := buildGrid(req)
	goal := keyOf(req.Dst)
	start := keyOf(req.Src)

	startNode := &searchNode{
		p:   req.Src.Copy(),
		dir: dirNone,
		f:   geo.ManhattanDistance(req.Src.X, req.Src.Y, req.Dst.X, req.Dst.Y),
	}

	open := &openSet{startNode}
	heap.Init(open)
	gScore := map[coordKey]float64{start: 0}
	closed := make(map[coordKey]bool)

	expansions := 0
	for open.Len() > 0 {
		node := heap.Pop(open).(*searchNode)
		key := keyOf(node.p)
		if closed[key] {
			continue
		}
		closed[key] = true

		if key == goal {
			return reconstruct(node)
		}

		expansions++
		if expansions > MaxExpansions {
			return nil
		}

		for _, q := range grid.neighbors(node.p) {
			qKey := keyOf(q)
			if closed[qKey] {
				continue
			}
			if !transitionAllowed(req, node.p, q, key == start, qKey == goal) {
				continue
			}

			moveDir := dirHorizontal
			if q.X == node.p.X {
				moveDir = dirVertical
			}
			cost := geo.EuclideanDistance(node.p.X, node.p.Y, q.X, q.Y)
			if node.dir != dirNone && node.dir != moveDir {
				cost += TurnPenalty
			}
			g := node.g + cost
			if best, ok := gScore[qKey]; ok && g >= best {
				continue
			}
			gScore[qKey] = g
			heap.Push(open, &searchNode{
				p:    q,
				g:    g,
				f:    g + geo.ManhattanDistance(q.X, q.Y, req.Dst.X, req.Dst.Y),
				dir:  moveDir,
				prev: node,
			})
		}
	}
	return nil
}

// transitionAllowed rejects segments that hit an obstacle. Intermediate hops
// are additionally rejected against the endpoints' own boxes: the path may
// leave from or arrive at its own node's boundary, but never pass back
// through the node.
func transitionAllowed(req Request, from, to *geo.Point, fromStart, toGoal bool) bool {
	if !segmentClear(req.Obstacles, from, to) {
		return false
	}
	if fromStart || toGoal {
		return true
	}
	seg := geo.Segment{Start: from, End: to}
	if req.SrcBox != nil && req.SrcBox.Expanded(CollisionMargin).IntersectsSegment(seg) {
		return false
	}
	if req.DstBox != nil && req.DstBox.Expanded(CollisionMargin).IntersectsSegment(seg) {
		return false
	}
	return true
}

func reconstruct(node *searchNode) geo.Route {
	var path geo.Route
	for n := node; n != nil; n = n.prev {
		path = append(path, n.p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
