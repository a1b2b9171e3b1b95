package services

import (
	"collection-route-service/internal/domain"
	"container/heap"
)

// astarNode for the open-set priority queue.
type astarNode struct {
	pos    domain.Position
	g      int // steps so far
	f      int // g + Manhattan heuristic
	seq    int // insertion order, breaks f ties deterministically
	parent *astarNode
	index  int // heap index
}

// astarHeap implements heap.Interface.
type astarHeap []*astarNode

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *astarHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// 4-directional neighborhood; expansion order is part of the
// deterministic tie-breaking contract.
var steps = [4]domain.Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

// FindPath computes the shortest 4-connected path between two cells on
// one floor's grid using A* with unit step cost and a Manhattan
// heuristic, so the result is shortest in step count.
//
// No path, an out-of-bounds endpoint, or a blocked endpoint all yield
// an empty path; this is a normal outcome, never an error. The single
// exception is start == goal, which returns [start] regardless of the
// cell's blocked state (a cart already resting there).
func FindPath(grid domain.Grid, start, goal domain.Position) []domain.Position {
	if start == goal {
		return []domain.Position{start}
	}
	if grid.Blocked(start) || grid.Blocked(goal) {
		return nil
	}

	open := &astarHeap{}
	heap.Init(open)

	seq := 0
	heap.Push(open, &astarNode{pos: start, g: 0, f: start.Manhattan(goal), seq: seq})

	gScore := map[domain.Position]int{start: 0}
	closed := make(map[domain.Position]bool)

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)

		if closed[current.pos] {
			continue
		}
		closed[current.pos] = true

		if current.pos == goal {
			return reconstructPath(current)
		}

		for _, d := range steps {
			next := domain.Position{X: current.pos.X + d.X, Y: current.pos.Y + d.Y}
			if grid.Blocked(next) || closed[next] {
				continue
			}

			ng := current.g + 1
			if best, ok := gScore[next]; ok && ng >= best {
				continue
			}
			gScore[next] = ng

			seq++
			heap.Push(open, &astarNode{
				pos:    next,
				g:      ng,
				f:      ng + next.Manhattan(goal),
				seq:    seq,
				parent: current,
			})
		}
	}

	// Open set exhausted: the goal is unreachable.
	return nil
}

func reconstructPath(node *astarNode) []domain.Position {
	length := 0
	for n := node; n != nil; n = n.parent {
		length++
	}
	path := make([]domain.Position, length)
	for n := node; n != nil; n = n.parent {
		length--
		path[length] = n.pos
	}
	return path
}
