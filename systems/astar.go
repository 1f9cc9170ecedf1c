package systems

import (
	"container/heap"
	"math"

	"github.com/ironhold/endless/components"
)

// PatrolRoute is a computed patrol path: ordered waypoints and the index
// of the next one a patrolling NPC is walking toward.
type PatrolRoute struct {
	Waypoints []components.Position
	Index     int
}

// Next returns the current target waypoint and advances the index once
// the NPC is within arrivalRadius of it, wrapping back to the start so
// the route repeats indefinitely.
func (r *PatrolRoute) Next(pos components.Position, arrivalRadius float32) components.Position {
	if len(r.Waypoints) == 0 {
		return pos
	}
	target := r.Waypoints[r.Index]
	dx := target.X - pos.X
	dy := target.Y - pos.Y
	if dx*dx+dy*dy <= arrivalRadius*arrivalRadius {
		r.Index = (r.Index + 1) % len(r.Waypoints)
	}
	return r.Waypoints[r.Index]
}

type astarNode struct {
	gx, gy int
	f      float32
	index  int
}

type nodeHeap []*astarNode

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// AStarPlanner computes patrol/guard routes over a WorldGrid's blocked
// cells (Water/Rock terrain). Reusable search buffers amortize allocation
// across the many short searches a patrol-route rebuild triggers when the
// dirty-flag scheduler marks PatrolPerimeter or PatrolSwap.
type AStarPlanner struct {
	grid *WorldGrid

	openHeap  *nodeHeap
	closedSet map[int]struct{}
	cameFrom  map[int]int
	gScore    map[int]float32
}

// NewAStarPlanner builds a planner bound to grid.
func NewAStarPlanner(grid *WorldGrid) *AStarPlanner {
	return &AStarPlanner{
		grid:      grid,
		openHeap:  &nodeHeap{},
		closedSet: make(map[int]struct{}, 256),
		cameFrom:  make(map[int]int, 256),
		gScore:    make(map[int]float32, 256),
	}
}

// FindPath computes an 8-connected path from start to goal, returning
// waypoints in world coordinates or nil if no path exists.
func (a *AStarPlanner) FindPath(start, goal components.Position) []components.Position {
	g := a.grid
	startGX, startGY := g.WorldToGrid(start.X, start.Y)
	goalGX, goalGY := g.WorldToGrid(goal.X, goal.Y)

	if g.IsBlocked(startGX, startGY) || g.IsBlocked(goalGX, goalGY) {
		return nil
	}
	if startGX == goalGX && startGY == goalGY {
		return []components.Position{goal}
	}

	*a.openHeap = (*a.openHeap)[:0]
	for k := range a.closedSet {
		delete(a.closedSet, k)
	}
	for k := range a.cameFrom {
		delete(a.cameFrom, k)
	}
	for k := range a.gScore {
		delete(a.gScore, k)
	}

	startID := startGY*g.width + startGX
	goalID := goalGY*g.width + goalGX

	a.gScore[startID] = 0
	heap.Push(a.openHeap, &astarNode{gx: startGX, gy: startGY, f: heuristic(startGX, startGY, goalGX, goalGY)})

	maxIterations := g.width*g.height + 1
	for iter := 0; a.openHeap.Len() > 0 && iter < maxIterations; iter++ {
		current := heap.Pop(a.openHeap).(*astarNode)
		currentID := current.gy*g.width + current.gx
		if currentID == goalID {
			return a.reconstructPath(startID, goalID)
		}
		a.closedSet[currentID] = struct{}{}

		neighbors := [8][2]int{
			{current.gx - 1, current.gy}, {current.gx + 1, current.gy},
			{current.gx, current.gy - 1}, {current.gx, current.gy + 1},
			{current.gx - 1, current.gy - 1}, {current.gx + 1, current.gy - 1},
			{current.gx - 1, current.gy + 1}, {current.gx + 1, current.gy + 1},
		}
		for i, n := range neighbors {
			ngx, ngy := n[0], n[1]
			if g.IsBlocked(ngx, ngy) {
				continue
			}
			if i >= 4 {
				dx, dy := ngx-current.gx, ngy-current.gy
				if g.IsBlocked(current.gx+dx, current.gy) || g.IsBlocked(current.gx, current.gy+dy) {
					continue
				}
			}
			neighborID := ngy*g.width + ngx
			if _, ok := a.closedSet[neighborID]; ok {
				continue
			}
			moveCost := float32(1.0)
			if i >= 4 {
				moveCost = 1.41421356
			}
			tentativeG := a.gScore[currentID] + moveCost
			existingG, exists := a.gScore[neighborID]
			if exists && tentativeG >= existingG {
				continue
			}
			a.cameFrom[neighborID] = currentID
			a.gScore[neighborID] = tentativeG
			if !exists {
				heap.Push(a.openHeap, &astarNode{gx: ngx, gy: ngy, f: tentativeG + heuristic(ngx, ngy, goalGX, goalGY)})
			}
		}
	}
	return nil
}

func heuristic(gx1, gy1, gx2, gy2 int) float32 {
	dx := float32(gx2 - gx1)
	dy := float32(gy2 - gy1)
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

func (a *AStarPlanner) reconstructPath(startID, goalID int) []components.Position {
	var ids []int
	current := goalID
	for current != startID {
		ids = append(ids, current)
		prev, ok := a.cameFrom[current]
		if !ok {
			return nil
		}
		current = prev
	}
	ids = append(ids, startID)

	path := make([]components.Position, len(ids))
	for i, id := range ids {
		gx := id % a.grid.width
		gy := id / a.grid.width
		x, y := float32(gx)*a.grid.cellSize+a.grid.cellSize/2, float32(gy)*a.grid.cellSize+a.grid.cellSize/2
		path[len(ids)-1-i] = components.Position{X: x, Y: y}
	}
	return path
}
