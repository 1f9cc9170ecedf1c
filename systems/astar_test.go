package systems

import (
	"testing"

	"github.com/ironhold/endless/components"
)

func TestFindPathStraightLine(t *testing.T) {
	g := NewWorldGrid(10, 10, 32)
	p := NewAStarPlanner(g)
	path := p.FindPath(components.Position{X: 16, Y: 16}, components.Position{X: 16 + 32*5, Y: 16})
	if path == nil {
		t.Fatal("expected a path across open terrain")
	}
	if len(path) < 2 {
		t.Fatal("path should have more than one waypoint over 5 cells")
	}
	last := path[len(path)-1]
	if last.X < 16+32*4 {
		t.Fatalf("final waypoint should approach the goal, got %v", last)
	}
}

func TestFindPathAroundObstacle(t *testing.T) {
	g := NewWorldGrid(10, 10, 32)
	for gy := 0; gy < 10; gy++ {
		if gy == 5 {
			continue // leave a gap to route through
		}
		g.SetTerrain(4, gy, TerrainWater)
	}
	p := NewAStarPlanner(g)
	path := p.FindPath(components.Position{X: 16, Y: 16}, components.Position{X: 16 + 32*8, Y: 16})
	if path == nil {
		t.Fatal("expected a path that routes around the wall through the gap")
	}
}

func TestFindPathBlockedGoalReturnsNil(t *testing.T) {
	g := NewWorldGrid(5, 5, 32)
	g.SetTerrain(3, 3, TerrainRock)
	p := NewAStarPlanner(g)
	path := p.FindPath(components.Position{X: 16, Y: 16}, components.Position{X: 3*32 + 16, Y: 3*32 + 16})
	if path != nil {
		t.Fatal("a blocked goal cell should return nil")
	}
}

func TestPatrolRouteCyclesWaypoints(t *testing.T) {
	route := &PatrolRoute{Waypoints: []components.Position{{X: 0, Y: 0}, {X: 100, Y: 0}}}
	next := route.Next(components.Position{X: 50, Y: 0}, 8)
	if next.X != 0 {
		t.Fatalf("not yet arrived, should still target waypoint 0, got %v", next)
	}
	next = route.Next(components.Position{X: 1, Y: 0}, 8)
	if next.X != 100 {
		t.Fatalf("arrived at waypoint 0, should advance to waypoint 1, got %v", next)
	}
	next = route.Next(components.Position{X: 100, Y: 0}, 8)
	if next.X != 0 {
		t.Fatal("route should wrap back to the first waypoint")
	}
}
