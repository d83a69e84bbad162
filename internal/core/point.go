package core

import "math/rand/v2"

// Point is a grid cell coordinate.
type Point struct {
	X int
	Y int
}

// Add returns the cell reached by moving from p by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

var directions = map[string]Point{
	"up":    {X: 0, Y: -1},
	"down":  {X: 0, Y: 1},
	"left":  {X: -1, Y: 0},
	"right": {X: 1, Y: 0},
}

// ParseDirection maps a wire token to a unit vector. Unknown tokens are
// rejected rather than defaulting, so a typo never moves a snake.
func ParseDirection(token string) (Point, bool) {
	d, ok := directions[token]
	return d, ok
}

func inBounds(p Point, tileCount int) bool {
	return p.X >= 0 && p.X < tileCount && p.Y >= 0 && p.Y < tileCount
}

// containsPoint reports whether any segment occupies p.
func containsPoint(segments []Point, p Point) bool {
	for _, s := range segments {
		if s == p {
			return true
		}
	}
	return false
}

func randomCell(tileCount int) Point {
	return Point{X: rand.IntN(tileCount), Y: rand.IntN(tileCount)}
}

// randomFreeCell rejection-samples grid cells until one is not occupied,
// giving up after maxAttempts and returning the last candidate even if it is
// occupied. The fallback is a documented best effort: on a grid this size the
// occupied fraction stays low, so exhausting the attempts is rare.
func randomFreeCell(tileCount, maxAttempts int, occupied func(Point) bool) Point {
	var cell Point
	for i := 0; i < maxAttempts; i++ {
		cell = randomCell(tileCount)
		if !occupied(cell) {
			return cell
		}
	}
	return cell
}
