package core

import "math"

// Point is a planar position in metres.
type Point struct {
	X, Y float64
}

// Manhattan returns the rectilinear distance between two points. Fibre
// ducts follow the street grid, so this is the distance used for edges.
func (p Point) Manhattan(other Point) float64 {
	return math.Abs(p.X-other.X) + math.Abs(p.Y-other.Y)
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// IsDiagonalTo reports whether the segment p→other is neither horizontal
// nor vertical.
func (p Point) IsDiagonalTo(other Point) bool {
	return p.X != other.X && p.Y != other.Y
}

// Corner returns the right-angle point used to route p→other along the
// grid: it keeps p's X and other's Y.
func (p Point) Corner(other Point) Point {
	return Point{X: p.X, Y: other.Y}
}
