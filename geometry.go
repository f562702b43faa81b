package main

// GridPoint is a cell coordinate on the search grid.
type GridPoint struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns the point offset by another point treated as a vector.
func (p GridPoint) Add(v GridPoint) GridPoint {
	return GridPoint{X: p.X + v.X, Y: p.Y + v.Y}
}

// Chebyshev returns the chessboard distance between two cells: the number
// of 8-directional steps separating them.
func (p GridPoint) Chebyshev(other GridPoint) int {
	return max(absInt(p.X-other.X), absInt(p.Y-other.Y))
}

// Manhattan returns the 4-directional step distance between two cells.
func (p GridPoint) Manhattan(other GridPoint) int {
	return absInt(p.X-other.X) + absInt(p.Y-other.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
