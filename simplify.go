package main

import (
	"math"
)

// SimplifyPath reduces a grid path to its turning points: interior waypoints
// on a straight run are dropped. First and last points are always preserved,
// and the input slice is never modified.
func SimplifyPath(points []GridPoint) []GridPoint {
	if len(points) <= 2 {
		return points
	}

	simplified := make([]GridPoint, 0, len(points))
	simplified = append(simplified, points[0])
	for i := 1; i < len(points)-1; i++ {
		dx1 := points[i].X - points[i-1].X
		dy1 := points[i].Y - points[i-1].Y
		dx2 := points[i+1].X - points[i].X
		dy2 := points[i+1].Y - points[i].Y
		if dx1 == dx2 && dy1 == dy2 {
			continue // same direction, waypoint is redundant
		}
		simplified = append(simplified, points[i])
	}
	return append(simplified, points[len(points)-1])
}

// SimplifyPathTolerance applies Douglas-Peucker on top of the collinear
// collapse, discarding waypoints within epsilon of the straightened route.
// Useful for movement orders where units steer between waypoints anyway.
func SimplifyPathTolerance(points []GridPoint, epsilon float64) []GridPoint {
	points = SimplifyPath(points)
	if len(points) <= 2 || epsilon <= 0 {
		return points
	}
	return douglasPeucker(points, epsilon)
}

// douglasPeucker implements the Douglas-Peucker line simplification algorithm
func douglasPeucker(points []GridPoint, epsilon float64) []GridPoint {
	if len(points) <= 2 {
		return points
	}

	// Find the point with maximum distance from the line between first and last
	dmax := 0.0
	index := 0
	end := len(points) - 1

	for i := 1; i < end; i++ {
		d := perpendicularDistance(points[i], points[0], points[end])
		if d > dmax {
			index = i
			dmax = d
		}
	}

	// If max distance is greater than epsilon, recursively simplify
	if dmax > epsilon {
		left := douglasPeucker(points[0:index+1], epsilon)
		right := douglasPeucker(points[index:], epsilon)

		// Combine results (removing duplicate point at index)
		result := make([]GridPoint, 0, len(left)+len(right)-1)
		result = append(result, left[:len(left)-1]...)
		result = append(result, right...)
		return result
	}

	// All points in between can be discarded
	return []GridPoint{points[0], points[end]}
}

// perpendicularDistance calculates perpendicular distance from point to line
func perpendicularDistance(point, lineStart, lineEnd GridPoint) float64 {
	dx := float64(lineEnd.X - lineStart.X)
	dy := float64(lineEnd.Y - lineStart.Y)

	// Normalize
	mag := math.Sqrt(dx*dx + dy*dy)
	if mag > 0 {
		dx /= mag
		dy /= mag
	}

	pvx := float64(point.X - lineStart.X)
	pvy := float64(point.Y - lineStart.Y)

	// Get dot product (project pv onto normalized direction)
	pvdot := dx*pvx + dy*pvy

	// Scale by length to get actual distance
	ax := pvx - pvdot*dx
	ay := pvy - pvdot*dy

	return math.Sqrt(ax*ax + ay*ay)
}
