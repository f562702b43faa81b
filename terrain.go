package main

import "math"

// Terrain is the rasterized cost field for a scenario grid: one multiplier
// per cell, +Inf where an impassable zone covers the cell. Built once per
// scenario load; the engine's step-cost function reads it.
type Terrain struct {
	width, height int
	multipliers   []float64
}

// BuildTerrain rasterizes the zones onto the grid by probing the zone index
// at every cell center. Overlapping passable zones multiply; an impassable
// zone wins outright.
func BuildTerrain(width, height int, zones []TerrainZone) *Terrain {
	t := &Terrain{
		width:       width,
		height:      height,
		multipliers: make([]float64, width*height),
	}
	for i := range t.multipliers {
		t.multipliers[i] = 1
	}
	if len(zones) == 0 {
		return t
	}

	index := NewZoneIndex(zones)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			for _, zone := range index.ZonesAt(x, y) {
				if zone.Impassable {
					t.multipliers[i] = math.Inf(1)
					break
				}
				t.multipliers[i] *= zone.Multiplier
			}
		}
	}
	return t
}

// StepCost is the engine's step-cost function: the destination cell's
// multiplier, +Inf when the destination is impassable. Leaving an
// impassable cell is allowed so a unit placed inside one can still move out.
func (t *Terrain) StepCost(from, to GridPoint) float64 {
	return t.multipliers[to.Y*t.width+to.X]
}
