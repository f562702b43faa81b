package main

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// TerrainZone is a polygonal region of the battlefield with a movement cost
// multiplier. Impassable zones block movement entirely.
type TerrainZone struct {
	Name       string
	Footprint  orb.Polygon
	Multiplier float64
	Impassable bool
}

// zoneEntry wraps a zone for R-tree storage.
type zoneEntry struct {
	zone TerrainZone
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (z *zoneEntry) Bounds() rtreego.Rect {
	return z.bbox
}

// ZoneIndex answers point-in-zone queries during cost-field rasterization.
type ZoneIndex struct {
	tree *rtreego.Rtree
}

// NewZoneIndex builds a 2D R-tree over the zone bounding boxes. Zones with
// degenerate footprints are skipped.
func NewZoneIndex(zones []TerrainZone) *ZoneIndex {
	tree := rtreego.NewTree(2, 25, 50)

	for _, zone := range zones {
		bbox, err := zoneRect(zone.Footprint)
		if err != nil {
			continue
		}
		tree.Insert(&zoneEntry{zone: zone, bbox: bbox})
	}

	return &ZoneIndex{tree: tree}
}

// ZonesAt returns the zones whose footprint contains the center of cell
// (x, y). The R-tree narrows the candidates; exact containment is decided
// by the polygon test.
func (zi *ZoneIndex) ZonesAt(x, y int) []TerrainZone {
	center := orb.Point{float64(x), float64(y)}
	probe, err := rtreego.NewRect(
		rtreego.Point{center[0] - 0.5, center[1] - 0.5},
		[]float64{1, 1},
	)
	if err != nil {
		return nil
	}

	var matches []TerrainZone
	for _, item := range zi.tree.SearchIntersect(probe) {
		entry := item.(*zoneEntry)
		if planar.PolygonContains(entry.zone.Footprint, center) {
			matches = append(matches, entry.zone)
		}
	}
	return matches
}

// zoneRect computes the axis-aligned bounding rectangle for a footprint.
// rtreego rejects zero-length sides, so degenerate extents are padded.
func zoneRect(footprint orb.Polygon) (rtreego.Rect, error) {
	bound := footprint.Bound()
	w := bound.Max[0] - bound.Min[0]
	h := bound.Max[1] - bound.Min[1]
	if w <= 0 {
		w = 1e-9
	}
	if h <= 0 {
		h = 1e-9
	}
	return rtreego.NewRect(
		rtreego.Point{bound.Min[0], bound.Min[1]},
		[]float64{w, h},
	)
}
