package main

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

// Scenario is the declarative game data backing the service: the grid, the
// terrain zones, and the unit formations and movement orders that consume
// paths. These are plain records with no behavior of their own; everything
// algorithmic lives in the engine.
type Scenario struct {
	Grid       GridSpec        `yaml:"grid"`
	Zones      []ZoneSpec      `yaml:"zones"`
	Formations []FormationSpec `yaml:"formations"`
	Orders     []MoveOrderSpec `yaml:"orders"`
}

// GridSpec declares the battlefield dimensions and movement model.
type GridSpec struct {
	Width        int   `yaml:"width"`
	Height       int   `yaml:"height"`
	UseDiagonals *bool `yaml:"use_diagonals"` // nil means true
}

// ZoneSpec is a terrain zone as written in scenario files. Vertices are
// listed in order; the loader closes the ring.
type ZoneSpec struct {
	Name       string       `yaml:"name"`
	Vertices   []VertexSpec `yaml:"vertices"`
	Multiplier float64      `yaml:"multiplier"` // <= 0 means 1
	Impassable bool         `yaml:"impassable"`
}

// VertexSpec is one polygon vertex in grid units.
type VertexSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// FormationSpec names a unit formation as member offsets from its anchor.
type FormationSpec struct {
	Name    string      `yaml:"name"`
	Members []GridPoint `yaml:"members"`
}

// MoveOrderSpec directs a formation from one anchor cell to another.
type MoveOrderSpec struct {
	Formation string    `yaml:"formation"`
	From      GridPoint `yaml:"from"`
	To        GridPoint `yaml:"to"`
	Simplify  bool      `yaml:"simplify"`
}

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario: unmarshal %s: %w", path, err)
	}
	if sc.Grid.Width <= 0 || sc.Grid.Height <= 0 {
		return nil, fmt.Errorf("scenario: %s: grid must declare positive width and height", path)
	}
	return &sc, nil
}

// UseDiagonals reports the scenario's movement model, defaulting to
// 8-directional when the field is absent.
func (s *Scenario) UseDiagonals() bool {
	if s.Grid.UseDiagonals == nil {
		return true
	}
	return *s.Grid.UseDiagonals
}

// TerrainZones converts the declarative zone records into the geometry the
// zone index understands. Zones with fewer than three vertices are dropped.
func (s *Scenario) TerrainZones() []TerrainZone {
	zones := make([]TerrainZone, 0, len(s.Zones))
	for _, z := range s.Zones {
		if len(z.Vertices) < 3 {
			continue
		}
		ring := make(orb.Ring, 0, len(z.Vertices)+1)
		for _, v := range z.Vertices {
			ring = append(ring, orb.Point{v.X, v.Y})
		}
		if ring[0] != ring[len(ring)-1] {
			ring = append(ring, ring[0])
		}
		multiplier := z.Multiplier
		if multiplier <= 0 {
			multiplier = 1
		}
		zones = append(zones, TerrainZone{
			Name:       z.Name,
			Footprint:  orb.Polygon{ring},
			Multiplier: multiplier,
			Impassable: z.Impassable,
		})
	}
	return zones
}

// FormationByName looks up a formation declared in the scenario.
func (s *Scenario) FormationByName(name string) (FormationSpec, bool) {
	for _, f := range s.Formations {
		if f.Name == name {
			return f, true
		}
	}
	return FormationSpec{}, false
}
