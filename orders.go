package main

import "fmt"

// UnitPlan is one unit's planned route for a movement order. Distance is
// the straight-line step estimate (Chebyshev), useful for ordering units by
// how far they have to travel.
type UnitPlan struct {
	Unit     int         `json:"unit"`
	Start    GridPoint   `json:"start"`
	Goal     GridPoint   `json:"goal"`
	Distance int         `json:"distance"`
	Found    bool        `json:"found"`
	Path     []GridPoint `json:"path,omitempty"`
}

// PlanOrder expands a movement order's formation offsets around the order's
// anchor and destination and plans one independent path per unit. Units do
// not coordinate with each other: collision avoidance is out of scope.
func PlanOrder(pf *Pathfinder, sc *Scenario, order MoveOrderSpec) ([]UnitPlan, error) {
	formation, ok := sc.FormationByName(order.Formation)
	if !ok {
		return nil, fmt.Errorf("orders: unknown formation %q", order.Formation)
	}

	members := formation.Members
	if len(members) == 0 {
		// a formation with no declared members is a lone unit at the anchor
		members = []GridPoint{{}}
	}

	plans := make([]UnitPlan, 0, len(members))
	for i, offset := range members {
		start := order.From.Add(offset)
		goal := order.To.Add(offset)
		path, found := pf.FindPath(start, goal)
		if found && order.Simplify {
			path = SimplifyPath(path)
		}
		plans = append(plans, UnitPlan{
			Unit:     i,
			Start:    start,
			Goal:     goal,
			Distance: start.Chebyshev(goal),
			Found:    found,
			Path:     path,
		})
	}
	return plans, nil
}
