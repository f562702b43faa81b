package main

import "testing"

func TestScenarioFileFilter(t *testing.T) {
	sw := &ScenarioWatcher{fileName: "scenario.yaml"}

	cases := []struct {
		path string
		want bool
	}{
		{"/maps/scenario.yaml", true},
		{"scenario.yaml", true},
		{"/maps/other.yaml", false},
		{"/maps/scenario.yaml.swp", false},
		{"/maps/scenario.json", false},
	}
	for _, c := range cases {
		if got := sw.isScenarioFile(c.path); got != c.want {
			t.Errorf("isScenarioFile(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}
