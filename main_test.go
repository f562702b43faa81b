package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// installTestEngine swaps the package globals for a handler test and
// restores them afterwards.
func installTestEngine(t *testing.T, sc *Scenario) {
	t.Helper()

	var engine *Pathfinder
	if sc != nil {
		terrain := BuildTerrain(sc.Grid.Width, sc.Grid.Height, sc.TerrainZones())
		engine = NewPathfinder(sc.Grid.Width, sc.Grid.Height, terrain.StepCost, sc.UseDiagonals())
	}

	engineMutex.Lock()
	prevEngine, prevScenario := globalEngine, globalScenario
	globalEngine, globalScenario = engine, sc
	engineMutex.Unlock()

	t.Cleanup(func() {
		engineMutex.Lock()
		globalEngine, globalScenario = prevEngine, prevScenario
		engineMutex.Unlock()
	})
}

func TestFindPathHandler(t *testing.T) {
	installTestEngine(t, &Scenario{Grid: GridSpec{Width: 10, Height: 10}})

	body := `{"start":{"x":0,"y":0},"end":{"x":5,"y":0}}`
	req := httptest.NewRequest(http.MethodPost, "/findPath", strings.NewReader(body))
	rec := httptest.NewRecorder()

	findPathHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var resp FindPathResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Found || resp.Length != 6 {
		t.Fatalf("found=%v length=%d, want found=true length=6", resp.Found, resp.Length)
	}
	if resp.Path[0] != (GridPoint{0, 0}) || resp.Path[5] != (GridPoint{5, 0}) {
		t.Fatalf("wrong endpoints: %v", resp.Path)
	}
}

func TestFindPathHandlerSimplify(t *testing.T) {
	installTestEngine(t, &Scenario{Grid: GridSpec{Width: 10, Height: 10}})

	body := `{"start":{"x":0,"y":0},"end":{"x":5,"y":0},"simplify":true}`
	req := httptest.NewRequest(http.MethodPost, "/findPath", strings.NewReader(body))
	rec := httptest.NewRecorder()

	findPathHandler(rec, req)

	var resp FindPathResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Path) != 2 {
		t.Fatalf("simplified straight route should be two waypoints, got %v", resp.Path)
	}
}

func TestFindPathHandlerNotFound(t *testing.T) {
	installTestEngine(t, &Scenario{Grid: GridSpec{Width: 10, Height: 10}})

	body := `{"start":{"x":-1,"y":0},"end":{"x":5,"y":0}}`
	req := httptest.NewRequest(http.MethodPost, "/findPath", strings.NewReader(body))
	rec := httptest.NewRecorder()

	findPathHandler(rec, req)

	var resp FindPathResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Found || resp.Message == "" {
		t.Fatalf("out-of-bounds query should report not found with a message: %+v", resp)
	}
}

func TestFindPathHandlerRejectsBadRequests(t *testing.T) {
	installTestEngine(t, &Scenario{Grid: GridSpec{Width: 10, Height: 10}})

	req := httptest.NewRequest(http.MethodGet, "/findPath", nil)
	rec := httptest.NewRecorder()
	findPathHandler(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET should be rejected, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/findPath", strings.NewReader("{not json"))
	rec = httptest.NewRecorder()
	findPathHandler(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body should be rejected, got %d", rec.Code)
	}
}

func TestFindPathHandlerNoScenario(t *testing.T) {
	installTestEngine(t, nil)

	body := `{"start":{"x":0,"y":0},"end":{"x":1,"y":0}}`
	req := httptest.NewRequest(http.MethodPost, "/findPath", strings.NewReader(body))
	rec := httptest.NewRecorder()

	findPathHandler(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("no loaded scenario should yield 400, got %d", rec.Code)
	}
}

func TestClearCacheHandler(t *testing.T) {
	installTestEngine(t, &Scenario{Grid: GridSpec{Width: 10, Height: 10}})

	// warm the cache, then clear it through the handler
	engineMutex.Lock()
	globalEngine.FindPath(GridPoint{0, 0}, GridPoint{3, 3})
	engineMutex.Unlock()

	req := httptest.NewRequest(http.MethodPost, "/clearCache", nil)
	rec := httptest.NewRecorder()
	clearCacheHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	engineMutex.Lock()
	_, _, entries := globalEngine.CacheStats()
	engineMutex.Unlock()
	if entries != 0 {
		t.Fatalf("cache still holds %d entries after clear", entries)
	}
}

func TestPlanOrdersHandler(t *testing.T) {
	installTestEngine(t, &Scenario{
		Grid: GridSpec{Width: 20, Height: 20},
		Formations: []FormationSpec{
			{Name: "wedge", Members: []GridPoint{{0, 0}, {-1, 1}, {1, 1}}},
		},
		Orders: []MoveOrderSpec{
			{Formation: "wedge", From: GridPoint{3, 3}, To: GridPoint{12, 3}},
			{Formation: "ghosts", From: GridPoint{0, 0}, To: GridPoint{1, 1}},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/planOrders", nil)
	rec := httptest.NewRecorder()
	planOrdersHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var resp struct {
		Orders []struct {
			Formation string     `json:"formation"`
			Units     []UnitPlan `json:"units"`
			Error     string     `json:"error"`
		} `json:"orders"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Orders) != 2 {
		t.Fatalf("planned %d orders, want 2", len(resp.Orders))
	}
	if len(resp.Orders[0].Units) != 3 || resp.Orders[0].Error != "" {
		t.Errorf("wedge order should plan 3 units: %+v", resp.Orders[0])
	}
	if resp.Orders[1].Error == "" {
		t.Errorf("unknown formation should surface an error")
	}
}

func TestHealthHandler(t *testing.T) {
	installTestEngine(t, &Scenario{Grid: GridSpec{Width: 12, Height: 8}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	healthHandler(rec, req)

	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "ready" {
		t.Errorf("status = %v, want ready", resp["status"])
	}
	if resp["gridWidth"].(float64) != 12 || resp["gridHeight"].(float64) != 8 {
		t.Errorf("grid dims wrong: %v", resp)
	}
}
