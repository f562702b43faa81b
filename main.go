package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"sync"
)

type FindPathRequest struct {
	Start    GridPoint `json:"start"`
	End      GridPoint `json:"end"`
	Simplify bool      `json:"simplify,omitempty"`
}

type FindPathResponse struct {
	Found   bool        `json:"found"`
	Path    []GridPoint `json:"path,omitempty"`
	Length  int         `json:"length"`
	Message string      `json:"message,omitempty"`
}

// FindPath mutates the engine's search scratch state, so every handler takes
// the lock exclusively; the engine itself is single-threaded by design.
var (
	globalEngine   *Pathfinder
	globalScenario *Scenario
	engineMutex    sync.Mutex
)

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func findPathHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req FindPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	engineMutex.Lock()
	engine := globalEngine
	if engine == nil {
		engineMutex.Unlock()
		log.Println("❌ No scenario loaded")
		http.Error(w, "No scenario loaded", http.StatusBadRequest)
		return
	}
	path, found := engine.FindPath(req.Start, req.End)
	engineMutex.Unlock()

	log.Printf("📍 findPath (%d,%d) -> (%d,%d): found=%v waypoints=%d\n",
		req.Start.X, req.Start.Y, req.End.X, req.End.Y, found, len(path))

	if found && req.Simplify {
		path = SimplifyPath(path)
	}

	response := FindPathResponse{
		Found:  found,
		Path:   path,
		Length: len(path),
	}
	if !found {
		response.Message = "No traversable route between start and end"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func clearCacheHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	engineMutex.Lock()
	engine := globalEngine
	if engine != nil {
		engine.ClearCache()
	}
	engineMutex.Unlock()

	if engine == nil {
		http.Error(w, "No scenario loaded", http.StatusBadRequest)
		return
	}

	log.Println("🧹 Path cache cleared")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true})
}

func planOrdersHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	engineMutex.Lock()
	defer engineMutex.Unlock()

	if globalEngine == nil || globalScenario == nil {
		http.Error(w, "No scenario loaded", http.StatusBadRequest)
		return
	}

	type orderResult struct {
		Formation string     `json:"formation"`
		From      GridPoint  `json:"from"`
		To        GridPoint  `json:"to"`
		Units     []UnitPlan `json:"units,omitempty"`
		Error     string     `json:"error,omitempty"`
	}

	results := make([]orderResult, 0, len(globalScenario.Orders))
	for _, order := range globalScenario.Orders {
		res := orderResult{Formation: order.Formation, From: order.From, To: order.To}
		plans, err := PlanOrder(globalEngine, globalScenario, order)
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Units = plans
		}
		results = append(results, res)
	}

	log.Printf("🗺️  Planned %d movement orders\n", len(results))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"orders": results})
}

func scenarioHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	engineMutex.Lock()
	defer engineMutex.Unlock()

	if globalScenario == nil {
		http.Error(w, "No scenario loaded", http.StatusBadRequest)
		return
	}

	zoneNames := make([]string, 0, len(globalScenario.Zones))
	for _, z := range globalScenario.Zones {
		zoneNames = append(zoneNames, z.Name)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"grid": map[string]any{
			"width":        globalScenario.Grid.Width,
			"height":       globalScenario.Grid.Height,
			"useDiagonals": globalScenario.UseDiagonals(),
		},
		"zones":      zoneNames,
		"formations": globalScenario.Formations,
		"orders":     globalScenario.Orders,
	})
}

// GET /health - Health check endpoint
func healthHandler(w http.ResponseWriter, r *http.Request) {
	engineMutex.Lock()
	engine := globalEngine
	var hits, misses, entries int
	width, height := 0, 0
	if engine != nil {
		hits, misses, entries = engine.CacheStats()
		width, height = engine.Width(), engine.Height()
	}
	engineMutex.Unlock()

	status := "ready"
	if engine == nil {
		status = "waiting for scenario"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":       status,
		"gridWidth":    width,
		"gridHeight":   height,
		"cacheHits":    hits,
		"cacheMisses":  misses,
		"cacheEntries": entries,
	})
}

// loadAndInstall reads a scenario file, rasterizes its terrain and swaps in
// a fresh engine. The old engine and its caches are dropped wholesale.
func loadAndInstall(path string) error {
	scenario, err := LoadScenario(path)
	if err != nil {
		return err
	}
	terrain := BuildTerrain(scenario.Grid.Width, scenario.Grid.Height, scenario.TerrainZones())
	engine := NewPathfinder(scenario.Grid.Width, scenario.Grid.Height, terrain.StepCost, scenario.UseDiagonals())

	engineMutex.Lock()
	globalScenario = scenario
	globalEngine = engine
	engineMutex.Unlock()

	log.Printf("✅ Scenario loaded: %dx%d grid, %d zones, %d formations, %d orders\n",
		scenario.Grid.Width, scenario.Grid.Height,
		len(scenario.Zones), len(scenario.Formations), len(scenario.Orders))
	return nil
}

func main() {
	scenarioPath := flag.String("scenario", "scenario.yaml", "path to the scenario YAML file")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	log.Println("========================================")
	log.Println("🚀 Grid Navigator Server")
	log.Println("========================================")

	if err := loadAndInstall(*scenarioPath); err != nil {
		log.Printf("ℹ️  No scenario loaded yet: %v\n", err)
		log.Println("   Place a scenario file and save it; the watcher will pick it up")
	}

	if watcher, err := NewScenarioWatcher(*scenarioPath); err != nil {
		log.Printf("⚠️  Scenario watcher unavailable: %v\n", err)
	} else {
		go func() {
			for {
				select {
				case name, ok := <-watcher.Events:
					if !ok {
						return
					}
					log.Printf("🔄 Scenario changed on disk (%s), reloading...\n", name)
					if err := loadAndInstall(*scenarioPath); err != nil {
						log.Printf("⚠️  Reload failed, keeping previous scenario: %v\n", err)
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					log.Printf("⚠️  Watcher error: %v\n", err)
				}
			}
		}()
	}

	http.HandleFunc("/findPath", corsMiddleware(findPathHandler))
	http.HandleFunc("/clearCache", corsMiddleware(clearCacheHandler))
	http.HandleFunc("/planOrders", corsMiddleware(planOrdersHandler))
	http.HandleFunc("/scenario", corsMiddleware(scenarioHandler))
	http.HandleFunc("/health", corsMiddleware(healthHandler))

	log.Printf("Server starting on %s\n", *addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /findPath    - Compute a path between two grid cells")
	log.Println("  POST /clearCache  - Discard cached results after terrain edits")
	log.Println("  POST /planOrders  - Plan the scenario's movement orders")
	log.Println("  GET  /scenario    - Current grid, zones, formations and orders")
	log.Println("  GET  /health      - Service status and cache statistics")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")

	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal(err)
	}
}
