package plot

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"
)

// handleHealth handles health check requests
func (c *Chart) handleHealth(w http.ResponseWriter, _ *http.Request) {
	// Consider unhealthy if no updates in more than an hour
	if time.Since(c.lastUpdate) > time.Hour+10*time.Minute {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, err := w.Write([]byte(c.lastUpdate.String()))
		if err != nil {
			c.log.Error("Failed to write health status: ", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleIndex handles the main page request
func (c *Chart) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Get all available pairs
	c.Lock()
	var pairs = make([]string, 0, len(c.candles))
	for pair := range c.candles {
		pairs = append(pairs, pair)
	}
	c.Unlock()

	sort.Strings(pairs)

	// Get requested pair or redirect to first available pair
	pair := r.URL.Query().Get("pair")
	if pair == "" && len(pairs) > 0 {
		http.Redirect(w, r, fmt.Sprintf("/?pair=%s", pairs[0]), http.StatusFound)
		return
	}

	// Render the template
	w.Header().Set("Content-Type", "text/html")
	err := c.indexHTML.Execute(w, map[string]interface{}{
		"pair":  pair,
		"pairs": pairs,
	})
	if err != nil {
		c.log.Error("Template execution failed: ", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleData handles chart data requests
func (c *Chart) handleData(w http.ResponseWriter, r *http.Request) {
	pair := r.URL.Query().Get("pair")
	if pair == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	c.Lock()
	// Encode response as JSON
	response := map[string]interface{}{
		"candles":    c.candlesByPair(pair),
		"indicators": c.indicatorsByPair(pair),
		"drawings":   c.drawingsByPair(pair),
	}
	c.Unlock()

	if err := json.NewEncoder(w).Encode(response); err != nil {
		c.log.Error("JSON encoding failed: ", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleSnapshot serves the current annotation layer rendered as SVG
func (c *Chart) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	pair := r.URL.Query().Get("pair")
	if pair == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	c.Lock()
	manager := c.managers[pair]
	c.Unlock()

	if manager == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	snapshot, ok := manager.Snapshot()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := w.Write(snapshot); err != nil {
		c.log.Error("Failed writing SVG snapshot: ", err)
	}
}
