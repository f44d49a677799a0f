package api

import (
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/rawblock/pcn-simulator/internal/config"
	"github.com/rawblock/pcn-simulator/internal/graph"
	"github.com/rawblock/pcn-simulator/internal/sim"
	"github.com/rawblock/pcn-simulator/pkg/models"
)

// Store is the subset of report persistence the API surface needs: an
// in-memory cache of completed runs, queryable by run id.
type Store struct {
	mu      sync.RWMutex
	reports map[string][]models.Report
}

func NewStore() *Store {
	return &Store{reports: make(map[string][]models.Report)}
}

func (s *Store) Put(runID string, reports []models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[runID] = reports
}

func (s *Store) Get(runID string) ([]models.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[runID]
	return r, ok
}

// APIHandler serves the optional results surface: trigger a batch run
// against an already-loaded topology, poll its status over the
// WebSocket hub, and fetch the finished reports.
type APIHandler struct {
	graph *graph.Graph
	store *Store
	wsHub *Hub
}

// handleHealth reports liveness, mirroring the teacher's /health endpoint.
func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleRunBatch triggers RunBatch against the loaded topology in the
// background and broadcasts one run_complete event to WebSocket
// subscribers once the whole batch has finished.
func (h *APIHandler) handleRunBatch(c *gin.Context) {
	var req struct {
		RunID      string  `json:"runId" binding:"required"`
		Seed       uint64  `json:"seed"`
		NumPairs   int     `json:"numPairs"`
		AmountsSat []int64 `json:"amountsSat" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	cfg := config.SimConfig{
		Seed:          req.Seed,
		NumPairs:      req.NumPairs,
		RoutingMetric: models.RoutingMetricMinFee,
		PaymentParts:  models.PaymentPartsSingle,
	}
	if cfg.NumPairs <= 0 {
		cfg.NumPairs = 1000
	}

	go func() {
		reports := sim.RunBatch(h.graph, cfg, req.AmountsSat, nil)
		h.store.Put(req.RunID, reports)
		h.wsHub.Broadcast([]byte(`{"event":"run_complete","runId":"` + req.RunID + `"}`))
	}()

	c.JSON(http.StatusAccepted, gin.H{"runId": req.RunID, "status": "started"})
}

// handleGetReports returns the cached reports for a finished run.
func (h *APIHandler) handleGetReports(c *gin.Context) {
	runID := c.Param("id")
	reports, ok := h.store.Get(runID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found or still in progress"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

// handleGraphStats reports basic topology size, useful for a dashboard
// sanity check before kicking off a run.
func (h *APIHandler) handleGraphStats(c *gin.Context) {
	nodes := h.graph.NodeIDs()
	c.JSON(http.StatusOK, gin.H{
		"nodeCount": len(nodes),
		"edgeCount": h.graph.EdgeCount(),
	})
}

// SetupRouter wires the gin router the same way the teacher's
// cmd/engine/main.go does: CORS first, then public endpoints, then
// bearer-auth-and-rate-limited endpoints for anything that starts or
// reads simulation work.
func SetupRouter(g *graph.Graph, wsHub *Hub) *gin.Engine {
	r := gin.Default()

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := &APIHandler{graph: g, store: NewStore(), wsHub: wsHub}

	pub := r.Group("/api/v1")
	{
		pub.GET("/health", handler.handleHealth)
		pub.GET("/stream", wsHub.Subscribe)
		pub.GET("/graph", handler.handleGraphStats)
	}

	auth := r.Group("/api/v1")
	auth.Use(AuthMiddleware())
	auth.Use(NewRateLimiter(30, 5).Middleware())
	{
		auth.POST("/runs", handler.handleRunBatch)
		auth.GET("/runs/:id", handler.handleGetReports)
	}

	return r
}
