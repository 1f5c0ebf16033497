package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"mindmap-backend/application/services"
	"mindmap-backend/domain/tree"
	"mindmap-backend/pkg/common"
)

// GraphHandler serves the rendered view of the tree.
type GraphHandler struct {
	nodes  *services.NodeService
	logger *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(nodes *services.NodeService, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{nodes: nodes, logger: logger}
}

// GraphDataResponse is the graph visualization payload: every node
// with its recomputed position, plus the derived edge set.
type GraphDataResponse struct {
	Nodes []tree.Node `json:"nodes"`
	Edges []tree.Edge `json:"edges"`
}

// GetGraphData handles GET /api/graph-data
func (h *GraphHandler) GetGraphData(w http.ResponseWriter, r *http.Request) {
	nodes, edges := h.nodes.GraphData()
	common.RespondJSON(w, http.StatusOK, GraphDataResponse{Nodes: nodes, Edges: edges})
}
