// Package handlers implements the REST endpoints for the mind-map API.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mindmap-backend/application/ai"
	"mindmap-backend/application/services"
	"mindmap-backend/domain/tree"
	"mindmap-backend/pkg/common"
	apperrors "mindmap-backend/pkg/errors"
	"mindmap-backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	nodes  *services.NodeService
	logger *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(nodes *services.NodeService, logger *zap.Logger) *NodeHandler {
	return &NodeHandler{nodes: nodes, logger: logger}
}

// SaveNode handles POST /api/nodes/save
func (h *NodeHandler) SaveNode(w http.ResponseWriter, r *http.Request) {
	var req services.SaveRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	common.RespondRaw(w, http.StatusOK, h.nodes.Save(req))
}

// AIRequest handles POST /api/nodes/ai-request
func (h *NodeHandler) AIRequest(w http.ResponseWriter, r *http.Request) {
	var req ai.Request
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	response, err := h.nodes.ProcessAIRequest(r.Context(), req)
	if err != nil {
		h.logger.Error("AI request failed",
			zap.String("nodeID", req.NodeID),
			zap.String("responseType", string(req.ResponseType)),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondRaw(w, http.StatusOK, response)
}

// ListProviders handles GET /api/nodes/ai-providers
func (h *NodeHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	common.RespondRaw(w, http.StatusOK, map[string]interface{}{
		"providers": h.nodes.Providers(),
	})
}

// AddChildRequest is the request body for creating a child node.
type AddChildRequest struct {
	ParentID string `json:"parent_id" validate:"required"`
}

// AddChild handles POST /api/nodes
func (h *NodeHandler) AddChild(w http.ResponseWriter, r *http.Request) {
	var req AddChildRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	node, err := h.nodes.AddChild(req.ParentID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, node)
}

// UpdateNode handles PUT /api/nodes/{nodeID}
func (h *NodeHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	if nodeID == "" {
		common.RespondAppError(w, apperrors.NewValidationError("node ID is required"))
		return
	}

	var patch tree.NodeDataPatch
	if err := common.ParseJSONBody(r, &patch, maxBodyBytes); err != nil {
		common.RespondAppError(w, apperrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	if err := h.nodes.UpdateNode(nodeID, patch); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Node updated successfully",
		"id":      nodeID,
	})
}

// RemoveSubtree handles DELETE /api/nodes/{nodeID}
func (h *NodeHandler) RemoveSubtree(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	if nodeID == "" {
		common.RespondAppError(w, apperrors.NewValidationError("node ID is required"))
		return
	}

	if err := h.nodes.RemoveSubtree(nodeID); err != nil {
		common.RespondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
