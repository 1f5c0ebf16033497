// Package services orchestrates the editor-facing operations: tree
// mutations, node saves and the save-with-extraction pipeline.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindmap-backend/application/ai"
	"mindmap-backend/domain/thesis"
	"mindmap-backend/domain/tree"
	apperrors "mindmap-backend/pkg/errors"
	"mindmap-backend/pkg/observability"
)

// NodeService coordinates the tree store and the AI service.
type NodeService struct {
	store   *tree.Store
	ai      *ai.Service
	logger  *zap.Logger
	metrics *observability.Metrics

	// At most one outstanding extraction per node: a second request
	// for the same node while one is in flight would race on the
	// previous-theses lookup.
	inflightMu sync.Mutex
	inflight   map[string]struct{}
}

// NewNodeService creates the orchestration service.
func NewNodeService(store *tree.Store, aiService *ai.Service, logger *zap.Logger, metrics *observability.Metrics) *NodeService {
	return &NodeService{
		store:    store,
		ai:       aiService,
		logger:   logger,
		metrics:  metrics,
		inflight: make(map[string]struct{}),
	}
}

// SaveRequest is the save-node payload.
type SaveRequest struct {
	ID        string `json:"id" validate:"required"`
	Label     string `json:"label"`
	Context   string `json:"context"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp,omitempty"`
}

// SaveResponse echoes receipt of a save.
type SaveResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	Received  SaveRequest `json:"received_data"`
	Timestamp string      `json:"timestamp"`
}

// Save acknowledges the payload and merges it into the store when the
// node still exists. A save against a deleted node is accepted and
// dropped: stale ids after a removal are an expected race.
func (s *NodeService) Save(req SaveRequest) SaveResponse {
	updated := s.store.UpdateNodeData(req.ID, tree.NodeDataPatch{
		Label:   &req.Label,
		Context: &req.Context,
		Body:    &req.Body,
	})
	if !updated {
		s.logger.Debug("Save for missing node dropped", zap.String("nodeID", req.ID))
	}

	return SaveResponse{
		Status:    "success",
		Message:   "Data received successfully",
		Received:  req,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ProcessAIRequest runs one AI round trip for a node. For
// thesis_extract the result is reconciled against the node's current
// theses and written back; text and simple_qna leave the store
// untouched.
func (s *NodeService) ProcessAIRequest(ctx context.Context, req ai.Request) (ai.Response, error) {
	if len(req.Contexts) == 0 && req.NodeID != "" {
		req.Contexts = s.store.ResolveContext(req.NodeID)
	}

	responseType := req.ResponseType
	if responseType == "" {
		responseType = ai.ResponseText
	}

	if responseType == ai.ResponseExtract {
		return s.extractAndMerge(ctx, req)
	}

	outcome, err := s.ai.Handle(ctx, req)
	if err != nil {
		return ai.Response{}, err
	}

	return ai.Response{
		Status:       "success",
		Questions:    outcome.Questions,
		Theses:       []thesis.Thesis{},
		Meta:         map[string]interface{}{"provider": outcome.Provider},
		Text:         outcome.Text,
		Response:     outcome.Text,
		NodeID:       req.NodeID,
		ResponseType: responseType,
	}, nil
}

// extractAndMerge is the save-with-extraction pipeline: call the
// provider, re-read the node by id from the store, reconcile and write
// back. The node state captured before the round trip is never merged
// into; only the id travels across the suspension.
func (s *NodeService) extractAndMerge(ctx context.Context, req ai.Request) (ai.Response, error) {
	if req.NodeID == "" {
		return ai.Response{}, apperrors.NewValidationError("node_id is required for thesis_extract")
	}

	if !s.acquire(req.NodeID) {
		return ai.Response{}, apperrors.NewConflictError(
			"an extraction for this node is already in flight")
	}
	defer s.release(req.NodeID)

	jobID := uuid.New().String()
	degraded := false

	outcome, err := s.ai.Handle(ctx, req)
	switch {
	case err == nil:
	case apperrors.IsExternal(err),
		apperrors.IsType(err, apperrors.ErrorTypeNetwork),
		apperrors.IsType(err, apperrors.ErrorTypeUnavailable):
		// Provider trouble must not lose the user's raw text: fall
		// back to local segmentation over the body as typed.
		s.logger.Warn("Extraction degraded to local segmentation",
			zap.String("jobID", jobID),
			zap.String("nodeID", req.NodeID),
			zap.Error(err),
		)
		outcome = ai.Outcome{}
		degraded = true
	default:
		return ai.Response{}, err
	}

	// Re-fetch: the tree may have changed while the request was in
	// flight. A result for a deleted node is discarded, never merged.
	node, ok := s.store.Node(req.NodeID)
	if !ok {
		s.logger.Info("Discarding extraction result for deleted node",
			zap.String("jobID", jobID),
			zap.String("nodeID", req.NodeID),
		)
		return ai.Response{}, apperrors.NewNotFoundError("node")
	}

	result := thesis.Reconcile(node.Data.Theses, req.Body, outcome.Extraction)
	label := thesis.ResolveLabel(node.Data.Label, outcome.Extraction, result.Theses, req.Body)

	s.store.UpdateNodeData(req.NodeID, tree.NodeDataPatch{
		Label:   &label,
		Context: &result.MergedContext,
		Body:    &result.NormalizedBody,
		Theses:  &result.Theses,
	})
	s.metrics.ObserveTreeMutation("update_data")

	s.logger.Info("Extraction merged",
		zap.String("jobID", jobID),
		zap.String("nodeID", req.NodeID),
		zap.Int("theses", len(result.Theses)),
		zap.Bool("degraded", degraded),
	)

	meta := map[string]interface{}{
		"label":  label,
		"job_id": jobID,
	}
	if outcome.Provider != "" {
		meta["provider"] = outcome.Provider
	}
	if degraded {
		meta["degraded"] = true
	}

	return ai.Response{
		Status:       "success",
		Questions:    []ai.Question{},
		Theses:       result.Theses,
		Meta:         meta,
		NodeID:       req.NodeID,
		ResponseType: ai.ResponseExtract,
	}, nil
}

// Providers lists the registered provider names in order.
func (s *NodeService) Providers() []string {
	return s.ai.ProviderNames()
}

// AddChild creates a child under parentID and returns the new node.
func (s *NodeService) AddChild(parentID string) (*tree.Node, error) {
	id, ok := s.store.AddChild(parentID)
	if !ok {
		return nil, apperrors.NewNotFoundError("parent node")
	}
	s.metrics.ObserveTreeMutation("add_child")

	node, _ := s.store.Node(id)
	s.logger.Info("Node added",
		zap.String("nodeID", id),
		zap.String("parentID", parentID),
	)
	return node, nil
}

// RemoveSubtree deletes a node and its descendants. Deleting the root
// is forbidden.
func (s *NodeService) RemoveSubtree(nodeID string) error {
	if nodeID == s.store.RootID() {
		return apperrors.NewValidationError("the root node cannot be removed")
	}
	if !s.store.RemoveSubtree(nodeID) {
		return apperrors.NewNotFoundError("node")
	}
	s.metrics.ObserveTreeMutation("remove_subtree")

	s.logger.Info("Subtree removed", zap.String("nodeID", nodeID))
	return nil
}

// UpdateNode merges a data patch into one node.
func (s *NodeService) UpdateNode(nodeID string, patch tree.NodeDataPatch) error {
	if !s.store.UpdateNodeData(nodeID, patch) {
		return apperrors.NewNotFoundError("node")
	}
	s.metrics.ObserveTreeMutation("update_data")
	return nil
}

// GraphData returns the positioned nodes and derived edges for
// rendering.
func (s *NodeService) GraphData() ([]tree.Node, []tree.Edge) {
	return s.store.Snapshot()
}

func (s *NodeService) acquire(nodeID string) bool {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	if _, busy := s.inflight[nodeID]; busy {
		return false
	}
	s.inflight[nodeID] = struct{}{}
	return true
}

func (s *NodeService) release(nodeID string) {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	delete(s.inflight, nodeID)
}
