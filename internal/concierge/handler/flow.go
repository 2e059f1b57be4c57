package handler

import (
	"encoding/json"
	"net/http"
	"venuely/internal/concierge/service"
	"venuely/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type FlowHandler struct {
	service *service.ConciergeService
	log     *logger.Logger
}

func NewFlowHandler(svc *service.ConciergeService, log *logger.Logger) *FlowHandler {
	return &FlowHandler{
		service: svc,
		log:     log,
	}
}

func (h *FlowHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/concierge/execute", h.ExecuteFlow)
	router.GET("/api/v1/concierge/flows", h.ListFlows)
}

type ExecuteFlowRequest struct {
	Flow  string         `json:"flow"`
	Input map[string]any `json:"input"`
}

type ExecuteFlowResponse struct {
	Success bool           `json:"success"`
	Output  map[string]any `json:"output,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type ListFlowsResponse struct {
	Flows []string `json:"flows"`
}

func (h *FlowHandler) ExecuteFlow(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req ExecuteFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode flow request", "error", err)
		h.writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.Flow == "" {
		h.writeError(w, http.StatusBadRequest, "flow name is required")
		return
	}
	if req.Input == nil {
		req.Input = make(map[string]any)
	}

	h.log.Info("executing flow", "flow", req.Flow)

	output, err := h.service.ExecuteFlow(r.Context(), req.Flow, req.Input)
	if err != nil {
		h.log.Error("flow execution failed", "flow", req.Flow, "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, ExecuteFlowResponse{
		Success: true,
		Output:  output,
	})
}

func (h *FlowHandler) ListFlows(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeJSON(w, http.StatusOK, ListFlowsResponse{
		Flows: h.service.AvailableFlows(),
	})
}

func (h *FlowHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("failed to encode flow response", "error", err)
	}
}

func (h *FlowHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, ExecuteFlowResponse{
		Success: false,
		Error:   message,
	})
}
