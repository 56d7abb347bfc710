package handler

import (
	"net/http"

	"forestry-backend/internal/middleware"
	"forestry-backend/internal/model"
	"forestry-backend/internal/service"
	"forestry-backend/internal/workflow"
	"forestry-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BulkActionRequest struct {
	IDs  []string `json:"ids" binding:"required,min=1"`
	Note string   `json:"note"`
}

type BulkActionResponse struct {
	ReportType string `json:"report_type"`
	Action     string `json:"action"`
	Affected   int64  `json:"affected"`
}

// WorkflowHandler exposes the bulk workflow endpoint. Authorization beyond
// authentication happens inside the engine: a caller holding no qualifying
// role simply affects zero records.
type WorkflowHandler struct {
	workflowService service.WorkflowService
}

func NewWorkflowHandler(workflowService service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflowService: workflowService}
}

func (h *WorkflowHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/workflow/:type/:action",
		middleware.RequireRole(model.RoleOperator, model.RoleKasi, model.RoleKadis),
		h.BulkAction)
}

// BulkAction applies one workflow action to a batch of report ids
func (h *WorkflowHandler) BulkAction(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Missing authentication"))
		return
	}

	var req BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid report id: "+raw))
			return
		}
		ids = append(ids, id)
	}

	in := service.BulkActionInput{
		ReportType: c.Param("type"),
		Action:     workflow.Action(c.Param("action")),
		IDs:        ids,
		Note:       req.Note,
	}

	affected, err := h.workflowService.BulkAction(c.Request.Context(), in, auth)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, BulkActionResponse{
		ReportType: in.ReportType,
		Action:     string(in.Action),
		Affected:   affected,
	}))
}
