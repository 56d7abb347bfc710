package handler

import (
	"errors"
	"net/http"
	"strconv"

	"forestry-backend/internal/middleware"
	"forestry-backend/internal/model"
	"forestry-backend/internal/repository"
	"forestry-backend/internal/service"
	"forestry-backend/pkg/pagination"
	"forestry-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler exposes CRUD for one report type under /api/reports/<name>.
// Workflow transitions are not handled here; see WorkflowHandler.
type ReportHandler[T any, PT model.ReportPtr[T]] struct {
	name string
	svc  service.ReportService[T, PT]
}

func NewReportHandler[T any, PT model.ReportPtr[T]](name string, svc service.ReportService[T, PT]) *ReportHandler[T, PT] {
	return &ReportHandler[T, PT]{name: name, svc: svc}
}

func (h *ReportHandler[T, PT]) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports/" + h.name)
	{
		reports.POST("", middleware.RequireRole(model.RoleOperator), h.Create)
		reports.GET("", middleware.RequireAuth(), h.List)
		reports.GET("/:id", middleware.RequireAuth(), h.Get)
		reports.PUT("/:id", middleware.RequireRole(model.RoleOperator), h.Update)
	}
}

func queryInt(c *gin.Context, key string) int {
	v, _ := strconv.Atoi(c.Query(key))
	return v
}

// Create stores a new draft report owned by the authenticated operator
func (h *ReportHandler[T, PT]) Create(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Missing authentication"))
		return
	}

	rec := PT(new(T))
	if err := c.ShouldBindJSON(rec); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), rec, auth.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// List returns paginated reports filtered by office, status and period
func (h *ReportHandler[T, PT]) List(c *gin.Context) {
	params := pagination.Parse(c)

	filter := repository.ReportFilter{
		Status: c.Query("status"),
		Page:   params.Page,
		Limit:  params.Limit,
	}
	if office := c.Query("forest_office_id"); office != "" {
		officeID, err := uuid.Parse(office)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid forest_office_id"))
			return
		}
		filter.ForestOfficeID = &officeID
	}
	filter.PeriodYear = queryInt(c, "period_year")
	filter.PeriodMonth = queryInt(c, "period_month")

	reports, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, reports, total, params.Page, params.Limit))
}

// Get returns one report by id
func (h *ReportHandler[T, PT]) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid report id"))
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}

// Update replaces the payload of a draft report owned by the caller
func (h *ReportHandler[T, PT]) Update(c *gin.Context) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Missing authentication"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid report id"))
		return
	}

	payload := PT(new(T))
	if err := c.ShouldBindJSON(payload); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	updated, err := h.svc.UpdateDraft(c.Request.Context(), id, payload, auth.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReportNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		case errors.Is(err, service.ErrNotDraft), errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
		default:
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		}
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, updated))
}
