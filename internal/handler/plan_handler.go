package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
	"github.com/KasumiMercury/primind-study-planner/internal/infra/export"
	"github.com/KasumiMercury/primind-study-planner/internal/service/planner"
)

type PlanHandler struct {
	planner *planner.Service
}

func NewPlanHandler(plannerService *planner.Service) *PlanHandler {
	return &PlanHandler{
		planner: plannerService,
	}
}

type DaysResponse struct {
	Days    []domain.Day `json:"days"`
	Default []domain.Day `json:"default"`
}

func (h *PlanHandler) HandleGeneratePlan(c *gin.Context) {
	plan, ok := h.generate(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) HandleExportPlan(c *gin.Context) {
	ctx := c.Request.Context()

	plan, ok := h.generate(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.planner.ExportWorkbook(ctx, &buf, plan); err != nil {
		respondError(c, http.StatusInternalServerError, errTypeInternal, "failed to export plan")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+export.FileName(plan))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *PlanHandler) HandleListDays(c *gin.Context) {
	c.JSON(http.StatusOK, DaysResponse{
		Days:    domain.AllDays(),
		Default: h.planner.DefaultForm().StudyDays,
	})
}

func (h *PlanHandler) generate(c *gin.Context) (*domain.Plan, bool) {
	ctx := c.Request.Context()

	var req planner.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "request unmarshal failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, errTypeInvalidRequest, "request body must be a JSON plan request")
		return nil, false
	}

	plan, err := h.planner.Generate(ctx, req)
	if err != nil {
		pe := classifyError(err)
		if pe.status == http.StatusInternalServerError {
			slog.ErrorContext(ctx, "failed to generate plan",
				slog.String("error", err.Error()),
			)
		}
		respondError(c, pe.status, pe.errType, pe.message)
		return nil, false
	}

	return plan, true
}
