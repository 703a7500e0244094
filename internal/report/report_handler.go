package report

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, logger: l}
}

func getActor(c *gin.Context) contextutil.Actor {
	return contextutil.Actor{ID: c.GetString("employee_id"), Role: c.GetString("role")}
}

func (h *Handler) bindQuery(c *gin.Context) (ReportQuery, bool) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Warn("http report query validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, httpErr.Message, httpErr.Details)
		return q, false
	}
	return q, true
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("report request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetStats(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.Stats(c.Request.Context(), getActor(c), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetEmployeeSummary(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.EmployeeSummary(c.Request.Context(), getActor(c), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetDepartmentSummary(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.DepartmentSummary(c.Request.Context(), getActor(c), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
