package balance

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
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

func getActor(c *gin.Context) contextutil.Actor {
	return contextutil.Actor{ID: c.GetString("employee_id"), Role: c.GetString("role")}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetMine(c *gin.Context) {
	actor := getActor(c)
	h.logger.Debug("http get own balance", zap.String("employee_id", actor.ID))

	resp, err := h.service.GetBalance(c.Request.Context(), actor, actor.ID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	employeeID := c.Param("employee_id")
	h.logger.Debug("http get employee balance", zap.String("employee_id", employeeID))

	resp, err := h.service.GetBalance(c.Request.Context(), getActor(c), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Set(c *gin.Context) {
	employeeID := c.Param("employee_id")
	var req SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http set balance validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.SetAllocation(c.Request.Context(), getActor(c), employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
