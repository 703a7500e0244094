package rbac

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Enforce answers whether the caller's role (or, for admins, the given role)
// may perform resource:action.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		httpErr := apperror.ToHTTP(appErr)
		response.Error(c, httpErr.Status, apperror.CodeValidation, httpErr.Message, httpErr.Details)
		return
	}

	callerRole := c.GetString("role")
	if req.Role == "" || !h.service.IsAdmin(callerRole) {
		req.Role = callerRole
	}

	allowed, err := h.service.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		h.logger.Error("http rbac enforce failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) MyPermissions(c *gin.Context) {
	role := c.GetString("role")

	perms, err := h.service.PermissionsForRole(role)
	if err != nil {
		h.logger.Error("http rbac list permissions failed", zap.String("role", role), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, RolePermissionsResponse{
		Role:        role,
		IsAdmin:     h.service.IsAdmin(role),
		Permissions: perms,
	}, nil)
}

func (h *Handler) Reload(c *gin.Context) {
	if err := h.service.LoadPolicy(); err != nil {
		h.logger.Error("http rbac reload failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message, nil)
		return
	}
	h.logger.Info("rbac policy reloaded", zap.String("actor_id", c.GetString("employee_id")))
	response.Success(c, http.StatusOK, gin.H{"reloaded": true}, nil)
}
