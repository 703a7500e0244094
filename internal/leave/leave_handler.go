package leave

import (
	"net/http"
	"strconv"

	"go-attendance/internal/middleware"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

// NewHandler takes an optional redis client for Idempotency-Key replays on
// submission; nil disables them.
func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func getActor(c *gin.Context) contextutil.Actor {
	return contextutil.Actor{ID: c.GetString("employee_id"), Role: c.GetString("role")}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, op string, err error) {
	h.logger.Warn("http "+op+" validation failed", zap.Error(err))
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, http.StatusBadRequest, apperror.CodeValidation, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	actor := getActor(c)
	h.logger.Debug("http submit leave", zap.String("employee_id", actor.ID))
	defer middleware.ReleaseIdempotencyLock(c, h.rdb)

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, "submit leave", err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.SaveIdempotentResult(c, h.rdb, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetMine(c *gin.Context) {
	var q ListMyLeavesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeBindError(c, "list own leaves", err)
		return
	}

	resp, total, err := h.service.ListMine(c.Request.Context(), getActor(c), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := normalizePage(q.Page, q.PageSize)
	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetAll(c *gin.Context) {
	var q ListLeavesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeBindError(c, "list leaves", err)
		return
	}

	resp, total, err := h.service.ListAll(c.Request.Context(), getActor(c), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := normalizePage(q.Page, q.PageSize)
	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetUpcoming(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("limit"))
		return
	}

	resp, err := h.service.Upcoming(c.Request.Context(), getActor(c), limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Decide(c *gin.Context) {
	id := c.Param("id")
	actor := getActor(c)
	h.logger.Debug("http decide leave", zap.String("leave_id", id), zap.String("actor_id", actor.ID))

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, "decide leave", err)
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) BulkDecide(c *gin.Context) {
	actor := getActor(c)

	var req BulkDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, "bulk decide leaves", err)
		return
	}
	h.logger.Debug("http bulk decide leaves",
		zap.String("actor_id", actor.ID),
		zap.Int("count", len(req.LeaveIDs)),
		zap.String("decision", req.Decision),
	)

	resp, err := h.service.BulkDecide(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	resp, err := h.service.Cancel(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, "update leave", err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), getActor(c), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), getActor(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
