package app

import (
	"net/http"

	"go-attendance/internal/balance"
	"go-attendance/internal/bootstrap"
	"go-attendance/internal/config"
	"go-attendance/internal/employee"
	"go-attendance/internal/leave"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/middleware"
	"go-attendance/internal/rbac"
	"go-attendance/internal/rbac/infra"
	"go-attendance/internal/report"
	"go-attendance/internal/shared/counter"
	"go-attendance/internal/shared/txmanager"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	auditLogger := bootstrap.NewStdoutAuditLogger(logger)
	employeeService := employee.NewService(employeeRepo, rdb, logger)
	balanceService := balance.NewService(
		balanceRepo,
		balance.NewPolicy(cfg.Leave.BalanceGatedTypes, cfg.Leave.DefaultTotals),
		employeeService,
		rbacService,
		logger,
	)
	leaveService := leave.NewService(
		txmanager.New(gormDB),
		leaveRepo,
		employeeRepo,
		balanceService,
		counterRepo,
		outboxRepo,
		rbacService,
		auditLogger,
		leave.SystemClock(cfg.Location),
		logger,
	)
	reportService := report.NewService(reportRepo, rbacService, logger)

	// --- Handlers ---
	rbacHandler := rbac.NewHandler(rbacService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	balanceHandler := balance.NewHandler(balanceService, logger)
	leaveHandler := leave.NewHandler(leaveService, rdb, logger)
	reportHandler := report.NewHandler(reportService, logger)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- Routes Registration ---
	api := router.Group("/api/v1",
		middleware.RequestID(),
		middleware.Metrics(),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.ContextLogger(logger),
	)
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		report.RegisterRoutes(api, reportHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
