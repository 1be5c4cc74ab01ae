package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kavinduj/workboard/internal/server/handlers"
	"github.com/kavinduj/workboard/internal/service/auth"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New wires the Gin engine with required routes and middlewares. Everything
// under /api except login sits behind the authentication gate.
func New(store Pinger, authSvc *auth.Service, authHandler *handlers.AuthHandler, workers *handlers.WorkerHandler, records *handlers.RecordHandler, reports *handlers.ReportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		if store != nil {
			if err := store.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/api/login", authHandler.Login)

	api := r.Group("/api")
	api.Use(requireAuth(authSvc))
	{
		api.POST("/password", authHandler.ChangePassword)

		api.GET("/workers", workers.List)
		api.POST("/workers", workers.Create)
		api.GET("/workers/:id", workers.Get)
		api.PUT("/workers/:id", workers.Update)
		api.DELETE("/workers/:id", workers.Delete)

		api.GET("/workers/:id/works", records.ListWorkByWorker)
		api.GET("/workers/:id/payments", records.ListPaymentsByWorker)
		api.GET("/works", records.ListWork)
		api.POST("/works", records.CreateWork)
		api.GET("/works/:id", records.GetWork)
		api.PUT("/works/:id", records.UpdateWork)
		api.DELETE("/works/:id", records.DeleteWork)
		api.GET("/payments", records.ListPayments)
		api.POST("/payments", records.CreatePayment)
		api.GET("/payments/:id", records.GetPayment)
		api.PUT("/payments/:id", records.UpdatePayment)
		api.DELETE("/payments/:id", records.DeletePayment)

		api.GET("/workers/:id/report", reports.WorkerStatement)
		api.GET("/workers/:id/report.pdf", reports.WorkerStatementPDF)
		api.GET("/report", reports.Summary)
		api.GET("/report.pdf", reports.SummaryPDF)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// requireAuth validates the Bearer session token before any core handler
// runs.
func requireAuth(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}

		claims, err := authSvc.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Session expired, please log in again"})
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
