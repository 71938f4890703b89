package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spendchat-engine/internal/middleware"
)

// Handlers bundles the API surface for route registration. Nil members are
// skipped so partial deployments stay possible.
type Handlers struct {
	Reports   *ReportHandler
	Mutations *MutationHandler
	Exports   *ExportHandler
	Metrics   *MetricsHandler
}

// Register wires the versioned API under prefix. Every route behind the
// prefix requires a bearer token.
func Register(r *gin.Engine, prefix, jwtSecret string, h Handlers) {
	if h.Metrics != nil {
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	api := r.Group(prefix)
	api.Use(middleware.JWT(jwtSecret))

	if h.Reports != nil {
		reports := api.Group("/reports")
		reports.GET("", h.Reports.List)
		reports.GET("/:id/name", h.Reports.Name)
		reports.GET("/:id/status", h.Reports.Status)
		reports.GET("/:id/spend", h.Reports.Spend)
		reports.GET("/:id/approval-chain", h.Reports.ApprovalChain)
	}

	if h.Mutations != nil {
		mutations := api.Group("/mutations")
		mutations.POST("/comment", h.Mutations.AddComment)
		mutations.POST("/money-request", h.Mutations.CreateMoneyRequest)
		mutations.POST("/submit", h.Mutations.Submit)
		mutations.POST("/approve", h.Mutations.Approve)
		mutations.POST("/unapprove", h.Mutations.Unapprove)
		mutations.POST("/close", h.Mutations.Close)
		mutations.POST("/reopen", h.Mutations.Reopen)
		mutations.POST("/retract", h.Mutations.Retract)
		mutations.POST("/rename", h.Mutations.Rename)
		mutations.POST("/pay", h.Mutations.Pay)
		mutations.POST("/hold", h.Mutations.Hold)
		mutations.POST("/unhold", h.Mutations.Unhold)
		mutations.POST("/task", h.Mutations.CreateTask)
		mutations.POST("/workspace-chats", h.Mutations.CreateWorkspaceChats)
	}

	if h.Exports != nil {
		api.GET("/exports/spend-summary", h.Exports.SpendSummary)
	}

	if h.Metrics != nil {
		api.GET("/stats", h.Metrics.Stats)
	}
}
