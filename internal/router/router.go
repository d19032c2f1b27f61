package router

import (
	"github.com/gin-gonic/gin"

	"teklio/internal/handler"
	"teklio/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	importH *handler.ImportHandler,
	resolveH *handler.ResolveHandler,
	proposalH *handler.ProposalHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Import routes: extract + parse, no persistence
	imports := v1.Group("/imports")
	imports.POST("/spreadsheet", importH.ParseSpreadsheet)
	imports.POST("/pdf", importH.ParsePDF)
	imports.POST("/invoice", importH.ParseInvoice)
	imports.POST("/items", importH.ParseItems)

	// Customer matching
	v1.POST("/resolve", resolveH.Resolve)

	// Persistence
	v1.POST("/proposals", proposalH.Persist)

	return r
}
