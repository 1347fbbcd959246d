package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/k4lab/go-cipher-search/internal/metrics"
	"github.com/k4lab/go-cipher-search/services"
)

// maxRequestBodySize caps JSON payloads. A case config with a full screen set
// stays well under this.
const maxRequestBodySize = 1 << 20 // 1 MiB

// API holds dependencies for API handlers, primarily the case manager.
type API struct {
	engine services.CaseManager
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.CaseManager) *API {
	return &API{engine: engine}
}

// SetupRoutes defines all the API routes for the cipher search engine. A nil
// instruments value serves an empty metrics page, which keeps test routers
// free of Prometheus state.
func SetupRoutes(router *gin.Engine, engine services.CaseManager, instruments *metrics.Metrics) {
	apiHandler := NewAPI(engine)

	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))
	router.Use(CORSMiddleware())

	// Health and instrumentation routes
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(instruments.Handler()))

	// Auxiliary state inspection route
	router.GET("/clock/:seconds", apiHandler.GetClockStateHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)              // List jobs, optionally filtered
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
	}

	// Case management routes
	caseRoutes := router.Group("/cases")
	{
		caseRoutes.POST("", apiHandler.CreateCaseHandler)                           // Create a new case
		caseRoutes.GET("", apiHandler.ListCasesHandler)                             // List all cases
		caseRoutes.GET("/:caseName", apiHandler.GetCaseHandler)                     // Get case config and derived stats
		caseRoutes.DELETE("/:caseName", apiHandler.DeleteCaseHandler)               // Delete a case
		caseRoutes.PUT("/:caseName/settings", apiHandler.UpdateCaseSettingsHandler) // Replace search settings
		caseRoutes.GET("/:caseName/profile", apiHandler.GetProfileHandler)          // Profile the ciphertext
		caseRoutes.POST("/:caseName/profile", apiHandler.ProfileCaseAsyncHandler)   // Profile in the background
		caseRoutes.POST("/:caseName/search", apiHandler.SearchCaseHandler)          // Start a background search
		caseRoutes.GET("/:caseName/runs", apiHandler.ListRunsHandler)               // List archived runs
		caseRoutes.GET("/:caseName/runs/:runId", apiHandler.GetRunHandler)          // Get a full solution record
		caseRoutes.DELETE("/:caseName/runs/:runId", apiHandler.DeleteRunHandler)    // Delete an archived run
		caseRoutes.GET("/:caseName/jobs", apiHandler.ListCaseJobsHandler)           // List jobs for a case
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-cipher-search",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}
