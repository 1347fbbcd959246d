package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/k4lab/go-cipher-search/internal/engine"
	internalErrors "github.com/k4lab/go-cipher-search/internal/errors"
	"github.com/k4lab/go-cipher-search/model"
	"github.com/k4lab/go-cipher-search/services"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	jobTracker, ok := api.engine.(services.JobTracker)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Job tracking not supported by this engine"})
		return
	}

	job, err := jobTracker.GetJob(jobID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrJobNotFound) {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendInternalError(c, "get job", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs across all cases. A `case`
// query parameter narrows to one case, a `status` parameter to one status.
func (api *API) ListJobsHandler(c *gin.Context) {
	caseName := c.Query("case")
	statusParam := c.Query("status")

	var statusFilter *model.JobStatus
	if statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobTracker, ok := api.engine.(services.JobTracker)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Job tracking not supported by this engine"})
		return
	}

	jobs := jobTracker.ListJobs(caseName, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// ListCaseJobsHandler handles requests to list jobs for one case
func (api *API) ListCaseJobsHandler(c *gin.Context) {
	caseName := c.Param("caseName")
	statusParam := c.Query("status")

	var statusFilter *model.JobStatus
	if statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	jobTracker, ok := api.engine.(services.JobTracker)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Job tracking not supported by this engine"})
		return
	}

	jobs := jobTracker.ListJobs(caseName, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":      jobs,
		"case_name": caseName,
		"total":     len(jobs),
	})
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	engineWithMetrics, ok := api.engine.(*engine.Engine)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Job metrics not supported by this engine"})
		return
	}

	// Get metrics (already returns a copy without mutex)
	metrics := engineWithMetrics.GetJobMetrics()

	response := gin.H{
		"metrics":          metrics,
		"success_rate":     engineWithMetrics.GetJobSuccessRate(),
		"current_workload": engineWithMetrics.GetCurrentWorkload(),
	}

	c.JSON(http.StatusOK, response)
}
