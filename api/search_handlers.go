package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/k4lab/go-cipher-search/internal/errors"
	"github.com/k4lab/go-cipher-search/services"
)

// SearchCaseHandler starts a parameter search for a case. With a background
// engine the response is 202 plus a job ID to poll; the resulting solution
// record lands in the case's run archive. Without one the search runs inline
// and the record is returned directly.
func (api *API) SearchCaseHandler(c *gin.Context) {
	caseName := c.Param("caseName")

	if asyncEngine, ok := api.engine.(services.AsyncCaseManager); ok {
		jobID, err := asyncEngine.SearchAsync(caseName)
		if err != nil {
			if errors.Is(err, internalErrors.ErrCaseNotFound) {
				SendCaseNotFoundError(c, caseName)
				return
			}
			SendJobExecutionError(c, "search", err)
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": "Search started for case '" + caseName + "'",
			"job_id":  jobID,
		})
		return
	}

	caseAccessor, err := api.engine.GetCase(caseName)
	if err != nil {
		if errors.Is(err, internalErrors.ErrCaseNotFound) {
			SendCaseNotFoundError(c, caseName)
			return
		}
		SendInternalError(c, "get case", err)
		return
	}

	record, err := caseAccessor.Search(c.Request.Context())
	if err != nil {
		SendSearchError(c, caseName, err)
		return
	}

	if persistErr := api.engine.PersistCaseData(caseName); persistErr != nil {
		SendPersistenceError(c, "archive run", persistErr)
		return
	}

	c.JSON(http.StatusOK, record)
}

// ListRunsHandler lists the archived runs of a case, newest first.
func (api *API) ListRunsHandler(c *gin.Context) {
	caseName := c.Param("caseName")
	caseAccessor, err := api.engine.GetCase(caseName)
	if err != nil {
		if errors.Is(err, internalErrors.ErrCaseNotFound) {
			SendCaseNotFoundError(c, caseName)
			return
		}
		SendInternalError(c, "get case", err)
		return
	}

	runs := caseAccessor.Runs()
	c.JSON(http.StatusOK, gin.H{
		"runs":      runs,
		"case_name": caseName,
		"total":     len(runs),
	})
}

// GetRunHandler retrieves one archived solution record in full, including
// ranked results with their position-by-position ledgers.
func (api *API) GetRunHandler(c *gin.Context) {
	caseName := c.Param("caseName")
	runID := c.Param("runId")

	caseAccessor, err := api.engine.GetCase(caseName)
	if err != nil {
		if errors.Is(err, internalErrors.ErrCaseNotFound) {
			SendCaseNotFoundError(c, caseName)
			return
		}
		SendInternalError(c, "get case", err)
		return
	}

	record, err := caseAccessor.Run(runID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrRunNotFound) {
			SendRunNotFoundError(c, runID, caseName)
			return
		}
		SendInternalError(c, "get run", err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeleteRunHandler removes one archived run from a case and persists the
// shrunken archive.
func (api *API) DeleteRunHandler(c *gin.Context) {
	caseName := c.Param("caseName")
	runID := c.Param("runId")

	if err := api.engine.DeleteRun(caseName, runID); err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrCaseNotFound):
			SendCaseNotFoundError(c, caseName)
		case errors.Is(err, internalErrors.ErrRunNotFound):
			SendRunNotFoundError(c, runID, caseName)
		default:
			SendPersistenceError(c, "delete run", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Run '" + runID + "' deleted from case '" + caseName + "'"})
}
