package api

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/k4lab/go-cipher-search/config"
	internalErrors "github.com/k4lab/go-cipher-search/internal/errors"
	"github.com/k4lab/go-cipher-search/services"
)

// CreateCaseHandler handles the request to create a new case.
// Request Body: config.CaseConfig
func (api *API) CreateCaseHandler(c *gin.Context) {
	var cfg config.CaseConfig

	// Validate JSON binding
	if result := ValidateJSONBinding(c, &cfg); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	// Validate the case configuration (applies defaults first)
	if result := ValidateCaseConfig(&cfg); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.CreateCase(cfg); err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrCaseAlreadyExists):
			SendCaseExistsError(c, cfg.Name)
		case errors.Is(err, internalErrors.ErrInvalidDomain):
			// Bad ciphertext symbols or conflicting anchor placements
			SendInvalidDomainError(c, err)
		case errors.Is(err, internalErrors.ErrInvalidInput):
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		default:
			SendInternalError(c, "create case", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Case '" + cfg.Name + "' created successfully"})
}

// ListCasesHandler lists all available cases, sorted by name.
func (api *API) ListCasesHandler(c *gin.Context) {
	names := api.engine.ListCases()
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{"cases": names, "count": len(names)})
}

// GetCaseHandler retrieves a case: its configuration plus the derived
// constraint count, grid size, and archived run count.
func (api *API) GetCaseHandler(c *gin.Context) {
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

	cfg := caseAccessor.Config()
	c.JSON(http.StatusOK, gin.H{
		"name":             cfg.Name,
		"ciphertext":       cfg.Ciphertext,
		"anchors":          cfg.Anchors,
		"settings":         cfg.Settings,
		"constraint_count": caseAccessor.ConstraintCount(),
		"grid_size":        caseAccessor.GridSize(),
		"run_count":        len(caseAccessor.Runs()),
	})
}

// UpdateCaseSettingsHandler replaces the search settings of a case. The body
// is a full config.CaseSettings; zeroed fields fall back to defaults rather
// than being preserved from the previous settings.
func (api *API) UpdateCaseSettingsHandler(c *gin.Context) {
	caseName := c.Param("caseName")

	var settings config.CaseSettings
	if result := ValidateJSONBinding(c, &settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if result := ValidateCaseSettings(&settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.UpdateCaseSettings(caseName, settings); err != nil {
		switch {
		case errors.Is(err, internalErrors.ErrCaseNotFound):
			SendCaseNotFoundError(c, caseName)
		case errors.Is(err, internalErrors.ErrInvalidInput):
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		default:
			SendInternalError(c, "update case settings", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully for case '" + caseName + "'"})
}

// DeleteCaseHandler handles deleting a case and its archived runs.
func (api *API) DeleteCaseHandler(c *gin.Context) {
	caseName := c.Param("caseName")

	if err := api.engine.DeleteCase(caseName); err != nil {
		if errors.Is(err, internalErrors.ErrCaseNotFound) {
			SendCaseNotFoundError(c, caseName)
			return
		}
		SendInternalError(c, "delete case", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Case '" + caseName + "' deleted successfully"})
}

// GetProfileHandler computes the statistical profile of a case's ciphertext.
// The profile is cheap and deterministic, so it is recomputed per request
// rather than cached.
func (api *API) GetProfileHandler(c *gin.Context) {
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

	c.JSON(http.StatusOK, caseAccessor.Profile())
}

// ProfileCaseAsyncHandler starts a background profile job for a case.
func (api *API) ProfileCaseAsyncHandler(c *gin.Context) {
	caseName := c.Param("caseName")

	asyncEngine, ok := api.engine.(services.AsyncCaseManager)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Background jobs not supported by this engine"})
		return
	}

	jobID, err := asyncEngine.ProfileAsync(caseName)
	if err != nil {
		if errors.Is(err, internalErrors.ErrCaseNotFound) {
			SendCaseNotFoundError(c, caseName)
			return
		}
		SendJobExecutionError(c, "profile", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Profile started for case '" + caseName + "'",
		"job_id":  jobID,
	})
}
