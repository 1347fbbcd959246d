package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/k4lab/go-cipher-search/config"
	apperrors "github.com/k4lab/go-cipher-search/internal/errors"
	"github.com/k4lab/go-cipher-search/internal/jobs"
	"github.com/k4lab/go-cipher-search/internal/metrics"
	"github.com/k4lab/go-cipher-search/internal/search"
	"github.com/k4lab/go-cipher-search/services"
)

const maxConcurrentJobs = 2

// Engine manages multiple cipher cases.
// It implements the services.AsyncCaseManager interface.
type Engine struct {
	mu          sync.RWMutex
	cases       map[string]*CaseInstance
	dataDir     string
	jobManager  *jobs.Manager
	instruments *metrics.Metrics
}

// NewEngine creates a new case orchestrator, loading any cases previously
// persisted under dataDir.
func NewEngine(dataDir string) *Engine {
	eng := &Engine{
		cases:      make(map[string]*CaseInstance),
		dataDir:    dataDir,
		jobManager: jobs.NewManager(maxConcurrentJobs),
	}
	eng.jobManager.Start()
	eng.loadCasesFromDisk()
	return eng
}

// SetInstruments attaches Prometheus instruments to the engine, its job
// manager, and every loaded case.
func (e *Engine) SetInstruments(instruments *metrics.Metrics) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.instruments = instruments
	e.jobManager.SetInstruments(instruments)
	for _, instance := range e.cases {
		instance.SetInstruments(instruments)
	}
}

// Stop shuts down background work. In-flight jobs finish first.
func (e *Engine) Stop() {
	e.jobManager.Stop()
}

// CreateCase creates a new case from the given configuration and persists it.
func (e *Engine) CreateCase(cfg config.CaseConfig) error {
	cfg.ApplyDefaults()
	if conflicts := cfg.Validate(); len(conflicts) > 0 {
		return apperrors.NewValidationError("case", strings.Join(conflicts, "; "))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.cases[cfg.Name]; exists {
		return apperrors.NewCaseAlreadyExistsError(cfg.Name)
	}

	instance, err := NewCaseInstance(cfg)
	if err != nil {
		return fmt.Errorf("failed to create case instance for '%s': %w", cfg.Name, err)
	}
	instance.SetInstruments(e.instruments)

	if err := e.persistCaseUnsafe(cfg.Name, instance); err != nil {
		return fmt.Errorf("failed to persist new case '%s': %w", cfg.Name, err)
	}

	e.cases[cfg.Name] = instance
	log.Printf("Case '%s' created and persisted.", cfg.Name)
	return nil
}

// GetCase retrieves a case by its name.
func (e *Engine) GetCase(name string) (services.CaseAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.cases[name]
	if !exists {
		return nil, apperrors.NewCaseNotFoundError(name)
	}
	return instance, nil
}

// GetCaseConfig retrieves the configuration for a specific case.
func (e *Engine) GetCaseConfig(name string) (config.CaseConfig, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.cases[name]
	if !exists {
		return config.CaseConfig{}, apperrors.NewCaseNotFoundError(name)
	}
	return *instance.config, nil // Return a copy
}

// UpdateCaseSettings updates the settings for an existing case and persists
// them. The ciphertext and anchors are immutable; only the search settings
// change. The search service is rebuilt so the next run sees the new grid.
func (e *Engine) UpdateCaseSettings(name string, newSettings config.CaseSettings) error {
	newSettings.ApplyDefaults()

	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.cases[name]
	if !exists {
		return apperrors.NewCaseNotFoundError(name)
	}

	updated := *instance.config
	updated.Settings = newSettings
	if conflicts := updated.Validate(); len(conflicts) > 0 {
		return apperrors.NewValidationError("settings", strings.Join(conflicts, "; "))
	}

	searcher, err := search.NewService(instance.text, instance.set, &updated.Settings)
	if err != nil {
		return fmt.Errorf("failed to rebuild search service for '%s': %w", name, err)
	}

	instance.config = &updated
	instance.searcher = searcher

	if err := e.persistCaseUnsafe(name, instance); err != nil {
		log.Printf("CRITICAL: Failed to persist updated settings for case '%s'. In-memory settings updated, but disk is stale: %v", name, err)
		return fmt.Errorf("failed to save updated settings for case '%s': %w", name, err)
	}

	log.Printf("Settings for case '%s' updated and persisted.", name)
	return nil
}

// DeleteCase removes a case by its name from memory and disk.
func (e *Engine) DeleteCase(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.cases[name]; !exists {
		// To be idempotent, if not in memory, check if it exists on disk to remove
		casePath := filepath.Join(e.dataDir, name)
		if _, err := os.Stat(casePath); os.IsNotExist(err) {
			return apperrors.NewCaseNotFoundError(name)
		}
	} else {
		delete(e.cases, name)
	}

	casePath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(casePath); err != nil {
		return fmt.Errorf("failed to delete case data directory %s: %w", casePath, err)
	}
	log.Printf("Case '%s' deleted from memory and disk.", name)
	return nil
}

// ListCases returns the names of all loaded cases.
func (e *Engine) ListCases() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.cases))
	for name := range e.cases {
		names = append(names, name)
	}
	return names
}

// DeleteRun removes an archived run from a case and persists the shrunken
// archive.
func (e *Engine) DeleteRun(caseName, runID string) error {
	e.mu.RLock()
	instance, exists := e.cases[caseName]
	e.mu.RUnlock()

	if !exists {
		return apperrors.NewCaseNotFoundError(caseName)
	}

	if err := instance.DeleteRun(runID); err != nil {
		return err
	}
	return e.PersistCaseData(caseName)
}
