package engine

import (
	"context"
	"fmt"
	"log"

	apperrors "github.com/k4lab/go-cipher-search/internal/errors"
	"github.com/k4lab/go-cipher-search/internal/jobs"
	"github.com/k4lab/go-cipher-search/model"
)

// progressUpdateEvery throttles job progress writes; per-trial updates would
// serialize the worker pool on the job manager's lock for nothing.
const progressUpdateEvery = 250

// SearchAsync runs a parameter search for a case in the background and
// returns the job ID to poll. The resulting record lands in the case's run
// archive and is persisted before the job completes.
func (e *Engine) SearchAsync(name string) (string, error) {
	e.mu.RLock()
	instance, exists := e.cases[name]
	e.mu.RUnlock()

	if !exists {
		return "", apperrors.NewCaseNotFoundError(name)
	}

	jobID := e.jobManager.CreateJob(model.JobTypeSearch, name, map[string]string{
		"operation": "search",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeSearchJob(ctx, instance, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start search job: %w", err)
	}

	return jobID, nil
}

// executeSearchJob executes the search job.
func (e *Engine) executeSearchJob(ctx context.Context, instance *CaseInstance, jobID string) error {
	caseName := instance.config.Name
	e.jobManager.UpdateJobProgress(jobID, 0, instance.GridSize(), "Enumerating formula grid")

	record, err := instance.SearchWithProgress(ctx, func(done, total int64) {
		if done%progressUpdateEvery == 0 || done == total {
			e.jobManager.UpdateJobProgress(jobID, int(done), int(total), "Scoring formula grid")
		}
	})
	if err != nil {
		return fmt.Errorf("search failed for case '%s': %w", caseName, err)
	}

	if err := e.PersistCaseData(caseName); err != nil {
		return fmt.Errorf("failed to persist run archive for case '%s': %w", caseName, err)
	}

	e.jobManager.UpdateJobProgress(jobID, int(record.TrialsEvaluated), int(record.TrialsEvaluated),
		fmt.Sprintf("Archived run %s (status: %s)", record.ID, record.Status))
	log.Printf("Search run %s archived for case '%s' (status: %s).", record.ID, caseName, record.Status)
	return nil
}

// ProfileAsync computes a case's statistical profile in the background.
// Useful for long ciphertexts; the report itself is served by the profile
// endpoint, which recomputes deterministically.
func (e *Engine) ProfileAsync(name string) (string, error) {
	e.mu.RLock()
	instance, exists := e.cases[name]
	e.mu.RUnlock()

	if !exists {
		return "", apperrors.NewCaseNotFoundError(name)
	}

	jobID := e.jobManager.CreateJob(model.JobTypeProfile, name, map[string]string{
		"operation": "profile",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeProfileJob(ctx, instance, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start profile job: %w", err)
	}

	return jobID, nil
}

// executeProfileJob executes the profile job.
func (e *Engine) executeProfileJob(_ context.Context, instance *CaseInstance, jobID string) error {
	caseName := instance.config.Name
	length := instance.text.Len()

	e.jobManager.UpdateJobProgress(jobID, 0, length, "Profiling ciphertext")
	profileReport := instance.Profile()
	e.jobManager.UpdateJobProgress(jobID, length, length,
		fmt.Sprintf("Profiled %d symbols (IC %.4f)", profileReport.Length, profileReport.IC))

	log.Printf("Profiled case '%s': IC %.4f, entropy %.4f bits.", caseName, profileReport.IC, profileReport.Entropy)
	return nil
}

// GetJob retrieves a background job by ID.
// This satisfies the services.JobTracker interface.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs lists background jobs, newest first. An empty caseName matches
// every case.
func (e *Engine) ListJobs(caseName string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(caseName, status)
}

// GetJobMetrics returns aggregate job execution metrics.
func (e *Engine) GetJobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// GetJobSuccessRate returns the fraction of finished jobs that completed.
func (e *Engine) GetJobSuccessRate() float64 {
	return e.jobManager.GetJobSuccessRate()
}

// GetCurrentWorkload returns the number of jobs created but not yet finished.
func (e *Engine) GetCurrentWorkload() int64 {
	return e.jobManager.GetCurrentWorkload()
}
