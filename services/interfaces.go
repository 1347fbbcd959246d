// Package services defines the interfaces the HTTP layer programs against,
// keeping handlers decoupled from the engine's concrete types.
package services

import (
	"context"

	"github.com/k4lab/go-cipher-search/config"
	"github.com/k4lab/go-cipher-search/model"
)

// Searcher runs a full parameter search and archives the resulting record.
type Searcher interface {
	Search(ctx context.Context) (*model.SolutionRecord, error)
}

// Profiler computes ciphertext statistics for a case.
type Profiler interface {
	Profile() model.ProfileReport
}

// RunArchive exposes the solution records of past searches. Deleting through
// the archive only touches memory; callers that need the removal persisted go
// through the case manager.
type RunArchive interface {
	Runs() []model.RunSummary
	Run(runID string) (*model.SolutionRecord, error)
	DeleteRun(runID string) error
}

// CaseAccessor combines the per-case operations.
type CaseAccessor interface {
	Searcher
	Profiler
	RunArchive
	Config() config.CaseConfig
	ConstraintCount() int
	GridSize() int
}

// CaseManager manages the lifecycle of cipher cases.
type CaseManager interface {
	CreateCase(cfg config.CaseConfig) error
	GetCase(name string) (CaseAccessor, error)
	GetCaseConfig(name string) (config.CaseConfig, error)
	UpdateCaseSettings(name string, settings config.CaseSettings) error
	DeleteCase(name string) error
	ListCases() []string
	DeleteRun(caseName, runID string) error
	PersistCaseData(caseName string) error
}

// AsyncCaseManager extends CaseManager with background execution. Both
// methods return a job ID to poll.
type AsyncCaseManager interface {
	CaseManager
	SearchAsync(name string) (string, error)
	ProfileAsync(name string) (string, error)
}

// JobTracker defines read operations for background jobs.
type JobTracker interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(caseName string, status *model.JobStatus) []*model.Job
}
