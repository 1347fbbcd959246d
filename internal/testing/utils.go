// Package testing provides utilities and helpers for testing the cipher
// search engine.
package testing

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k4lab/go-cipher-search/config"
	"github.com/k4lab/go-cipher-search/internal/engine"
	"github.com/k4lab/go-cipher-search/model"
	"github.com/k4lab/go-cipher-search/services"
)

// TestDirRegistry tracks test directories for cleanup
type TestDirRegistry struct {
	mu   sync.Mutex
	dirs []string
}

var globalTestDirRegistry = &TestDirRegistry{}

// RegisterTestDir registers a test directory for cleanup
func (r *TestDirRegistry) RegisterTestDir(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirs = append(r.dirs, dir)
}

// CleanupAll removes all registered test directories
func (r *TestDirRegistry) CleanupAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dir := range r.dirs {
		if err := os.RemoveAll(dir); err != nil {
			fmt.Printf("Warning: Failed to remove test directory %s: %v\n", dir, err)
		}
	}
	r.dirs = nil
}

// CreateTestEngine creates a new engine instance for testing with automatic
// cleanup of its background workers and data directory
func CreateTestEngine(t *testing.T) *engine.Engine {
	testDir := fmt.Sprintf("./test_data_%d", time.Now().UnixNano())
	globalTestDirRegistry.RegisterTestDir(testDir)

	eng := engine.NewEngine(testDir)
	t.Cleanup(eng.Stop)

	return eng
}

// HelloCaseConfig builds a small deterministic case: "HELLOWORLD" Caesar
// shifted by 5 and anchored on its first five symbols. With the offset pinned
// to 5 the search grid is the 26 multipliers, and the identity multiplier
// matches all 5 constraints, so a search completes in milliseconds with
// status ok and a unique leader.
func HelloCaseConfig(name string) config.CaseConfig {
	return config.CaseConfig{
		Name:       name,
		Ciphertext: "MJQQTBTWQI",
		Anchors:    []config.Anchor{{Start: 0, Plain: "HELLO"}},
		Settings: config.CaseSettings{
			OffsetMin: 5,
			OffsetMax: 5,
			TopK:      3,
			Workers:   2,
		},
	}
}

// CreateTestCase creates the hello fixture case on the engine
func CreateTestCase(t *testing.T, eng *engine.Engine, caseName string) config.CaseConfig {
	cfg := HelloCaseConfig(caseName)

	err := eng.CreateCase(cfg)
	require.NoError(t, err, "Failed to create test case")

	return cfg
}

// ArchiveTestRun runs a synchronous search on a case and returns the archived
// solution record
func ArchiveTestRun(t *testing.T, eng *engine.Engine, caseName string) *model.SolutionRecord {
	caseAccessor, err := eng.GetCase(caseName)
	require.NoError(t, err, "Failed to get case accessor")

	record, err := caseAccessor.Search(context.Background())
	require.NoError(t, err, "Failed to run search")
	require.NotNil(t, record, "Search should produce a solution record")

	return record
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 10 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJobCompletion polls a job until it completes or times out
func WaitForJobCompletion(t *testing.T, jobTracker services.JobTracker, jobID string, opts JobPollingOptions) *model.Job {
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	var job *model.Job
	var err error

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not complete within %v timeout", jobID, opts.Timeout)
		case <-ticker.C:
			job, err = jobTracker.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch job.Status {
			case model.JobStatusCompleted:
				if opts.LogProgress {
					t.Logf("Job %s completed successfully in %v", jobID, job.CompletedAt.Sub(job.CreatedAt))
				}
				return job
			case model.JobStatusFailed, model.JobStatusCancelled:
				t.Fatalf("Job %s ended with status %s: %s", jobID, job.Status, job.Error)
			case model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s",
						jobID,
						job.Progress.Current,
						job.Progress.Total,
						job.Progress.Message)
				}
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedCase string) {
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedCase, job.CaseName, "Job case name should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}

// CleanupTestDirs should be called in TestMain to clean up all test directories
func CleanupTestDirs() {
	globalTestDirRegistry.CleanupAll()
}

// TestMain runs a package's tests and cleans up registered test directories.
// Callers delegate from their own TestMain.
func TestMain(m *testing.M) {
	code := m.Run()

	CleanupTestDirs()

	os.Exit(code)
}
