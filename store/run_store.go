package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	apperrors "github.com/k4lab/go-cipher-search/internal/errors"
	"github.com/k4lab/go-cipher-search/model"
)

// RunStore archives the solution records of one case. Records are treated as
// immutable once added: Get hands out the stored pointer, so callers must not
// mutate what they receive.
type RunStore struct {
	Mu    sync.RWMutex
	Runs  map[string]*model.SolutionRecord // Run ID to full record
	Order []string                         // Run IDs in insertion order, oldest first
}

// NewRunStore creates an empty store.
func NewRunStore() *RunStore {
	return &RunStore{
		Runs:  make(map[string]*model.SolutionRecord),
		Order: make([]string, 0),
	}
}

// Add archives a record. Re-adding an existing ID replaces the record without
// duplicating its position in the listing order.
func (rs *RunStore) Add(record *model.SolutionRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if record.ID == "" {
		return fmt.Errorf("record ID cannot be empty")
	}

	rs.Mu.Lock()
	defer rs.Mu.Unlock()

	if _, exists := rs.Runs[record.ID]; !exists {
		rs.Order = append(rs.Order, record.ID)
	}
	rs.Runs[record.ID] = record
	return nil
}

// Get returns the record for a run ID.
func (rs *RunStore) Get(runID string) (*model.SolutionRecord, error) {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()

	record, exists := rs.Runs[runID]
	if !exists {
		return nil, apperrors.NewRunNotFoundError(runID)
	}
	return record, nil
}

// List returns run summaries, newest first.
func (rs *RunStore) List() []model.RunSummary {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()

	summaries := make([]model.RunSummary, 0, len(rs.Order))
	for i := len(rs.Order) - 1; i >= 0; i-- {
		if record, exists := rs.Runs[rs.Order[i]]; exists {
			summaries = append(summaries, record.Summary())
		}
	}
	return summaries
}

// Delete removes a record.
func (rs *RunStore) Delete(runID string) error {
	rs.Mu.Lock()
	defer rs.Mu.Unlock()

	if _, exists := rs.Runs[runID]; !exists {
		return apperrors.NewRunNotFoundError(runID)
	}
	delete(rs.Runs, runID)
	for i, id := range rs.Order {
		if id == runID {
			rs.Order = append(rs.Order[:i], rs.Order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of archived records.
func (rs *RunStore) Len() int {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()
	return len(rs.Runs)
}

// gobRunStoreData is a helper struct for Gob encoding/decoding RunStore data.
// It excludes the mutex.
type gobRunStoreData struct {
	Runs  map[string]*model.SolutionRecord
	Order []string
}

// GobEncode implements the gob.GobEncoder interface for RunStore.
func (rs *RunStore) GobEncode() ([]byte, error) {
	rs.Mu.RLock()
	defer rs.Mu.RUnlock()

	dataToEncode := gobRunStoreData{
		Runs:  rs.Runs,
		Order: rs.Order,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, fmt.Errorf("failed to gob encode run store data: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for RunStore.
func (rs *RunStore) GobDecode(data []byte) error {
	decodedData := gobRunStoreData{}

	buf := bytes.NewBuffer(data)
	decoder := gob.NewDecoder(buf)
	if err := decoder.Decode(&decodedData); err != nil {
		return fmt.Errorf("failed to gob decode run store data: %w", err)
	}

	rs.Mu.Lock()
	defer rs.Mu.Unlock()

	rs.Runs = decodedData.Runs
	rs.Order = decodedData.Order

	// Ensure fields are initialized if they were nil after decoding.
	if rs.Runs == nil {
		rs.Runs = make(map[string]*model.SolutionRecord)
	}
	if rs.Order == nil {
		rs.Order = make([]string, 0)
	}

	return nil
}
