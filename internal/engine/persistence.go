package engine

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/k4lab/go-cipher-search/config"
	"github.com/k4lab/go-cipher-search/internal/persistence"
	"github.com/k4lab/go-cipher-search/store"
)

const (
	dataDirPerm    = 0755
	caseConfigFile = "case.gob"
	runStoreFile   = "runs.gob"
)

// loadCasesFromDisk loads all cases from the data directory. A case that
// fails to load is skipped with a warning rather than taking the engine down;
// a missing or corrupted run archive degrades to an empty one.
func (e *Engine) loadCasesFromDisk() {
	log.Printf("Loading cases from disk: %s", e.dataDir)

	if err := os.MkdirAll(e.dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v. Proceeding without persistence for new cases if loading fails.", e.dataDir, err)
	}

	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		log.Printf("Warning: Failed to read data directory %s: %v. No cases loaded.", e.dataDir, err)
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		caseName := item.Name()
		casePath := filepath.Join(e.dataDir, caseName)
		log.Printf("Attempting to load case: %s", caseName)

		var cfg config.CaseConfig
		cfgPath := filepath.Join(casePath, caseConfigFile)
		if err := persistence.LoadGob(cfgPath, &cfg); err != nil {
			log.Printf("Warning: Failed to load configuration for case %s from %s: %v. Skipping this case.", caseName, cfgPath, err)
			continue
		}

		// Basic validation, configured name should match directory name
		if cfg.Name != caseName {
			log.Printf("Warning: Case name in configuration ('%s') does not match directory name ('%s') for path %s. Skipping this case.", cfg.Name, caseName, casePath)
			continue
		}

		instance, err := NewCaseInstance(cfg)
		if err != nil {
			log.Printf("Warning: Failed to rebuild case %s: %v. Skipping this case.", caseName, err)
			continue
		}
		instance.SetInstruments(e.instruments)

		runsPath := filepath.Join(casePath, runStoreFile)
		if err := persistence.LoadGob(runsPath, instance.RunStore); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Printf("Info: Run archive file %s not found for case %s. Starting with an empty archive.", runsPath, caseName)
			} else {
				log.Printf("Warning: Failed to load run archive for case %s from %s: %v. Proceeding with empty archive.", caseName, runsPath, err)
			}
			instance.RunStore = store.NewRunStore()
		}

		e.cases[caseName] = instance
		log.Printf("Successfully loaded case: %s (%d archived runs)", caseName, instance.RunStore.Len())
	}
}

// PersistCaseData persists the configuration and run archive for a case.
func (e *Engine) PersistCaseData(caseName string) error {
	e.mu.RLock()
	instance, exists := e.cases[caseName]
	e.mu.RUnlock()

	if !exists {
		return fmt.Errorf("cannot persist: case '%s' not found", caseName)
	}

	return e.persistCaseUnsafe(caseName, instance)
}

// persistCaseUnsafe persists a case instance to disk.
// This method assumes the caller has appropriate locking.
func (e *Engine) persistCaseUnsafe(name string, instance *CaseInstance) error {
	casePath := filepath.Join(e.dataDir, name)
	if err := os.MkdirAll(casePath, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for case %s: %w", name, err)
	}

	if err := persistence.SaveGob(filepath.Join(casePath, caseConfigFile), *instance.config); err != nil {
		return fmt.Errorf("failed to save configuration for case %s: %w", name, err)
	}
	// RunStore takes its own RLock in GobEncode
	if err := persistence.SaveGob(filepath.Join(casePath, runStoreFile), instance.RunStore); err != nil {
		return fmt.Errorf("failed to save run archive for case %s: %w", name, err)
	}

	return nil
}
