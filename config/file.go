package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadCaseFile reads a YAML case file, applies defaults, and validates the
// result. The file schema mirrors CaseConfig:
//
//	name: k4
//	ciphertext: OBKRUOXOGH ...
//	anchors:
//	  - start: 21
//	    plain: EAST
//	settings:
//	  families: [linear]
//	  top_k: 10
func LoadCaseFile(path string) (CaseConfig, error) {
	var caseConfig CaseConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return caseConfig, fmt.Errorf("failed to read case file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &caseConfig); err != nil {
		return caseConfig, fmt.Errorf("failed to parse case file %s: %w", path, err)
	}

	caseConfig.ApplyDefaults()
	if conflicts := caseConfig.Validate(); len(conflicts) > 0 {
		return caseConfig, fmt.Errorf("invalid case file %s: %s", path, strings.Join(conflicts, "; "))
	}

	return caseConfig, nil
}

// SaveCaseFile writes a case configuration as YAML, so an API-created case
// can be exported and reloaded from disk.
func SaveCaseFile(path string, caseConfig CaseConfig) error {
	data, err := yaml.Marshal(caseConfig)
	if err != nil {
		return fmt.Errorf("failed to encode case %s: %w", caseConfig.Name, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write case file %s: %w", path, err)
	}

	return nil
}
