// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kwallet-extract/pkg/types"
)

// ExportRun holds a run with its entries for export.
type ExportRun struct {
	Run     `yaml:",inline"`
	Records []types.Record `json:"records" yaml:"records"`
}

// ExportYAML writes the whole ledger to <ledger>.yaml and returns the path.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	runs, err := s.exportRuns(ctx)
	if err != nil {
		return "", err
	}

	path := s.path + ".yaml"
	data, err := yaml.Marshal(runs)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o600)
}

// ExportJSON writes the whole ledger to <ledger>.json and returns the path.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	runs, err := s.exportRuns(ctx)
	if err != nil {
		return "", err
	}

	path := s.path + ".json"
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o600)
}

func (s *Store) exportRuns(ctx context.Context) ([]ExportRun, error) {
	runs, err := s.Runs(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	out := make([]ExportRun, len(runs))
	for i, r := range runs {
		records, err := s.Entries(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("querying for export: %w", err)
		}
		out[i] = ExportRun{Run: r, Records: records}
	}
	return out, nil
}
