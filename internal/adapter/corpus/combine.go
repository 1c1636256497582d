package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"vta-orchestrator/internal/domain"
)

// Load reads one corpus JSON file.
func Load(path string) ([]domain.CourseDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file %s: %w", path, err)
	}
	var docs []domain.CourseDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file %s: %w", path, err)
	}
	return docs, nil
}

// Combine merges multiple corpus JSON files into one document slice,
// preserving file order.
func Combine(paths ...string) ([]domain.CourseDocument, error) {
	var combined []domain.CourseDocument
	for _, path := range paths {
		docs, err := Load(path)
		if err != nil {
			return nil, err
		}
		combined = append(combined, docs...)
	}
	return combined, nil
}

// Save writes documents as indented JSON, creating parent directories as
// needed.
func Save(path string, docs []domain.CourseDocument) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create corpus directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write corpus file %s: %w", path, err)
	}
	return nil
}
