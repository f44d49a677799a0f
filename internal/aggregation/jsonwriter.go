// Package aggregation implements the result-shape serialisation and
// persistence of spec.md §6: a JSON file per run plus an optional
// Postgres sink, and the "logged, don't abort the batch" error policy of
// spec.md §7.
package aggregation

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

// WriteJSON serialises reports to path as a single JSON array. A
// write/filesystem failure is logged and returned rather than panicking,
// so a batch's other in-flight scenarios are unaffected (spec.md §7).
func WriteJSON(path string, reports []models.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("aggregation: failed to create output directory for %s: %v", path, err)
		return fmt.Errorf("aggregation: mkdir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		log.Printf("aggregation: failed to create %s: %v", path, err)
		return fmt.Errorf("aggregation: create: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		log.Printf("aggregation: failed to write %s: %v", path, err)
		return fmt.Errorf("aggregation: encode: %w", err)
	}

	log.Printf("aggregation: wrote %d reports to %s", len(reports), path)
	return nil
}
