// Package export writes timestamped analysis artifacts to disk.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hyperjump/keiyaku/internal/models"
	"github.com/hyperjump/keiyaku/internal/report"
)

// ErrNoAnalysis means export was requested before any analysis completed.
var ErrNoAnalysis = errors.New("no analysis available, analyze a contract first")

const artifactPrefix = "contract_analysis"

// Exporter writes analysis artifacts into a directory. Filenames carry a
// second-resolution timestamp; collisions within the same second get a
// random suffix.
type Exporter struct {
	dir string
	now func() time.Time
}

// New creates an Exporter writing into dir.
func New(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

// JSON writes rec as an indented JSON artifact and returns its path.
// The serialization is round-trippable: re-parsing the file yields an equal
// record.
func (e *Exporter) JSON(rec *models.AnalysisRecord) (string, error) {
	if rec == nil {
		return "", ErrNoAnalysis
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	return e.write(append(data, '\n'), "json")
}

// Text writes the plain-format report for rec and returns its path.
func (e *Exporter) Text(rec *models.AnalysisRecord) (string, error) {
	if rec == nil {
		return "", ErrNoAnalysis
	}
	return e.write([]byte(report.Render(rec).Plain), "txt")
}

func (e *Exporter) write(data []byte, ext string) (string, error) {
	if err := os.MkdirAll(e.dir, 0750); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := e.artifactPath(ext)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}

// artifactPath builds a timestamped filename, appending a random suffix when
// a file for the same second already exists.
func (e *Exporter) artifactPath(ext string) string {
	stamp := e.now().Format("20060102_150405")
	path := filepath.Join(e.dir, fmt.Sprintf("%s_%s.%s", artifactPrefix, stamp, ext))
	if _, err := os.Stat(path); err == nil {
		suffix := uuid.NewString()[:8]
		path = filepath.Join(e.dir, fmt.Sprintf("%s_%s_%s.%s", artifactPrefix, stamp, suffix, ext))
	}
	return path
}

// DirSizeBytes returns the total size in bytes of all files under dir.
// A missing directory contributes 0.
func DirSizeBytes(dir string) (int64, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}
	var total int64
	err := filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info != nil && !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}
