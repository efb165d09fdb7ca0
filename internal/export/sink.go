// Package export persists completed job results as CSV files and optionally
// mirrors them to object storage.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"leadverify/internal/verification/domain"
)

var resultHeader = []string{"firstName", "lastName", "phoneNumber", "company", "verificationStatus"}

// CSVSink writes one result file per completed job under a configured
// directory.
type CSVSink struct {
	dir string
}

// NewCSVSink creates the sink and its output directory.
func NewCSVSink(dir string) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	return &CSVSink{dir: dir}, nil
}

// Persist writes the job's results to results-<jobID>.csv and returns the
// file path. An existing file for the same job is overwritten.
func (s *CSVSink) Persist(jobID string, results []domain.VerifiedLead) (string, error) {
	path := filepath.Join(s.dir, "results-"+jobID+".csv")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating results file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(resultHeader); err != nil {
		return "", fmt.Errorf("writing results header: %w", err)
	}
	for _, result := range results {
		row := []string{
			result.FirstName,
			result.LastName,
			result.PhoneNumber,
			result.Company,
			result.VerificationStatus,
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("writing result row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flushing results file: %w", err)
	}
	return path, nil
}
