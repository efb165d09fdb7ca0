package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"leadverify/internal/verification/domain"
)

func TestCSVSinkPersistWritesHeaderAndRows(t *testing.T) {
	sink, err := NewCSVSink(t.TempDir())
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	results := []domain.VerifiedLead{
		{
			Lead:               domain.Lead{FirstName: "Ada", LastName: "Lovelace", PhoneNumber: "+12128675301", Company: "Acme, Inc."},
			VerificationStatus: "Connected to Contact",
		},
		{
			Lead:               domain.Lead{FirstName: "Ben", LastName: "Franklin", PhoneNumber: "+12128675302"},
			VerificationStatus: domain.StatusVoicemail,
		},
	}

	path, err := sink.Persist("job-1", results)
	if err != nil {
		t.Fatalf("persist: %v", err)
	}
	if filepath.Base(path) != "results-job-1.csv" {
		t.Fatalf("unexpected file name %q", path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open results: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][4] != "verificationStatus" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][3] != "Acme, Inc." {
		t.Fatalf("comma in company not preserved: %v", rows[1])
	}
	if rows[2][4] != domain.StatusVoicemail {
		t.Fatalf("unexpected status: %v", rows[2])
	}
}

func TestCSVSinkOverwritesExistingFile(t *testing.T) {
	sink, err := NewCSVSink(t.TempDir())
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	first := []domain.VerifiedLead{{Lead: domain.Lead{FirstName: "Ada"}, VerificationStatus: "Busy"}}
	if _, err := sink.Persist("job-1", first); err != nil {
		t.Fatalf("persist: %v", err)
	}

	path, err := sink.Persist("job-1", nil)
	if err != nil {
		t.Fatalf("second persist: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open results: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only after overwrite, got %d rows", len(rows))
	}
}
