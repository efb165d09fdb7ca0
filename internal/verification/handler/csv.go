package handler

import (
	"encoding/csv"
	"io"
	"strings"

	"leadverify/internal/verification/domain"
	"leadverify/platform/apperr"
)

// Recognized header spellings, normalized to lower case without separators.
var csvColumns = map[string]string{
	"phonenumber":  "phone",
	"phone":        "phone",
	"number":       "phone",
	"tel":          "phone",
	"telephone":    "phone",
	"firstname":    "first",
	"first":        "first",
	"fname":        "first",
	"lastname":     "last",
	"last":         "last",
	"lname":        "last",
	"surname":      "last",
	"company":      "company",
	"org":          "company",
	"organization": "company",
}

// Positional fallback for files without a header row.
var positionalColumns = []string{"first", "last", "phone", "company"}

// parseLeadsCSV reads an uploaded lead file. The first row is treated as a
// header when any cell matches a known column name; otherwise columns are
// taken positionally as firstName, lastName, phoneNumber, company.
func parseLeadsCSV(r io.Reader) ([]domain.Lead, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, "malformed CSV file", err)
	}
	if len(records) == 0 {
		return nil, apperr.Validation("CSV file is empty")
	}

	columns, hasHeader := detectHeader(records[0])
	rows := records
	if hasHeader {
		rows = records[1:]
	}

	leads := make([]domain.Lead, 0, len(rows))
	for _, row := range rows {
		lead := leadFromRow(row, columns)
		if lead.PhoneNumber == "" || lead.FirstName == "" || lead.LastName == "" {
			// Rows without a dialable number or a contact name can never
			// verify; drop them.
			continue
		}
		leads = append(leads, lead)
	}
	if len(leads) == 0 {
		return nil, apperr.Validation("CSV file contains no leads")
	}
	return leads, nil
}

// detectHeader maps column index to field name. The second return value is
// false when the first row already looks like data.
func detectHeader(row []string) (map[int]string, bool) {
	columns := make(map[int]string)
	matched := false
	for i, cell := range row {
		if field, ok := csvColumns[normalizeHeader(cell)]; ok {
			columns[i] = field
			matched = true
		}
	}
	if matched {
		return columns, true
	}

	columns = make(map[int]string)
	for i, field := range positionalColumns {
		columns[i] = field
	}
	return columns, false
}

func normalizeHeader(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	cell = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(cell)
	return cell
}

func leadFromRow(row []string, columns map[int]string) domain.Lead {
	var lead domain.Lead
	for i, cell := range row {
		value := strings.TrimSpace(cell)
		if value == "" {
			continue
		}
		switch columns[i] {
		case "phone":
			lead.PhoneNumber = value
		case "first":
			lead.FirstName = value
		case "last":
			lead.LastName = value
		case "company":
			lead.Company = value
		}
	}
	return lead
}
