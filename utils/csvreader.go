package utils

import (
	"encoding/csv"
	"io"
	"strings"
)

// ParseCSV reads every record, trimming cells. Rows may have differing lengths.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	for _, row := range records {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
	}
	return records, nil
}
