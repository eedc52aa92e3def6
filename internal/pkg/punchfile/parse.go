package punchfile

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/samarqand/backoffice-go/internal/domain/timeclock"
	"github.com/shopspring/decimal"
)

// Parse decodes one punch file into raw items by extension. JSON files hold
// an array of item objects; CSV files a header row plus one item per line.
func Parse(f File) ([]timeclock.RawPunchItem, error) {
	switch strings.ToLower(filepath.Ext(f.Name)) {
	case ".json":
		return parseJSON(f.Data)
	case ".csv":
		return parseCSV(f.Data)
	default:
		return nil, fmt.Errorf("unsupported punch file type: %s", f.Name)
	}
}

func parseJSON(data []byte) ([]timeclock.RawPunchItem, error) {
	var items []timeclock.RawPunchItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("invalid punch JSON: %w", err)
	}
	return items, nil
}

// CSV columns are matched by header name; unknown columns are ignored and
// empty cells become absent fields.
func parseCSV(data []byte) ([]timeclock.RawPunchItem, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid punch CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cell := func(row []string, name string) *string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return nil
		}
		v := strings.TrimSpace(row[idx])
		if v == "" {
			return nil
		}
		return &v
	}

	var items []timeclock.RawPunchItem
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid punch CSV row: %w", err)
		}

		item := timeclock.RawPunchItem{
			WorkerID:    cell(row, "worker_id"),
			TimeClockID: cell(row, "time_clock_id"),
			Date:        cell(row, "date"),
			ProjectID:   cell(row, "project_id"),
			CheckIn:     cell(row, "check_in"),
			CheckOut:    cell(row, "check_out"),
			CheckInAt:   cell(row, "check_in_at"),
			CheckOutAt:  cell(row, "check_out_at"),
			Status:      cell(row, "status"),
			Notes:       cell(row, "notes"),
		}

		if raw := cell(row, "hours"); raw != nil {
			hours, err := decimal.NewFromString(*raw)
			if err != nil {
				return nil, fmt.Errorf("invalid hours value %q: %w", *raw, err)
			}
			item.Hours = &hours
		}

		items = append(items, item)
	}

	return items, nil
}
