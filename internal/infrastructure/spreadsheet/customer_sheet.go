// Package spreadsheet reads customer lists exported from Excel.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoRows is returned for a workbook whose first sheet has no data rows
var ErrNoRows = errors.New("spreadsheet has no data rows")

// CustomerRow is one data row of a customer sheet. Row is the row number as
// shown in Excel, so the first data row is 2.
type CustomerRow struct {
	Row       int
	Name      string
	Mobile    string
	VehicleNo string
	Email     string
}

// header spellings seen in exported sheets
var columnAliases = map[string]string{
	"name":           "name",
	"customer_name":  "name",
	"mobile":         "mobile",
	"mobile_no":      "mobile",
	"phone":          "mobile",
	"vehicle_no":     "vehicle_no",
	"vehicle_number": "vehicle_no",
	"vehicle":        "vehicle_no",
	"email":          "email",
}

// ReadCustomers parses the first sheet of an .xlsx workbook. The first row
// must be a header naming at least the name, mobile and vehicle number
// columns; cells are returned trimmed and otherwise unvalidated.
func ReadCustomers(r io.Reader) ([]CustomerRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	columns := map[string]int{}
	for i, cell := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(cell))
		key = strings.ReplaceAll(key, " ", "_")
		if field, ok := columnAliases[key]; ok {
			if _, seen := columns[field]; !seen {
				columns[field] = i
			}
		}
	}
	for _, required := range []string{"name", "mobile", "vehicle_no"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing %s column in header", required)
		}
	}

	cell := func(row []string, field string) string {
		i, ok := columns[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]CustomerRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		out = append(out, CustomerRow{
			Row:       i + 2,
			Name:      cell(row, "name"),
			Mobile:    cell(row, "mobile"),
			VehicleNo: cell(row, "vehicle_no"),
			Email:     cell(row, "email"),
		})
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
