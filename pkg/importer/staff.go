// Package importer turns uploaded staff sheets into directory records.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	allocerrors "github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/errors"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
)

// RowError explains why a sheet row was skipped.
type RowError struct {
	Line int
	Name string
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Name, e.Err)
}

var (
	nameColumns   = []string{"staff_name", "name"}
	genderColumns = []string{"staff_gender", "gender"}
	deptColumns   = []string{"staff_dept", "dept", "department"}
)

// ParseStaffCSV reads a staff sheet with a header row. Rows with a blank
// name, an unrecognised gender, or a repeated name are skipped and
// reported. Department falls back to defaultDept when the sheet has no
// department column or the cell is blank.
func ParseStaffCSV(r io.Reader, defaultDept string) ([]models.StaffMember, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.New("staff sheet is empty")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	nameCol, ok := findColumn(cols, nameColumns)
	if !ok {
		return nil, nil, errors.New("staff sheet needs a Name column")
	}
	genderCol, ok := findColumn(cols, genderColumns)
	if !ok {
		return nil, nil, errors.New("staff sheet needs a Gender column")
	}
	deptCol, hasDept := findColumn(cols, deptColumns)

	var staff []models.StaffMember
	var skipped []RowError
	seen := make(map[string]bool)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			skipped = append(skipped, RowError{Line: line, Err: err})
			continue
		}

		name := strings.TrimSpace(cell(record, nameCol))
		if name == "" {
			if strings.TrimSpace(strings.Join(record, "")) != "" {
				skipped = append(skipped, RowError{Line: line, Err: allocerrors.ErrEmptyName})
			}
			continue
		}
		gender, err := models.ParseGender(cell(record, genderCol))
		if err != nil {
			skipped = append(skipped, RowError{Line: line, Name: name, Err: fmt.Errorf("%w: %v", allocerrors.ErrInvalidGender, err)})
			continue
		}
		if seen[name] {
			skipped = append(skipped, RowError{Line: line, Name: name, Err: errors.New("duplicate staff name")})
			continue
		}
		seen[name] = true

		dept := defaultDept
		if hasDept {
			if d := strings.TrimSpace(cell(record, deptCol)); d != "" {
				dept = d
			}
		}
		staff = append(staff, models.StaffMember{Name: name, Department: strings.TrimSpace(dept), Gender: gender})
	}

	if len(staff) == 0 {
		return nil, skipped, errors.New("no valid staff rows found")
	}
	return staff, skipped, nil
}

func findColumn(cols map[string]int, names []string) (int, bool) {
	for _, n := range names {
		if i, ok := cols[n]; ok {
			return i, true
		}
	}
	return 0, false
}

func cell(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
