// Package report renders allotments for printing: a duty roster per exam
// date and a cross-date duty grid per department.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// DisplayLayout is how dates appear on printed reports.
const DisplayLayout = "02-01-2006"

var titleStyle = lipgloss.NewStyle().Bold(true)

// RosterRow is one invigilator line on a date's duty list.
type RosterRow struct {
	SNo           int    `json:"s_no"`
	StaffName     string `json:"staff_name"`
	Department    string `json:"staff_dept"`
	RoomNo        string `json:"room_no"`
	ReportingTime string `json:"reporting_time"`
}

// Roster is the duty list for one exam date.
type Roster struct {
	Date     string          `json:"date"`
	Settings models.Settings `json:"settings"`
	Rows     []RosterRow     `json:"rows"`
}

// BuildRoster flattens a date's assignments into roster rows ordered by
// department, keeping room order within a department.
func BuildRoster(date string, settings models.Settings, assignments []models.Assignment) Roster {
	var rows []RosterRow
	for _, a := range assignments {
		for _, m := range a.Staff {
			rows = append(rows, RosterRow{
				StaffName:     strings.TrimSpace(m.Name),
				Department:    m.Department,
				RoomNo:        a.RoomNo,
				ReportingTime: settings.ReportingTime,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Department < rows[j].Department })
	for i := range rows {
		rows[i].SNo = i + 1
	}
	return Roster{Date: date, Settings: settings, Rows: rows}
}

// Title returns the heading lines printed above the roster.
func (r Roster) Title() []string {
	name := strings.TrimSpace(r.Settings.AssessmentName + " Examination Duty List")
	lines := []string{name}
	if r.Settings.ExamTime != "" {
		lines = append(lines, "Exam Time - "+r.Settings.ExamTime)
	}
	if r.Settings.ReportingTime != "" {
		lines = append(lines, "Reporting Time - "+r.Settings.ReportingTime)
	}
	lines = append(lines, "Date of Examination - "+displayDate(r.Date))
	if r.Settings.ExamDetails != "" {
		lines = append(lines, r.Settings.ExamDetails)
	}
	return lines
}

var rosterHeaders = []string{"S. No.", "Staff Name", "Dept", "Hall", "Reporting Time", "Signature"}

func (r Roster) records() [][]string {
	out := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		out = append(out, []string{
			strconv.Itoa(row.SNo),
			row.StaffName,
			row.Department,
			row.RoomNo,
			row.ReportingTime,
			"",
		})
	}
	return out
}

// Text renders the roster as a bordered terminal table.
func (r Roster) Text() string {
	var b strings.Builder
	for _, line := range r.Title() {
		b.WriteString(titleStyle.Render(line))
		b.WriteByte('\n')
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(rosterHeaders...).
		Rows(r.records()...)
	b.WriteString(t.String())
	b.WriteByte('\n')
	return b.String()
}

// WriteCSV writes the header row and one row per invigilator.
func (r Roster) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rosterHeaders[:5]); err != nil {
		return err
	}
	for _, rec := range r.records() {
		if err := cw.Write(rec[:5]); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// GridRow is one staff member's duties across the report dates.
type GridRow struct {
	SNo       int      `json:"s_no"`
	StaffName string   `json:"staff_name"`
	Gender    string   `json:"staff_gender"`
	Rooms     []string `json:"rooms"`
}

// DepartmentGrid is the duty chart for one department.
type DepartmentGrid struct {
	Department string    `json:"department"`
	Dates      []string  `json:"dates"`
	Rows       []GridRow `json:"rows"`
}

// Unassigned marks a date on which a staff member has no duty.
const Unassigned = "-"

// BuildDepartmentGrids groups the directory by department and marks, for
// every allotment date, the room each person sits in.
func BuildDepartmentGrids(staff []models.StaffMember, allotment models.Allotment) []DepartmentGrid {
	dates := make([]string, 0, len(allotment))
	for d := range allotment {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	rooms := make(map[string]map[string]string, len(dates))
	for _, d := range dates {
		byName := make(map[string]string)
		for _, a := range allotment[d] {
			for _, m := range a.Staff {
				name := strings.TrimSpace(m.Name)
				if _, ok := byName[name]; !ok {
					byName[name] = a.RoomNo
				}
			}
		}
		rooms[d] = byName
	}

	byDept := make(map[string][]models.StaffMember)
	for _, m := range staff {
		dept := strings.TrimSpace(m.Department)
		byDept[dept] = append(byDept[dept], m)
	}
	depts := make([]string, 0, len(byDept))
	for d := range byDept {
		depts = append(depts, d)
	}
	sort.Strings(depts)

	grids := make([]DepartmentGrid, 0, len(depts))
	for _, dept := range depts {
		members := byDept[dept]
		sort.SliceStable(members, func(i, j int) bool { return members[i].Name < members[j].Name })

		g := DepartmentGrid{Department: dept, Dates: dates}
		for i, m := range members {
			name := strings.TrimSpace(m.Name)
			row := GridRow{SNo: i + 1, StaffName: name, Gender: string(m.Gender)}
			for _, d := range dates {
				room, ok := rooms[d][name]
				if !ok {
					room = Unassigned
				}
				row.Rooms = append(row.Rooms, room)
			}
			g.Rows = append(g.Rows, row)
		}
		grids = append(grids, g)
	}
	return grids
}

// Duties counts the dates on which name has a room.
func (r GridRow) Duties() int {
	n := 0
	for _, room := range r.Rooms {
		if room != Unassigned {
			n++
		}
	}
	return n
}

func (g DepartmentGrid) headers() []string {
	h := []string{"S.No", "Staff Name", "Gender"}
	for _, d := range g.Dates {
		h = append(h, displayDate(d))
	}
	return append(h, "Duties")
}

func (g DepartmentGrid) records() [][]string {
	out := make([][]string, 0, len(g.Rows))
	for _, row := range g.Rows {
		rec := []string{strconv.Itoa(row.SNo), row.StaffName, row.Gender}
		rec = append(rec, row.Rooms...)
		rec = append(rec, strconv.Itoa(row.Duties()))
		out = append(out, rec)
	}
	return out
}

// Text renders the grid as a bordered terminal table.
func (g DepartmentGrid) Text() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Staff Duty Report - %s Department", g.Department)))
	b.WriteByte('\n')
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(g.headers()...).
		Rows(g.records()...)
	b.WriteString(t.String())
	b.WriteByte('\n')
	return b.String()
}

// WriteCSV writes the grid with a leading department column so several
// departments can share one file.
func (g DepartmentGrid) WriteCSV(w io.Writer, withHeader bool) error {
	cw := csv.NewWriter(w)
	if withHeader {
		if err := cw.Write(append([]string{"Department"}, g.headers()...)); err != nil {
			return err
		}
	}
	for _, rec := range g.records() {
		if err := cw.Write(append([]string{g.Department}, rec...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// AllotmentJSON encodes an allotment the way it is archived: date keys,
// each holding the ordered room assignments.
func AllotmentJSON(a models.Allotment) ([]byte, error) {
	if a == nil {
		a = models.Allotment{}
	}
	return json.MarshalIndent(a, "", "    ")
}

func displayDate(date string) string {
	t, err := models.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format(DisplayLayout)
}
