package models

// StaffMember is one invigilator from the staff directory
type StaffMember struct {
	Name       string `json:"staff_name"`
	Department string `json:"staff_dept"`
	Gender     Gender `json:"staff_gender"`
}

// RoomRequirement is a room's staffing rule for one exam date
type RoomRequirement struct {
	RoomNo      string `json:"room_no"`
	GirlsOnly   bool   `json:"girls_only"`
	SingleStaff bool   `json:"single_staff"`
}

// RequiredCount is the headcount the room needs.
func (r RoomRequirement) RequiredCount() int {
	if r.SingleStaff {
		return 1
	}
	return 2
}

// Accepts reports whether a staff member may sit in this room.
func (r RoomRequirement) Accepts(m StaffMember) bool {
	if r.GirlsOnly {
		return m.Gender == Female
	}
	return true
}

// Settings holds the descriptive fields printed on the roster
type Settings struct {
	ReportingTime  string `json:"reporting_time"`
	AssessmentName string `json:"assessment_name"`
	ExamTime       string `json:"exam_time"`
	ExamDetails    string `json:"exam_details"`
}

// DateConfig is the full configuration for one exam date
type DateConfig struct {
	Rooms    []RoomRequirement `json:"rooms"`
	Settings Settings          `json:"settings"`
}

// DefaultDateConfig is what an unconfigured date looks like.
func DefaultDateConfig() DateConfig {
	return DateConfig{Rooms: []RoomRequirement{}}
}

// Clone returns a copy that shares no memory with c.
func (c DateConfig) Clone() DateConfig {
	rooms := make([]RoomRequirement, len(c.Rooms))
	copy(rooms, c.Rooms)
	return DateConfig{Rooms: rooms, Settings: c.Settings}
}

// Assignment is the staff placed in one room on one date
type Assignment struct {
	RoomNo string        `json:"room_no"`
	Staff  []StaffMember `json:"staff"`
}

// Allotment maps an exam date (YYYY-MM-DD) to its room assignments
type Allotment map[string][]Assignment

// Requirements is the aggregate staffing need of a set of rooms
type Requirements struct {
	TotalRequired  int `json:"total_required"`
	FemaleRequired int `json:"female_required"`
	MalePossible   int `json:"male_possible"`
}

// Shortfall describes a room that ended the run with fewer staff than it needs
type Shortfall struct {
	Date     string `json:"date"`
	RoomNo   string `json:"room_no"`
	Required int    `json:"required"`
	Assigned int    `json:"assigned"`
}

// Hall is a building in the room catalog
type Hall struct {
	Name  string   `json:"name"`
	Rooms []string `json:"rooms"`
}
