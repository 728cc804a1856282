package scheduler

import (
	"strings"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
)

// Aggregate sums the staffing need of the selected rooms. MalePossible
// counts seats that do not demand a female invigilator; either gender may
// fill them.
func Aggregate(rooms []models.RoomRequirement) models.Requirements {
	var req models.Requirements
	for _, room := range rooms {
		n := room.RequiredCount()
		req.TotalRequired += n
		if room.GirlsOnly {
			req.FemaleRequired += n
		}
	}
	req.MalePossible = req.TotalRequired - req.FemaleRequired
	return req
}

// StaffStats summarises the directory against the exclusion set
type StaffStats struct {
	Total           int `json:"total"`
	Female          int `json:"female"`
	Male            int `json:"male"`
	Available       int `json:"available"`
	AvailableFemale int `json:"available_female"`
	AvailableMale   int `json:"available_male"`
}

// CountStaff computes StaffStats for staff, treating excluded names as
// unavailable.
func CountStaff(staff []models.StaffMember, excluded map[string]bool) StaffStats {
	var st StaffStats
	for _, m := range staff {
		st.Total++
		free := !excluded[strings.TrimSpace(m.Name)]
		if free {
			st.Available++
		}
		switch m.Gender {
		case models.Female:
			st.Female++
			if free {
				st.AvailableFemale++
			}
		case models.Male:
			st.Male++
			if free {
				st.AvailableMale++
			}
		}
	}
	return st
}

// Feasible reports whether the available staff could cover req if rooms
// were filled in the most favourable order. It is a pre-check only;
// Allocate still fills rooms strictly in their configured order.
func (st StaffStats) Feasible(req models.Requirements) bool {
	return st.Available >= req.TotalRequired && st.AvailableFemale >= req.FemaleRequired
}
