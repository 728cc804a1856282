package scheduler

import (
	"strings"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
)

// Pool is the staff still available within one date's run. Take never
// modifies its receiver; callers carry the returned remainder forward.
type Pool []models.StaffMember

// NewPool copies staff so the caller's slice is never reordered.
func NewPool(staff []models.StaffMember) Pool {
	p := make(Pool, len(staff))
	copy(p, staff)
	return p
}

// Take removes up to req.RequiredCount() eligible staff from the front of
// the pool, preserving the order of both the taken members and the rest.
func (p Pool) Take(req models.RoomRequirement) ([]models.StaffMember, Pool) {
	need := req.RequiredCount()
	taken := make([]models.StaffMember, 0, need)
	rest := make(Pool, 0, len(p))
	for _, m := range p {
		if len(taken) < need && req.Accepts(m) {
			taken = append(taken, m)
			continue
		}
		rest = append(rest, m)
	}
	return taken, rest
}

// CountEligible returns how many pool members req would accept.
func (p Pool) CountEligible(req models.RoomRequirement) int {
	n := 0
	for _, m := range p {
		if req.Accepts(m) {
			n++
		}
	}
	return n
}

// FilterExcluded drops every staff member whose trimmed name is in excluded.
func FilterExcluded(staff []models.StaffMember, excluded map[string]bool) []models.StaffMember {
	out := make([]models.StaffMember, 0, len(staff))
	for _, m := range staff {
		if excluded[strings.TrimSpace(m.Name)] {
			continue
		}
		out = append(out, m)
	}
	return out
}
