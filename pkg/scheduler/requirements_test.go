package scheduler_test

import (
	"testing"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/scheduler"
	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	tests := map[string]struct {
		rooms []models.RoomRequirement
		want  models.Requirements
	}{
		"empty": {
			rooms: nil,
			want:  models.Requirements{},
		},
		"plain_double": {
			rooms: []models.RoomRequirement{{RoomNo: "1"}},
			want:  models.Requirements{TotalRequired: 2, MalePossible: 2},
		},
		"mixed": {
			rooms: []models.RoomRequirement{
				{RoomNo: "1"},
				{RoomNo: "2", GirlsOnly: true},
				{RoomNo: "3", SingleStaff: true},
				{RoomNo: "4", GirlsOnly: true, SingleStaff: true},
			},
			want: models.Requirements{TotalRequired: 6, FemaleRequired: 3, MalePossible: 3},
		},
		"all_girls": {
			rooms: []models.RoomRequirement{
				{RoomNo: "1", GirlsOnly: true},
				{RoomNo: "2", GirlsOnly: true, SingleStaff: true},
			},
			want: models.Requirements{TotalRequired: 3, FemaleRequired: 3},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := scheduler.Aggregate(tc.rooms)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got.TotalRequired, got.MalePossible+got.FemaleRequired)
		})
	}
}

func TestCountStaff(t *testing.T) {
	directory := []models.StaffMember{
		{Name: "A", Gender: models.Female},
		{Name: "B", Gender: models.Male},
		{Name: "C", Gender: models.Female},
		{Name: "D", Gender: models.Male},
	}

	st := scheduler.CountStaff(directory, map[string]bool{"C": true})
	assert.Equal(t, scheduler.StaffStats{
		Total:           4,
		Female:          2,
		Male:            2,
		Available:       3,
		AvailableFemale: 1,
		AvailableMale:   2,
	}, st)

	assert.True(t, st.Feasible(models.Requirements{TotalRequired: 3, FemaleRequired: 1}))
	assert.False(t, st.Feasible(models.Requirements{TotalRequired: 3, FemaleRequired: 2}))
	assert.False(t, st.Feasible(models.Requirements{TotalRequired: 4}))
}
