package models_test

import (
	"testing"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGender(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    models.Gender
		wantErr bool
	}{
		"M":           {input: "M", want: models.Male},
		"male_lower":  {input: "male", want: models.Male},
		"Mr":          {input: " Mr ", want: models.Male},
		"F":           {input: "F", want: models.Female},
		"Female":      {input: "Female", want: models.Female},
		"Ms":          {input: "ms", want: models.Female},
		"Mrs":         {input: "MRS", want: models.Female},
		"empty":       {input: "", wantErr: true},
		"unknown":     {input: "X", wantErr: true},
		"Dr_rejected": {input: "Dr", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := models.ParseGender(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				assert.False(t, got.Valid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRoomRequirement(t *testing.T) {
	assert.Equal(t, 2, models.RoomRequirement{RoomNo: "101"}.RequiredCount())
	assert.Equal(t, 1, models.RoomRequirement{RoomNo: "101", SingleStaff: true}.RequiredCount())

	girls := models.RoomRequirement{RoomNo: "102", GirlsOnly: true}
	assert.True(t, girls.Accepts(models.StaffMember{Name: "A", Gender: models.Female}))
	assert.False(t, girls.Accepts(models.StaffMember{Name: "B", Gender: models.Male}))

	open := models.RoomRequirement{RoomNo: "103"}
	assert.True(t, open.Accepts(models.StaffMember{Name: "B", Gender: models.Male}))
}

func TestDateConfigClone(t *testing.T) {
	cfg := models.DateConfig{Rooms: []models.RoomRequirement{{RoomNo: "101"}}}
	clone := cfg.Clone()
	clone.Rooms[0].RoomNo = "999"
	assert.Equal(t, "101", cfg.Rooms[0].RoomNo)
}

func TestExamDates(t *testing.T) {
	// 2024-03-09 is a Saturday, 2024-03-10 a Sunday.
	dates, err := models.ExamDates("2024-03-08", "2024-03-11", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-08", "2024-03-09", "2024-03-11"}, dates)

	dates, err = models.ExamDates("2024-03-08", "2024-03-11", false)
	require.NoError(t, err)
	assert.Len(t, dates, 4)

	dates, err = models.ExamDates("2024-03-10", "2024-03-10", true)
	require.NoError(t, err)
	assert.Empty(t, dates)

	_, err = models.ExamDates("2024-03-11", "2024-03-08", true)
	assert.Error(t, err)

	_, err = models.ExamDates("08-03-2024", "2024-03-11", true)
	assert.Error(t, err)
}
