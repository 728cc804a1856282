package scheduler

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	allocerrors "github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/errors"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/metrics"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
)

// Shuffler reorders n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Scheduler assigns invigilators to rooms one exam date at a time
type Scheduler struct {
	rng Shuffler
}

// NewScheduler creates a scheduler drawing from rng, or from a time-seeded
// source when rng is nil.
func NewScheduler(rng Shuffler) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scheduler{rng: rng}
}

// NewSeededScheduler is NewScheduler with a fixed seed; seed 0 means random.
func NewSeededScheduler(seed int64) *Scheduler {
	if seed == 0 {
		return NewScheduler(nil)
	}
	return NewScheduler(rand.New(rand.NewSource(seed)))
}

// Allocate fills rooms in the order given from a shuffled copy of staff.
// Each room takes eligible staff from the front of what is left, so an
// early room can starve a later one. Running out of staff is not an error;
// the room simply gets a short (possibly empty) assignment.
func (s *Scheduler) Allocate(date string, staff []models.StaffMember, rooms []models.RoomRequirement) ([]models.Assignment, error) {
	if err := checkStaff(date, staff); err != nil {
		return nil, err
	}
	if err := checkRooms(date, rooms); err != nil {
		return nil, err
	}

	pool := NewPool(staff)
	if len(pool) > 1 {
		s.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}

	assignments := make([]models.Assignment, 0, len(rooms))
	for _, room := range rooms {
		var taken []models.StaffMember
		taken, pool = pool.Take(room)
		assignments = append(assignments, models.Assignment{
			RoomNo: room.RoomNo,
			Staff:  taken,
		})
	}
	return assignments, nil
}

// AllocateAll runs Allocate for every configured date in date order. Each
// date starts again from the full staff list.
func (s *Scheduler) AllocateAll(staff []models.StaffMember, configs map[string]models.DateConfig) (models.Allotment, []models.Shortfall, error) {
	start := time.Now()
	metrics.ResetRunGauges()
	metrics.RunsTotal.Inc()

	dates := make([]string, 0, len(configs))
	for date := range configs {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	allotment := make(models.Allotment, len(dates))
	var shortfalls []models.Shortfall
	demanded, assigned := 0, 0

	for _, date := range dates {
		rooms := configs[date].Rooms
		assignments, err := s.Allocate(date, staff, rooms)
		if err != nil {
			return nil, nil, fmt.Errorf("allocating %s: %w", date, err)
		}
		allotment[date] = assignments

		short := FindShortfalls(date, rooms, assignments)
		shortfalls = append(shortfalls, short...)
		for i, room := range rooms {
			demanded += room.RequiredCount()
			assigned += len(assignments[i].Staff)
		}
	}

	metrics.SeatsDemanded.Set(float64(demanded))
	metrics.SeatsAssigned.Set(float64(assigned))
	metrics.SeatsUnmet.Set(float64(demanded - assigned))
	metrics.ShortRooms.Set(float64(len(shortfalls)))
	metrics.RunDurationSeconds.Observe(time.Since(start).Seconds())

	return allotment, shortfalls, nil
}

// FindShortfalls lists the rooms whose assignment is below the required
// headcount. assignments must be the output of Allocate for rooms.
func FindShortfalls(date string, rooms []models.RoomRequirement, assignments []models.Assignment) []models.Shortfall {
	var out []models.Shortfall
	for i, room := range rooms {
		if i >= len(assignments) {
			break
		}
		if got := len(assignments[i].Staff); got < room.RequiredCount() {
			out = append(out, models.Shortfall{
				Date:     date,
				RoomNo:   room.RoomNo,
				Required: room.RequiredCount(),
				Assigned: got,
			})
		}
	}
	return out
}

func checkStaff(date string, staff []models.StaffMember) error {
	for _, m := range staff {
		if strings.TrimSpace(m.Name) == "" {
			return &allocerrors.InputSchemaError{Date: date, Field: "staff_name", Err: allocerrors.ErrEmptyName}
		}
		if !m.Gender.Valid() {
			return &allocerrors.InputSchemaError{
				Date:  date,
				Field: "staff_gender",
				Err:   fmt.Errorf("%w %q for %s", allocerrors.ErrInvalidGender, m.Gender, m.Name),
			}
		}
	}
	return nil
}

func checkRooms(date string, rooms []models.RoomRequirement) error {
	seen := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		no := strings.TrimSpace(room.RoomNo)
		if no == "" {
			return &allocerrors.InputSchemaError{Date: date, Field: "room_no", Err: allocerrors.ErrEmptyName}
		}
		if seen[no] {
			return &allocerrors.InputSchemaError{Date: date, Room: no, Field: "room_no", Err: allocerrors.ErrDuplicateRoom}
		}
		seen[no] = true
	}
	return nil
}
