package database

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	allocerrors "github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/errors"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository reads and writes every persisted record. Each Save* call
// replaces the whole table it owns.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// LoadConfigs returns every stored date configuration.
func (r *Repository) LoadConfigs(ctx context.Context) (map[string]models.DateConfig, error) {
	var rows []DateConfigRecord
	if err := r.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]models.DateConfig, len(rows))
	for _, row := range rows {
		rooms := row.Rooms
		if rooms == nil {
			rooms = []models.RoomRequirement{}
		}
		out[row.Date] = models.DateConfig{
			Rooms: rooms,
			Settings: models.Settings{
				ReportingTime:  row.ReportingTime,
				AssessmentName: row.AssessmentName,
				ExamTime:       row.ExamTime,
				ExamDetails:    row.ExamDetails,
			},
		}
	}
	return out, nil
}

// SaveConfigs replaces all stored date configurations.
func (r *Repository) SaveConfigs(ctx context.Context, configs map[string]models.DateConfig) error {
	rows := make([]DateConfigRecord, 0, len(configs))
	for date, cfg := range configs {
		rows = append(rows, DateConfigRecord{
			Date:           date,
			Rooms:          cfg.Rooms,
			ReportingTime:  cfg.Settings.ReportingTime,
			AssessmentName: cfg.Settings.AssessmentName,
			ExamTime:       cfg.Settings.ExamTime,
			ExamDetails:    cfg.Settings.ExamDetails,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&DateConfigRecord{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// LoadExclusions returns the excluded staff names.
func (r *Repository) LoadExclusions(ctx context.Context) ([]string, error) {
	var rows []ExcludedStaff
	if err := r.DB.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	return names, nil
}

// SaveExclusions replaces the excluded staff list.
func (r *Repository) SaveExclusions(ctx context.Context, names []string) error {
	rows := make([]ExcludedStaff, 0, len(names))
	for _, n := range names {
		rows = append(rows, ExcludedStaff{Name: n})
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&ExcludedStaff{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// LoadStaff returns the staff directory in upload order.
func (r *Repository) LoadStaff(ctx context.Context) ([]models.StaffMember, error) {
	var rows []StaffRecord
	if err := r.DB.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, &allocerrors.StorageError{Op: "load", Key: "staff", Err: err}
	}
	staff := make([]models.StaffMember, 0, len(rows))
	for _, row := range rows {
		staff = append(staff, models.StaffMember{
			Name:       row.Name,
			Department: row.Department,
			Gender:     models.Gender(row.Gender),
		})
	}
	return staff, nil
}

// ReplaceStaff stores staff as the new directory.
func (r *Repository) ReplaceStaff(ctx context.Context, staff []models.StaffMember) error {
	rows := make([]StaffRecord, 0, len(staff))
	for i, m := range staff {
		rows = append(rows, StaffRecord{
			Position:   i,
			Name:       m.Name,
			Department: m.Department,
			Gender:     string(m.Gender),
		})
	}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&StaffRecord{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return &allocerrors.StorageError{Op: "save", Key: "staff", Err: err}
	}
	return nil
}

// LoadAllotment returns the last saved allotment.
func (r *Repository) LoadAllotment(ctx context.Context) (models.Allotment, error) {
	var rows []AllotmentRecord
	if err := r.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, &allocerrors.StorageError{Op: "load", Key: "allotment", Err: err}
	}
	out := make(models.Allotment, len(rows))
	for _, row := range rows {
		out[row.Date] = row.Assignments
	}
	return out, nil
}

// SaveAllotment replaces the stored allotment with a.
func (r *Repository) SaveAllotment(ctx context.Context, a models.Allotment) error {
	rows := make([]AllotmentRecord, 0, len(a))
	for date, assignments := range a {
		rows = append(rows, AllotmentRecord{Date: date, Assignments: assignments})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&AllotmentRecord{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return &allocerrors.StorageError{Op: "save", Key: "allotment", Err: err}
	}
	return nil
}

// ListHalls returns the room catalog ordered by hall name.
func (r *Repository) ListHalls(ctx context.Context) ([]models.Hall, error) {
	var rows []HallRecord
	if err := r.DB.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, &allocerrors.StorageError{Op: "load", Key: "halls", Err: err}
	}
	halls := make([]models.Hall, 0, len(rows))
	for _, row := range rows {
		rooms := row.Rooms
		if rooms == nil {
			rooms = []string{}
		}
		halls = append(halls, models.Hall{Name: row.Name, Rooms: rooms})
	}
	return halls, nil
}

// SeedHalls fills an empty hall catalog. Once any hall exists the catalog
// is left alone, so halls deleted through the API stay deleted.
func (r *Repository) SeedHalls(ctx context.Context, halls map[string][]string) error {
	if len(halls) == 0 {
		return nil
	}
	var count int64
	if err := r.DB.WithContext(ctx).Model(&HallRecord{}).Count(&count).Error; err != nil {
		return &allocerrors.StorageError{Op: "seed", Key: "halls", Err: err}
	}
	if count > 0 {
		return nil
	}
	rows := make([]HallRecord, 0, len(halls))
	for name, rooms := range halls {
		rows = append(rows, HallRecord{Name: strings.TrimSpace(name), Rooms: rooms})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	if err != nil {
		return &allocerrors.StorageError{Op: "seed", Key: "halls", Err: err}
	}
	return nil
}

// AddHall creates an empty hall.
func (r *Repository) AddHall(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return allocerrors.ErrEmptyName
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&HallRecord{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return &allocerrors.StorageError{Op: "load", Key: name, Err: err}
		}
		if count > 0 {
			return allocerrors.ErrHallExists
		}
		if err := tx.Create(&HallRecord{Name: name, Rooms: []string{}}).Error; err != nil {
			return &allocerrors.StorageError{Op: "save", Key: name, Err: err}
		}
		return nil
	})
}

// DeleteHall removes a hall and its rooms.
func (r *Repository) DeleteHall(ctx context.Context, name string) error {
	res := r.DB.WithContext(ctx).Where("name = ?", name).Delete(&HallRecord{})
	if res.Error != nil {
		return &allocerrors.StorageError{Op: "delete", Key: name, Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return allocerrors.ErrHallNotFound
	}
	return nil
}

// AddRoom appends a room to a hall, creating the hall if needed.
func (r *Repository) AddRoom(ctx context.Context, hall, room string) error {
	hall = strings.TrimSpace(hall)
	room = strings.TrimSpace(room)
	if hall == "" || room == "" {
		return allocerrors.ErrEmptyName
	}
	return r.updateHall(ctx, hall, true, func(h *HallRecord) error {
		for _, existing := range h.Rooms {
			if existing == room {
				return allocerrors.ErrRoomExists
			}
		}
		h.Rooms = append(h.Rooms, room)
		return nil
	})
}

// DeleteRoom removes a room from a hall.
func (r *Repository) DeleteRoom(ctx context.Context, hall, room string) error {
	return r.updateHall(ctx, hall, false, func(h *HallRecord) error {
		for i, existing := range h.Rooms {
			if existing == room {
				h.Rooms = append(h.Rooms[:i], h.Rooms[i+1:]...)
				return nil
			}
		}
		return allocerrors.ErrRoomNotFound
	})
}

func (r *Repository) updateHall(ctx context.Context, name string, create bool, fn func(*HallRecord) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var h HallRecord
		isNew := false
		err := tx.Where("name = ?", name).First(&h).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound) && create:
			h = HallRecord{Name: name, Rooms: []string{}}
			isNew = true
		case errors.Is(err, gorm.ErrRecordNotFound):
			return allocerrors.ErrHallNotFound
		case err != nil:
			return &allocerrors.StorageError{Op: "load", Key: name, Err: err}
		}
		if err := fn(&h); err != nil {
			return err
		}
		if isNew {
			err = tx.Create(&h).Error
		} else {
			err = tx.Save(&h).Error
		}
		if err != nil {
			return &allocerrors.StorageError{Op: "save", Key: name, Err: err}
		}
		return nil
	})
}

// RecordRun adds one allocation run to today's statistics using an upsert
func (r *Repository) RecordRun(ctx context.Context, dates, filled, short int) error {
	today := time.Now().Format(models.DateLayout)

	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"runs":         gorm.Expr("runs + ?", 1),
			"dates":        gorm.Expr("dates + ?", dates),
			"seats_filled": gorm.Expr("seats_filled + ?", filled),
			"seats_short":  gorm.Expr("seats_short + ?", short),
		}),
	}).Create(&RunStat{
		Day:         today,
		Runs:        1,
		Dates:       dates,
		SeatsFilled: filled,
		SeatsShort:  short,
	}).Error
	if err != nil {
		return &allocerrors.StorageError{Op: "save", Key: "run_stats", Err: err}
	}
	return nil
}

// RecentRuns returns the latest run statistics, newest first.
func (r *Repository) RecentRuns(ctx context.Context, limit int) ([]RunStat, error) {
	var stats []RunStat
	if err := r.DB.WithContext(ctx).Order("day desc").Limit(limit).Find(&stats).Error; err != nil {
		return nil, &allocerrors.StorageError{Op: "load", Key: "run_stats", Err: err}
	}
	return stats, nil
}
