package database

import (
	"fmt"
	"time"

	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// StaffRecord represents the staff table
type StaffRecord struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Position   int    `gorm:"not null" json:"position"`
	Name       string `gorm:"uniqueIndex;not null" json:"staff_name"`
	Department string `json:"staff_dept"`
	Gender     string `gorm:"size:1;not null" json:"staff_gender"`
}

func (StaffRecord) TableName() string { return "staff" }

// ExcludedStaff represents the excluded_staff table
type ExcludedStaff struct {
	Name      string    `gorm:"primaryKey" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (ExcludedStaff) TableName() string { return "excluded_staff" }

// DateConfigRecord represents the date_configs table, one row per exam date
type DateConfigRecord struct {
	Date           string                   `gorm:"primaryKey;size:10" json:"date"`
	Rooms          []models.RoomRequirement `gorm:"serializer:json" json:"rooms"`
	ReportingTime  string                   `json:"reporting_time"`
	AssessmentName string                   `json:"assessment_name"`
	ExamTime       string                   `json:"exam_time"`
	ExamDetails    string                   `json:"exam_details"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

func (DateConfigRecord) TableName() string { return "date_configs" }

// AllotmentRecord represents the allotments table, one row per exam date
type AllotmentRecord struct {
	Date        string              `gorm:"primaryKey;size:10" json:"date"`
	Assignments []models.Assignment `gorm:"serializer:json" json:"assignments"`
	CreatedAt   time.Time           `json:"created_at"`
}

func (AllotmentRecord) TableName() string { return "allotments" }

// HallRecord represents the halls table
type HallRecord struct {
	Name  string   `gorm:"primaryKey" json:"name"`
	Rooms []string `gorm:"serializer:json" json:"rooms"`
}

func (HallRecord) TableName() string { return "halls" }

// RunStat represents the run_stats table
type RunStat struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Day         string `gorm:"uniqueIndex;not null" json:"day"`
	Runs        int    `gorm:"default:0" json:"runs"`
	Dates       int    `gorm:"default:0" json:"dates"`
	SeatsFilled int    `gorm:"default:0" json:"seats_filled"`
	SeatsShort  int    `gorm:"default:0" json:"seats_short"`
}

// Options selects the database. A non-empty DatabaseURL means postgres,
// otherwise sqlite at DataPath.
type Options struct {
	DatabaseURL string
	DataPath    string
	Debug       bool
}

// InitDB opens the database connection and migrates the schema
func InitDB(opts Options) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if opts.Debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	if opts.DatabaseURL != "" {
		cfg.PrepareStmt = false
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  opts.DatabaseURL,
			PreferSimpleProtocol: true,
		}), cfg)
	} else {
		dbPath := opts.DataPath
		if dbPath == "" {
			dbPath = "allotment.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(&StaffRecord{}, &ExcludedStaff{}, &DateConfigRecord{}, &AllotmentRecord{}, &HallRecord{}, &RunStat{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}
