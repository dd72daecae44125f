package agent

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Database interface {
	CreateRunRecord(r *RunRecord) error
	GetRunRecord(id uint) (*RunRecord, error)
	GetRunRecordsByThread(threadID string) ([]*RunRecord, error)
	GetUsageSummary() (*UsageSummary, error)
	Close() error
}

// RunRecord is one row per Drive call, written whatever the outcome
type RunRecord struct {
	ID               uint `gorm:"primaryKey"`
	RequestID        string
	ThreadID         string
	RunID            string
	AssistantID      string
	Status           string
	Attempts         int
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	StartedAt        time.Time
	Duration         time.Duration
}

type UsageSummary struct {
	TotalRuns        int64
	CompletedRuns    int64
	TotalTokens      int64
	PromptTokens     int64
	CompletionTokens int64
}

type DB struct {
	*gorm.DB
}

func NewDB(dsn string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&RunRecord{})
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

func (db *DB) CreateRunRecord(r *RunRecord) error {
	return db.DB.Create(r).Error
}

func (db *DB) GetRunRecord(id uint) (*RunRecord, error) {
	var r RunRecord
	err := db.DB.First(&r, id).Error
	return &r, err
}

func (db *DB) GetRunRecordsByThread(threadID string) ([]*RunRecord, error) {
	var records []*RunRecord
	err := db.DB.Where(&RunRecord{ThreadID: threadID}).Find(&records).Error
	return records, err
}

func (db *DB) GetUsageSummary() (*UsageSummary, error) {
	var summary UsageSummary

	err := db.DB.Model(&RunRecord{}).Count(&summary.TotalRuns).Error
	if err != nil {
		return nil, err
	}

	err = db.DB.Model(&RunRecord{}).
		Where(&RunRecord{Status: OutcomeCompleted.String()}).
		Count(&summary.CompletedRuns).Error
	if err != nil {
		return nil, err
	}

	row := db.DB.Model(&RunRecord{}).
		Select(
			"COALESCE(SUM(total_tokens), 0)",
			"COALESCE(SUM(prompt_tokens), 0)",
			"COALESCE(SUM(completion_tokens), 0)",
		).
		Row()
	err = row.Scan(
		&summary.TotalTokens,
		&summary.PromptTokens,
		&summary.CompletionTokens,
	)
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
