package repository

import (
	"time"

	"gorm.io/gorm"
)

type SequenceRepository interface {
	// Next allocates the next number for (kind, day) atomically. The upsert
	// is evaluated by the database, so concurrent callers on the same day
	// always receive distinct numbers. Must be called inside the workflow's
	// transaction so an aborted workflow can reuse nothing it allocated.
	Next(tx *gorm.DB, kind string, day time.Time) (int, error)
}

type sequenceRepo struct {
	db *gorm.DB
}

func NewSequenceRepo(db *gorm.DB) SequenceRepository {
	return &sequenceRepo{db}
}

func (r *sequenceRepo) Next(tx *gorm.DB, kind string, day time.Time) (int, error) {
	var n int
	err := tx.Raw(
		`INSERT INTO sequence_counters (day, kind, last_no) VALUES (?, ?, 1)
		 ON CONFLICT (day, kind) DO UPDATE SET last_no = sequence_counters.last_no + 1
		 RETURNING last_no`,
		day.Format("20060102"), kind,
	).Scan(&n).Error
	return n, err
}
