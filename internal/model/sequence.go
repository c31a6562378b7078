package model

// SequenceCounter backs the day-scoped sale/return number generators.
// The (Day, Kind) row is upserted atomically so concurrent workflows on the
// same day never hand out the same number.
type SequenceCounter struct {
	Day    string `gorm:"type:varchar(8);primaryKey" json:"day"` // YYYYMMDD
	Kind   string `gorm:"type:varchar(10);primaryKey" json:"kind"`
	LastNo int    `gorm:"not null;default:0" json:"last_no"`
}
