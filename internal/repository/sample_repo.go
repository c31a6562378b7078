package repository

import (
	"time"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SampleRepository interface {
	FindAll(status model.SampleStatus, customerID *uuid.UUID) ([]model.Sample, error)
	FindByID(id uuid.UUID) (*model.Sample, error)
	CountOverdue(today time.Time) (int64, error)
}

type sampleRepo struct {
	db *gorm.DB
}

func NewSampleRepo(db *gorm.DB) SampleRepository {
	return &sampleRepo{db}
}

func (r *sampleRepo) FindAll(status model.SampleStatus, customerID *uuid.UUID) ([]model.Sample, error) {
	query := r.db.Preload("Customer").Preload("Variant").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	var samples []model.Sample
	err := query.Find(&samples).Error
	return samples, err
}

func (r *sampleRepo) FindByID(id uuid.UUID) (*model.Sample, error) {
	var sample model.Sample
	err := r.db.First(&sample, "id = ?", id).Error
	return &sample, err
}

func (r *sampleRepo) CountOverdue(today time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Sample{}).
		Where("status = ? AND return_due < ?", model.SampleOut, today).
		Count(&count).Error
	return count, err
}
