package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"regintel/internal/entity"
	"regintel/pkg/common"
)

// ReportRepository defines the interface for report persistence.
type ReportRepository interface {
	SaveDailyBriefing(ctx context.Context, report *entity.Report, dayStart, dayEnd time.Time) error
	FindDailyBriefing(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*entity.Report, error)
}

// NewReportRepository creates a new GORM-based report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

type reportRepository struct {
	db *gorm.DB
}

// SaveDailyBriefing stores the briefing for the report's user and day.
// Any briefing already persisted for that day is replaced inside the same
// transaction, which gives regeneration upsert-by-day semantics.
func (r *reportRepository) SaveDailyBriefing(ctx context.Context, report *entity.Report, dayStart, dayEnd time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND type = ? AND created_at >= ? AND created_at <= ?",
			report.UserID, common.ReportTypeDailyBriefing, dayStart, dayEnd).
			Delete(&entity.Report{}).Error
		if err != nil {
			return err
		}
		return tx.Create(report).Error
	})
}

// FindDailyBriefing returns the stored briefing for the day, or nil when
// none has been generated.
func (r *reportRepository) FindDailyBriefing(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*entity.Report, error) {
	var report entity.Report
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND created_at >= ? AND created_at <= ?",
			userID, common.ReportTypeDailyBriefing, dayStart, dayEnd).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
