package repository

import (
	"context"
	"fmt"
	"time"

	"payexsync/dto/model"

	"gorm.io/gorm"
)

type AdminNoticeRepository struct {
	DB *gorm.DB
}

func NewAdminNoticeRepository(db *gorm.DB) *AdminNoticeRepository {
	return &AdminNoticeRepository{DB: db}
}

func (r *AdminNoticeRepository) Create(ctx context.Context, notice *model.AdminNotice) error {
	if err := r.DB.WithContext(ctx).Create(notice).Error; err != nil {
		return fmt.Errorf("failed to store admin notice: %w", err)
	}
	return nil
}

// TakePending returns notices not shown yet and marks them shown.
func (r *AdminNoticeRepository) TakePending(ctx context.Context) ([]model.AdminNotice, error) {
	var notices []model.AdminNotice
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shown_at IS NULL").Order("created_at").Find(&notices).Error; err != nil {
			return err
		}
		if len(notices) == 0 {
			return nil
		}

		ids := make([]string, len(notices))
		for i, n := range notices {
			ids[i] = n.ID
		}
		now := time.Now()
		if err := tx.Model(&model.AdminNotice{}).Where("id IN ?", ids).Update("shown_at", now).Error; err != nil {
			return err
		}
		for i := range notices {
			notices[i].ShownAt = &now
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin notices: %w", err)
	}
	return notices, nil
}
