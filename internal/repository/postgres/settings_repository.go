package postgres

import (
	"context"
	"errors"

	"shirtshop/domain"

	"gorm.io/gorm"
)

type SettingsRepository struct {
	DB *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{
		DB: db,
	}
}

func (r *SettingsRepository) Find(ctx context.Context, id string) (domain.PaymentSettings, error) {
	var settings domain.PaymentSettings
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PaymentSettings{}, domain.NotFoundf("settings not found: %s", id)
		}
		return domain.PaymentSettings{}, err
	}

	return settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings *domain.PaymentSettings) error {
	return r.DB.WithContext(ctx).Save(settings).Error
}
