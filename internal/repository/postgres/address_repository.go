package postgres

import (
	"context"
	"errors"

	"shirtshop/domain"

	"gorm.io/gorm"
)

type AddressRepository struct {
	DB *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{
		DB: db,
	}
}

func (r *AddressRepository) FindByID(ctx context.Context, id string) (domain.Address, error) {
	var address domain.Address
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Address{}, domain.NotFoundf("address not found: %s", id)
		}
		return domain.Address{}, err
	}

	return address, nil
}
