package postgres

import (
	"context"
	"errors"

	"shirtshop/domain"

	"gorm.io/gorm"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{
		DB: db,
	}
}

func (r *CartRepository) FindByUserID(ctx context.Context, userID string) (domain.Cart, error) {
	var cart domain.Cart
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Cart{}, domain.NotFoundf("cart not found for user %s", userID)
		}
		return domain.Cart{}, err
	}

	return cart, nil
}

// Save upserts by primary key, so clearing and refilling both go through the
// same call.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	return r.DB.WithContext(ctx).Save(cart).Error
}
