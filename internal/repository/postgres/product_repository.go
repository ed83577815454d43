package postgres

import (
	"context"
	"errors"

	"shirtshop/business/inventory"
	"shirtshop/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	var product domain.Product
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.NotFoundf("product not found: %s", id)
		}
		return domain.Product{}, err
	}

	return product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context, category string, page, size int) ([]domain.Product, int64, error) {
	query := r.DB.WithContext(ctx).Model(&domain.Product{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []domain.Product
	err := query.
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductRepository) FindBelowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Where("stock_quantity <= ?", threshold).
		Order("stock_quantity ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	row := r.DB.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Select("*").
		Updates(product)
	if err := row.Error; err != nil {
		return err
	}
	if row.RowsAffected == 0 {
		return domain.NotFoundf("product not found: %s", product.ID)
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	row := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if err := row.Error; err != nil {
		return err
	}
	if row.RowsAffected == 0 {
		return domain.NotFoundf("product not found: %s", id)
	}

	return nil
}

// FindAllByIDForUpdate loads the products with their rows locked. Callers run
// it inside Transaction so the lock holds until the batch commits.
func (r *ProductRepository) FindAllByIDForUpdate(ctx context.Context, ids []string) ([]domain.Product, error) {
	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *ProductRepository) SaveAll(ctx context.Context, products []*domain.Product) error {
	for _, p := range products {
		row := r.DB.WithContext(ctx).
			Model(&domain.Product{}).
			Where("id = ?", p.ID).
			Select("*").
			Updates(p)
		if err := row.Error; err != nil {
			return err
		}
		if row.RowsAffected == 0 {
			return domain.NotFoundf("product not found: %s", p.ID)
		}
	}

	return nil
}

func (r *ProductRepository) Transaction(ctx context.Context, fn func(inventory.ProductRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ProductRepository{DB: tx})
	})
}
