package postgres

import (
	"context"
	"errors"
	"time"

	"shirtshop/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

func (r *OrdersRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *OrdersRepository) FindByID(ctx context.Context, id string) (domain.Order, error) {
	var order domain.Order
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.NotFoundf("order not found: %s", id)
		}
		return domain.Order{}, err
	}

	return order, nil
}

func (r *OrdersRepository) FindOpenByUser(ctx context.Context, userID string, now time.Time) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status IN ?", statusStrings(domain.OpenStatuses)).
		Where("expires_at > ?", now).
		Order("created_at DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &order, nil
}

func (r *OrdersRepository) FindByUser(ctx context.Context, userID string, statuses []domain.OrderStatus, page, size int) ([]domain.Order, int64, error) {
	query := r.DB.WithContext(ctx).Model(&domain.Order{}).Where("user_id = ?", userID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statusStrings(statuses))
	}

	return pageOrders(query, page, size)
}

func (r *OrdersRepository) FindForAdmin(ctx context.Context, keyword string, statuses []domain.OrderStatus, page, size int) ([]domain.Order, int64, error) {
	query := r.DB.WithContext(ctx).Model(&domain.Order{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statusStrings(statuses))
	}
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where(
			"id ILIKE ? OR user_id ILIKE ? OR tracking_tag ILIKE ? OR status_note ILIKE ?",
			like, like, like, like,
		)
	}

	return pageOrders(query, page, size)
}

func (r *OrdersRepository) FindExpired(ctx context.Context, before time.Time, limit int) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.DB.WithContext(ctx).
		Where("status = ?", string(domain.StatusPendingPayment)).
		Where("expires_at < ?", before).
		Order("expires_at ASC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateWithStatusGuard writes the order only while its stored status still
// matches expected. The WHERE clause is the whole concurrency story: a lost
// race shows up as zero affected rows, never as a silent overwrite.
func (r *OrdersRepository) UpdateWithStatusGuard(ctx context.Context, order *domain.Order, expected domain.OrderStatus) error {
	row := r.DB.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND status = ?", order.ID, string(expected)).
		Select("*").
		Updates(order)
	if err := row.Error; err != nil {
		return err
	}
	if row.RowsAffected == 0 {
		return domain.Conflictf("order %s is no longer in status %s", order.ID, expected)
	}

	return nil
}

func pageOrders(query *gorm.DB, page, size int) ([]domain.Order, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	err := query.
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func statusStrings(statuses []domain.OrderStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
