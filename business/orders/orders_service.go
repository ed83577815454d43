package orders

import (
	"context"
	"io"
	"time"

	"shirtshop/business/promptpay"
	"shirtshop/domain"
	"shirtshop/pkg/logger"
	"shirtshop/pkg/metrics"

	"github.com/google/uuid"
)

const qrImageSize = 360

// OrdersRepository contract interface
type OrdersRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (domain.Order, error)
	// FindOpenByUser returns the newest not-yet-expired open order of the
	// user, or nil when there is none.
	FindOpenByUser(ctx context.Context, userID string, now time.Time) (*domain.Order, error)
	FindByUser(ctx context.Context, userID string, statuses []domain.OrderStatus, page, size int) ([]domain.Order, int64, error)
	FindForAdmin(ctx context.Context, keyword string, statuses []domain.OrderStatus, page, size int) ([]domain.Order, int64, error)
	FindExpired(ctx context.Context, before time.Time, limit int) ([]domain.Order, error)
	// UpdateWithStatusGuard persists the order only while its stored status
	// still equals expected; domain.ErrConflict otherwise. This is what makes
	// concurrent transitions on the same order linearizable.
	UpdateWithStatusGuard(ctx context.Context, order *domain.Order, expected domain.OrderStatus) error
}

// CartRepository contract interface
type CartRepository interface {
	FindByUserID(ctx context.Context, userID string) (domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
}

// AddressRepository contract interface
type AddressRepository interface {
	FindByID(ctx context.Context, id string) (domain.Address, error)
}

// SlipStorage uploads payment evidence and returns the stored artifact URL.
type SlipStorage interface {
	UploadSlip(ctx context.Context, filename string, file io.Reader) (string, error)
}

// InventoryService contract interface
type InventoryService interface {
	DeductOnSlipUploaded(ctx context.Context, order *domain.Order) error
	RestoreOnClosed(ctx context.Context, order *domain.Order) error
}

// SettingsService contract interface
type SettingsService interface {
	GetOrInit(ctx context.Context) (domain.PaymentSettings, error)
}

type OrdersService struct {
	ordersRepo  OrdersRepository
	cartRepo    CartRepository
	addressRepo AddressRepository
	slipStorage SlipStorage
	inventory   InventoryService
	settings    SettingsService
	tags        *TrackingTagGenerator
}

func NewOrdersService(
	ordersRepo OrdersRepository,
	cartRepo CartRepository,
	addressRepo AddressRepository,
	slipStorage SlipStorage,
	inventory InventoryService,
	settings SettingsService,
	tags *TrackingTagGenerator,
) *OrdersService {
	return &OrdersService{
		ordersRepo:  ordersRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		slipStorage: slipStorage,
		inventory:   inventory,
		settings:    settings,
		tags:        tags,
	}
}

// OrderPage is one page of an order listing.
type OrderPage struct {
	Items         []domain.Order `json:"items"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int            `json:"total_pages"`
}

// CreateOrder converts the user's cart into a PENDING_PAYMENT order with a
// PromptPay QR attached. While the user already has an open order that same
// order is returned instead of creating a duplicate.
func (s *OrdersService) CreateOrder(ctx context.Context, userID, addressID string) (domain.Order, error) {
	start := time.Now()

	if addressID == "" {
		return domain.Order{}, domain.Validationf("address id is required")
	}

	now := time.Now()
	existing, err := s.ordersRepo.FindOpenByUser(ctx, userID, now)
	if err != nil {
		return domain.Order{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	// Settings are read fresh per order so admin changes apply to the next
	// order, not to in-flight ones.
	settings, err := s.settings.GetOrInit(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	if !settings.Enabled {
		return domain.Order{}, domain.Conflictf("promptpay payments are disabled")
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(cart.Items) == 0 {
		return domain.Order{}, domain.Validationf("cart is empty")
	}

	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return domain.Order{}, err
	}
	if address.UserID != userID {
		return domain.Order{}, domain.Forbiddenf("address does not belong to caller")
	}

	subTotal := 0
	for _, it := range cart.Items {
		subTotal += it.UnitPrice * it.Quantity
	}
	total := subTotal + cart.ShippingFee
	if total <= 0 {
		return domain.Order{}, domain.Validationf("invalid order total: %d", total)
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: ci.ProductID,
			Name:      ci.Name,
			ImageURL:  ci.ImageURL,
			UnitPrice: ci.UnitPrice,
			Color:     ci.Color,
			Size:      ci.Size,
			Quantity:  ci.Quantity,
		})
	}

	order := domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		SubTotal:        subTotal,
		ShippingFee:     cart.ShippingFee,
		Total:           total,
		PaymentMethod:   domain.PaymentMethodPromptPay,
		Status:          domain.StatusPendingPayment,
		PromptPayTarget: settings.Target,
		ShippingAddress: address.Snapshot(),
		CreatedAt:       now,
		UpdatedAt:       now,
		ExpiresAt:       now.Add(time.Duration(settings.ExpireMinutes) * time.Minute),
	}

	payload, err := promptpay.BuildPayload(settings.Target, total, true)
	if err != nil {
		return domain.Order{}, err
	}
	qrURL, err := promptpay.DataURL(payload, qrImageSize)
	if err != nil {
		// A broken local render must not block checkout.
		logger.Error("qr render failed, using fallback url", err, "order_id", order.ID)
		metrics.QRFallbacks.Inc()
		qrURL = promptpay.FallbackURL(settings.Target, total, qrImageSize)
	}
	order.PromptPayQRURL = qrURL

	if err := s.ordersRepo.Create(ctx, &order); err != nil {
		return domain.Order{}, err
	}

	cart.Items = nil
	cart.ShippingFee = 0
	cart.UpdatedAt = time.Now()
	if err := s.cartRepo.Save(ctx, &cart); err != nil {
		// The order exists either way; an uncleared cart is recoverable.
		logger.Error("failed to clear cart after order creation", err, "order_id", order.ID)
	}

	metrics.OrdersCreated.Inc()
	metrics.OrderCreateLatency.Observe(time.Since(start).Seconds())

	return order, nil
}

// GetOrder returns the order when the caller owns it or is an admin.
func (s *OrdersService) GetOrder(ctx context.Context, orderID, callerID string, isAdmin bool) (domain.Order, error) {
	order, err := s.ordersRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !isAdmin && order.UserID != callerID {
		return domain.Order{}, domain.Forbiddenf("order belongs to another user")
	}

	return order, nil
}

// UploadSlip stores the payment evidence, moves the order to SLIP_UPLOADED
// and debits stock exactly once. Re-uploading while still in SLIP_UPLOADED
// replaces the slip without touching stock again.
func (s *OrdersService) UploadSlip(ctx context.Context, orderID, userID, filename string, file io.Reader) (domain.Order, error) {
	order, err := s.ordersRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.UserID != userID {
		return domain.Order{}, domain.Forbiddenf("order belongs to another user")
	}
	if order.Status.IsTerminal() {
		return domain.Order{}, domain.Conflictf("order already closed: %s", order.Status)
	}

	// A failed upload aborts the transition before any state change.
	slipURL, err := s.slipStorage.UploadSlip(ctx, filename, file)
	if err != nil {
		return domain.Order{}, domain.Upstreamf("slip upload failed: %v", err)
	}

	prev := order.Status

	debited := false
	if !order.StockDeducted {
		if err := s.inventory.DeductOnSlipUploaded(ctx, &order); err != nil {
			return domain.Order{}, err
		}
		order.StockDeducted = true
		order.StockRestored = false
		debited = true
	}

	order.PaymentSlipURL = slipURL
	order.Status = domain.StatusSlipUploaded
	order.UpdatedAt = time.Now()

	if err := s.ordersRepo.UpdateWithStatusGuard(ctx, &order, prev); err != nil {
		if debited {
			// Lost the race (e.g. against the expiry sweep): hand the stock
			// back before reporting the conflict.
			if rerr := s.inventory.RestoreOnClosed(ctx, &order); rerr != nil {
				logger.Error("failed to restore stock after lost transition race", rerr, "order_id", order.ID)
			}
		}
		return domain.Order{}, err
	}

	return order, nil
}

// ListMyOrders pages the caller's own orders, newest first.
func (s *OrdersService) ListMyOrders(ctx context.Context, userID string, statuses []domain.OrderStatus, page, size int) (OrderPage, error) {
	page, size = normalizePage(page, size)

	items, total, err := s.ordersRepo.FindByUser(ctx, userID, statuses, page, size)
	if err != nil {
		return OrderPage{}, err
	}

	return newOrderPage(items, page, size, total), nil
}

// AdminList pages all orders, filterable by status and a keyword over order
// id, user id, tracking tag and status note.
func (s *OrdersService) AdminList(ctx context.Context, keyword string, statuses []domain.OrderStatus, page, size int) (OrderPage, error) {
	page, size = normalizePage(page, size)

	items, total, err := s.ordersRepo.FindForAdmin(ctx, keyword, statuses, page, size)
	if err != nil {
		return OrderPage{}, err
	}

	return newOrderPage(items, page, size, total), nil
}

// AdminChangeStatus moves an order to PAID, REJECTED or CANCELED. Approval
// requires the slip and assigns a tracking tag; the other two credit stock
// back when it had been debited.
func (s *OrdersService) AdminChangeStatus(ctx context.Context, orderID string, next domain.OrderStatus, adminID, note string) (domain.Order, error) {
	switch next {
	case domain.StatusPaid, domain.StatusRejected, domain.StatusCanceled:
	default:
		return domain.Order{}, domain.Validationf("unsupported target status: %s", next)
	}

	order, err := s.ordersRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if !CanTransition(order.Status, next) {
		return domain.Order{}, domain.Conflictf("invalid status transition: %s -> %s", order.Status, next)
	}

	prev := order.Status
	now := time.Now()

	credited := false
	switch next {
	case domain.StatusPaid:
		if order.PaymentSlipURL == "" {
			return domain.Order{}, domain.Conflictf("slip not uploaded")
		}
		order.StatusNote = ""
		order.PaidAt = &now
		if order.TrackingTag == "" {
			order.TrackingTag = s.tags.NextTag(ctx)
		}

	case domain.StatusRejected, domain.StatusCanceled:
		// Only credit what was actually taken; EXPIRED/never-debited orders
		// must leave stock untouched.
		if order.StockDeducted && !order.StockRestored {
			if err := s.inventory.RestoreOnClosed(ctx, &order); err != nil {
				return domain.Order{}, err
			}
			order.StockRestored = true
			credited = true
		}
		order.StatusNote = note
	}

	order.Status = next
	order.VerifiedBy = adminID
	order.VerifiedAt = &now
	order.UpdatedAt = now

	if err := s.ordersRepo.UpdateWithStatusGuard(ctx, &order, prev); err != nil {
		if credited {
			if rerr := s.inventory.DeductOnSlipUploaded(ctx, &order); rerr != nil {
				logger.Error("failed to re-debit stock after lost transition race", rerr, "order_id", order.ID)
			}
		}
		return domain.Order{}, err
	}

	metrics.OrdersClosed.WithLabelValues(string(next)).Inc()

	return order, nil
}

// ExpireOverdue forces overdue PENDING_PAYMENT orders through the EXPIRED
// transition, one bounded batch per call. A bad record is logged and skipped,
// never aborting the batch. Returns the number of orders expired and whether
// a full batch was processed, meaning more work may remain.
func (s *OrdersService) ExpireOverdue(ctx context.Context, batchSize int) (int, bool, error) {
	overdue, err := s.ordersRepo.FindExpired(ctx, time.Now(), batchSize)
	if err != nil {
		return 0, false, err
	}
	if len(overdue) == 0 {
		return 0, false, nil
	}

	expired := 0
	for i := range overdue {
		order := overdue[i]
		if order.Status != domain.StatusPendingPayment {
			// Slip already uploaded or otherwise moved on; human review wins
			// over the timer.
			continue
		}

		order.Status = domain.StatusExpired
		order.UpdatedAt = time.Now()
		if err := s.ordersRepo.UpdateWithStatusGuard(ctx, &order, domain.StatusPendingPayment); err != nil {
			logger.Error("failed to expire order", err, "order_id", order.ID)
			continue
		}
		expired++
		metrics.OrdersExpired.Inc()
	}

	return expired, len(overdue) == batchSize, nil
}

// RestoreCart copies the items of an EXPIRED or REJECTED order back into the
// user's cart so checkout can be retried.
func (s *OrdersService) RestoreCart(ctx context.Context, orderID, userID string) (domain.Cart, error) {
	order, err := s.ordersRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Cart{}, err
	}
	if order.UserID != userID {
		return domain.Cart{}, domain.Forbiddenf("order belongs to another user")
	}
	if order.Status != domain.StatusExpired && order.Status != domain.StatusRejected {
		return domain.Cart{}, domain.Conflictf("only EXPIRED or REJECTED orders can be restored, current status: %s", order.Status)
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		cart = domain.Cart{
			ID:        uuid.NewString(),
			UserID:    userID,
			CreatedAt: time.Now(),
		}
	}

	items := make([]domain.CartItem, 0, len(order.Items))
	for _, oi := range order.Items {
		items = append(items, domain.CartItem{
			ProductID: oi.ProductID,
			Name:      oi.Name,
			ImageURL:  oi.ImageURL,
			UnitPrice: oi.UnitPrice,
			Color:     oi.Color,
			Size:      oi.Size,
			Quantity:  oi.Quantity,
		})
	}
	cart.Items = items
	cart.UpdatedAt = time.Now()

	if err := s.cartRepo.Save(ctx, &cart); err != nil {
		return domain.Cart{}, err
	}

	return cart, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

func newOrderPage(items []domain.Order, page, size int, total int64) OrderPage {
	totalPages := int((total + int64(size) - 1) / int64(size))
	return OrderPage{
		Items:         items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
