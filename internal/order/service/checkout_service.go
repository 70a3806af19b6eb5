package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"checkout/internal/domain"
	apperrors "checkout/internal/errors"
	"checkout/internal/infrastructure/mysql"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (mysql.Tx, error)
}

type ProductRepository interface {
	FindByIDs(ctx context.Context, q mysql.DBTX, ids []int) ([]domain.Product, error)
}

type CartRepository interface {
	GetItems(ctx context.Context, q mysql.DBTX, ownerID string) ([]domain.CartItem, error)
	Clear(ctx context.Context, q mysql.DBTX, ownerID string) error
}

type OrderRepository interface {
	InsertHeader(ctx context.Context, tx mysql.DBTX, order *domain.Order) (uint, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
}

type OrderItemRepository interface {
	Insert(ctx context.Context, tx mysql.DBTX, item domain.OrderItem) (uint, error)
	FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error)
}

type SequenceAllocator interface {
	NextOrderNumber(ctx context.Context, tx mysql.DBTX, cfg domain.FamilyConfig) (int64, error)
}

// CheckoutCommand is everything the writer needs to turn a cart into an order.
// CartOwnerID keys the cart (registered user id or guest session id); OwnerID
// is the registered identity recorded on the order, nil for guest checkouts.
type CheckoutCommand struct {
	Config         domain.FamilyConfig
	CartOwnerID    string
	OwnerID        *string
	GuestName      *string
	GuestPhone     *string
	GuestEmail     *string
	AddressRef     *string
	EventDate      *time.Time
	DeliverySlot   *string
	IdempotencyKey *string
}

// CheckoutService writes orders. Reading the cart, resolving catalog prices,
// computing totals, allocating the order number, writing header and items and
// clearing the cart all happen in one transaction: a failure at any step rolls
// everything back, so the cart survives a failed checkout untouched and a
// header can never exist without its items.
type CheckoutService struct {
	db            TransactionManager
	productRepo   ProductRepository
	cartRepo      CartRepository
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	sequences     SequenceAllocator
	policy        domain.PricingPolicy
	logger        *zap.Logger
	txTimeout     time.Duration
}

func NewCheckoutService(
	db TransactionManager,
	productRepo ProductRepository,
	cartRepo CartRepository,
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	sequences SequenceAllocator,
	policy domain.PricingPolicy,
	logger *zap.Logger,
	txTimeout time.Duration,
) *CheckoutService {
	return &CheckoutService{
		db:            db,
		productRepo:   productRepo,
		cartRepo:      cartRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		sequences:     sequences,
		policy:        policy,
		logger:        logger,
		txTimeout:     txTimeout,
	}
}

func (s *CheckoutService) PlaceOrder(ctx context.Context, cmd CheckoutCommand) (*domain.Order, error) {
	if cmd.IdempotencyKey != nil {
		existing, err := s.findReplay(ctx, *cmd.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			s.logger.Info("idempotency key replay, returning existing order",
				zap.Int64("orderNumber", existing.OrderNumber), zap.String("family", string(existing.Family)))
			return existing, nil
		}
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// Rollback on every exit path. MySQL ignores it once committed.
	defer tx.Rollback()

	cartItems, err := s.cartRepo.GetItems(txCtx, tx, cmd.CartOwnerID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, apperrors.NewEmptyCartError("cart is empty")
	}

	orderItems, err := s.resolveItems(txCtx, tx, cartItems)
	if err != nil {
		return nil, err
	}

	totals, err := domain.ComputeTotals(orderItems, s.policy)
	if err != nil {
		return nil, err
	}

	orderNumber, err := s.sequences.NextOrderNumber(txCtx, tx, cmd.Config)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		OrderNumber:    orderNumber,
		Family:         cmd.Config.Family,
		OwnerID:        cmd.OwnerID,
		GuestName:      cmd.GuestName,
		GuestPhone:     cmd.GuestPhone,
		GuestEmail:     cmd.GuestEmail,
		AddressRef:     cmd.AddressRef,
		EventDate:      cmd.EventDate,
		DeliverySlot:   cmd.DeliverySlot,
		Status:         domain.OrderStatusPending,
		Totals:         totals,
		IdempotencyKey: cmd.IdempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}

	orderID, err := s.orderRepo.InsertHeader(txCtx, tx, order)
	if err != nil {
		return nil, err
	}
	order.ID = orderID

	for i := range orderItems {
		orderItems[i].OrderID = orderID
		itemID, err := s.orderItemRepo.Insert(txCtx, tx, orderItems[i])
		if err != nil {
			return nil, err
		}
		orderItems[i].ID = itemID
	}
	order.Items = orderItems

	if err := s.cartRepo.Clear(txCtx, tx, cmd.CartOwnerID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit checkout transaction",
			zap.Int64("orderNumber", orderNumber), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("family", string(order.Family)),
		zap.Int64("orderNumber", order.OrderNumber),
		zap.Int("itemCount", len(order.Items)),
		zap.Float64("total", order.Totals.Total),
	)

	return order, nil
}

// resolveItems snapshots catalog prices at order time; a client never supplies
// prices. Missing or withdrawn dishes fail the whole checkout.
func (s *CheckoutService) resolveItems(ctx context.Context, tx mysql.DBTX, cartItems []domain.CartItem) ([]domain.OrderItem, error) {
	ids := make([]int, len(cartItems))
	for i, item := range cartItems {
		ids[i] = item.ProductID
	}

	products, err := s.productRepo.FindByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var details []apperrors.ValidationDetail
	orderItems := make([]domain.OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		product, ok := byID[item.ProductID]
		if !ok || !product.Available() {
			details = append(details, apperrors.ValidationDetail{
				Field:   "productId",
				Message: fmt.Sprintf("product %d is no longer available", item.ProductID),
			})
			continue
		}
		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "quantity",
				Message: "quantity must be at least 1 for product " + strconv.Itoa(item.ProductID),
			})
			continue
		}

		orderItems = append(orderItems, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("cart contains invalid items", details...)
	}

	return orderItems, nil
}

// findReplay looks up an order previously written under the same idempotency
// key. Returns nil when the key is unused.
func (s *CheckoutService) findReplay(ctx context.Context, key string) (*domain.Order, error) {
	order, err := s.orderRepo.FindByIdempotencyKey(ctx, key)
	if err != nil {
		if _, notFound := apperrors.IsNotFoundError(err); notFound {
			return nil, nil
		}
		return nil, err
	}

	items, err := s.orderItemRepo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}
