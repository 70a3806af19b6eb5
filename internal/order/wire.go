package order

import (
	"database/sql"

	"go.uber.org/zap"

	cartrepo "checkout/internal/cart/repository"
	catalogrepo "checkout/internal/catalog/repository"
	"checkout/internal/config"
	"checkout/internal/domain"
	"checkout/internal/infrastructure/mysql"
	"checkout/internal/order/controller"
	orderrepo "checkout/internal/order/repository"
	"checkout/internal/order/service"
	"checkout/internal/order/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.CheckoutController {
	txManager := mysql.NewTxManager(db)
	productRepo := catalogrepo.NewMySQLProductRepository(db)
	cartRepo := cartrepo.NewMySQLCartRepository(db)
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	orderItemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	sequenceRepo := orderrepo.NewMySQLSequenceRepository(db)

	checkoutSvc := service.NewCheckoutService(
		txManager,
		productRepo,
		cartRepo,
		orderRepo,
		orderItemRepo,
		sequenceRepo,
		domain.PricingPolicy{
			DeliveryFee: cfg.Order.DeliveryFee,
			TaxRate:     cfg.Order.TaxRate,
		},
		logger,
		cfg.Order.CheckoutTxTimeout,
	)

	placeOrderUC := usecase.NewPlaceOrderUseCase(checkoutSvc, logger, cfg.Order.MaxRetryAttempts)
	getOrderUC := usecase.NewGetOrderUseCase(orderRepo, orderItemRepo, logger)

	return controller.NewCheckoutController(placeOrderUC, getOrderUC, logger)
}
