package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CheckoutPlacer = (*CheckoutService)(nil)
var _ port.OrdersReader = (*CheckoutService)(nil)

// PaymentConfig carries the gateway parameters the checkout needs to
// initialize an online transaction.
type PaymentConfig struct {
	Currency    string
	CallbackURL string
}

// CheckoutService turns a validated set of cart lines into an order.
// The order row, its items and the cart clearing commit in one
// storage transaction; the gateway call happens after the commit.
type CheckoutService struct {
	orders     port.OrdersStorage
	variants   port.VariantsStorage
	catalog    port.CatalogStorage
	profiles   port.ProfilesStorage
	gateway    port.PaymentGateway
	events     port.OrderEventsProducer
	paymentCfg PaymentConfig
}

func NewCheckout(
	orders port.OrdersStorage,
	variants port.VariantsStorage,
	catalog port.CatalogStorage,
	profiles port.ProfilesStorage,
	gateway port.PaymentGateway,
	events port.OrderEventsProducer,
	paymentCfg PaymentConfig,
) CheckoutService {
	return CheckoutService{
		orders, variants, catalog, profiles, gateway, events, paymentCfg,
	}
}

func (s CheckoutService) PlaceOrder(
	ctx context.Context, req domain.CheckoutRequest,
) (domain.OrderPlacement, error) {
	const op = "CheckoutService.PlaceOrder"
	log := slog.With("op", op, "user", req.UserID)

	if err := ctx.Err(); err != nil {
		return domain.OrderPlacement{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateCheckout(req); err != nil {
		return domain.OrderPlacement{}, fmt.Errorf("%s: %w", op, err)
	}

	items, total, err := s.composeItems(ctx, req.Lines)
	if err != nil {
		return domain.OrderPlacement{}, fmt.Errorf("%s: %w", op, err)
	}

	order := domain.Order{
		UserID:            req.UserID,
		Status:            initialStatus(req.PaymentMethod),
		Total:             total,
		PaymentMethod:     req.PaymentMethod,
		PaymentRef:        uuid.NewString(),
		ShippingAddressID: req.ShippingAddressID,
		BillingAddressID:  req.BillingAddressID,
		Items:             items,
	}

	order, err = s.orders.CreateOrder(ctx, order)
	if err != nil {
		return domain.OrderPlacement{}, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("order created", "orderID", order.ID, "total", order.Total)

	s.emitOrderPlaced(ctx, order)

	placement := domain.OrderPlacement{OrderID: order.ID}
	if req.PaymentMethod == domain.PaymentCashOnDelivery {
		return placement, nil
	}

	url, err := s.initPayment(ctx, order)
	if err != nil {
		// the order is committed and stays pending-payment
		return domain.OrderPlacement{}, fmt.Errorf("%s: %w", op, err)
	}
	placement.RedirectURL = url
	return placement, nil
}

// composeItems resolves every line against the current variant data
// and snapshots name and price. A single unresolvable variant fails
// the whole checkout, before anything is persisted.
func (s CheckoutService) composeItems(
	ctx context.Context, lines []domain.CheckoutLine,
) ([]domain.OrderItem, float64, error) {
	variantIDs := make([]int64, 0, len(lines))
	for _, l := range lines {
		variantIDs = append(variantIDs, l.VariantID)
	}

	variants, err := s.variants.VariantsByIDs(ctx, variantIDs)
	if err != nil {
		return nil, 0, err
	}

	productIDs := make([]int64, 0, len(variants))
	for _, v := range variants {
		productIDs = append(productIDs, v.ProductID)
	}

	products := map[int64]domain.Product{}
	if len(productIDs) != 0 {
		products, err = s.catalog.ProductsByIDs(ctx, productIDs)
		if err != nil {
			return nil, 0, err
		}
	}

	var total float64
	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		v, ok := variants[l.VariantID]
		if !ok {
			return nil, 0, fmt.Errorf(
				"variant %d: %w", l.VariantID, domain.ErrVariantNotFound,
			)
		}

		items = append(items, domain.OrderItem{
			VariantID:   v.ID,
			ProductName: products[v.ProductID].Name,
			Price:       v.Price,
			Quantity:    l.Quantity,
		})
		total += v.Price * float64(l.Quantity)
	}
	return items, roundMoney(total), nil
}

func (s CheckoutService) initPayment(
	ctx context.Context, order domain.Order,
) (string, error) {
	profile, err := s.profiles.ByUser(ctx, order.UserID)
	if err != nil {
		return "", err
	}

	url, err := s.gateway.InitTransaction(ctx, port.PaymentRequest{
		Amount:      minorUnits(order.Total),
		Currency:    s.paymentCfg.Currency,
		Reference:   order.PaymentRef,
		Email:       profile.Email,
		CallbackURL: s.paymentCfg.CallbackURL,
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

// emitOrderPlaced is best-effort: a broker outage must not fail an
// already committed order.
func (s CheckoutService) emitOrderPlaced(ctx context.Context, order domain.Order) {
	const op = "CheckoutService.emitOrderPlaced"

	if s.events == nil {
		return
	}
	if err := s.events.ProduceOrderPlaced(ctx, order); err != nil {
		slog.Warn("failed to produce order event",
			"op", op, "orderID", order.ID, "err", err)
	}
}

func (s CheckoutService) ConfirmPayment(
	ctx context.Context, paymentRef string,
) error {
	const op = "CheckoutService.ConfirmPayment"

	if paymentRef == "" {
		return fmt.Errorf("%s: %w", op, domain.ErrValidation)
	}

	order, err := s.orders.OrderByPaymentRef(ctx, paymentRef)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if order.Status != domain.OrderStatusPendingPayment {
		return nil
	}

	err = s.orders.SetStatus(ctx, order.ID, domain.OrderStatusProcessing)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CheckoutService) ListOrders(
	ctx context.Context, userID string,
) ([]domain.Order, error) {
	const op = "CheckoutService.ListOrders"

	os, err := s.orders.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return os, nil
}

func (s CheckoutService) GetOrder(
	ctx context.Context, userID string, orderID int64,
) (domain.Order, error) {
	const op = "CheckoutService.GetOrder"

	o, err := s.orders.OrderByID(ctx, userID, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func validateCheckout(req domain.CheckoutRequest) error {
	if req.UserID == "" || !req.PaymentMethod.Valid() {
		return domain.ErrValidation
	}
	if req.ShippingAddressID <= 0 || req.BillingAddressID <= 0 {
		return domain.ErrValidation
	}
	if len(req.Lines) == 0 {
		return domain.ErrEmptyCart
	}
	for _, l := range req.Lines {
		if l.VariantID <= 0 || l.Quantity <= 0 {
			return domain.ErrValidation
		}
	}
	return nil
}

func initialStatus(m domain.PaymentMethod) domain.OrderStatus {
	if m == domain.PaymentOnlineGateway {
		return domain.OrderStatusPendingPayment
	}
	return domain.OrderStatusPending
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func minorUnits(v float64) int64 {
	return int64(math.Round(v * 100))
}
