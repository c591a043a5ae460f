package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPendingPayment OrderStatus = "pending-payment"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusReturned       OrderStatus = "returned"
	OrderStatusRefunded       OrderStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash-on-delivery"
	PaymentOnlineGateway  PaymentMethod = "online-gateway"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCashOnDelivery || m == PaymentOnlineGateway
}

type (
	Order struct {
		ID                int64
		UserID            string
		Status            OrderStatus
		Total             float64
		PaymentMethod     PaymentMethod
		PaymentRef        string
		ShippingAddressID int64
		BillingAddressID  int64
		CreatedAt         time.Time
		Items             []OrderItem
	}

	// OrderItem snapshots the product name and unit price at the time
	// of purchase, decoupled from later catalog edits.
	OrderItem struct {
		ID          int64
		OrderID     int64
		VariantID   int64
		ProductName string
		Price       float64
		Quantity    int
	}
)

type (
	CheckoutLine struct {
		VariantID int64
		Quantity  int
	}

	CheckoutRequest struct {
		UserID            string
		Lines             []CheckoutLine
		ShippingAddressID int64
		BillingAddressID  int64
		PaymentMethod     PaymentMethod
	}

	// OrderPlacement is the checkout result. RedirectURL is set only
	// for the online gateway method.
	OrderPlacement struct {
		OrderID     int64
		RedirectURL string
	}
)
