package port

import (
	"context"
	"io"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Inbound ports, implemented by the core services.

type CatalogReader interface {
	ListProducts(context.Context, domain.CatalogQuery) (domain.CatalogPage, error)
	GetProduct(ctx context.Context, slug string) (domain.Product, error)
}

type VariantAdmin interface {
	ListVariants(ctx context.Context, productID int64) ([]domain.ProductVariant, error)
	AddVariant(context.Context, domain.ProductVariant) (domain.ProductVariant, error)
	UpdateVariant(context.Context, domain.ProductVariant) error
	DeleteVariant(ctx context.Context, variantID int64) error
}

type CartKeeper interface {
	ViewCart(ctx context.Context, userID string) ([]domain.CartLine, error)
	AddItem(ctx context.Context, item domain.CartItem) error
	UpdateItem(ctx context.Context, item domain.CartItem) error
	RemoveItem(ctx context.Context, userID string, productID, variantID int64) error
	ClearCart(ctx context.Context, userID string) error
}

type WishlistKeeper interface {
	Wishlist(ctx context.Context, userID string) ([]domain.Product, error)
	WishlistToggle(ctx context.Context, userID string, productID int64) (added bool, err error)
	WishlistAdd(ctx context.Context, userID string, productID int64) error
	WishlistRemove(ctx context.Context, userID string, productID int64) error
}

type CheckoutPlacer interface {
	PlaceOrder(context.Context, domain.CheckoutRequest) (domain.OrderPlacement, error)
	ConfirmPayment(ctx context.Context, paymentRef string) error
}

type OrdersReader interface {
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, userID string, orderID int64) (domain.Order, error)
}

type AccountManager interface {
	GetProfile(ctx context.Context, userID string) (domain.Profile, error)
	SaveProfile(context.Context, domain.Profile) error
	UploadAvatar(ctx context.Context, userID string, src io.Reader) (url string, err error)

	ListAddresses(ctx context.Context, userID string) ([]domain.Address, error)
	CreateAddress(context.Context, domain.Address) (domain.Address, error)
	UpdateAddress(context.Context, domain.Address) error
	DeleteAddress(ctx context.Context, userID string, addressID int64) error
	SetDefaultAddress(ctx context.Context, userID string, addressID int64) error
}

// Outbound ports, implemented by the adapters.

type CatalogStorage interface {
	ListProducts(context.Context, domain.CatalogQuery) ([]domain.Product, int, error)
	ProductBySlug(ctx context.Context, slug string) (domain.Product, error)
	ProductsByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
}

type VariantsStorage interface {
	VariantsByProduct(ctx context.Context, productID int64) ([]domain.ProductVariant, error)
	VariantsByIDs(ctx context.Context, ids []int64) (map[int64]domain.ProductVariant, error)
	InsertVariant(context.Context, domain.ProductVariant) (domain.ProductVariant, error)
	UpdateVariant(context.Context, domain.ProductVariant) error
	DeleteVariant(ctx context.Context, variantID int64) error
}

type CartStorage interface {
	ListItems(ctx context.Context, userID string) ([]domain.CartItem, error)
	UpsertItem(context.Context, domain.CartItem) error
	SetQuantity(context.Context, domain.CartItem) error
	DeleteItem(ctx context.Context, userID string, productID, variantID int64) error
	Clear(ctx context.Context, userID string) error
}

type WishlistStorage interface {
	ProductIDs(ctx context.Context, userID string) ([]int64, error)
	Add(ctx context.Context, userID string, productID int64) error
	Remove(ctx context.Context, userID string, productID int64) error
	Contains(ctx context.Context, userID string, productID int64) (bool, error)
}

type OrdersStorage interface {
	// CreateOrder persists the order with its items and clears the
	// user's cart in a single transaction.
	CreateOrder(context.Context, domain.Order) (domain.Order, error)
	OrderByID(ctx context.Context, userID string, orderID int64) (domain.Order, error)
	OrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	OrderByPaymentRef(ctx context.Context, paymentRef string) (domain.Order, error)
	SetStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
}

type AddressesStorage interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
	Insert(context.Context, domain.Address) (domain.Address, error)
	Update(context.Context, domain.Address) error
	Delete(ctx context.Context, userID string, addressID int64) error
	SetDefault(ctx context.Context, userID string, addressID int64) error
}

type ProfilesStorage interface {
	ByUser(ctx context.Context, userID string) (domain.Profile, error)
	Upsert(context.Context, domain.Profile) error
	SetAvatarURL(ctx context.Context, userID, url string) error
}

// PaymentRequest is the gateway transaction-initialization payload.
// Amount is in minor units.
type PaymentRequest struct {
	Amount      int64
	Currency    string
	Reference   string
	Email       string
	CallbackURL string
}

type PaymentGateway interface {
	InitTransaction(context.Context, PaymentRequest) (authorizationURL string, err error)
}

type AvatarUploader interface {
	Upload(ctx context.Context, userID string, src io.Reader) (url string, err error)
}

type OrderEventsProducer interface {
	ProduceOrderPlaced(context.Context, domain.Order) error
}
