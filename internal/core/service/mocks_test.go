package service_test

import (
	"context"
	"io"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/stretchr/testify/mock"
)

type MockCatalogStorage struct {
	mock.Mock
}

func (m *MockCatalogStorage) ListProducts(
	ctx context.Context, q domain.CatalogQuery,
) ([]domain.Product, int, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *MockCatalogStorage) ProductBySlug(
	ctx context.Context, slug string,
) (domain.Product, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalogStorage) ProductsByIDs(
	ctx context.Context, ids []int64,
) (map[int64]domain.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]domain.Product), args.Error(1)
}

type MockVariantsStorage struct {
	mock.Mock
}

func (m *MockVariantsStorage) VariantsByProduct(
	ctx context.Context, productID int64,
) ([]domain.ProductVariant, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.ProductVariant), args.Error(1)
}

func (m *MockVariantsStorage) VariantsByIDs(
	ctx context.Context, ids []int64,
) (map[int64]domain.ProductVariant, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]domain.ProductVariant), args.Error(1)
}

func (m *MockVariantsStorage) InsertVariant(
	ctx context.Context, v domain.ProductVariant,
) (domain.ProductVariant, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(domain.ProductVariant), args.Error(1)
}

func (m *MockVariantsStorage) UpdateVariant(
	ctx context.Context, v domain.ProductVariant,
) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVariantsStorage) DeleteVariant(
	ctx context.Context, variantID int64,
) error {
	args := m.Called(ctx, variantID)
	return args.Error(0)
}

type MockCartStorage struct {
	mock.Mock
}

func (m *MockCartStorage) ListItems(
	ctx context.Context, userID string,
) ([]domain.CartItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

func (m *MockCartStorage) UpsertItem(
	ctx context.Context, item domain.CartItem,
) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartStorage) SetQuantity(
	ctx context.Context, item domain.CartItem,
) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartStorage) DeleteItem(
	ctx context.Context, userID string, productID, variantID int64,
) error {
	args := m.Called(ctx, userID, productID, variantID)
	return args.Error(0)
}

func (m *MockCartStorage) Clear(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockWishlistStorage struct {
	mock.Mock
}

func (m *MockWishlistStorage) ProductIDs(
	ctx context.Context, userID string,
) ([]int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockWishlistStorage) Add(
	ctx context.Context, userID string, productID int64,
) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockWishlistStorage) Remove(
	ctx context.Context, userID string, productID int64,
) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockWishlistStorage) Contains(
	ctx context.Context, userID string, productID int64,
) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

type MockOrdersStorage struct {
	mock.Mock
}

func (m *MockOrdersStorage) CreateOrder(
	ctx context.Context, order domain.Order,
) (domain.Order, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) OrderByID(
	ctx context.Context, userID string, orderID int64,
) (domain.Order, error) {
	args := m.Called(ctx, userID, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) OrdersByUser(
	ctx context.Context, userID string,
) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) OrderByPaymentRef(
	ctx context.Context, paymentRef string,
) (domain.Order, error) {
	args := m.Called(ctx, paymentRef)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *MockOrdersStorage) SetStatus(
	ctx context.Context, orderID int64, status domain.OrderStatus,
) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type MockProfilesStorage struct {
	mock.Mock
}

func (m *MockProfilesStorage) ByUser(
	ctx context.Context, userID string,
) (domain.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *MockProfilesStorage) Upsert(
	ctx context.Context, p domain.Profile,
) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfilesStorage) SetAvatarURL(
	ctx context.Context, userID, url string,
) error {
	args := m.Called(ctx, userID, url)
	return args.Error(0)
}

type MockAddressesStorage struct {
	mock.Mock
}

func (m *MockAddressesStorage) ListByUser(
	ctx context.Context, userID string,
) ([]domain.Address, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *MockAddressesStorage) Insert(
	ctx context.Context, a domain.Address,
) (domain.Address, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(domain.Address), args.Error(1)
}

func (m *MockAddressesStorage) Update(
	ctx context.Context, a domain.Address,
) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddressesStorage) Delete(
	ctx context.Context, userID string, addressID int64,
) error {
	args := m.Called(ctx, userID, addressID)
	return args.Error(0)
}

func (m *MockAddressesStorage) SetDefault(
	ctx context.Context, userID string, addressID int64,
) error {
	args := m.Called(ctx, userID, addressID)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) InitTransaction(
	ctx context.Context, pr port.PaymentRequest,
) (string, error) {
	args := m.Called(ctx, pr)
	return args.String(0), args.Error(1)
}

type MockOrderEventsProducer struct {
	mock.Mock
}

func (m *MockOrderEventsProducer) ProduceOrderPlaced(
	ctx context.Context, order domain.Order,
) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type MockAvatarUploader struct {
	mock.Mock
}

func (m *MockAvatarUploader) Upload(
	ctx context.Context, userID string, src io.Reader,
) (string, error) {
	args := m.Called(ctx, userID, src)
	return args.String(0), args.Error(1)
}
